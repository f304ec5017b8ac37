package config

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"campus-chat-app/config/common"
	"campus-chat-app/config/logger"
	"campus-chat-app/entity"
)

type DBConfig struct {
	*gorm.DB
	*logger.AppLogger
}

func NewDB(config *common.Config, log *logger.AppLogger) (*DBConfig, error) {
	db, err := initDatabase(config, log)
	if err != nil {
		return nil, err
	}
	return &DBConfig{DB: db, AppLogger: log}, nil
}

func (db *DBConfig) GetDB() *gorm.DB {
	return db.DB
}

func (db *DBConfig) Close() error {
	conn, err := db.DB.DB()
	if err != nil {
		return err
	}
	return conn.Close()
}

func initDatabase(cfg *common.Config, log *logger.AppLogger) (*gorm.DB, error) {
	dbHost, dbUser, dbPassword, dbName, dbPort, dbTimeZone := cfg.GetDatabaseConfig()
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		dbHost, dbUser, dbPassword, dbName, dbPort, dbTimeZone,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_",
			SingularTable: true,
		},
	})
	if err != nil {
		log.Http.Error.Error().Err(err).Str("host", dbHost).Msg("Failed to connect to database")
		return nil, err
	}

	log.Http.Info.Info().Str("host", dbHost).Str("database", dbName).Msg("Connection opened to database")
	conn, err := db.DB()
	if err != nil {
		return nil, err
	}

	var user entity.User
	var friendship entity.Friendship
	var friendRequest entity.FriendRequest
	var room entity.ChatRoom
	var member entity.GroupMember
	var message entity.ChatMessage
	if err := db.AutoMigrate(&user, &friendship, &friendRequest, &room, &member, &message); err != nil {
		log.Http.Error.Error().Err(err).Msg("Failed to run migration")
		return nil, err
	}

	conn.SetMaxIdleConns(10)
	conn.SetMaxOpenConns(100)
	conn.SetConnMaxLifetime(time.Second * time.Duration(300))
	return db, nil
}
