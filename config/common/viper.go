package common

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

func NewViper() *Config {
	// .env is optional, real environment variables win
	if err := godotenv.Load(); err != nil {
		log.Trace("No .env file loaded, using environment")
	}

	config := viper.New()
	config.SetConfigFile(".env")
	config.SetConfigType("env")
	config.AutomaticEnv()
	setDefaults(config)

	log.Trace("Checking file .env ....")
	if err := config.ReadInConfig(); err != nil {
		log.Tracef("Skipping config file: %v", err)
	}
	return &Config{Viper: config}
}

// NewConfig wraps an already populated viper instance.
func NewConfig(v *viper.Viper) *Config {
	setDefaults(v)
	return &Config{Viper: v}
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("APP_NAME", "campus-chat")
	config.SetDefault("APP_PORT", "7720")
	config.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	config.SetDefault("DB_DRIVER", "postgres")
	config.SetDefault("DB_TIMEZONE", "UTC")
	config.SetDefault("JWT_SECRET", "campus-chat-dev-secret")
	config.SetDefault("JWT_TTL_MINUTES", 60)
	config.SetDefault("BROKER_DRIVER", "memory")
	config.SetDefault("BROKER_PREFIX", "campus-chat")
	config.SetDefault("NATS_URL", "nats://127.0.0.1:4222")
	config.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	config.SetDefault("REDIS_DB", 0)
	config.SetDefault("LOG_DIR", "logs")
	config.SetDefault("WS_BUFFER", 64)
	config.SetDefault("AUTH_RATE_LIMIT", 20)
	config.SetDefault("AUTH_RATE_WINDOW_SECONDS", 60)
}

func (c *Config) GetAppConfig() (appName string) {
	return c.Viper.GetString("APP_NAME")
}

func (c *Config) GetListenAddr() string {
	return ":" + c.Viper.GetString("APP_PORT")
}

func (c *Config) GetCorsOrigins() string {
	return c.Viper.GetString("CORS_ORIGINS")
}

func (c *Config) GetDatabaseDriver() string {
	return c.Viper.GetString("DB_DRIVER")
}

func (c *Config) GetDatabaseConfig() (dbHost, dbUser, dbPassword, dbName, dbPort, dbTimeZone string) {
	dbHost = c.Viper.GetString("DB_HOSTNAME")
	dbUser = c.Viper.GetString("DB_USER")
	dbPassword = c.Viper.GetString("DB_PASSWORD")
	dbName = c.Viper.GetString("DB_NAME")
	dbPort = c.Viper.GetString("DB_PORT")
	dbTimeZone = c.Viper.GetString("DB_TIMEZONE")

	return dbHost, dbUser, dbPassword, dbName, dbPort, dbTimeZone
}

func (c *Config) GetJwtConfig() []byte {
	jwtSecret := c.Viper.GetString("JWT_SECRET")
	return []byte(jwtSecret)
}

func (c *Config) GetJwtTTL() time.Duration {
	return time.Duration(c.Viper.GetInt("JWT_TTL_MINUTES")) * time.Minute
}

func (c *Config) GetBrokerConfig() (driver, prefix string) {
	return c.Viper.GetString("BROKER_DRIVER"), c.Viper.GetString("BROKER_PREFIX")
}

func (c *Config) GetNatsURL() string {
	return c.Viper.GetString("NATS_URL")
}

func (c *Config) GetRedisConfig() (addr, password string, db int) {
	return c.Viper.GetString("REDIS_ADDR"), c.Viper.GetString("REDIS_PASSWORD"), c.Viper.GetInt("REDIS_DB")
}

func (c *Config) GetLogDir() string {
	return c.Viper.GetString("LOG_DIR")
}

func (c *Config) GetWebSocketBuffer() int {
	return c.Viper.GetInt("WS_BUFFER")
}

func (c *Config) GetAuthRateLimit() (limit int, window time.Duration) {
	return c.Viper.GetInt("AUTH_RATE_LIMIT"), time.Duration(c.Viper.GetInt("AUTH_RATE_WINDOW_SECONDS")) * time.Second
}
