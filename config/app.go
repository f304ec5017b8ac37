package config

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"campus-chat-app/config/common"
	"campus-chat-app/config/logger"
	"campus-chat-app/handler"
	"campus-chat-app/middleware"
	"campus-chat-app/pubsub"
	"campus-chat-app/routes"
	"campus-chat-app/security"
	"campus-chat-app/usecase"
)

type AppConfig struct {
	*fiber.App
	*validator.Validate
	*logrus.Logger
	*logger.AppLogger
	*common.Config
	*security.JWT
	*middleware.Middleware
	*Repositories
	Broker pubsub.Broker
}

func RunServer() {
	newConfig := common.NewViper()
	log := NewLogger()
	appLogger := logger.NewLogger(newConfig.GetLogDir())
	app := NewFiber(newConfig, log)
	newValidator := NewValidator()
	newJWT := security.NewJWT(newConfig)
	newMiddleware := middleware.NewMiddleware(newConfig, newJWT, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repositories, err := NewRepositories(newConfig, appLogger)
	if err != nil {
		log.WithError(err).Fatal("Failed to open store")
	}
	defer repositories.Close()

	broker, err := NewBroker(ctx, newConfig, appLogger)
	if err != nil {
		log.WithError(err).Fatal("Failed to start broker")
	}
	defer broker.Close()

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: log.Out}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: newConfig.GetCorsOrigins(),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	aC := &AppConfig{
		App:          app,
		Validate:     newValidator,
		Logger:       log,
		AppLogger:    appLogger,
		Config:       newConfig,
		JWT:          newJWT,
		Middleware:   newMiddleware,
		Repositories: repositories,
		Broker:       broker,
	}
	if err := App(ctx, aC); err != nil {
		log.WithError(err).Fatal("Failed to bootstrap application")
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("Failed to shut down server")
		}
	}()

	if err := app.Listen(newConfig.GetListenAddr()); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}
}

// App wires usecases and handlers onto aC.App and seeds the store.
func App(ctx context.Context, aC *AppConfig) error {
	newUserUsecase := usecase.NewUserUsecase(aC.Repositories.Users, aC.Validate, aC.AppLogger, aC.JWT)
	newFriendUsecase := usecase.NewFriendUsecase(aC.Repositories.Users, aC.Repositories.Friendships, aC.Repositories.FriendRequests, aC.Validate, aC.AppLogger)
	newGroupUsecase := usecase.NewGroupUsecase(aC.Repositories.Rooms, aC.Repositories.Members, aC.Repositories.Users, aC.Validate, aC.AppLogger)
	newMessageUsecase := usecase.NewMessageUsecase(aC.Repositories.Messages, aC.Repositories.Rooms, aC.Repositories.Users, aC.Broker, aC.Validate, aC.AppLogger)

	if err := usecase.NewBootstrap(newUserUsecase, newGroupUsecase, aC.AppLogger).Run(ctx); err != nil {
		return err
	}

	newAuthHandler := handler.NewAuthHandler(newUserUsecase, aC.Logger)
	newUserHandler := handler.NewUserHandler(newUserUsecase, aC.Logger)
	newFriendHandler := handler.NewFriendHandler(newFriendUsecase, aC.Logger)
	newGroupHandler := handler.NewGroupHandler(newGroupUsecase, aC.Logger)
	newChatHandler := handler.NewChatHandler(newMessageUsecase, aC.Logger)
	wsHandler := handler.NewWebSocketHandler(newMessageUsecase, newUserUsecase, aC.Broker, aC.AppLogger, aC.Config.GetWebSocketBuffer())

	route := routes.ConfigRoute{
		App:           aC.App,
		Middleware:    aC.Middleware,
		AuthHandler:   newAuthHandler,
		UserHandler:   newUserHandler,
		FriendHandler: newFriendHandler,
		GroupHandler:  newGroupHandler,
		ChatHandler:   newChatHandler,
	}
	route.GetRoute()
	route.GetWebSocketRoute(wsHandler)
	return nil
}
