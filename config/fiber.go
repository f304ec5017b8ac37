package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-chat-app/config/common"
	"campus-chat-app/handler"
)

func NewFiber(cfg *common.Config, log *logrus.Logger) *fiber.App {
	appName := cfg.GetAppConfig()
	return fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		AppName:       appName,
		ErrorHandler:  handler.NewErrorHandler(log),
	})
}
