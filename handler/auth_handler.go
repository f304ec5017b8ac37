package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
	"campus-chat-app/usecase"
)

type AuthHandler struct {
	usecase.UserUsecase
	*logrus.Logger
}

func NewAuthHandler(userUsecase usecase.UserUsecase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{UserUsecase: userUsecase, Logger: logger}
}

func (handler *AuthHandler) RegisterUser(ctx *fiber.Ctx) error {
	payload := new(req.RegisterRequest)
	if err := parseBody(ctx, payload); err != nil {
		return err
	}

	userResponse, err := handler.UserUsecase.Register(ctx.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to register user %s", payload.Username)
		return err
	}

	response := res.CommonResponse[res.UserResponse]{
		Message:    "Successfully to register new user",
		StatusCode: fiber.StatusOK,
		Data:       userResponse,
	}
	handler.Logger.Infof("Success register user with id: %d", userResponse.ID)
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *AuthHandler) LoginUser(ctx *fiber.Ctx) error {
	payload := new(req.LoginRequest)
	if err := parseBody(ctx, payload); err != nil {
		return err
	}

	loginResponse, err := handler.UserUsecase.Login(ctx.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to login: %v", err)
		return err
	}

	response := res.CommonResponse[res.LoginResponse]{
		Message:    "Successfully to login",
		StatusCode: fiber.StatusOK,
		Data:       loginResponse,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *AuthHandler) Disconnect(ctx *fiber.Ctx) error {
	payload := new(req.DisconnectRequest)
	if err := parseBody(ctx, payload); err != nil {
		return err
	}
	if payload.Username == "" {
		return fiber.NewError(fiber.StatusBadRequest, "username is required")
	}

	if err := handler.UserUsecase.Disconnect(ctx.UserContext(), payload.Username); err != nil {
		handler.Logger.WithError(err).Errorf("Failed to disconnect %s", payload.Username)
		return err
	}

	response := res.CommonResponse[any]{
		Message:    "Successfully to disconnect",
		StatusCode: fiber.StatusOK,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}
