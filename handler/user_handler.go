package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-chat-app/dto/res"
	"campus-chat-app/middleware"
	"campus-chat-app/usecase"
)

type UserHandler struct {
	usecase.UserUsecase
	*logrus.Logger
}

func NewUserHandler(userUsecase usecase.UserUsecase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{UserUsecase: userUsecase, Logger: logger}
}

// GetUserByToken serves the user whose id ExtractUserID put in Locals.
func (handler *UserHandler) GetUserByToken(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals(middleware.UserIDKey).(uint)
	if !ok {
		return fiber.ErrUnauthorized
	}

	userResponse, err := handler.UserUsecase.GetUserByID(ctx.UserContext(), userID)
	if err != nil {
		handler.Logger.WithError(err).Errorln("Failed to get user by token")
		return err
	}

	response := res.CommonResponse[res.UserResponse]{
		Message:    "Successfully To Get User By ID",
		StatusCode: fiber.StatusOK,
		Data:       userResponse,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *UserHandler) GetUserByID(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return err
	}

	userResponse, err := handler.UserUsecase.GetUserByID(ctx.UserContext(), userID)
	if err != nil {
		return err
	}

	response := res.CommonResponse[res.UserResponse]{
		Message:    "Successfully To Get User By ID",
		StatusCode: fiber.StatusOK,
		Data:       userResponse,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *UserHandler) GetAllUsers(ctx *fiber.Ctx) error {
	userResponses, err := handler.UserUsecase.GetAllUsers(ctx.UserContext())
	if err != nil {
		handler.Logger.WithError(err).Errorln("Failed to get all users")
		return err
	}

	responses := res.CommonResponse[[]res.UserResponse]{
		Message:    "Successfully To Get All User",
		StatusCode: fiber.StatusOK,
		Data:       userResponses,
	}
	return ctx.Status(fiber.StatusOK).JSON(responses)
}
