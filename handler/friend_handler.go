package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
	"campus-chat-app/usecase"
)

type FriendHandler struct {
	usecase.FriendUsecase
	*logrus.Logger
}

func NewFriendHandler(friendUsecase usecase.FriendUsecase, logger *logrus.Logger) *FriendHandler {
	return &FriendHandler{FriendUsecase: friendUsecase, Logger: logger}
}

func (handler *FriendHandler) SendFriendRequest(ctx *fiber.Ctx) error {
	payload := new(req.FriendRequestRequest)
	if err := parseBody(ctx, payload); err != nil {
		return err
	}

	requestResponse, err := handler.FriendUsecase.SendFriendRequest(ctx.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to send friend request from %d to %d", payload.SenderID, payload.ReceiverID)
		return err
	}

	response := res.CommonResponse[res.FriendRequestResponse]{
		Message:    "Friend request sent",
		StatusCode: fiber.StatusCreated,
		Data:       requestResponse,
	}
	return ctx.Status(fiber.StatusCreated).JSON(response)
}

func (handler *FriendHandler) AcceptFriendRequest(ctx *fiber.Ctx) error {
	requestID, err := paramID(ctx, "requestId")
	if err != nil {
		return err
	}

	requestResponse, err := handler.FriendUsecase.AcceptFriendRequest(ctx.UserContext(), requestID)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to accept friend request %d", requestID)
		return err
	}

	response := res.CommonResponse[res.FriendRequestResponse]{
		Message:    "Friend request accepted",
		StatusCode: fiber.StatusOK,
		Data:       requestResponse,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *FriendHandler) RemoveFriend(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return err
	}
	friendID, err := paramID(ctx, "friendId")
	if err != nil {
		return err
	}

	if err := handler.FriendUsecase.RemoveFriend(ctx.UserContext(), userID, friendID); err != nil {
		handler.Logger.WithError(err).Errorf("Failed to remove friend %d of user %d", friendID, userID)
		return err
	}

	response := res.CommonResponse[any]{
		Message:    "Friend removed",
		StatusCode: fiber.StatusOK,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *FriendHandler) GetFriends(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return err
	}

	friends, err := handler.FriendUsecase.GetFriends(ctx.UserContext(), userID)
	if err != nil {
		return err
	}

	response := res.CommonResponse[[]res.UserResponse]{
		Message:    "Successfully To Get Friends",
		StatusCode: fiber.StatusOK,
		Data:       friends,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *FriendHandler) GetPendingRequests(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return err
	}

	requests, err := handler.FriendUsecase.GetPendingRequests(ctx.UserContext(), userID)
	if err != nil {
		return err
	}

	response := res.CommonResponse[[]res.FriendRequestResponse]{
		Message:    "Successfully To Get Pending Requests",
		StatusCode: fiber.StatusOK,
		Data:       requests,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *FriendHandler) GetSentRequests(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return err
	}

	requests, err := handler.FriendUsecase.GetSentRequests(ctx.UserContext(), userID)
	if err != nil {
		return err
	}

	response := res.CommonResponse[[]res.FriendRequestResponse]{
		Message:    "Successfully To Get Sent Requests",
		StatusCode: fiber.StatusOK,
		Data:       requests,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}
