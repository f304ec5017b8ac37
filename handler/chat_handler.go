package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-chat-app/dto"
	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
	"campus-chat-app/usecase"
)

// ChatHandler is the REST side of the message gateway. Sends made here are
// published exactly like websocket SEND frames.
type ChatHandler struct {
	usecase.MessageUsecase
	*logrus.Logger
}

func NewChatHandler(messageUsecase usecase.MessageUsecase, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		MessageUsecase: messageUsecase,
		Logger:         logger,
	}
}

func (handler *ChatHandler) SendRoomMessage(c *fiber.Ctx) error {
	roomID, err := paramID(c, "roomId")
	if err != nil {
		return err
	}
	payload := new(req.RoomMessageRequest)
	if err := parseBody(c, payload); err != nil {
		return err
	}

	message, err := handler.MessageUsecase.SendRoomMessage(c.UserContext(), roomID, payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to send message to room %d", roomID)
		return err
	}

	response := res.CommonResponse[dto.BroadcastMessage]{
		Message:    "Message sent",
		StatusCode: fiber.StatusCreated,
		Data:       message,
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

func (handler *ChatHandler) GetRoomMessages(c *fiber.Ctx) error {
	roomID, err := paramID(c, "roomId")
	if err != nil {
		return err
	}

	messages, err := handler.MessageUsecase.GetRoomMessages(c.UserContext(), roomID, c.QueryInt("limit"))
	if err != nil {
		return err
	}

	response := res.CommonResponse[[]dto.BroadcastMessage]{
		Message:    "Successfully to Get Room Messages",
		StatusCode: fiber.StatusOK,
		Data:       messages,
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

func (handler *ChatHandler) SendPrivateMessage(c *fiber.Ctx) error {
	payload := new(req.PrivateMessageRequest)
	if err := parseBody(c, payload); err != nil {
		return err
	}

	message, err := handler.MessageUsecase.SendPrivateMessage(c.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to send private message from %d to %d", payload.SenderID, payload.RecipientID)
		return err
	}

	response := res.CommonResponse[dto.BroadcastMessage]{
		Message:    "Message sent",
		StatusCode: fiber.StatusCreated,
		Data:       message,
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

func (handler *ChatHandler) GetConversation(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	otherID, err := paramID(c, "otherId")
	if err != nil {
		return err
	}

	messages, err := handler.MessageUsecase.GetConversation(c.UserContext(), userID, otherID, c.QueryInt("limit"))
	if err != nil {
		return err
	}

	response := res.CommonResponse[[]dto.BroadcastMessage]{
		Message:    "Successfully to Get Conversation",
		StatusCode: fiber.StatusOK,
		Data:       messages,
	}
	return c.Status(fiber.StatusOK).JSON(response)
}
