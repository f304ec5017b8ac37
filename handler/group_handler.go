package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
	"campus-chat-app/usecase"
)

type GroupHandler struct {
	usecase.GroupUsecase
	*logrus.Logger
}

func NewGroupHandler(groupUsecase usecase.GroupUsecase, logger *logrus.Logger) *GroupHandler {
	return &GroupHandler{GroupUsecase: groupUsecase, Logger: logger}
}

func (handler *GroupHandler) CreateGroup(ctx *fiber.Ctx) error {
	payload := new(req.CreateGroupRequest)
	if err := parseBody(ctx, payload); err != nil {
		return err
	}

	room, err := handler.GroupUsecase.CreateGroup(ctx.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to create group %s", payload.Name)
		return err
	}

	response := res.CommonResponse[res.RoomResponse]{
		Message:    "Group created",
		StatusCode: fiber.StatusCreated,
		Data:       room,
	}
	handler.Logger.Infof("Group %s created with id: %d", room.Name, room.ID)
	return ctx.Status(fiber.StatusCreated).JSON(response)
}

func (handler *GroupHandler) GetGroup(ctx *fiber.Ctx) error {
	roomID, err := paramID(ctx, "roomId")
	if err != nil {
		return err
	}

	room, err := handler.GroupUsecase.GetGroup(ctx.UserContext(), roomID)
	if err != nil {
		return err
	}

	response := res.CommonResponse[res.RoomResponse]{
		Message:    "Successfully To Get Group",
		StatusCode: fiber.StatusOK,
		Data:       room,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *GroupHandler) GetMembers(ctx *fiber.Ctx) error {
	roomID, err := paramID(ctx, "roomId")
	if err != nil {
		return err
	}

	members, err := handler.GroupUsecase.GetMembers(ctx.UserContext(), roomID)
	if err != nil {
		return err
	}

	response := res.CommonResponse[[]res.MemberResponse]{
		Message:    "Successfully To Get Members",
		StatusCode: fiber.StatusOK,
		Data:       members,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *GroupHandler) AddMember(ctx *fiber.Ctx) error {
	roomID, err := paramID(ctx, "roomId")
	if err != nil {
		return err
	}
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return err
	}

	if err := handler.GroupUsecase.AddMember(ctx.UserContext(), roomID, userID); err != nil {
		handler.Logger.WithError(err).Errorf("Failed to add user %d to room %d", userID, roomID)
		return err
	}

	response := res.CommonResponse[any]{
		Message:    "Member added",
		StatusCode: fiber.StatusOK,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *GroupHandler) RemoveMember(ctx *fiber.Ctx) error {
	roomID, err := paramID(ctx, "roomId")
	if err != nil {
		return err
	}
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return err
	}

	if err := handler.GroupUsecase.RemoveMember(ctx.UserContext(), roomID, userID); err != nil {
		handler.Logger.WithError(err).Errorf("Failed to remove user %d from room %d", userID, roomID)
		return err
	}

	response := res.CommonResponse[any]{
		Message:    "Member removed",
		StatusCode: fiber.StatusOK,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *GroupHandler) GetUserGroups(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return err
	}

	rooms, err := handler.GroupUsecase.GetUserGroups(ctx.UserContext(), userID)
	if err != nil {
		return err
	}

	response := res.CommonResponse[[]res.RoomResponse]{
		Message:    "Successfully To Get User Groups",
		StatusCode: fiber.StatusOK,
		Data:       rooms,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}
