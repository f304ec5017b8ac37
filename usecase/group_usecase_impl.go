package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"campus-chat-app/apperror"
	"campus-chat-app/config/logger"
	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
	"campus-chat-app/entity"
	"campus-chat-app/enum"
)

type GroupUsecaseImpl struct {
	Rooms    ChatRoomRepository
	Members  GroupMemberRepository
	Users    UserRepository
	Validate *validator.Validate
	Log      *logger.AppLogger
}

func NewGroupUsecase(rooms ChatRoomRepository, members GroupMemberRepository, users UserRepository, validate *validator.Validate, logger *logger.AppLogger) GroupUsecase {
	return &GroupUsecaseImpl{Rooms: rooms, Members: members, Users: users, Validate: validate, Log: logger}
}

// CreateGroup stores the room with the creator as LEADER and every known id
// of request.MemberIDs as MEMBER. Unknown ids are dropped without error.
func (uc *GroupUsecaseImpl) CreateGroup(ctx context.Context, request *req.CreateGroupRequest) (res.RoomResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.RoomResponse{}, err
	}
	if IsMasterGroup(request.Name) {
		uc.Log.Http.Warning.Warn().Str("name", request.Name).Msg("Refused reserved group name")
		return res.RoomResponse{}, apperror.DomainRule("Group name %q is reserved.", request.Name)
	}

	creator, err := uc.findUser(ctx, request.CreatorID)
	if err != nil {
		return res.RoomResponse{}, err
	}

	memberIDs := make([]uint, 0, len(request.MemberIDs))
	for _, id := range request.MemberIDs {
		if id != creator.ID {
			memberIDs = append(memberIDs, id)
		}
	}
	users, err := uc.Users.FindAllByIDs(ctx, memberIDs)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("Failed to resolve group members")
		return res.RoomResponse{}, err
	}

	roomType := enum.RoomTypeGroup
	if request.Type != "" {
		roomType = enum.RoomType(request.Type)
	}
	room := &entity.ChatRoom{
		Name:        request.Name,
		Description: request.Description,
		Type:        roomType,
		CreatorID:   &creator.ID,
		IsActive:    true,
	}

	now := time.Now()
	members := make([]entity.GroupMember, 0, len(users)+1)
	members = append(members, entity.GroupMember{UserID: creator.ID, Role: enum.MemberRoleLeader, JoinedAt: now})
	for _, user := range users {
		members = append(members, entity.GroupMember{UserID: user.ID, Role: enum.MemberRoleMember, JoinedAt: now})
	}

	if err := uc.Rooms.CreateWithMembers(ctx, room, members); err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("name", request.Name).Msg("Failed to create group")
		return res.RoomResponse{}, err
	}

	if dropped := len(memberIDs) - len(users); dropped > 0 {
		uc.Log.Http.Trace.Trace().Uint("roomId", room.ID).Int("dropped", dropped).Msg("Unknown member ids ignored")
	}
	uc.Log.Http.Info.Info().
		Uint("roomId", room.ID).
		Str("name", room.Name).
		Int("memberCount", len(members)).
		Msg("Group created")
	return toRoomResponse(*room), nil
}

func (uc *GroupUsecaseImpl) AddMember(ctx context.Context, roomID, userID uint) error {
	room, err := uc.findRoom(ctx, roomID)
	if err != nil {
		return err
	}
	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return err
	}

	existing, err := uc.Members.FindByRoomAndUser(ctx, room.ID, user.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	member := &entity.GroupMember{
		ChatRoomID: room.ID,
		UserID:     user.ID,
		Role:       enum.MemberRoleMember,
		JoinedAt:   time.Now(),
	}
	if err := uc.Members.Save(ctx, member); err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("roomId", roomID).Uint("userId", userID).Msg("Failed to add member")
		return err
	}
	uc.Log.Http.Info.Info().Uint("roomId", roomID).Uint("userId", userID).Msg("Member added")
	return nil
}

// RemoveMember deletes the membership if there is one. The master group
// cannot be left.
func (uc *GroupUsecaseImpl) RemoveMember(ctx context.Context, roomID, userID uint) error {
	room, err := uc.findRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if IsMasterGroup(room.Name) {
		uc.Log.Http.Warning.Warn().Uint("roomId", roomID).Uint("userId", userID).Msg("Refused to leave master group")
		return apperror.DomainRule("Cannot leave the Master Group.")
	}

	member, err := uc.Members.FindByRoomAndUser(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return nil
	}
	if err := uc.Members.Delete(ctx, member); err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("roomId", roomID).Uint("userId", userID).Msg("Failed to remove member")
		return err
	}
	uc.Log.Http.Info.Info().Uint("roomId", roomID).Uint("userId", userID).Msg("Member removed")
	return nil
}

// GetMembers scans memberships only; an unknown room yields an empty list.
func (uc *GroupUsecaseImpl) GetMembers(ctx context.Context, roomID uint) ([]res.MemberResponse, error) {
	members, err := uc.Members.FindByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	responses := make([]res.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, toMemberResponse(member))
	}
	return responses, nil
}

// GetUserGroups always includes the master group, membership row or not.
func (uc *GroupUsecaseImpl) GetUserGroups(ctx context.Context, userID uint) ([]res.RoomResponse, error) {
	rooms, err := uc.Members.FindRoomsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	master, err := uc.Rooms.FindByName(ctx, MasterGroupName)
	if err != nil {
		return nil, err
	}
	if master != nil && !containsRoom(rooms, master.ID) {
		rooms = append(rooms, *master)
	}

	responses := make([]res.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, toRoomResponse(room))
	}
	return responses, nil
}

func (uc *GroupUsecaseImpl) GetGroup(ctx context.Context, roomID uint) (res.RoomResponse, error) {
	room, err := uc.findRoom(ctx, roomID)
	if err != nil {
		return res.RoomResponse{}, err
	}
	return toRoomResponse(*room), nil
}

// EnsureMasterGroup creates the master room on first boot. Running it again
// returns the existing room.
func (uc *GroupUsecaseImpl) EnsureMasterGroup(ctx context.Context) (res.RoomResponse, error) {
	master, err := uc.Rooms.FindByName(ctx, MasterGroupName)
	if err != nil {
		return res.RoomResponse{}, err
	}
	if master != nil {
		return toRoomResponse(*master), nil
	}

	master = &entity.ChatRoom{
		Name:        MasterGroupName,
		Description: masterGroupDescription,
		Type:        enum.RoomTypeOfficial,
		IsActive:    true,
	}
	if err := uc.Rooms.Save(ctx, master); err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("Failed to create master group")
		return res.RoomResponse{}, err
	}
	uc.Log.Http.Info.Info().Uint("roomId", master.ID).Msg("Master group created")
	return toRoomResponse(*master), nil
}

func containsRoom(rooms []entity.ChatRoom, id uint) bool {
	for _, room := range rooms {
		if room.ID == id {
			return true
		}
	}
	return false
}

func (uc *GroupUsecaseImpl) findRoom(ctx context.Context, roomID uint) (*entity.ChatRoom, error) {
	room, err := uc.Rooms.FindById(ctx, roomID)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("roomId", roomID).Msg("Failed to find room")
		return nil, err
	}
	if room == nil {
		return nil, apperror.NotFound("room %d not found", roomID)
	}
	return room, nil
}

func (uc *GroupUsecaseImpl) findUser(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := uc.Users.FindById(ctx, userID)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("userId", userID).Msg("Failed to find user")
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user %d not found", userID)
	}
	return user, nil
}
