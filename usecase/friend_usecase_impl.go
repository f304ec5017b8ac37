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

type FriendUsecaseImpl struct {
	Users    UserRepository
	Friends  FriendshipRepository
	Requests FriendRequestRepository
	Validate *validator.Validate
	Log      *logger.AppLogger
}

func NewFriendUsecase(users UserRepository, friends FriendshipRepository, requests FriendRequestRepository, validate *validator.Validate, logger *logger.AppLogger) FriendUsecase {
	return &FriendUsecaseImpl{Users: users, Friends: friends, Requests: requests, Validate: validate, Log: logger}
}

func (uc *FriendUsecaseImpl) SendFriendRequest(ctx context.Context, request *req.FriendRequestRequest) (res.FriendRequestResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.FriendRequestResponse{}, err
	}

	sender, err := uc.findUser(ctx, request.SenderID)
	if err != nil {
		return res.FriendRequestResponse{}, err
	}
	receiver, err := uc.findUser(ctx, request.ReceiverID)
	if err != nil {
		return res.FriendRequestResponse{}, err
	}

	friendRequest := &entity.FriendRequest{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Status:     enum.FriendRequestPending,
		Timestamp:  time.Now(),
	}
	if err := uc.Requests.Save(ctx, friendRequest); err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("Failed to save friend request")
		return res.FriendRequestResponse{}, err
	}
	friendRequest.Sender = *sender
	friendRequest.Receiver = *receiver

	uc.Log.Http.Info.Info().
		Uint("requestId", friendRequest.ID).
		Uint("senderId", sender.ID).
		Uint("receiverId", receiver.ID).
		Msg("Friend request sent")
	return toFriendRequestResponse(*friendRequest), nil
}

func (uc *FriendUsecaseImpl) AcceptFriendRequest(ctx context.Context, requestID uint) (res.FriendRequestResponse, error) {
	friendRequest, err := uc.Requests.FindById(ctx, requestID)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("requestId", requestID).Msg("Failed to find friend request")
		return res.FriendRequestResponse{}, err
	}
	if friendRequest == nil {
		return res.FriendRequestResponse{}, apperror.NotFound("friend request %d not found", requestID)
	}

	// Link is idempotent, so a failed status update can be retried.
	if err := uc.Friends.Link(ctx, friendRequest.SenderID, friendRequest.ReceiverID); err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("requestId", requestID).Msg("Failed to link friends")
		return res.FriendRequestResponse{}, err
	}

	friendRequest.Status = enum.FriendRequestAccepted
	if err := uc.Requests.Update(ctx, friendRequest); err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("requestId", requestID).Msg("Failed to accept friend request")
		return res.FriendRequestResponse{}, err
	}

	uc.Log.Http.Info.Info().Uint("requestId", requestID).Msg("Friend request accepted")
	return toFriendRequestResponse(*friendRequest), nil
}

// RemoveFriend unlinks both directions. Old requests between the two users
// are left untouched.
func (uc *FriendUsecaseImpl) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if _, err := uc.findUser(ctx, userID); err != nil {
		return err
	}
	if _, err := uc.findUser(ctx, friendID); err != nil {
		return err
	}

	if err := uc.Friends.Unlink(ctx, userID, friendID); err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("userId", userID).Uint("friendId", friendID).Msg("Failed to unlink friends")
		return err
	}
	uc.Log.Http.Info.Info().Uint("userId", userID).Uint("friendId", friendID).Msg("Friend removed")
	return nil
}

func (uc *FriendUsecaseImpl) GetFriends(ctx context.Context, userID uint) ([]res.UserResponse, error) {
	friends, err := uc.Friends.FindFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponses(friends), nil
}

func (uc *FriendUsecaseImpl) GetPendingRequests(ctx context.Context, userID uint) ([]res.FriendRequestResponse, error) {
	requests, err := uc.Requests.FindByReceiverAndStatus(ctx, userID, enum.FriendRequestPending)
	if err != nil {
		return nil, err
	}
	return toFriendRequestResponses(requests), nil
}

func (uc *FriendUsecaseImpl) GetSentRequests(ctx context.Context, userID uint) ([]res.FriendRequestResponse, error) {
	requests, err := uc.Requests.FindBySenderAndStatus(ctx, userID, enum.FriendRequestPending)
	if err != nil {
		return nil, err
	}
	return toFriendRequestResponses(requests), nil
}

func (uc *FriendUsecaseImpl) findUser(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := uc.Users.FindById(ctx, userID)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("userId", userID).Msg("Failed to find user")
		return nil, err
	}
	if user == nil {
		uc.Log.Http.Warning.Warn().Uint("userId", userID).Msg("User not found")
		return nil, apperror.NotFound("user %d not found", userID)
	}
	return user, nil
}
