package usecase

import (
	"context"

	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
)

type UserUsecase interface {
	Register(ctx context.Context, request *req.RegisterRequest) (res.UserResponse, error)
	Login(ctx context.Context, request *req.LoginRequest) (res.LoginResponse, error)
	Disconnect(ctx context.Context, username string) error
	GetUserByID(ctx context.Context, userID uint) (res.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]res.UserResponse, error)
}
