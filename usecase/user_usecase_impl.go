package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"campus-chat-app/apperror"
	"campus-chat-app/config/logger"
	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
	"campus-chat-app/entity"
	"campus-chat-app/enum"
	"campus-chat-app/security"
)

type UserUsecaseImpl struct {
	UserRepository
	*validator.Validate
	Log *logger.AppLogger
	*security.JWT
}

func NewUserUsecase(userRepository UserRepository, validate *validator.Validate, logger *logger.AppLogger, JWT *security.JWT) UserUsecase {
	return &UserUsecaseImpl{UserRepository: userRepository, Validate: validate, Log: logger, JWT: JWT}
}

// Register upserts by username: an existing identity keeps its id and gets
// the new email and password.
func (uc *UserUsecaseImpl) Register(ctx context.Context, request *req.RegisterRequest) (res.UserResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		uc.Log.Http.Warning.Warn().Err(err).Msg("Invalid register request")
		return res.UserResponse{}, err
	}

	hashPassword, err := security.HashPassword(request.Password)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("Failed to hash password")
		return res.UserResponse{}, err
	}

	existing, err := uc.UserRepository.FindByUsername(ctx, request.Username)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("username", request.Username).Msg("Failed to find user")
		return res.UserResponse{}, err
	}

	if existing != nil {
		existing.Email = request.Email
		existing.Password = hashPassword
		if err := uc.UserRepository.Update(ctx, existing); err != nil {
			uc.Log.Http.Error.Error().Err(err).Uint("userId", existing.ID).Msg("Failed to update user")
			return res.UserResponse{}, err
		}
		uc.Log.Http.Info.Info().Uint("userId", existing.ID).Str("username", existing.Username).Msg("Updated existing user")
		return toUserResponse(*existing), nil
	}

	newUser := &entity.User{
		Username: request.Username,
		Email:    request.Email,
		Password: hashPassword,
		Status:   enum.UserStatusOffline,
	}
	if err := uc.UserRepository.Save(ctx, newUser); err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("username", request.Username).Msg("Failed to save user")
		return res.UserResponse{}, err
	}

	uc.Log.Http.Info.Info().Uint("userId", newUser.ID).Str("username", newUser.Username).Msg("Registered new user")
	return toUserResponse(*newUser), nil
}

func (uc *UserUsecaseImpl) Login(ctx context.Context, request *req.LoginRequest) (res.LoginResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		uc.Log.Http.Warning.Warn().Err(err).Msg("Invalid login request")
		return res.LoginResponse{}, err
	}

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("Failed to find user by email")
		return res.LoginResponse{}, err
	}
	if user == nil {
		uc.Log.Http.Warning.Warn().Str("email", request.Email).Msg("User not found")
		return res.LoginResponse{}, apperror.NotFound("user not found with email: %s", request.Email)
	}

	if !security.ComparePassword(user.Password, request.Password) {
		uc.Log.Http.Warning.Warn().Uint("userId", user.ID).Msg("Password mismatch")
		return res.LoginResponse{}, apperror.Authentication("invalid password")
	}

	user.Status = enum.UserStatusOnline
	if err := uc.UserRepository.Update(ctx, user); err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("userId", user.ID).Msg("Failed to update status")
		return res.LoginResponse{}, err
	}

	token, err := uc.JWT.GenerateToken(user)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("Failed to generate token")
		return res.LoginResponse{}, err
	}

	uc.Log.Http.Info.Info().Uint("userId", user.ID).Msg("User logged in")
	return res.LoginResponse{Token: token, User: toUserResponse(*user)}, nil
}

func (uc *UserUsecaseImpl) Disconnect(ctx context.Context, username string) error {
	user, err := uc.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		uc.Log.Http.Trace.Trace().Str("username", username).Msg("Disconnect for unknown user ignored")
		return nil
	}

	user.Status = enum.UserStatusOffline
	if err := uc.UserRepository.Update(ctx, user); err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("userId", user.ID).Msg("Failed to update status")
		return err
	}
	uc.Log.Http.Info.Info().Str("username", username).Msg("User disconnected")
	return nil
}

func (uc *UserUsecaseImpl) GetUserByID(ctx context.Context, userID uint) (res.UserResponse, error) {
	user, err := uc.UserRepository.FindById(ctx, userID)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("userId", userID).Msg("Failed to find user")
		return res.UserResponse{}, err
	}
	if user == nil {
		return res.UserResponse{}, apperror.NotFound("user %d not found", userID)
	}
	return toUserResponse(*user), nil
}

func (uc *UserUsecaseImpl) GetAllUsers(ctx context.Context) ([]res.UserResponse, error) {
	uc.Log.Http.Trace.Trace().Msg("Fetching all users")

	users, err := uc.UserRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("Failed to get all users")
		return nil, err
	}

	uc.Log.Http.Info.Info().Int("userCount", len(users)).Msg("Successfully retrieved all users")
	return toUserResponses(users), nil
}
