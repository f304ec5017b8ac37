package usecase

import (
	"context"

	"campus-chat-app/config/logger"
	"campus-chat-app/dto/req"
)

// DemoUsers are registered on every start through the normal register path.
var DemoUsers = []req.RegisterRequest{
	{Username: "Aditya", Email: "aditya@gmail.com", Password: "aaa"},
	{Username: "Megha", Email: "megha@gmail.com", Password: "mmm"},
}

// Bootstrap prepares a fresh store: demo identities and the master group.
// It is idempotent and run once by the process entry point.
type Bootstrap struct {
	Users  UserUsecase
	Groups GroupUsecase
	Log    *logger.AppLogger
}

func NewBootstrap(users UserUsecase, groups GroupUsecase, log *logger.AppLogger) *Bootstrap {
	return &Bootstrap{Users: users, Groups: groups, Log: log}
}

func (b *Bootstrap) Run(ctx context.Context) error {
	for i := range DemoUsers {
		seed := DemoUsers[i]
		if _, err := b.Users.Register(ctx, &seed); err != nil {
			return err
		}
	}

	master, err := b.Groups.EnsureMasterGroup(ctx)
	if err != nil {
		return err
	}
	b.Log.Http.Info.Info().Uint("masterRoomId", master.ID).Int("seededUsers", len(DemoUsers)).Msg("Bootstrap finished")
	return nil
}
