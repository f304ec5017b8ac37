package enum

type UserStatus string

const (
	UserStatusOnline  UserStatus = "ONLINE"
	UserStatusOffline UserStatus = "OFFLINE"
)
