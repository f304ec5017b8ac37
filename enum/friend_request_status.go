package enum

// FriendRequestStatus has no rejected or cancelled state; a request stays
// PENDING until accepted.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "PENDING"
	FriendRequestAccepted FriendRequestStatus = "ACCEPTED"
)
