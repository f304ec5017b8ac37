package req

type FriendRequestRequest struct {
	SenderID   uint `json:"senderId" validate:"required"`
	ReceiverID uint `json:"receiverId" validate:"required"`
}
