package res

type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type FriendRequestResponse struct {
	ID           uint   `json:"id"`
	SenderID     uint   `json:"senderId"`
	SenderName   string `json:"senderName"`
	ReceiverID   uint   `json:"receiverId"`
	ReceiverName string `json:"receiverName"`
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
}
