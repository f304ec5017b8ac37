package req

type RoomMessageRequest struct {
	SenderID uint   `json:"senderId" validate:"required"`
	Content  string `json:"content"`
	Type     string `json:"type" validate:"omitempty,oneof=CHAT JOIN LEAVE"`
}

type PrivateMessageRequest struct {
	SenderID    uint   `json:"senderId" validate:"required"`
	RecipientID uint   `json:"recipientId" validate:"required"`
	Content     string `json:"content"`
	Type        string `json:"type" validate:"omitempty,oneof=CHAT JOIN LEAVE"`
}
