package res

type RoomResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	CreatorID   *uint  `json:"creatorId"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
}

type MemberResponse struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
}
