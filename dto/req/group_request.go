package req

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	CreatorID   uint   `json:"creatorId" validate:"required"`
	MemberIDs   []uint `json:"memberIds"`
	Type        string `json:"type" validate:"omitempty,oneof=GROUP CHANNEL"`
}
