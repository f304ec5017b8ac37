package req

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type DisconnectRequest struct {
	Username string `json:"username" validate:"required"`
}

// PresenceRequest is the profile a client announces when it joins.
type PresenceRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}
