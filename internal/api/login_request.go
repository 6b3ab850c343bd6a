package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123!"`
}

// swagger:model api.LoginResponse
type LoginResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
