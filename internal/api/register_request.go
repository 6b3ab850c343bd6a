package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=255" example:"Alice"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=72" example:"Secret123!"`
	// role 不填則為 member
	Role string `json:"role" form:"role" validate:"omitempty,oneof=member admin" example:"member"`
}
