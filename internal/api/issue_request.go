package api

// swagger:model api.IssueRequest
type IssueRequest struct {
	BookID int `json:"book_id" form:"book_id" validate:"required,min=1" example:"1"`
	// YYYY-MM-DD 或 RFC3339
	DueDate string `json:"due_date" form:"due_date" validate:"required" example:"2025-07-01"`
}

// swagger:model api.IssueResponse
type IssueResponse struct {
	Message string `json:"message" example:"Book issued successfully"`
	IssueID int    `json:"issue_id" example:"12"`
}

// swagger:model api.ReturnRequest
type ReturnRequest struct {
	BookID int `json:"book_id" form:"book_id" validate:"required,min=1" example:"1"`
}

// swagger:model api.ReturnResponse
type ReturnResponse struct {
	Message string `json:"message" example:"Book returned successfully"`
	LateFee int    `json:"late_fee" example:"20"`
}
