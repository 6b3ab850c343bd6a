package api

// BookRequest 新增與整筆更新共用
// swagger:model api.BookRequest
type BookRequest struct {
	Title           string `json:"title" form:"title" validate:"required,max=255" example:"The Go Programming Language"`
	Author          string `json:"author" form:"author" validate:"required,max=255" example:"Alan Donovan"`
	Genre           string `json:"genre" form:"genre" validate:"max=100" example:"Programming"`
	PublicationYear *int   `json:"publication_year" form:"publication_year" validate:"omitempty,min=0,max=9999" example:"2015"`
	AvailableCopies int    `json:"available_copies" form:"available_copies" validate:"min=0" example:"3"`
}

// BookListQuery GET /books 的查詢參數
type BookListQuery struct {
	Title     string `query:"title"`
	Author    string `query:"author"`
	Genre     string `query:"genre"`
	Available bool   `query:"available"`
	Limit     uint   `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset    uint   `query:"offset"`
}

// swagger:model api.CreateBookResponse
type CreateBookResponse struct {
	Message string `json:"message" example:"Book added successfully"`
	BookID  int    `json:"bookId" example:"1"`
}
