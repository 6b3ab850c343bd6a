package model

import "time"

type Book struct {
	ID              int       `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Author          string    `db:"author" json:"author"`
	Genre           string    `db:"genre" json:"genre"`
	PublicationYear *int      `db:"publication_year" json:"publication_year"`
	AvailableCopies int       `db:"available_copies" json:"available_copies"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// BookFilter 書目列表的查詢條件，零值代表不篩選
type BookFilter struct {
	Title         string
	Author        string
	Genre         string
	AvailableOnly bool
	Limit         uint
	Offset        uint
}
