package model

import "time"

// Loan 一筆借閱紀錄；returned 後即為終態
type Loan struct {
	ID         int        `db:"id" json:"issue_id"`
	UserID     int        `db:"user_id" json:"user_id"`
	BookID     int        `db:"book_id" json:"book_id"`
	IssueDate  time.Time  `db:"issue_date" json:"issue_date"`
	DueDate    time.Time  `db:"due_date" json:"due_date"`
	Returned   bool       `db:"returned" json:"returned"`
	ReturnDate *time.Time `db:"return_date" json:"return_date"`
	LateFee    int        `db:"late_fee" json:"late_fee"`
}

// LoanView 列表查詢時 join users/books 的結果
type LoanView struct {
	IssueID    int        `db:"issue_id" json:"issue_id"`
	UserID     int        `db:"user_id" json:"user_id"`
	UserName   string     `db:"user_name" json:"user_name,omitempty"`
	BookID     int        `db:"book_id" json:"book_id"`
	Title      string     `db:"title" json:"title"`
	IssueDate  time.Time  `db:"issue_date" json:"issue_date"`
	DueDate    time.Time  `db:"due_date" json:"due_date"`
	Returned   bool       `db:"returned" json:"returned"`
	ReturnDate *time.Time `db:"return_date" json:"return_date"`
	LateFee    int        `db:"late_fee" json:"late_fee"`
}
