package store

import (
	"context"
	"fmt"
	"time"

	"library-api/internal/database"
	"library-api/internal/model"

	"github.com/jackc/pgx/v5"
)

func CountOutstandingLoans(ctx context.Context, db database.Querier, userID int) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE user_id = $1 AND returned = FALSE`,
		userID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountOutstandingLoans: %w", err)
	}
	return n, nil
}

func CreateLoan(ctx context.Context, db database.Querier, l *model.Loan) (*model.Loan, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO loans (user_id, book_id, issue_date, due_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		l.UserID,
		l.BookID,
		l.IssueDate,
		l.DueDate,
	)
	if err := row.Scan(&l.ID); err != nil {
		return nil, fmt.Errorf("CreateLoan: %w", mapError(err))
	}
	l.Returned = false
	l.ReturnDate = nil
	l.LateFee = 0
	return l, nil
}

// FindOutstandingLoan 鎖定 (user, book) 最早一筆未歸還的借閱
func FindOutstandingLoan(ctx context.Context, db database.Querier, userID, bookID int) (*model.Loan, error) {
	l := &model.Loan{}
	row := db.QueryRow(ctx,
		`SELECT id, user_id, book_id, issue_date, due_date, returned, return_date, late_fee
		 FROM loans
		 WHERE user_id = $1 AND book_id = $2 AND returned = FALSE
		 ORDER BY issue_date, id
		 LIMIT 1
		 FOR UPDATE`,
		userID,
		bookID,
	)
	if err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.BookID,
		&l.IssueDate,
		&l.DueDate,
		&l.Returned,
		&l.ReturnDate,
		&l.LateFee,
	); err != nil {
		return nil, fmt.Errorf("FindOutstandingLoan: %w", mapError(err))
	}
	return l, nil
}

// MarkLoanReturned 只會更新尚未歸還的紀錄，已歸還則回傳 ErrNotFound
func MarkLoanReturned(ctx context.Context, db database.Querier, loanID int, returnedAt time.Time, lateFee int) error {
	tag, err := db.Exec(ctx,
		`UPDATE loans SET returned = TRUE, return_date = $1, late_fee = $2
		 WHERE id = $3 AND returned = FALSE`,
		returnedAt,
		lateFee,
		loanID,
	)
	if err != nil {
		return fmt.Errorf("MarkLoanReturned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("MarkLoanReturned: %w", ErrNotFound)
	}
	return nil
}

func scanLoanViews(rows pgx.Rows) ([]model.LoanView, error) {
	defer rows.Close()

	loans := []model.LoanView{}
	for rows.Next() {
		var v model.LoanView
		if err := rows.Scan(
			&v.IssueID,
			&v.UserID,
			&v.UserName,
			&v.BookID,
			&v.Title,
			&v.IssueDate,
			&v.DueDate,
			&v.Returned,
			&v.ReturnDate,
			&v.LateFee,
		); err != nil {
			return nil, err
		}
		loans = append(loans, v)
	}
	return loans, rows.Err()
}

// ListLoans 管理員查看全部借閱
func ListLoans(ctx context.Context, db database.Querier) ([]model.LoanView, error) {
	rows, err := db.Query(ctx,
		`SELECT l.id, l.user_id, u.name, l.book_id, b.title,
		        l.issue_date, l.due_date, l.returned, l.return_date, l.late_fee
		 FROM loans l
		 JOIN users u ON l.user_id = u.id
		 JOIN books b ON l.book_id = b.id
		 ORDER BY l.issue_date DESC, l.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListLoans: %w", err)
	}
	loans, err := scanLoanViews(rows)
	if err != nil {
		return nil, fmt.Errorf("ListLoans: %w", err)
	}
	return loans, nil
}

func ListLoansByUser(ctx context.Context, db database.Querier, userID int) ([]model.LoanView, error) {
	rows, err := db.Query(ctx,
		`SELECT l.id, l.user_id, u.name, l.book_id, b.title,
		        l.issue_date, l.due_date, l.returned, l.return_date, l.late_fee
		 FROM loans l
		 JOIN users u ON l.user_id = u.id
		 JOIN books b ON l.book_id = b.id
		 WHERE l.user_id = $1
		 ORDER BY l.issue_date DESC, l.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListLoansByUser: %w", err)
	}
	loans, err := scanLoanViews(rows)
	if err != nil {
		return nil, fmt.Errorf("ListLoansByUser: %w", err)
	}
	return loans, nil
}
