package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"library-api/internal/database"
	"library-api/internal/model"
	"library-api/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	ErrBookNotFound        = errors.New("book not found")
	ErrNoCopiesAvailable   = errors.New("no copies available")
	ErrBorrowLimitExceeded = errors.New("borrow limit exceeded")
	ErrNoActiveIssue       = errors.New("no active issue found")
	ErrUserNotFound        = errors.New("user not found")
)

var (
	withTx                        = database.WithTx
	storeLockBookCopies           = store.LockBookCopies
	storeLockUser                 = store.LockUser
	storeCountOutstandingLoans    = store.CountOutstandingLoans
	storeCreateLoan               = store.CreateLoan
	storeDecrementAvailableCopies = store.DecrementAvailableCopies
	storeFindOutstandingLoan      = store.FindOutstandingLoan
	storeMarkLoanReturned         = store.MarkLoanReturned
	storeIncrementAvailableCopies = store.IncrementAvailableCopies
	storeListLoans                = store.ListLoans
	storeListLoansByUser          = store.ListLoansByUser
)

const day = 24 * time.Hour

// LoanPolicy 借閱上限與每日逾期費
type LoanPolicy struct {
	MaxOutstanding int
	FeePerDay      int
}

// LateFee 逾期不足一天以一天計；準時或提早歸還為 0
func LateFee(due, returnedAt time.Time, feePerDay int) int {
	late := returnedAt.Sub(due)
	if late <= 0 {
		return 0
	}
	days := int(late / day)
	if late%day != 0 {
		days++
	}
	return days * feePerDay
}

// bookChangeNotifier 借還書改變庫存後通知快取
type bookChangeNotifier interface {
	Changed(ctx context.Context, bookID int)
}

type LoanService struct {
	db     database.DB
	policy LoanPolicy
	books  bookChangeNotifier
	logger *slog.Logger
}

func NewLoanService(db database.DB, policy LoanPolicy, books bookChangeNotifier, logger *slog.Logger) *LoanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoanService{db: db, policy: policy, books: books, logger: logger}
}

// IssueBook 在單一交易內鎖定書籍與使用者後建立借閱並扣庫存
func (s *LoanService) IssueBook(ctx context.Context, userID, bookID int, due time.Time) (int, error) {
	var loanID int
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		copies, err := storeLockBookCopies(ctx, tx, bookID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrBookNotFound
		}
		if err != nil {
			return err
		}
		if copies < 1 {
			return ErrNoCopiesAvailable
		}

		// 鎖住使用者列，同一人的借書請求依序計數
		if err := storeLockUser(ctx, tx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		outstanding, err := storeCountOutstandingLoans(ctx, tx, userID)
		if err != nil {
			return err
		}
		if outstanding >= s.policy.MaxOutstanding {
			return ErrBorrowLimitExceeded
		}

		loan, err := storeCreateLoan(ctx, tx, &model.Loan{
			UserID:    userID,
			BookID:    bookID,
			IssueDate: timeNow().UTC(),
			DueDate:   due,
		})
		if err != nil {
			return err
		}

		ok, err := storeDecrementAvailableCopies(ctx, tx, bookID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoCopiesAvailable
		}
		loanID = loan.ID
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("IssueBook: %w", err)
	}

	s.logger.Info("book issued", "issue_id", loanID, "user_id", userID, "book_id", bookID)
	if s.books != nil {
		s.books.Changed(ctx, bookID)
	}
	return loanID, nil
}

// ReturnBook 歸還 (user, book) 最早一筆未還借閱，回傳逾期費
func (s *LoanService) ReturnBook(ctx context.Context, userID, bookID int) (int, error) {
	var fee int
	var loanID int
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		loan, err := storeFindOutstandingLoan(ctx, tx, userID, bookID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoActiveIssue
		}
		if err != nil {
			return err
		}

		now := timeNow().UTC()
		fee = LateFee(loan.DueDate, now, s.policy.FeePerDay)

		if err := storeMarkLoanReturned(ctx, tx, loan.ID, now, fee); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNoActiveIssue
			}
			return err
		}
		if err := storeIncrementAvailableCopies(ctx, tx, bookID); err != nil {
			return err
		}
		loanID = loan.ID
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("ReturnBook: %w", err)
	}

	s.logger.Info("book returned", "issue_id", loanID, "user_id", userID, "book_id", bookID, "late_fee", fee)
	if s.books != nil {
		s.books.Changed(ctx, bookID)
	}
	return fee, nil
}

func (s *LoanService) ListAll(ctx context.Context) ([]model.LoanView, error) {
	return storeListLoans(ctx, s.db)
}

func (s *LoanService) ListForUser(ctx context.Context, userID int) ([]model.LoanView, error) {
	return storeListLoansByUser(ctx, s.db, userID)
}
