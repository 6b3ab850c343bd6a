package service

import (
	"time"

	"library-api/internal/database"
	"library-api/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

// restoreGlobals 還原測試中被替換的套件層級函式
func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	newTokenID = func() string { return ulid.Make().String() }
	parseWithClaims = jwt.ParseWithClaims

	storeEmailExists = store.EmailExists
	storeCreateUser = store.CreateUser
	storeGetUserByEmail = store.GetUserByEmail

	storeListBooks = store.ListBooks
	storeGetBookByID = store.GetBookByID
	storeCreateBook = store.CreateBook
	storeUpdateBook = store.UpdateBook
	storeDeleteBook = store.DeleteBook

	withTx = database.WithTx
	storeLockBookCopies = store.LockBookCopies
	storeLockUser = store.LockUser
	storeCountOutstandingLoans = store.CountOutstandingLoans
	storeCreateLoan = store.CreateLoan
	storeDecrementAvailableCopies = store.DecrementAvailableCopies
	storeFindOutstandingLoan = store.FindOutstandingLoan
	storeMarkLoanReturned = store.MarkLoanReturned
	storeIncrementAvailableCopies = store.IncrementAvailableCopies
	storeListLoans = store.ListLoans
	storeListLoansByUser = store.ListLoansByUser
}
