package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library-api/internal/database"
	"library-api/internal/model"
	"library-api/internal/store"
)

var (
	ErrEmailInUse          = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAdminSignupDisabled = errors.New("admin self-registration is disabled")
	ErrInvalidRole         = errors.New("invalid role")
)

var (
	storeEmailExists    = store.EmailExists
	storeCreateUser     = store.CreateUser
	storeGetUserByEmail = store.GetUserByEmail
)

// RegisterInput 註冊所需欄位，Role 空字串視為 member
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type UserService struct {
	db               database.DB
	tokens           *TokenManager
	allowAdminSignup bool
}

func NewUserService(db database.DB, tokens *TokenManager, allowAdminSignup bool) *UserService {
	return &UserService{db: db, tokens: tokens, allowAdminSignup: allowAdminSignup}
}

// Register 建立新帳號；email 重複時回傳 ErrEmailInUse
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	role := in.Role
	if role == "" {
		role = model.RoleMember
	}
	if role != model.RoleMember && role != model.RoleAdmin {
		return nil, ErrInvalidRole
	}
	if role == model.RoleAdmin && !s.allowAdminSignup {
		return nil, ErrAdminSignupDisabled
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	exists, err := storeEmailExists(ctx, s.db, email)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	if exists {
		return nil, ErrEmailInUse
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}

	created, err := storeCreateUser(ctx, s.db, &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// 併發註冊時由 unique 限制擋下
		return nil, ErrEmailInUse
	}
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	return created, nil
}

// AuthenticateUser 比對使用者密碼，失敗一律回傳 ErrInvalidCredentials
func AuthenticateUser(user model.User, password string) error {
	if user.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login 驗證帳密並簽發存取權杖；查無帳號與密碼錯誤回傳相同錯誤
func (s *UserService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := storeGetUserByEmail(ctx, s.db, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("Login: %w", err)
	}

	if err := AuthenticateUser(*user, password); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(*user)
	if err != nil {
		return "", nil, fmt.Errorf("Login: %w", err)
	}
	return token, user, nil
}
