package users

import (
	"context"

	"library-api/internal/model"
	"library-api/internal/service"
)

// UserService 由 *service.UserService 實作
type UserService interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
}
