package store

import (
	"context"
	"fmt"

	"library-api/internal/database"
	"library-api/internal/model"
)

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, created_at
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", mapError(err))
	}
	return u, nil
}

// GetUserByEmail email 一律以小寫比對
func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, created_at
		 FROM users WHERE email = lower($1)`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", mapError(err))
	}
	return u, nil
}

func EmailExists(ctx context.Context, db database.Querier, email string) (bool, error) {
	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = lower($1))`,
		email,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("EmailExists: %w", err)
	}
	return exists, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role)
		 VALUES ($1, lower($2), $3, $4)
		 RETURNING id, created_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", mapError(err))
	}
	return u, nil
}

// LockUser 以 FOR UPDATE 鎖住使用者，讓同一人的借書請求依序執行
func LockUser(ctx context.Context, db database.Querier, userID int) error {
	var id int
	if err := db.QueryRow(ctx,
		`SELECT id FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&id); err != nil {
		return fmt.Errorf("LockUser: %w", mapError(err))
	}
	return nil
}

// UpdateUserRole 僅供管理工具使用，API 不開放修改角色
func UpdateUserRole(ctx context.Context, db database.Querier, email, role string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET role = $1 WHERE email = lower($2)`,
		role,
		email,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserRole: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserRole: %w", ErrNotFound)
	}
	return nil
}
