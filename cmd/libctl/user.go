package main

import (
	"errors"
	"fmt"
	"strings"

	"library-api/internal/database"
	"library-api/internal/model"
	"library-api/internal/service"
	"library-api/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

const minPasswordLen = 6

var validate = validator.New()

func newUserCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "管理使用者帳號",
	}
	cmd.AddCommand(newCreateAdminCmd(opts), newPromoteCmd(opts))
	return cmd
}

func newCreateAdminCmd(opts *rootOptions) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "建立管理員帳號，密碼以互動方式輸入",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			name = strings.TrimSpace(name)
			email = strings.ToLower(strings.TrimSpace(email))
			if name == "" {
				return errors.New("--name is required")
			}
			if err := validate.Var(email, "required,email"); err != nil {
				return fmt.Errorf("invalid --email: %q", email)
			}

			pw, err := readPassword(c.OutOrStdout(), "Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if len(pw) < minPasswordLen {
				return fmt.Errorf("password must be at least %d characters", minPasswordLen)
			}
			confirm, err := readPassword(c.OutOrStdout(), "Confirm password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if pw != confirm {
				return errors.New("passwords do not match")
			}

			hash, err := service.HashPassword(pw)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			return opts.withDB(c.Context(), func(db database.DB) error {
				u, err := store.CreateUser(c.Context(), db, &model.User{
					Name:         name,
					Email:        email,
					PasswordHash: hash,
					Role:         model.RoleAdmin,
				})
				if errors.Is(err, store.ErrAlreadyExists) {
					return fmt.Errorf("email %s already registered, use `libctl user promote` instead", email)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "admin %s created (id=%d)\n", u.Email, u.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "顯示名稱")
	cmd.Flags().StringVar(&email, "email", "", "登入 Email")
	return cmd
}

func newPromoteCmd(opts *rootOptions) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "promote <email>",
		Short: "修改既有使用者的角色 (預設升級為 admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if role != model.RoleAdmin && role != model.RoleMember {
				return fmt.Errorf("invalid --role %q", role)
			}
			email := strings.TrimSpace(args[0])
			return opts.withDB(c.Context(), func(db database.DB) error {
				err := store.UpdateUserRole(c.Context(), db, email, role)
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("user %s not found", email)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "%s is now %s\n", email, role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", model.RoleAdmin, "member 或 admin")
	return cmd
}
