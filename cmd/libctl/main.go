// libctl 管理工具：資料庫 migration 與管理員帳號維護
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"library-api/internal/database"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// 測試時替換
var (
	openDB       = database.NewPgxPool
	migrateUp    = database.RunMigrations
	migrateDown  = database.RollbackAll
	readPassword = func(w io.Writer, prompt string) (string, error) {
		fmt.Fprint(w, prompt)
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	exitFunc = os.Exit
)

type rootOptions struct {
	databaseURL string
}

// dbURL 旗標優先，其次是 DATABASE_URL 環境變數
func (o *rootOptions) dbURL() (string, error) {
	if o.databaseURL != "" {
		return o.databaseURL, nil
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("database url is required (--database-url or DATABASE_URL)")
}

// withDB 開一次連線池，執行完即關閉
func (o *rootOptions) withDB(ctx context.Context, fn func(db database.DB) error) error {
	url, err := o.dbURL()
	if err != nil {
		return err
	}
	db, err := openDB(ctx, url)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()
	return fn(db)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "libctl",
		Short:         "Library API 管理工具",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// .env 不存在時直接使用現有環境變數
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL 連線字串，預設讀取 DATABASE_URL")

	root.AddCommand(newMigrateCmd(opts), newUserCmd(opts))
	return root
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		exitFunc(1)
	}
}
