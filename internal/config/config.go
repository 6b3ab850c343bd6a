package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config 服務啟動所需的所有設定，皆來自環境變數
type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	RedisAddr     string `env:"REDIS_ADDR,required"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// JWT 簽章金鑰，整個 process 共用
	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	// 借閱規則
	LoanLimit     int `env:"LOAN_LIMIT" envDefault:"3"`
	LateFeePerDay int `env:"LATE_FEE_PER_DAY" envDefault:"10"`

	// 是否允許註冊時自行指定 admin 角色
	AllowAdminSignup bool `env:"ALLOW_ADMIN_SIGNUP" envDefault:"true"`

	WorkerCount  int           `env:"WORKER_COUNT" envDefault:"2"`
	BookCacheTTL time.Duration `env:"BOOK_CACHE_TTL" envDefault:"5m"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// 測試可覆寫
var loadDotEnv = func() error { return godotenv.Load() }

// Load 先嘗試讀取 .env，再解析環境變數並檢查
func Load() (*Config, error) {
	// .env 不存在時直接使用現有環境變數
	_ = loadDotEnv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 檢查數值型設定是否合理
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be blank")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid TOKEN_TTL: %s", c.TokenTTL)
	}
	if c.LoanLimit <= 0 {
		return fmt.Errorf("invalid LOAN_LIMIT: %d", c.LoanLimit)
	}
	if c.LateFeePerDay < 0 {
		return fmt.Errorf("invalid LATE_FEE_PER_DAY: %d", c.LateFeePerDay)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("invalid WORKER_COUNT: %d", c.WorkerCount)
	}
	if c.BookCacheTTL <= 0 {
		return fmt.Errorf("invalid BOOK_CACHE_TTL: %s", c.BookCacheTTL)
	}
	return nil
}

// HTTPAddress 回傳 echo 監聽位址
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.Port)
}
