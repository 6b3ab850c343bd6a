package router

import (
	"log/slog"

	"library-api/internal/cache"
	"library-api/internal/database"
	"library-api/internal/handler"
	"library-api/internal/handler/books"
	"library-api/internal/handler/issue"
	"library-api/internal/handler/users"
	"library-api/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Deps 路由需要的服務
type Deps struct {
	DB    database.DB
	Cache cache.Cache
	Guard *middleware.Guard
	Users users.UserService
	Books books.BookService
	Loans issue.LoanService
}

// NewEcho 建立帶有 validator、jsoniter 與共用中介層的 echo 實例
func NewEcho(logger *slog.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.JSONSerializer = handler.JSONSerializer{}

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.CORS(corsOrigins))
	return e
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 註冊與登入
	api.POST("/users/register", users.RegisterHandler(d.Users))
	api.POST("/users/login", users.LoginHandler(d.Users))

	// 書目：登入可讀，管理員可寫
	apiBooks := api.Group("/books")
	apiBooks.GET("", books.ListBooksHandler(d.Books), d.Guard.RequireAuth)
	apiBooks.GET("/:id", books.GetBookHandler(d.Books), d.Guard.RequireAuth)
	apiBooks.POST("", books.CreateBookHandler(d.Books), d.Guard.RequireAdmin)
	apiBooks.PUT("/:id", books.UpdateBookHandler(d.Books), d.Guard.RequireAdmin)
	apiBooks.DELETE("/:id", books.DeleteBookHandler(d.Books), d.Guard.RequireAdmin)

	// 借還書
	apiIssue := api.Group("/issue")
	apiIssue.POST("", issue.IssueBookHandler(d.Loans), d.Guard.RequireAuth)
	apiIssue.POST("/return", issue.ReturnBookHandler(d.Loans), d.Guard.RequireAuth)
	apiIssue.GET("/all", issue.ListAllIssuesHandler(d.Loans), d.Guard.RequireAdmin)
	apiIssue.GET("/my", issue.ListMyIssuesHandler(d.Loans), d.Guard.RequireAuth)
}
