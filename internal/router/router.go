package router

import (
	"net/http"

	"github.com/igorvsx/WalletControlAPI/internal/config"
	"github.com/igorvsx/WalletControlAPI/internal/handler"
	"github.com/igorvsx/WalletControlAPI/internal/ledger"
	"github.com/igorvsx/WalletControlAPI/internal/mailer"
	"github.com/igorvsx/WalletControlAPI/internal/middleware"
	"github.com/igorvsx/WalletControlAPI/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the full API route table.
func SetupRouter(cfg *config.Config, db *gorm.DB, sender mailer.CodeSender) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog(cfg.Log.Access), middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		util.Success(c, util.Response{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	svc := ledger.New(db)

	// ====== API ======
	api := r.Group("/api")

	userHandler := handler.NewUserHandler(db, sender, cfg.Security.BcryptCost)
	users := api.Group("/users")
	users.POST("/add", userHandler.Create)
	users.GET("", userHandler.List)
	users.GET("/info/:login", userHandler.GetByLogin)
	users.GET("/info/email/:email", userHandler.GetByEmail)
	users.PUT("/update/:user_id", userHandler.Update)
	users.DELETE("/delete/:user_id", userHandler.Delete)
	users.POST("/password/recovery", userHandler.RequestPasswordRecovery)
	users.POST("/password/reset", userHandler.ResetPassword)

	accountHandler := handler.NewAccountHandler(db, svc)
	accounts := api.Group("/accounts")
	accounts.POST("/add", accountHandler.Create)
	accounts.GET("", accountHandler.List)
	accounts.GET("/user/:user_id", accountHandler.ListByUser)
	accounts.GET("/user/detail/:account_id", accountHandler.GetByID)
	accounts.GET("/total_balance/user/:user_id", accountHandler.TotalBalance)
	accounts.PUT("/update/:account_id", accountHandler.Update)
	accounts.DELETE("/user/delete/:account_id", accountHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(db, svc)
	exportHandler := handler.NewExportHandler(db)
	transactions := api.Group("/transactions")
	transactions.POST("/add", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/account/:account_id", transactionHandler.ListByAccount)
	transactions.GET("/account/:account_id/income/:income", transactionHandler.ListByAccountIncome)
	transactions.GET("/account/:account_id/export/csv", exportHandler.ExportCSV)
	transactions.GET("/account/:account_id/export/xlsx", exportHandler.ExportXLSX)
	transactions.GET("/detail/:transaction_id", transactionHandler.GetByID)
	transactions.PUT("/update/:transaction_id", transactionHandler.Update)
	transactions.DELETE("/delete/:transaction_id", transactionHandler.Delete)
	transactions.GET("/user/:user_id/income/:day", transactionHandler.SumIncomeByCategory)
	transactions.GET("/user/:user_id/expense/:day", transactionHandler.SumExpenseByCategory)

	categoryHandler := handler.NewCategoryHandler(db)
	categories := api.Group("/categories")
	categories.POST("/add", categoryHandler.Create)
	categories.GET("", categoryHandler.List)
	categories.DELETE("/delete/:category_id", categoryHandler.Delete)

	goalHandler := handler.NewGoalHandler(db)
	goals := api.Group("/financial-goals")
	goals.POST("/add", goalHandler.Create)
	goals.GET("", goalHandler.List)
	goals.GET("/:user_id/:is_done", goalHandler.ListByUser)
	goals.GET("/detail/:goal_id", goalHandler.GetByID)
	goals.PUT("/update/:goal_id", goalHandler.Update)
	goals.DELETE("/delete/:goal_id", goalHandler.Delete)

	budgetHandler := handler.NewBudgetHandler(db)
	budgets := api.Group("/budgets")
	budgets.POST("/add", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.GET("/user/:user_id", budgetHandler.ListByUser)
	budgets.GET("/detail/:budget_id", budgetHandler.GetByID)
	budgets.PUT("/update/:budget_id", budgetHandler.Update)
	budgets.DELETE("/delete/:budget_id", budgetHandler.Delete)

	r.NoRoute(func(c *gin.Context) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "route not found")
	})

	return r
}
