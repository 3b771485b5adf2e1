package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/libraryapi/internal/application/book"
	apploan "github.com/xiebiao/libraryapi/internal/application/loan"
	appnotification "github.com/xiebiao/libraryapi/internal/application/notification"
	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/domain/loan"
	"github.com/xiebiao/libraryapi/internal/infrastructure/config"
	"github.com/xiebiao/libraryapi/internal/infrastructure/email"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/libraryapi/internal/infrastructure/scheduler"
	"github.com/xiebiao/libraryapi/internal/interface/http/handler"
	"github.com/xiebiao/libraryapi/internal/interface/http/middleware"
	"github.com/xiebiao/libraryapi/pkg/metrics"
	"github.com/xiebiao/libraryapi/pkg/mq"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go声明了等价的Provider Set，可用wire gen生成）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - 逾期提醒: cron=%q 宽限=%d天\n", cfg.Scheduler.Cron, cfg.Scheduler.GraceDays)

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 初始化事件发布者(mq.url未配置时自动禁用)
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		log.Fatalf("初始化事件发布者失败: %v", err)
	}
	defer publisher.Close()

	// 6. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	loanRepo := mysql.NewLoanRepository(db)
	txManager := mysql.NewTxManager(db)
	bookCache := redis.NewBookCache(redisClient, cfg.Redis.DetailTTL)
	mailSender := email.NewSMTPSender(cfg)

	// 领域层
	bookService := book.NewService(bookRepo)
	loanService := loan.NewService(loanRepo, cfg.Scheduler.GraceDays)

	// 应用层
	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, bookCache)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, bookCache)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService, bookCache)
	findBooksUseCase := appbook.NewFindBooksUseCase(bookService)
	findBookLoansUseCase := appbook.NewFindBookLoansUseCase(bookService, loanService)
	createLoanUseCase := apploan.NewCreateLoanUseCase(bookService, bookRepo, loanService, txManager, publisher)
	returnLoanUseCase := apploan.NewReturnLoanUseCase(loanService, publisher)
	findLoansUseCase := apploan.NewFindLoansUseCase(loanService)
	notifyLateLoansUseCase := appnotification.NewNotifyLateLoansUseCase(
		loanService, mailSender, cfg.Mail.LateLoanMessage)

	// 接口层
	bookHandler := handler.NewBookHandler(
		createBookUseCase, getBookUseCase, updateBookUseCase,
		deleteBookUseCase, findBooksUseCase, findBookLoansUseCase)
	loanHandler := handler.NewLoanHandler(createLoanUseCase, returnLoanUseCase, findLoansUseCase)

	// 7. 启动逾期提醒调度器
	sched, err := scheduler.New(cfg.Scheduler.Cron, notifyLateLoansUseCase)
	if err != nil {
		log.Fatalf("初始化调度器失败: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 9. 注册路由
	registerRoutes(r, bookHandler, loanHandler)

	// 10. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   指标端点: http://localhost%s/metrics\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	go func() {
		if err := r.Run(addr); err != nil {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 等待退出信号(保证defer的调度器/MQ清理执行)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("收到退出信号，开始关闭...")
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, bookHandler *handler.BookHandler, loanHandler *handler.LoanHandler) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	api := r.Group("/api")
	{
		// 图书模块
		books := api.Group("/books")
		{
			books.POST("", bookHandler.Create)
			books.GET("", bookHandler.Find)
			books.GET("/:id", bookHandler.Get)
			books.PUT("/:id", bookHandler.Update)
			books.DELETE("/:id", bookHandler.Delete)
			books.GET("/:id/loans", bookHandler.FindLoans)
		}

		// 借阅模块
		loans := api.Group("/loans")
		{
			loans.POST("", loanHandler.Create)
			loans.GET("", loanHandler.Find)
			loans.PATCH("/:id", loanHandler.Return)
		}
	}
}
