//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/libraryapi/internal/application/book"
	apploan "github.com/xiebiao/libraryapi/internal/application/loan"
	appnotification "github.com/xiebiao/libraryapi/internal/application/notification"
	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/domain/loan"
	"github.com/xiebiao/libraryapi/internal/domain/notification"
	"github.com/xiebiao/libraryapi/internal/infrastructure/config"
	"github.com/xiebiao/libraryapi/internal/infrastructure/email"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/libraryapi/internal/interface/http/handler"
	"github.com/xiebiao/libraryapi/internal/interface/http/middleware"
	"github.com/xiebiao/libraryapi/pkg/mq"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、Redis连接、事件发布者、邮件发送器
var infrastructureSet = wire.NewSet(
	config.Load,         // 加载配置文件
	mysql.NewDB,         // 创建MySQL连接
	redis.NewClient,     // 创建Redis连接
	providePublisher,    // 事件发布者
	provideBookCache,    // 图书详情缓存
	email.NewSMTPSender, // 邮件发送器
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewBookRepository, // 图书仓储
	mysql.NewLoanRepository, // 借阅仓储
	mysql.NewTxManager,      // 事务管理器
	wire.Bind(new(apploan.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,    // 图书领域服务
	provideLoanService, // 借阅领域服务（需要从config提取宽限天数）
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewFindBooksUseCase,
	appbook.NewFindBookLoansUseCase,
	apploan.NewCreateLoanUseCase,
	apploan.NewReturnLoanUseCase,
	apploan.NewFindLoansUseCase,
	provideNotifyLateLoansUseCase, // 逾期提醒用例（需要从config提取正文）
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewLoanHandler,
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 有些依赖的构造函数参数需要从Config中提取，Wire无法自动推导

// providePublisher 从配置创建事件发布者
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

// provideBookCache 从Redis客户端创建图书缓存
func provideBookCache(client *goredis.Client, cfg *config.Config) *redis.BookCache {
	return redis.NewBookCache(client, cfg.Redis.DetailTTL)
}

// provideLoanService 从配置创建借阅领域服务
func provideLoanService(repo loan.Repository, cfg *config.Config) loan.Service {
	return loan.NewService(repo, cfg.Scheduler.GraceDays)
}

// provideNotifyLateLoansUseCase 从配置创建逾期提醒用例
func provideNotifyLateLoansUseCase(
	loanService loan.Service,
	sender notification.Sender,
	cfg *config.Config,
) *appnotification.NotifyLateLoansUseCase {
	return appnotification.NewNotifyLateLoansUseCase(loanService, sender, cfg.Mail.LateLoanMessage)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	loanHandler *handler.LoanHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	api := r.Group("/api")
	{
		books := api.Group("/books")
		{
			books.POST("", bookHandler.Create)
			books.GET("", bookHandler.Find)
			books.GET("/:id", bookHandler.Get)
			books.PUT("/:id", bookHandler.Update)
			books.DELETE("/:id", bookHandler.Delete)
			books.GET("/:id/loans", bookHandler.FindLoans)
		}

		loans := api.Group("/loans")
		{
			loans.POST("", loanHandler.Create)
			loans.GET("", loanHandler.Find)
			loans.PATCH("/:id", loanHandler.Return)
		}
	}

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)

	// 占位返回值，实际代码由wire生成到wire_gen.go
	return nil, nil
}
