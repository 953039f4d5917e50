//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 说明：
// 1. Wire在编译期生成依赖组装代码，零运行时开销、类型安全
// 2. 运行 `wire gen ./cmd/api` 生成wire_gen.go
// 3. 仓储的双实现选择无法用纯Provider表达（依赖运行时配置），
//    所以用repositories聚合Provider在一处完成选择，再拆出两个接口

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/booklib/internal/application/library"
	"github.com/xiebiao/booklib/internal/domain/book"
	"github.com/xiebiao/booklib/internal/domain/person"
	"github.com/xiebiao/booklib/internal/infrastructure/config"
	"github.com/xiebiao/booklib/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/booklib/internal/interface/http/handler"
	"github.com/xiebiao/booklib/internal/interface/http/middleware"
	"github.com/xiebiao/booklib/pkg/metrics"
	"github.com/xiebiao/booklib/pkg/response"
)

// repositories 两个实体的仓储实现，按配置在一处选定
type repositories struct {
	person person.Repository
	book   book.Repository
}

// provideRepositories 按database.backend构建仓储
// gorm与sql两套实现行为一致，进程启动时定死
func provideRepositories(cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Backend {
	case config.BackendSQL:
		sqlDB, err := mysql.NewSQLDB(cfg)
		if err != nil {
			return nil, err
		}
		return &repositories{
			person: mysql.NewPersonSQLRepository(sqlDB),
			book:   mysql.NewBookSQLRepository(sqlDB),
		}, nil
	default:
		db, err := mysql.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		return &repositories{
			person: mysql.NewPersonRepository(db),
			book:   mysql.NewBookRepository(db),
		}, nil
	}
}

func providePersonRepository(r *repositories) person.Repository { return r.person }

func provideBookRepository(r *repositories) book.Repository { return r.book }

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,         // 加载配置文件
	metrics.New,         // Prometheus指标
	provideRepositories, // 按配置选择仓储后端
	providePersonRepository,
	provideBookRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	person.NewService, // 用户领域服务
	book.NewService,   // 图书领域服务
)

// applicationSet 应用层依赖（聚合用例）
var applicationSet = wire.NewSet(
	library.NewCreateUserBooksUseCase,
	library.NewUpdateUserBooksUseCase,
	library.NewGetUserBooksUseCase,
	library.NewDeleteUserBooksUseCase,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserBooksHandler,
)

// provideGinEngine 创建并配置Gin引擎
// 路由注册集中在这里，与main.go的手动组装互为替代
func provideGinEngine(
	cfg *config.Config,
	m *metrics.Metrics,
	userBooksHandler *handler.UserBooksHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics(m))

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", userBooksHandler.Create)
			users.PUT("/:userId", userBooksHandler.Update)
			users.GET("/:userId", userBooksHandler.Get)
			users.DELETE("/:userId", userBooksHandler.Delete)
		}
	}

	return r
}

// InitializeApp 初始化整个应用
// Wire会按依赖链的正确顺序调用所有构造函数：
// *gin.Engine ← Handler ← UseCase ← Service ← Repository ← Config
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)

	// 占位返回值，实际代码由wire_gen.go生成
	return nil, nil
}
