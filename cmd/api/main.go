package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
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

// main 主程序入口
// 说明：手动依赖注入（wire.go提供编译期生成的替代方案）
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
	fmt.Printf("  - 持久化后端: %s\n", cfg.Database.Backend)

	// 2. 按配置选择持久化后端
	// 两套实现满足同一份仓储契约，启动后不再切换
	personRepo, bookRepo, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 依赖注入（手动组装）
	// 依赖链：Repository ← Service ← UseCase ← Handler

	// 指标采集
	m := metrics.New()

	// 领域层
	personService := person.NewService(personRepo)
	bookService := book.NewService(bookRepo)

	// 应用层（聚合用例）
	createUseCase := library.NewCreateUserBooksUseCase(personService, bookService, m)
	updateUseCase := library.NewUpdateUserBooksUseCase(personService, bookService, m)
	getUseCase := library.NewGetUserBooksUseCase(personService, bookService, m)
	deleteUseCase := library.NewDeleteUserBooksUseCase(personService, bookService, m)

	// 接口层
	userBooksHandler := handler.NewUserBooksHandler(createUseCase, updateUseCase, getUseCase, deleteUseCase)

	// 4. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics(m))

	// 5. 注册路由
	registerRoutes(r, userBooksHandler, m)

	// 6. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   创建用户: POST http://localhost%s/api/v1/users\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// buildRepositories 按配置构建两个实体的仓储实现
// gorm后端：ORM映射，连接由gorm.DB托管
// sql后端：手写参数化SQL，连接由database/sql托管
func buildRepositories(cfg *config.Config) (person.Repository, book.Repository, error) {
	switch cfg.Database.Backend {
	case config.BackendSQL:
		sqlDB, err := mysql.NewSQLDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		return mysql.NewPersonSQLRepository(sqlDB), mysql.NewBookSQLRepository(sqlDB), nil
	default:
		db, err := mysql.NewDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		return mysql.NewPersonRepository(db), mysql.NewBookRepository(db), nil
	}
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, userBooksHandler *handler.UserBooksHandler, m *metrics.Metrics) {
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
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 用户-图书聚合模块
		users := v1.Group("/users")
		{
			users.POST("", userBooksHandler.Create)           // 创建用户及图书
			users.PUT("/:userId", userBooksHandler.Update)    // 更新用户并追加图书
			users.GET("/:userId", userBooksHandler.Get)       // 查询用户及图书
			users.DELETE("/:userId", userBooksHandler.Delete) // 删除用户及图书
		}
	}
}
