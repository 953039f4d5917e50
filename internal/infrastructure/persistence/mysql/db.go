package mysql

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/booklib/internal/infrastructure/config"
)

// NewDB 创建GORM数据库连接（映射后端）
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// NewSQLDB 创建原生database/sql连接池（直连后端）
// 设计说明：
// 1. 直连后端不经过GORM，使用go-sql-driver/mysql手写参数化SQL
// 2. 与映射后端共享同一个库、同一套表结构（表由NewDB的AutoMigrate维护）
// 3. 单独一个连接池，互不干扰
func NewSQLDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 直连SQL连接池就绪")

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 两个后端共用这里定义的表结构，外键约束由数据库层统一执行
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&PersonModel{},
		&BookModel{},
	)
}

// PersonModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/person/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. title有UNIQUE索引，唯一性由数据库保证（而非应用层SELECT再INSERT）
// 5. 不使用软删除：两个后端必须行为一致，软删除列会强迫手写SQL复刻GORM的过滤逻辑
type PersonModel struct {
	ID        uint        `gorm:"primaryKey"`
	FullName  string      `gorm:"column:full_name;size:255;not null;comment:姓名"`
	Title     string      `gorm:"uniqueIndex;size:100;not null;comment:称谓(全局唯一)"`
	Age       int         `gorm:"not null;comment:年龄"`
	Books     []BookModel `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"` // 外键不级联删除，删除顺序由聚合层保证
	CreatedAt time.Time   `gorm:"comment:创建时间"`
	UpdatedAt time.Time   `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PersonModel) TableName() string {
	return "person"
}

// BookModel GORM图书模型
// 设计说明：
// 1. user_id外键关联person表，NOT NULL，数据库拒绝悬空的归属关系
// 2. page_count使用bigint，页数理论上可能很大
type BookModel struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:200;not null;comment:书名"`
	Author    string    `gorm:"size:100;not null;comment:作者"`
	PageCount int64     `gorm:"column:page_count;not null;comment:页数"`
	OwnerID   uint      `gorm:"column:user_id;index;not null;comment:归属用户ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "book"
}
