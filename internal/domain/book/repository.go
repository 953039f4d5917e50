package book

import (
	"context"
)

// Repository 图书仓储接口
// 设计说明：
// 1. 与person.Repository一样有GORM与database/sql两个可互换实现，
//    启动时由配置选定，两者行为必须一致
// 2. 图书多出一个按归属用户列举的操作，这是聚合工作流的基础查询
type Repository interface {
	// Create 创建图书，成功后回填数据库分配的自增ID
	// 如果OwnerID指向不存在的用户，返回ErrOwnerNotFound（外键约束）
	Create(ctx context.Context, b *Book) error

	// FindByID 根据ID查找图书
	// 如果不存在，返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 按ID整体覆盖可变字段（title、author、page_count）
	// 如果行不存在，返回ErrBookNotFound
	Update(ctx context.Context, b *Book) error

	// Delete 删除图书
	// 如果行不存在，返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// FindAllByOwnerID 列举某用户名下的全部图书，按主键升序
	// 用户不存在或名下无图书时返回空切片，不报错
	FindAllByOwnerID(ctx context.Context, ownerID uint) ([]*Book, error)
}
