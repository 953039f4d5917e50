package person

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 有两个可互换的实现：GORM映射实现与database/sql手写SQL实现，
//    均位于infrastructure/persistence/mysql层，启动时由配置选定其一
// 3. 两个实现对同一契约必须行为一致，调用方感知不到持久化技术差异
// 4. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建用户，成功后回填数据库分配的自增ID
	// 注意：如果title已存在，应返回ErrTitleDuplicate
	Create(ctx context.Context, p *Person) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回ErrPersonNotFound
	FindByID(ctx context.Context, id uint) (*Person, error)

	// Update 按ID整体覆盖可变字段（full_name、title、age）
	// 如果行不存在，返回ErrPersonNotFound（两个实现统一此语义，
	// 不允许静默成功或凭空插入）
	Update(ctx context.Context, p *Person) error

	// Delete 删除用户
	// 如果行不存在，返回ErrPersonNotFound
	Delete(ctx context.Context, id uint) error
}
