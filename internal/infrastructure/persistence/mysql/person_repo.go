package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/booklib/internal/domain/person"
	apperrors "github.com/xiebiao/booklib/pkg/errors"
)

// personRepository 用户仓储实现（GORM映射后端）
// 设计说明：
// 1. 实现domain/person/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如title重复），转换为业务错误
// 4. 与personSQLRepository对同一契约行为一致，可互换
type personRepository struct {
	db *gorm.DB
}

// NewPersonRepository 创建用户仓储（映射后端）
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewPersonRepository(db *gorm.DB) person.Repository {
	return &personRepository{db: db}
}

// Create 创建用户
// 学习要点：
// 1. title唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT）
// 2. 捕获MySQL的Duplicate Entry错误，转换为业务错误ErrTitleDuplicate
func (r *personRepository) Create(ctx context.Context, p *person.Person) error {
	if p == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "创建用户失败: 用户数据为空")
	}

	// 1. 领域实体 → GORM模型
	model := &PersonModel{
		FullName: p.FullName,
		Title:    p.Title,
		Age:      p.Age,
	}

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return person.ErrTitleDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	// 3. 回填自增ID（GORM自动填充）
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找用户
func (r *personRepository) FindByID(ctx context.Context, id uint) (*person.Person, error) {
	if id == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "查询用户失败: id为空")
	}

	var model PersonModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, person.ErrPersonNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toPersonEntity(&model), nil
}

// Update 按ID整体覆盖可变字段
// 学习要点：
// 1. 不使用Save：Save对不存在的主键会退化为INSERT（upsert），
//    凭空造出一行数据，违反"不存在即报错"的契约
// 2. 使用显式WHERE + Updates，通过RowsAffected判断行是否存在
// 3. MySQL对"值未变化"的UPDATE也报告0行受影响，所以RowsAffected=0时
//    需要回查一次确认行是否真的不存在
func (r *personRepository) Update(ctx context.Context, p *person.Person) error {
	if p == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "更新用户失败: 用户数据为空")
	}
	if p.ID == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "更新用户失败: id为空")
	}

	result := r.db.WithContext(ctx).Model(&PersonModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"full_name": p.FullName,
			"title":     p.Title,
			"age":       p.Age,
		})

	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return person.ErrTitleDuplicate
		}
		return apperrors.Wrap(result.Error, "更新用户失败")
	}

	if result.RowsAffected == 0 {
		// 回查确认：是行不存在，还是值未变化
		var model PersonModel
		if err := r.db.WithContext(ctx).First(&model, p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return person.ErrPersonNotFound
			}
			return apperrors.Wrap(err, "更新用户失败")
		}
	}

	return nil
}

// Delete 删除用户
// 注意：用户名下还有图书时，外键RESTRICT约束会拒绝删除（ErrHasBooks）；
// 聚合工作流会先删图书再删用户，正常路径不会触发
func (r *personRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "删除用户失败: id为空")
	}

	result := r.db.WithContext(ctx).Delete(&PersonModel{}, id)

	if result.Error != nil {
		if isReferencedRow(result.Error) {
			return person.ErrHasBooks
		}
		return apperrors.Wrap(result.Error, "删除用户失败")
	}

	if result.RowsAffected == 0 {
		return person.ErrPersonNotFound
	}

	return nil
}

// toPersonEntity GORM模型 → 领域实体
// 说明：这是Repository的重要职责之一，隔离infrastructure层与domain层
func toPersonEntity(model *PersonModel) *person.Person {
	return &person.Person{
		ID:        model.ID,
		FullName:  model.FullName,
		Title:     model.Title,
		Age:       model.Age,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
