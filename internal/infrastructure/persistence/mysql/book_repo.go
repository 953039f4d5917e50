package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/booklib/internal/domain/book"
	apperrors "github.com/xiebiao/booklib/pkg/errors"
)

// bookRepository 图书仓储实现（GORM映射后端）
// 设计说明：
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 外键错误（user_id指向不存在的用户）转换为业务错误ErrOwnerNotFound
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储（映射后端）
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	if b == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "创建图书失败: 图书数据为空")
	}

	// 1. 领域实体 → GORM模型
	model := &BookModel{
		Title:     b.Title,
		Author:    b.Author,
		PageCount: b.PageCount,
		OwnerID:   b.OwnerID,
	}

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDanglingForeignKey(err) {
			return book.ErrOwnerNotFound
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	if id == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "查询图书失败: id为空")
	}

	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 按ID整体覆盖可变字段
// 说明：归属关系(user_id)落库后不变，不在更新字段之列；
// 与用户仓储一样不用Save，避免upsert凭空造行
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	if b == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "更新图书失败: 图书数据为空")
	}
	if b.ID == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "更新图书失败: id为空")
	}

	result := r.db.WithContext(ctx).Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"title":      b.Title,
			"author":     b.Author,
			"page_count": b.PageCount,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图书失败")
	}

	if result.RowsAffected == 0 {
		// 回查确认：是行不存在，还是值未变化
		var model BookModel
		if err := r.db.WithContext(ctx).First(&model, b.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "更新图书失败")
		}
	}

	return nil
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "删除图书失败: id为空")
	}

	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// FindAllByOwnerID 列举某用户名下的全部图书
// 说明：按主键升序，与直连后端的ORDER BY id保持一致；
// 用户不存在或无图书返回空切片，不报错
func (r *bookRepository) FindAllByOwnerID(ctx context.Context, ownerID uint) ([]*book.Book, error) {
	if ownerID == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "查询图书失败: 归属用户id为空")
	}

	var models []BookModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		PageCount: model.PageCount,
		OwnerID:   model.OwnerID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
