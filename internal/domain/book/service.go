package book

import (
	"context"

	apperrors "github.com/xiebiao/booklib/pkg/errors"
)

// Service 图书领域服务
// 设计说明：
// 1. Repository之上的薄封装：参数存在性校验 + 数据模型不变式校验
// 2. 不包含跨实体逻辑（用户与图书的编排在application层的聚合用例中）
type Service interface {
	// Create 创建图书，返回带数据库分配ID的实体
	Create(ctx context.Context, b *Book) (*Book, error)

	// Update 按ID整体更新图书
	Update(ctx context.Context, b *Book) (*Book, error)

	// GetByID 根据ID查找图书
	GetByID(ctx context.Context, id uint) (*Book, error)

	// Delete 根据ID删除图书
	Delete(ctx context.Context, id uint) error

	// GetAllByOwnerID 列举某用户名下的全部图书
	GetAllByOwnerID(ctx context.Context, ownerID uint) ([]*Book, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create 创建图书
// 业务规则：
// 1. 图书数据非空
// 2. OwnerID必须已赋值（聚合层负责回填用户ID）
// 3. 页数非负
func (s *service) Create(ctx context.Context, b *Book) (*Book, error) {
	if b == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "创建图书失败: 图书数据为空")
	}
	if b.OwnerID == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "创建图书失败: 归属用户id为空")
	}
	if b.PageCount < 0 {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "创建图书失败: 页数不能为负数(%d)", b.PageCount)
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Update 更新图书
func (s *service) Update(ctx context.Context, b *Book) (*Book, error) {
	if b == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "更新图书失败: 图书数据为空")
	}
	if b.ID == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "更新图书失败: id为空")
	}
	if b.PageCount < 0 {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "更新图书失败: 页数不能为负数(%d)", b.PageCount)
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetByID 查找图书
func (s *service) GetByID(ctx context.Context, id uint) (*Book, error) {
	if id == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "查询图书失败: id为空")
	}

	return s.repo.FindByID(ctx, id)
}

// Delete 删除图书
func (s *service) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "删除图书失败: id为空")
	}

	return s.repo.Delete(ctx, id)
}

// GetAllByOwnerID 列举某用户名下的全部图书
// 说明：用户不存在同样返回空切片，由调用方决定是否关心用户存在性
func (s *service) GetAllByOwnerID(ctx context.Context, ownerID uint) ([]*Book, error) {
	if ownerID == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "查询图书失败: 归属用户id为空")
	}

	return s.repo.FindAllByOwnerID(ctx, ownerID)
}
