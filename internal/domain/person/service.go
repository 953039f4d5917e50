package person

import (
	"context"

	apperrors "github.com/xiebiao/booklib/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. Service是Repository之上的薄封装：参数存在性校验 + 透传
// 2. 空指针/零值ID在这里拦截，不会到达数据库（Repository侧还有一道同样的
//    校验，纵深防御）
// 3. Repository返回的错误原样上抛，Service不改写错误类型
type Service interface {
	// Create 创建用户，返回带数据库分配ID的实体
	Create(ctx context.Context, p *Person) (*Person, error)

	// Update 按ID整体更新用户
	Update(ctx context.Context, p *Person) (*Person, error)

	// GetByID 根据ID查找用户
	GetByID(ctx context.Context, id uint) (*Person, error)

	// Delete 根据ID删除用户
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create 创建用户
func (s *service) Create(ctx context.Context, p *Person) (*Person, error) {
	if p == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "创建用户失败: 用户数据为空")
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return p, nil
}

// Update 更新用户
// 业务规则：id必须存在，可变字段整体替换
func (s *service) Update(ctx context.Context, p *Person) (*Person, error) {
	if p == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "更新用户失败: 用户数据为空")
	}
	if p.ID == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "更新用户失败: id为空")
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetByID 查找用户
func (s *service) GetByID(ctx context.Context, id uint) (*Person, error) {
	if id == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "查询用户失败: id为空")
	}

	return s.repo.FindByID(ctx, id)
}

// Delete 删除用户
func (s *service) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "删除用户失败: id为空")
	}

	return s.repo.Delete(ctx, id)
}
