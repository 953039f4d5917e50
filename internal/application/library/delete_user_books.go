package library

import (
	"context"

	"github.com/xiebiao/booklib/internal/domain/book"
	"github.com/xiebiao/booklib/internal/domain/person"
	"github.com/xiebiao/booklib/pkg/metrics"
)

// DeleteUserBooksUseCase 删除用户及其全部图书（聚合用例）
// 设计说明：
// 删除顺序是契约的一部分：必须先删图书、后删用户。
// book.user_id外键是RESTRICT不级联，先删用户会被数据库拒绝；
// 这个顺序不是巧合，不要调换
type DeleteUserBooksUseCase struct {
	personService person.Service
	bookService   book.Service
	metrics       *metrics.Metrics
}

// NewDeleteUserBooksUseCase 创建用例
func NewDeleteUserBooksUseCase(
	personService person.Service,
	bookService book.Service,
	m *metrics.Metrics,
) *DeleteUserBooksUseCase {
	return &DeleteUserBooksUseCase{
		personService: personService,
		bookService:   bookService,
		metrics:       m,
	}
}

// Execute 执行删除
// 流程：
// 1. 查该用户名下全部图书
// 2. 按列举顺序逐本删除（每次删除相互独立，无事务分组）
// 3. 最后删除用户本身
func (uc *DeleteUserBooksUseCase) Execute(ctx context.Context, personID uint) (err error) {
	defer func() { observe(uc.metrics, workflowDelete, err) }()

	// 1. 列举名下图书
	books, err := uc.bookService.GetAllByOwnerID(ctx, personID)
	if err != nil {
		return err
	}

	// 2. 先删图书
	for _, b := range books {
		if err := uc.bookService.Delete(ctx, b.ID); err != nil {
			// 无补偿：已删除的图书不恢复
			return err
		}
	}

	// 3. 后删用户
	return uc.personService.Delete(ctx, personID)
}
