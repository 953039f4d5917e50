package library

import (
	"context"

	"github.com/xiebiao/booklib/internal/domain/book"
	"github.com/xiebiao/booklib/internal/domain/person"
	"github.com/xiebiao/booklib/pkg/metrics"
)

// GetUserBooksUseCase 查询用户及其全部图书ID（聚合用例）
type GetUserBooksUseCase struct {
	personService person.Service
	bookService   book.Service
	metrics       *metrics.Metrics
}

// NewGetUserBooksUseCase 创建用例
func NewGetUserBooksUseCase(
	personService person.Service,
	bookService book.Service,
	m *metrics.Metrics,
) *GetUserBooksUseCase {
	return &GetUserBooksUseCase{
		personService: personService,
		bookService:   bookService,
		metrics:       m,
	}
}

// Execute 执行查询
// 流程：
// 1. 按ID查用户（不存在则上抛用户不存在错误）
// 2. 查该用户名下全部图书（无图书返回空列表，不报错）
func (uc *GetUserBooksUseCase) Execute(ctx context.Context, personID uint) (resp *UserBooksResponse, err error) {
	defer func() { observe(uc.metrics, workflowGet, err) }()

	// 1. 查用户
	p, err := uc.personService.GetByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	// 2. 查名下图书
	books, err := uc.bookService.GetAllByOwnerID(ctx, personID)
	if err != nil {
		return nil, err
	}

	bookIDs := make([]uint, 0, len(books))
	for _, b := range books {
		bookIDs = append(bookIDs, b.ID)
	}

	return newUserBooksResponse(p, bookIDs), nil
}
