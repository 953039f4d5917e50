package library

import (
	"context"

	"github.com/xiebiao/booklib/internal/domain/book"
	"github.com/xiebiao/booklib/internal/domain/person"
	"github.com/xiebiao/booklib/pkg/metrics"
)

// UpdateUserBooksUseCase 更新用户并追加图书（聚合用例）
// 设计说明：
// 1. 图书是追加语义：请求中的图书全部新建，用户已有的图书不动、不删、不改
// 2. 响应中的图书ID列表从库里重新查出（旧书+新书的并集），
//    不在内存里累加——并发写入者存在时内存累加会漏算
type UpdateUserBooksUseCase struct {
	personService person.Service
	bookService   book.Service
	metrics       *metrics.Metrics
}

// NewUpdateUserBooksUseCase 创建用例
func NewUpdateUserBooksUseCase(
	personService person.Service,
	bookService book.Service,
	m *metrics.Metrics,
) *UpdateUserBooksUseCase {
	return &UpdateUserBooksUseCase{
		personService: personService,
		bookService:   bookService,
		metrics:       m,
	}
}

// Execute 执行更新
// 流程：
// 1. 用路径上的personID覆盖载荷，更新用户（用户不存在则整体失败）
// 2. 按输入顺序追加创建图书（过滤nil项），OwnerID = personID
// 3. 重新查询该用户名下全部图书，组装聚合响应
func (uc *UpdateUserBooksUseCase) Execute(ctx context.Context, req UserBooksRequest, personID uint) (resp *UserBooksResponse, err error) {
	defer func() { observe(uc.metrics, workflowUpdate, err) }()

	// 1. 更新用户（id来自路径参数，载荷中的id不可信）
	p := &person.Person{
		ID:       personID,
		FullName: req.User.FullName,
		Title:    req.User.Title,
		Age:      req.User.Age,
	}
	updatedPerson, err := uc.personService.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	// 2. 追加创建新图书（已有图书不动）
	for _, payload := range req.Books {
		if payload == nil {
			continue
		}

		b := book.NewBook(payload.Title, payload.Author, payload.PageCount)
		b.OwnerID = updatedPerson.ID

		if _, err := uc.bookService.Create(ctx, b); err != nil {
			// 无补偿：用户更新和已创建的图书保留
			return nil, err
		}
	}

	// 3. 重新查询全量图书列表（旧书+新书），顺序为数据库的自然列举顺序
	books, err := uc.bookService.GetAllByOwnerID(ctx, updatedPerson.ID)
	if err != nil {
		return nil, err
	}

	bookIDs := make([]uint, 0, len(books))
	for _, b := range books {
		bookIDs = append(bookIDs, b.ID)
	}

	return newUserBooksResponse(updatedPerson, bookIDs), nil
}
