package library

import (
	"context"

	"github.com/xiebiao/booklib/internal/domain/book"
	"github.com/xiebiao/booklib/internal/domain/person"
	"github.com/xiebiao/booklib/pkg/metrics"
)

// CreateUserBooksUseCase 创建用户及其初始图书（聚合用例）
// 设计说明：
// 1. 应用层负责用例编排：先建用户拿到ID，再把ID回填给每本图书逐一创建
// 2. 编排只经过两个领域服务，从不直接触碰Repository
// 3. 整个流程没有跨实体事务包裹：图书创建中途失败时，用户和已创建的
//    图书保留在库中，不做补偿回滚。这是有意保留的部分成功语义，
//    调用方看到错误时不能假设整个操作已回滚
type CreateUserBooksUseCase struct {
	personService person.Service
	bookService   book.Service
	metrics       *metrics.Metrics
}

// NewCreateUserBooksUseCase 创建用例
func NewCreateUserBooksUseCase(
	personService person.Service,
	bookService book.Service,
	m *metrics.Metrics,
) *CreateUserBooksUseCase {
	return &CreateUserBooksUseCase{
		personService: personService,
		bookService:   bookService,
		metrics:       m,
	}
}

// Execute 执行创建
// 流程：
// 1. 创建用户，获得数据库分配的用户ID
// 2. 按输入顺序逐本创建图书（过滤nil项），OwnerID = 刚创建的用户ID
// 3. 按创建顺序收集图书ID，组装聚合响应
func (uc *CreateUserBooksUseCase) Execute(ctx context.Context, req UserBooksRequest) (resp *UserBooksResponse, err error) {
	defer func() { observe(uc.metrics, workflowCreate, err) }()

	// 1. 创建用户
	createdPerson, err := uc.personService.Create(ctx,
		person.NewPerson(req.User.FullName, req.User.Title, req.User.Age))
	if err != nil {
		return nil, err
	}

	// 2. 逐本创建图书，ID按输入顺序收集
	bookIDs := make([]uint, 0, len(req.Books))
	for _, payload := range req.Books {
		if payload == nil {
			continue
		}

		b := book.NewBook(payload.Title, payload.Author, payload.PageCount)
		b.OwnerID = createdPerson.ID

		createdBook, err := uc.bookService.Create(ctx, b)
		if err != nil {
			// 无补偿：用户和已创建的图书保留
			return nil, err
		}
		bookIDs = append(bookIDs, createdBook.ID)
	}

	// 3. 组装聚合响应
	return newUserBooksResponse(createdPerson, bookIDs), nil
}
