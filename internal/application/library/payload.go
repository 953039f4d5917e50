package library

import (
	"github.com/xiebiao/booklib/internal/domain/person"
	"github.com/xiebiao/booklib/pkg/metrics"
)

// 应用层DTO（数据传输对象）
// 设计说明：
// 1. 四个聚合用例共享同一套请求/响应形状
// 2. 不直接暴露领域实体，领域模型变更不影响API契约
// 3. Books中的nil项是合法输入（HTTP层的JSON数组允许null元素），
//    各用例统一过滤后再处理

// UserPayload 用户载荷
type UserPayload struct {
	FullName string
	Title    string
	Age      int
}

// BookPayload 图书载荷
type BookPayload struct {
	Title     string
	Author    string
	PageCount int64
}

// UserBooksRequest 聚合请求：一个用户 + 一组图书
type UserBooksRequest struct {
	User  UserPayload
	Books []*BookPayload
}

// UserBooksResponse 聚合响应
// BooksIDList：创建场景按创建顺序；更新/查询场景按数据库的自然列举顺序（主键升序）
type UserBooksResponse struct {
	UserID      uint   `json:"userId"`
	FullName    string `json:"fullName"`
	Title       string `json:"title"`
	Age         int    `json:"age"`
	BooksIDList []uint `json:"booksIdList"`
}

// 工作流指标标签
const (
	workflowCreate = "create_user_with_books"
	workflowUpdate = "update_user_with_books"
	workflowGet    = "get_user_with_books"
	workflowDelete = "delete_user_with_books"
)

// newUserBooksResponse 领域实体 → 聚合响应
func newUserBooksResponse(p *person.Person, bookIDs []uint) *UserBooksResponse {
	return &UserBooksResponse{
		UserID:      p.ID,
		FullName:    p.FullName,
		Title:       p.Title,
		Age:         p.Age,
		BooksIDList: bookIDs,
	}
}

// observe 记录一次工作流执行结果
// 说明：metrics允许为nil（单元测试不关心指标时无需构造）
func observe(m *metrics.Metrics, workflow string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.IncWorkflow(workflow, "error")
		return
	}
	m.IncWorkflow(workflow, "success")
}
