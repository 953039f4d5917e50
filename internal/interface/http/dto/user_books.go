package dto

// UserRequest HTTP层用户载荷
// 说明：HTTP层的DTO，包含参数验证tag
type UserRequest struct {
	FullName string `json:"fullName" binding:"required,min=1,max=255"`
	Title    string `json:"title" binding:"required,min=1,max=255"`
	Age      int    `json:"age" binding:"omitempty,gte=0,lte=200"`
}

// BookRequest HTTP层图书载荷
// 注意：列表元素允许为null（聚合用例会过滤nil项），
// 因此不对切片加dive校验，非nil项的字段校验下沉到领域服务
type BookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int64  `json:"pageCount"`
}

// UserBookRequest 聚合请求：一个用户 + 一组图书
type UserBookRequest struct {
	User  UserRequest    `json:"userRequest" binding:"required"`
	Books []*BookRequest `json:"bookRequests"`
}

// UserBookResponse 聚合响应：用户快照 + 名下图书ID列表
type UserBookResponse struct {
	UserID      uint   `json:"userId"`
	FullName    string `json:"fullName"`
	Title       string `json:"title"`
	Age         int    `json:"age"`
	BooksIDList []uint `json:"booksIdList"`
}
