package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/booklib/internal/application/library"
	"github.com/xiebiao/booklib/internal/interface/http/dto"
	"github.com/xiebiao/booklib/pkg/response"
)

// UserBooksHandler 用户-图书聚合HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 不包含业务逻辑（业务逻辑在domain和application层）
// 3. 使用依赖注入，便于测试
type UserBooksHandler struct {
	createUseCase *library.CreateUserBooksUseCase
	updateUseCase *library.UpdateUserBooksUseCase
	getUseCase    *library.GetUserBooksUseCase
	deleteUseCase *library.DeleteUserBooksUseCase
}

// NewUserBooksHandler 创建聚合处理器
func NewUserBooksHandler(
	createUseCase *library.CreateUserBooksUseCase,
	updateUseCase *library.UpdateUserBooksUseCase,
	getUseCase *library.GetUserBooksUseCase,
	deleteUseCase *library.DeleteUserBooksUseCase,
) *UserBooksHandler {
	return &UserBooksHandler{
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		getUseCase:    getUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// toUseCaseRequest 将HTTP层DTO转换为应用层请求
// nil图书项原样传递，由聚合用例统一过滤
func toUseCaseRequest(req dto.UserBookRequest) library.UserBooksRequest {
	books := make([]*library.BookPayload, 0, len(req.Books))
	for _, b := range req.Books {
		if b == nil {
			books = append(books, nil)
			continue
		}
		books = append(books, &library.BookPayload{
			Title:     b.Title,
			Author:    b.Author,
			PageCount: b.PageCount,
		})
	}

	return library.UserBooksRequest{
		User: library.UserPayload{
			FullName: req.User.FullName,
			Title:    req.User.Title,
			Age:      req.User.Age,
		},
		Books: books,
	}
}

// toHTTPResponse 将应用层响应转换为HTTP层DTO
func toHTTPResponse(resp *library.UserBooksResponse) *dto.UserBookResponse {
	return &dto.UserBookResponse{
		UserID:      resp.UserID,
		FullName:    resp.FullName,
		Title:       resp.Title,
		Age:         resp.Age,
		BooksIDList: resp.BooksIDList,
	}
}

// parseUserID 解析路径上的用户ID
func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "参数错误: 无效的用户ID")
		return 0, false
	}
	return uint(id), true
}

// Create 创建用户及其图书
// @Summary      创建用户及其图书
// @Description  先创建用户，再按输入顺序为其创建图书，返回用户快照和图书ID列表
// @Tags         用户图书
// @Accept       json
// @Produce      json
// @Param        request body dto.UserBookRequest true "用户及图书信息"
// @Success      200 {object} response.Response{data=dto.UserBookResponse} "创建成功"
// @Failure      200 {object} response.Response "参数错误或书名冲突"
// @Router       /api/v1/users [post]
func (h *UserBooksHandler) Create(c *gin.Context) {
	// 1. 绑定并验证参数
	var req dto.UserBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.createUseCase.Execute(c.Request.Context(), toUseCaseRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 返回成功响应
	response.Success(c, toHTTPResponse(result))
}

// Update 更新用户并追加图书
// @Summary      更新用户并追加图书
// @Description  更新用户字段，请求中的图书全部追加创建（已有图书不动），返回全量图书ID列表
// @Tags         用户图书
// @Accept       json
// @Produce      json
// @Param        userId path int true "用户ID"
// @Param        request body dto.UserBookRequest true "用户及图书信息"
// @Success      200 {object} response.Response{data=dto.UserBookResponse} "更新成功"
// @Failure      200 {object} response.Response "用户不存在或参数错误"
// @Router       /api/v1/users/{userId} [put]
func (h *UserBooksHandler) Update(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.UserBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), toUseCaseRequest(req), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toHTTPResponse(result))
}

// Get 查询用户及其图书
// @Summary      查询用户及其图书
// @Description  返回用户快照和名下全部图书ID（按ID升序）
// @Tags         用户图书
// @Produce      json
// @Param        userId path int true "用户ID"
// @Success      200 {object} response.Response{data=dto.UserBookResponse} "查询成功"
// @Failure      200 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{userId} [get]
func (h *UserBooksHandler) Get(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toHTTPResponse(result))
}

// Delete 删除用户及其图书
// @Summary      删除用户及其图书
// @Description  先删除名下全部图书，再删除用户本身
// @Tags         用户图书
// @Produce      json
// @Param        userId path int true "用户ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      200 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{userId} [delete]
func (h *UserBooksHandler) Delete(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
