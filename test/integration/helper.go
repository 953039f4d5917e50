package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 说明：针对运行中的服务发HTTP请求，服务未启动时跳过整个用例。
// 两个持久化后端（gorm/sql）对外行为一致，这套用例跑哪个后端都应通过

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// UserBookData 用户-图书聚合响应数据
type UserBookData struct {
	UserID      uint   `json:"userId"`
	FullName    string `json:"fullName"`
	Title       string `json:"title"`
	Age         int    `json:"age"`
	BooksIDList []uint `json:"booksIdList"`
}

// RequireServer 检查服务是否在运行，未运行则跳过测试
func RequireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务未启动（%v），跳过集成测试", err)
	}
	resp.Body.Close()
}

// DoJSON 发送带JSON body的请求并解析统一响应
func DoJSON(t *testing.T, method, url string, data interface{}) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}) *Response {
	t.Helper()
	return DoJSON(t, http.MethodPost, url, data)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}) *Response {
	t.Helper()
	return DoJSON(t, http.MethodPut, url, data)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string) *Response {
	t.Helper()
	return DoJSON(t, http.MethodGet, url, nil)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string) *Response {
	t.Helper()
	return DoJSON(t, http.MethodDelete, url, nil)
}

// GenerateTestTitle 生成唯一的测试title
// 用户title列有唯一索引，用时间戳避免重复运行时冲突
func GenerateTestTitle(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// UserBookRequest 构造聚合请求体
func UserBookRequest(fullName, title string, age int, books []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"userRequest": map[string]interface{}{
			"fullName": fullName,
			"title":    title,
			"age":      age,
		},
		"bookRequests": books,
	}
}

// BookPayload 构造图书载荷
func BookPayload(title, author string, pageCount int64) map[string]interface{} {
	return map[string]interface{}{
		"title":     title,
		"author":    author,
		"pageCount": pageCount,
	}
}

// CreateTestUserBooks 创建测试用户及图书并返回响应数据
func CreateTestUserBooks(t *testing.T, fullName string, bookTitles ...string) *UserBookData {
	t.Helper()

	books := make([]map[string]interface{}, 0, len(bookTitles))
	for _, title := range bookTitles {
		books = append(books, BookPayload(title, "测试作者", 200))
	}

	req := UserBookRequest(fullName, GenerateTestTitle(fullName), 30, books)
	resp := PostJSON(t, BaseURL+"/users", req)
	require.Equal(t, 0, resp.Code, "创建用户及图书失败: %s", resp.Message)

	var data UserBookData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析聚合响应失败")

	return &data
}
