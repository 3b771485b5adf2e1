package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：集成测试辅助工具
// 集成测试需要完整的运行环境(服务+MySQL+Redis)，默认跳过;
// 设置 LIBRARYAPI_INTEGRATION=1 并启动服务后执行:
//
//	LIBRARYAPI_INTEGRATION=1 go test ./test/integration/...

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// RequireIntegration 未开启集成测试环境时跳过
func RequireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("LIBRARYAPI_INTEGRATION") == "" {
		t.Skip("跳过集成测试(设置LIBRARYAPI_INTEGRATION=1开启)")
	}
}

// Result HTTP调用结果
// 本服务直接使用HTTP状态码表达结果，错误响应体为{"errors": [...]}
type Result struct {
	StatusCode int
	Body       json.RawMessage
}

// Errors 解析错误响应体
func (r *Result) Errors(t *testing.T) []string {
	t.Helper()
	var body struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(r.Body, &body), "解析错误响应失败: %s", string(r.Body))
	return body.Errors
}

// Decode 解析响应体到目标结构
func (r *Result) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "解析响应失败: %s", string(r.Body))
}

// PageData 分页响应结构
type PageData struct {
	Content       json.RawMessage `json:"content"`
	TotalElements int64           `json:"totalElements"`
	TotalPages    int             `json:"totalPages"`
	Pageable      struct {
		PageNumber int `json:"pageNumber"`
		PageSize   int `json:"pageSize"`
	} `json:"pageable"`
}

// BookData 图书响应数据
type BookData struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// LoanData 借阅响应数据
type LoanData struct {
	ID            uint      `json:"id"`
	Customer      string    `json:"customer"`
	CustomerEmail string    `json:"customer_email"`
	LoanDate      string    `json:"loan_date"`
	Returned      *bool     `json:"returned"`
	Book          *BookData `json:"book"`
}

// DoJSON 发送请求并返回状态码和原始响应体
func DoJSON(t *testing.T, method, url string, data interface{}) *Result {
	t.Helper()

	var reqBody io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	return &Result{StatusCode: resp.StatusCode, Body: body}
}

// GenerateTestISBN 生成唯一的测试ISBN(13位数字)
func GenerateTestISBN() string {
	return fmt.Sprintf("978%010d", time.Now().UnixNano()%10000000000)
}

// CreateTestBook 创建一本测试图书并返回其数据
func CreateTestBook(t *testing.T, title string) *BookData {
	t.Helper()

	result := DoJSON(t, http.MethodPost, BaseURL+"/books", map[string]interface{}{
		"title":  title,
		"author": "Test Author",
		"isbn":   GenerateTestISBN(),
	})
	require.Equal(t, http.StatusCreated, result.StatusCode, "创建测试图书失败: %s", string(result.Body))

	var book BookData
	result.Decode(t, &book)
	return &book
}
