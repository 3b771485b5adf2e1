package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
)

// ErrorBody 统一错误响应结构
// 设计说明：
// 1. 对外契约固定为 {"errors": ["message", ...]}
// 2. 参数校验失败时每条违规一个message，业务错误时只有一条
// 3. 业务错误码不对外暴露，只用于内部映射HTTP状态码
type ErrorBody struct {
	Errors []string `json:"errors"`
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := bookService.Create(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只进日志，不回传给客户端
	if appErr.Err != nil {
		log.Printf("request failed: %v", appErr)
	}

	c.JSON(httpStatus(appErr.Code), ErrorBody{Errors: []string{appErr.Message}})
}

// ErrorMessages 多条错误信息响应（用于参数绑定校验）
func ErrorMessages(c *gin.Context, status int, messages []string) {
	c.JSON(status, ErrorBody{Errors: messages})
}

// httpStatus 业务错误码 → HTTP状态码
// 映射规则（按错误码段）：
// - 404xx → 404 Not Found
// - 其余4xxxx → 400 Bad Request（业务规则、参数错误统一400）
// - 5xxxx → 500 Internal Server Error
func httpStatus(code int) int {
	switch {
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40000 && code < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// =========================================
// 分页响应结构
// =========================================

// Pageable 分页元数据（页码从0开始）
type Pageable struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Page 分页数据封装
// 字段命名属于对外契约，调用方依赖content/totalElements/pageable的结构
type Page struct {
	Content       interface{} `json:"content"`       // 数据列表
	Pageable      Pageable    `json:"pageable"`      // 分页参数回显
	TotalElements int64       `json:"totalElements"` // 总记录数
	TotalPages    int         `json:"totalPages"`    // 总页数
}

// NewPage 创建分页数据
func NewPage(content interface{}, total int64, page, size int) *Page {
	totalPages := 0
	if size > 0 {
		totalPages = int(total) / size
		if int(total)%size != 0 {
			totalPages++
		}
	}

	return &Page{
		Content:       content,
		Pageable:      Pageable{PageNumber: page, PageSize: size},
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, content interface{}, total int64, page, size int) {
	c.JSON(http.StatusOK, NewPage(content, total, page, size))
}
