package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
	"github.com/xiebiao/libraryapi/pkg/response"
)

// parseIDParam 解析路径参数:id
// 非数字时直接返回400，调用方检查ok后使用
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, apperrors.ErrInvalidParams)
		return 0, false
	}
	return uint(id), true
}

// bindError 参数绑定失败响应
// 对外契约:每条校验违规一个message，统一放进errors数组
func bindError(c *gin.Context, err error) {
	response.ErrorMessages(c, http.StatusBadRequest, bindMessages(err))
}

// bindMessages 校验错误 → 调用方可读的提示列表
func bindMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// JSON语法错误、类型不匹配等非校验类错误
		return []string{apperrors.ErrBindError.Message}
	}

	messages := make([]string, len(verrs))
	for i, fe := range verrs {
		messages[i] = fieldMessage(fe)
	}
	return messages
}

// fieldMessage 单条校验违规的提示
func fieldMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "email":
		return fmt.Sprintf("%s must be a well-formed email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// lowerFirst 首字母小写(对外提示里字段名与JSON命名一致)
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
