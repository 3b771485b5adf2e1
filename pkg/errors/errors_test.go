package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAppError 测试应用错误
func TestAppError(t *testing.T) {
	t.Run("错误信息格式", func(t *testing.T) {
		err := New(ErrCodeBookNotFound, "Book not found")
		assert.Equal(t, "[40402] Book not found", err.Error())
	})

	t.Run("包装底层错误", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, "database error")

		assert.Equal(t, ErrCodeInternal, err.Code)
		assert.ErrorIs(t, err, cause, "Unwrap应该能取到底层错误")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("errors.Is匹配预定义错误", func(t *testing.T) {
		wrapped := &AppError{Code: ErrCodeBookNotFound, Message: "Book not found"}
		assert.True(t, IsAppError(wrapped))
		assert.False(t, IsAppError(errors.New("plain")))
	})
}

// TestGetAppError 测试错误提取
func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		original := New(ErrCodeBookInUse, "Book already in use")
		got := GetAppError(original)
		assert.Equal(t, original.Code, got.Code)
		assert.Equal(t, original.Message, got.Message)
	})

	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		got := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.Equal(t, "internal server error", got.Message, "内部错误细节不对外暴露")
	})
}
