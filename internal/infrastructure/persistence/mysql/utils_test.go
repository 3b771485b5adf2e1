package mysql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// TestIsDuplicateError 测试唯一索引冲突判断
func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(errors.New("Error 1062: Duplicate entry '978' for key 'idx_isbn'")))
	assert.False(t, isDuplicateError(errors.New("connection refused")))
}

// TestEscapeLike 测试LIKE通配符转义
func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Clean", "clean"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`a\b`, `a\\b`},
		{"UPPER", "upper"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLike(tc.in), "input=%q", tc.in)
	}
}
