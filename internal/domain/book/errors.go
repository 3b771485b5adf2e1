package book

import (
	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
)

// 图书领域错误定义
// 注意：Message属于对外契约（API错误体原样返回），不要随意改动
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	// ErrBookNotFoundByISBN 按ISBN找不到图书（创建借阅时用）
	ErrBookNotFoundByISBN = apperrors.New(apperrors.ErrCodeBusinessError, "Book not found for passed isbn")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "isbn already registered")

	// ErrMissingID 更新/删除时缺少ID
	ErrMissingID = apperrors.New(apperrors.ErrCodeInvalidParams, "Book id can't be null")
)
