package loan

import (
	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
)

// 借阅领域错误定义
// 注意：Message属于对外契约（API错误体原样返回），不要随意改动
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "Loan not found")

	// ErrBookInUse 图书已借出且未归还
	ErrBookInUse = apperrors.New(apperrors.ErrCodeBookInUse, "Book already in use")
)
