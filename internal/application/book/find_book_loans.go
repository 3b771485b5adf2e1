package book

import (
	"context"

	loanapp "github.com/xiebiao/libraryapi/internal/application/loan"
	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/domain/loan"
)

// FindBookLoansUseCase 图书借阅历史查询用例
// 先确认图书存在(不存在返回404)，再分页查询它的全部借阅记录
type FindBookLoansUseCase struct {
	bookService book.Service
	loanService loan.Service
}

// NewFindBookLoansUseCase 创建借阅历史查询用例
func NewFindBookLoansUseCase(bookService book.Service, loanService loan.Service) *FindBookLoansUseCase {
	return &FindBookLoansUseCase{
		bookService: bookService,
		loanService: loanService,
	}
}

// FindBookLoansRequest 借阅历史查询请求DTO
type FindBookLoansRequest struct {
	BookID uint // 图书ID(路径参数)
	Page   int  // 页码(从0开始)
	Size   int  // 每页数量
}

// FindBookLoansResponse 借阅历史查询响应DTO
type FindBookLoansResponse struct {
	Content []*loanapp.LoanResponse
	Total   int64
	Page    int
	Size    int
}

// Execute 执行借阅历史查询用例
func (uc *FindBookLoansUseCase) Execute(ctx context.Context, req FindBookLoansRequest) (*FindBookLoansResponse, error) {
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Size < 1 {
		req.Size = 20
	}
	if req.Size > 100 {
		req.Size = 100
	}

	// 1. 确认图书存在
	if _, err := uc.bookService.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	// 2. 分页查询借阅记录
	loans, total, err := uc.loanService.FindByBook(ctx, req.BookID,
		book.PageRequest{Page: req.Page, Size: req.Size})
	if err != nil {
		return nil, err
	}

	content := make([]*loanapp.LoanResponse, len(loans))
	for i, l := range loans {
		content[i] = loanapp.ToLoanResponse(l)
	}

	return &FindBookLoansResponse{
		Content: content,
		Total:   total,
		Page:    req.Page,
		Size:    req.Size,
	}, nil
}
