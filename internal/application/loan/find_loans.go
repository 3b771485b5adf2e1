package loan

import (
	"context"
	"time"

	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/domain/loan"
)

// FindLoansUseCase 借阅分页查询用例
type FindLoansUseCase struct {
	loanService loan.Service
}

// NewFindLoansUseCase 创建借阅分页查询用例
func NewFindLoansUseCase(loanService loan.Service) *FindLoansUseCase {
	return &FindLoansUseCase{loanService: loanService}
}

// FindLoansRequest 借阅分页查询请求DTO
// isbn与customer之间是逻辑OR关系
type FindLoansRequest struct {
	ISBN     string // 图书ISBN(精确匹配)
	Customer string // 借阅人姓名(精确匹配)
	Page     int    // 页码(从0开始)
	Size     int    // 每页数量
}

// LoanBookInfo 借阅响应中嵌套的图书信息
type LoanBookInfo struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// LoanResponse 借阅响应DTO(本包各用例共用)
type LoanResponse struct {
	ID            uint          `json:"id"`
	Customer      string        `json:"customer"`
	CustomerEmail string        `json:"customer_email"`
	LoanDate      string        `json:"loan_date"`
	Returned      *bool         `json:"returned"` // 三态:true/false/null(从未登记)
	Book          *LoanBookInfo `json:"book,omitempty"`
}

// ToLoanResponse 领域实体 → 响应DTO
// 导出给图书借阅历史用例复用
func ToLoanResponse(l *loan.Loan) *LoanResponse {
	resp := &LoanResponse{
		ID:            l.ID,
		Customer:      l.Customer,
		CustomerEmail: l.CustomerEmail,
		LoanDate:      l.LoanDate.Format(time.DateOnly),
		Returned:      l.Returned,
	}
	if l.Book != nil {
		resp.Book = &LoanBookInfo{
			ID:     l.Book.ID,
			Title:  l.Book.Title,
			Author: l.Book.Author,
			ISBN:   l.Book.ISBN,
		}
	}
	return resp
}

// FindLoansResponse 借阅分页查询响应DTO
type FindLoansResponse struct {
	Content []*LoanResponse
	Total   int64
	Page    int
	Size    int
}

// Execute 执行借阅分页查询用例
func (uc *FindLoansUseCase) Execute(ctx context.Context, req FindLoansRequest) (*FindLoansResponse, error) {
	// 参数默认值与范围限制(与图书列表保持一致)
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Size < 1 {
		req.Size = 20
	}
	if req.Size > 100 {
		req.Size = 100
	}

	loans, total, err := uc.loanService.Find(ctx,
		loan.Filter{ISBN: req.ISBN, Customer: req.Customer},
		book.PageRequest{Page: req.Page, Size: req.Size},
	)
	if err != nil {
		return nil, err
	}

	content := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		content[i] = ToLoanResponse(l)
	}

	return &FindLoansResponse{
		Content: content,
		Total:   total,
		Page:    req.Page,
		Size:    req.Size,
	}, nil
}
