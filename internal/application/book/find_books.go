package book

import (
	"context"

	"github.com/xiebiao/libraryapi/internal/domain/book"
)

// FindBooksUseCase 图书分页查询用例
type FindBooksUseCase struct {
	bookService book.Service
}

// NewFindBooksUseCase 创建分页查询用例
func NewFindBooksUseCase(bookService book.Service) *FindBooksUseCase {
	return &FindBooksUseCase{bookService: bookService}
}

// FindBooksRequest 分页查询请求DTO
type FindBooksRequest struct {
	Title  string // 书名前缀(忽略大小写)
	Author string // 作者前缀(忽略大小写)
	Page   int    // 页码(从0开始)
	Size   int    // 每页数量
}

// FindBooksResponse 分页查询响应DTO
type FindBooksResponse struct {
	Content []*BookResponse
	Total   int64
	Page    int
	Size    int
}

// Execute 执行分页查询用例
// 学习要点:
// 1. 参数默认值处理(page默认0, size默认20)
// 2. 参数范围限制(size最大100)
func (uc *FindBooksUseCase) Execute(ctx context.Context, req FindBooksRequest) (*FindBooksResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Size < 1 {
		req.Size = 20 // 默认每页20条
	}
	if req.Size > 100 {
		req.Size = 100 // 最大每页100条
	}

	// 2. 查询
	books, total, err := uc.bookService.Find(ctx,
		book.Filter{Title: req.Title, Author: req.Author},
		book.PageRequest{Page: req.Page, Size: req.Size},
	)
	if err != nil {
		return nil, err
	}

	// 3. 转换为DTO
	content := make([]*BookResponse, len(books))
	for i, b := range books {
		content[i] = toBookResponse(b)
	}

	return &FindBooksResponse{
		Content: content,
		Total:   total,
		Page:    req.Page,
		Size:    req.Size,
	}, nil
}
