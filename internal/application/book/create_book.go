package book

import (
	"context"

	"github.com/xiebiao/libraryapi/internal/domain/book"
)

// CreateBookUseCase 创建图书用例
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 创建图书请求DTO
type CreateBookRequest struct {
	Title  string // 书名
	Author string // 作者
	ISBN   string // ISBN(唯一)
}

// BookResponse 图书响应DTO(本包各用例共用)
// 字段命名属于对外契约，调用方依赖id/title/author/isbn
type BookResponse struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// toBookResponse 领域实体 → 响应DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		ISBN:   b.ISBN,
	}
}

// Execute 执行创建图书用例
// 业务规则: ISBN重复时返回ErrISBNDuplicate(映射为400)
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.Create(ctx, req.Title, req.Author, req.ISBN)
	if err != nil {
		return nil, err
	}

	return toBookResponse(b), nil
}
