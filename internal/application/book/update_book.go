package book

import (
	"context"
	"log"

	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/redis"
)

// UpdateBookUseCase 更新图书用例
type UpdateBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service, cache *redis.BookCache) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// UpdateBookRequest 更新图书请求DTO
// ISBN不可修改，请求中传入的isbn会被忽略
type UpdateBookRequest struct {
	ID     uint   // 图书ID(路径参数)
	Title  string // 新书名
	Author string // 新作者
}

// Execute 执行更新图书用例
// 图书不存在时返回ErrBookNotFound(映射为404)
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	updated, err := uc.bookService.Update(ctx, &book.Book{
		ID:     req.ID,
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		return nil, err
	}

	// 更新成功后删除缓存(删除而非更新，避免并发写导致脏缓存)
	if err := uc.cache.Delete(ctx, updated); err != nil {
		log.Printf("[cache] 删除图书缓存失败: %v", err)
	}

	return toBookResponse(updated), nil
}
