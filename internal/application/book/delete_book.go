package book

import (
	"context"
	"log"

	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/redis"
)

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookService book.Service, cache *redis.BookCache) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 执行删除图书用例
// 先查询确认存在(不存在返回ErrBookNotFound)，再删除并清理缓存
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	b, err := uc.bookService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.bookService.Delete(ctx, &book.Book{ID: id}); err != nil {
		return err
	}

	if err := uc.cache.Delete(ctx, b); err != nil {
		log.Printf("[cache] 删除图书缓存失败: %v", err)
	}

	return nil
}
