package book

import (
	"context"
	"log"

	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/redis"
)

// GetBookUseCase 图书详情查询用例
// 设计说明:
// 1. Cache-Aside:先查Redis缓存，未命中再查数据库并回填
// 2. 缓存故障降级:Redis出错只记录日志，直接回落数据库
type GetBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service, cache *redis.BookCache) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 执行详情查询用例
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookResponse, error) {
	// 1. 查缓存
	if cached, err := uc.cache.GetByID(ctx, id); err != nil {
		log.Printf("[cache] 查询图书缓存失败(降级到数据库): %v", err)
	} else if cached != nil {
		return toBookResponse(cached), nil
	}

	// 2. 缓存未命中，查数据库
	b, err := uc.bookService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存(失败不影响请求)
	if err := uc.cache.Set(ctx, b); err != nil {
		log.Printf("[cache] 回填图书缓存失败: %v", err)
	}

	return toBookResponse(b), nil
}
