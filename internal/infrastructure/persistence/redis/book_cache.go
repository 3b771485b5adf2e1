package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/libraryapi/internal/domain/book"
)

// BookCache 图书详情缓存(Cache-Aside)
//
// 设计说明:
// 1. 缓存策略: 先查缓存，未命中再查数据库并回填
// 2. 一致性: 更新/删除图书后删除缓存，而不是更新缓存
//    (更新操作可能并发执行导致缓存脏数据，删除简单可靠)
// 3. 缓存故障降级: 任何Redis错误只影响缓存，不影响请求本身，
//    由装饰器一侧记录日志后回落数据库
// 4. id和isbn两个入口各自一个key，删除时一起清理
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

// GetByID 获取图书详情缓存(未命中返回nil, nil)
func (c *BookCache) GetByID(ctx context.Context, id uint) (*book.Book, error) {
	return c.get(ctx, c.detailKey(id))
}

// GetByISBN 获取按ISBN索引的图书缓存(未命中返回nil, nil)
func (c *BookCache) GetByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return c.get(ctx, c.isbnKey(isbn))
}

// Set 写入图书缓存(两个key同时写)
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.detailKey(b.ID), val, c.ttl)
	pipe.Set(ctx, c.isbnKey(b.ISBN), val, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}

	return nil
}

// Delete 删除图书缓存(更新/删除图书时调用)
func (c *BookCache) Delete(ctx context.Context, b *book.Book) error {
	if err := c.client.Del(ctx, c.detailKey(b.ID), c.isbnKey(b.ISBN)).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// get 读取并反序列化
func (c *BookCache) get(ctx context.Context, key string) (*book.Book, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			// 缓存未命中，返回nil（调用方需要查询数据库）
			return nil, nil
		}
		return nil, fmt.Errorf("获取缓存失败: %w", err)
	}

	var b book.Book
	if err := json.Unmarshal([]byte(val), &b); err != nil {
		return nil, fmt.Errorf("反序列化失败: %w", err)
	}

	return &b, nil
}

// detailKey 图书详情缓存key
// 格式：library:book:{id}
func (c *BookCache) detailKey(id uint) string {
	return fmt.Sprintf("library:book:%d", id)
}

// isbnKey 按ISBN索引的缓存key
// 格式：library:book:isbn:{isbn}
func (c *BookCache) isbnKey(isbn string) string {
	return fmt.Sprintf("library:book:isbn:%s", isbn)
}
