package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书，不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书，不存在时返回ErrBookNotFound
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书信息(书名/作者)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	Delete(ctx context.Context, id uint) error

	// Find 分页条件查询
	// 过滤条件为前缀匹配(忽略大小写)，空字段忽略，按插入顺序(id升序)返回
	Find(ctx context.Context, filter Filter, page PageRequest) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 创建借阅时锁定图书行，串行化同一本书的并发借阅请求
	LockByID(ctx context.Context, id uint) (*Book, error)
}

// Filter 图书查询过滤条件
// 空字符串表示该字段不参与过滤
type Filter struct {
	Title  string // 书名前缀
	Author string // 作者前缀
}

// PageRequest 分页请求参数(页码从0开始)
type PageRequest struct {
	Page int // 页码(从0开始)
	Size int // 每页数量
}

// Offset 计算记录偏移量
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}
