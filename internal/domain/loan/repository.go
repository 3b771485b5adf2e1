package loan

import (
	"context"
	"time"

	"github.com/xiebiao/libraryapi/internal/domain/book"
)

// Repository 借阅仓储接口
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 查询方法均填充Loan.Book关联(列表接口对外返回图书信息)
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, l *Loan) error

	// FindByID 根据ID查找借阅，不存在时返回ErrLoanNotFound
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// Update 更新借阅记录(只有归还标记会变化)
	Update(ctx context.Context, l *Loan) error

	// ExistsActiveByBook 指定图书是否存在未归还的借阅
	// "未归还" = returned IS NULL OR returned = false
	ExistsActiveByBook(ctx context.Context, bookID uint) (bool, error)

	// Find 分页条件查询: 图书ISBN匹配 或 借阅人匹配(逻辑OR)
	Find(ctx context.Context, filter Filter, page book.PageRequest) ([]*Loan, int64, error)

	// FindByBook 查询指定图书的全部借阅记录(含已归还)
	FindByBook(ctx context.Context, bookID uint, page book.PageRequest) ([]*Loan, int64, error)

	// FindLate 查询逾期借阅
	// 条件: loan_date < cutoff(严格小于) 且 returned IS NOT TRUE
	FindLate(ctx context.Context, cutoff time.Time) ([]*Loan, error)
}

// Filter 借阅查询过滤条件
// 两个字段之间是逻辑OR关系(对齐对外契约)
type Filter struct {
	ISBN     string // 图书ISBN(精确匹配)
	Customer string // 借阅人姓名(精确匹配)
}
