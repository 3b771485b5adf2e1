package loan

import (
	"context"
	"time"

	"github.com/xiebiao/libraryapi/internal/domain/book"
)

// Service 借阅领域服务接口
// 设计说明:
// 1. 封装借阅相关的业务规则("一本书同时只能有一条未归还借阅"、逾期判定)
// 2. Create的存在性检查+插入不是原子的，调用方(应用层)负责
//    在事务内先锁定图书行再调用本方法，串行化同一本书的并发借阅
type Service interface {
	// Create 创建借阅
	// 业务规则: 同一图书存在未归还借阅时拒绝(ErrBookInUse)
	// 借出日期取当天，归还标记为未登记
	Create(ctx context.Context, bookID uint, customer, customerEmail string) (*Loan, error)

	// GetByID 根据ID获取借阅
	GetByID(ctx context.Context, id uint) (*Loan, error)

	// Return 登记归还标记(幂等，只更新returned)
	Return(ctx context.Context, id uint, returned bool) (*Loan, error)

	// Find 分页条件查询(ISBN或借阅人，逻辑OR)
	Find(ctx context.Context, filter Filter, page book.PageRequest) ([]*Loan, int64, error)

	// FindByBook 查询指定图书的全部借阅记录
	FindByBook(ctx context.Context, bookID uint, page book.PageRequest) ([]*Loan, int64, error)

	// GetAllLateLoans 查询所有逾期借阅
	// 逾期 = 借出日期早于(今天-宽限期) 且 未归还
	// 边界为严格小于: 恰好借出满宽限期天数的不算逾期
	GetAllLateLoans(ctx context.Context) ([]*Loan, error)
}

// service 领域服务实现
type service struct {
	repo      Repository
	graceDays int // 逾期宽限天数(配置项，默认4)
}

// NewService 创建借阅领域服务
func NewService(repo Repository, graceDays int) Service {
	return &service{repo: repo, graceDays: graceDays}
}

// Create 创建借阅
func (s *service) Create(ctx context.Context, bookID uint, customer, customerEmail string) (*Loan, error) {
	// 1. 检查该图书是否已有未归还借阅
	active, err := s.repo.ExistsActiveByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrBookInUse
	}

	// 2. 创建实体并持久化
	l := NewLoan(bookID, customer, customerEmail)
	l.LoanDate = truncateToDay(l.LoanDate)
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// GetByID 根据ID获取借阅
func (s *service) GetByID(ctx context.Context, id uint) (*Loan, error) {
	return s.repo.FindByID(ctx, id)
}

// Return 登记归还标记
func (s *service) Return(ctx context.Context, id uint, returned bool) (*Loan, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	l.MarkReturned(returned)
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// Find 分页条件查询
func (s *service) Find(ctx context.Context, filter Filter, page book.PageRequest) ([]*Loan, int64, error) {
	return s.repo.Find(ctx, filter, page)
}

// FindByBook 查询指定图书的全部借阅记录
func (s *service) FindByBook(ctx context.Context, bookID uint, page book.PageRequest) ([]*Loan, int64, error) {
	return s.repo.FindByBook(ctx, bookID, page)
}

// GetAllLateLoans 查询所有逾期借阅
func (s *service) GetAllLateLoans(ctx context.Context) ([]*Loan, error) {
	cutoff := truncateToDay(time.Now()).AddDate(0, 0, -s.graceDays)
	return s.repo.FindLate(ctx, cutoff)
}

// truncateToDay 截断到当天零点
// 借出日期按"天"比较(对齐逾期判定的严格小于边界)，入库前统一截断
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
