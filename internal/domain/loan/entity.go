package loan

import (
	"time"

	"github.com/xiebiao/libraryapi/internal/domain/book"
)

// Loan 借阅实体(聚合根)
// 设计说明:
// 1. 一条借阅记录对应一本图书(多对一)，图书侧没有反向引用
// 2. Returned是三态: nil(未登记) / true(已归还) / false(明确未归还)
//    nil和false都视为"未归还"，逾期判断用 returned IS NOT TRUE
// 3. 借阅记录只在登记归还时更新，永不删除
type Loan struct {
	ID            uint
	BookID        uint
	Book          *book.Book // 关联图书(查询时填充)
	Customer      string     // 借阅人姓名
	CustomerEmail string     // 借阅人邮箱(逾期通知用)
	LoanDate      time.Time  // 借出日期
	Returned      *bool      // 归还标记(三态)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewLoan 创建新借阅(工厂方法)
// 借出日期取当天，归还标记保持未登记状态
func NewLoan(bookID uint, customer, customerEmail string) *Loan {
	now := time.Now()
	return &Loan{
		BookID:        bookID,
		Customer:      customer,
		CustomerEmail: customerEmail,
		LoanDate:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MarkReturned 登记归还标记(领域行为)
// 幂等: 重复登记相同值不产生额外变化
func (l *Loan) MarkReturned(returned bool) {
	l.Returned = &returned
	l.UpdatedAt = time.Now()
}

// IsReturned 是否已归还(nil视为未归还)
func (l *Loan) IsReturned() bool {
	return l.Returned != nil && *l.Returned
}
