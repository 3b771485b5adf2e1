package loan

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/domain/loan"
	"github.com/xiebiao/libraryapi/pkg/metrics"
	"github.com/xiebiao/libraryapi/pkg/mq"
)

// TxManager 事务执行接口(由mysql.TxManager实现)
// fn内的Repository操作在同一事务中执行
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreateLoanUseCase 创建借阅用例
// 教学要点:这是整个项目最核心的用例之一
// 涉及:事务处理、并发控制、业务规则校验
type CreateLoanUseCase struct {
	bookService book.Service
	bookRepo    book.Repository
	loanService loan.Service
	txManager   TxManager
	publisher   *mq.Publisher
}

// NewCreateLoanUseCase 创建借阅用例
func NewCreateLoanUseCase(
	bookService book.Service,
	bookRepo book.Repository,
	loanService loan.Service,
	txManager TxManager,
	publisher *mq.Publisher,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		bookService: bookService,
		bookRepo:    bookRepo,
		loanService: loanService,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// CreateLoanRequest 创建借阅请求DTO
type CreateLoanRequest struct {
	ISBN          string // 图书ISBN(借阅按ISBN发起)
	Customer      string // 借阅人姓名
	CustomerEmail string // 借阅人邮箱(逾期提醒用)
}

// LoanCreatedEvent 借阅创建事件(发布到MQ)
type LoanCreatedEvent struct {
	LoanID   uint   `json:"loan_id"`
	BookID   uint   `json:"book_id"`
	ISBN     string `json:"isbn"`
	Customer string `json:"customer"`
	LoanDate string `json:"loan_date"`
}

// Execute 执行创建借阅用例
// 教学重点:防止同一本书被并发借出的完整流程
//
// 核心问题:检查-再插入不是原子操作
// 场景:同一本书,两个请求同时借
// 错误实现:
//  1. 查询是否有未归还借阅 → 没有
//  2. 插入借阅记录
//     结果:两个请求都通过了步骤1,同一本书出现两条未归还借阅!
//
// 正确实现:悲观锁
//  1. SELECT FOR UPDATE 锁定图书行
//  2. 检查是否有未归还借阅
//  3. 插入借阅记录
//  4. COMMIT释放锁
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req CreateLoanRequest) (uint, error) {
	// 1. 按ISBN解析图书
	// 对外契约:借阅接口的"图书不存在"提示与图书详情接口不同
	b, err := uc.bookService.GetByISBN(ctx, req.ISBN)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			metrics.LoansRejectedTotal.WithLabelValues("book_not_found").Inc()
			return 0, book.ErrBookNotFoundByISBN
		}
		return 0, err
	}

	// 2. 在事务内锁定图书行后创建借阅
	var created *loan.Loan
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// LockByID执行:SELECT * FROM books WHERE id = ? FOR UPDATE
		// 并发借同一本书的请求会在这里排队
		if _, err := uc.bookRepo.LockByID(txCtx, b.ID); err != nil {
			return err
		}

		// 存在性检查+插入与锁在同一事务内，不会被并发插队
		l, err := uc.loanService.Create(txCtx, b.ID, req.Customer, req.CustomerEmail)
		if err != nil {
			return err
		}

		created = l
		return nil
	})
	if err != nil {
		if errors.Is(err, loan.ErrBookInUse) {
			metrics.LoansRejectedTotal.WithLabelValues("book_in_use").Inc()
		}
		return 0, err
	}

	metrics.LoansCreatedTotal.Inc()

	// 3. 发布领域事件(旁路功能，失败只记录日志)
	event := LoanCreatedEvent{
		LoanID:   created.ID,
		BookID:   b.ID,
		ISBN:     b.ISBN,
		Customer: created.Customer,
		LoanDate: created.LoanDate.Format(time.DateOnly),
	}
	if err := uc.publisher.Publish(ctx, "loan.created", event); err != nil {
		log.Printf("[mq] 发布loan.created事件失败: %v", err)
	}

	return created.ID, nil
}
