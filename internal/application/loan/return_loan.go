package loan

import (
	"context"
	"log"

	"github.com/xiebiao/libraryapi/internal/domain/loan"
	"github.com/xiebiao/libraryapi/pkg/metrics"
	"github.com/xiebiao/libraryapi/pkg/mq"
)

// ReturnLoanUseCase 归还登记用例
type ReturnLoanUseCase struct {
	loanService loan.Service
	publisher   *mq.Publisher
}

// NewReturnLoanUseCase 创建归还登记用例
func NewReturnLoanUseCase(loanService loan.Service, publisher *mq.Publisher) *ReturnLoanUseCase {
	return &ReturnLoanUseCase{
		loanService: loanService,
		publisher:   publisher,
	}
}

// ReturnLoanRequest 归还登记请求DTO
type ReturnLoanRequest struct {
	ID       uint // 借阅ID(路径参数)
	Returned bool // 归还标记(可重复登记，幂等)
}

// LoanReturnedEvent 归还登记事件(发布到MQ)
type LoanReturnedEvent struct {
	LoanID   uint `json:"loan_id"`
	BookID   uint `json:"book_id"`
	Returned bool `json:"returned"`
}

// Execute 执行归还登记用例
// 借阅不存在时返回ErrLoanNotFound(映射为404)
func (uc *ReturnLoanUseCase) Execute(ctx context.Context, req ReturnLoanRequest) (*LoanResponse, error) {
	l, err := uc.loanService.Return(ctx, req.ID, req.Returned)
	if err != nil {
		return nil, err
	}

	if req.Returned {
		metrics.LoansReturnedTotal.Inc()
	}

	event := LoanReturnedEvent{
		LoanID:   l.ID,
		BookID:   l.BookID,
		Returned: req.Returned,
	}
	if err := uc.publisher.Publish(ctx, "loan.returned", event); err != nil {
		log.Printf("[mq] 发布loan.returned事件失败: %v", err)
	}

	return ToLoanResponse(l), nil
}
