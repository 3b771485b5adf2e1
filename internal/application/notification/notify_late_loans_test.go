package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/domain/loan"
	"github.com/xiebiao/libraryapi/internal/domain/notification"
	"github.com/xiebiao/libraryapi/pkg/metrics"
)

// fakeLoanService 只实现GetAllLateLoans
type fakeLoanService struct {
	late []*loan.Loan
	err  error
}

func (s *fakeLoanService) Create(ctx context.Context, bookID uint, customer, customerEmail string) (*loan.Loan, error) {
	panic("not used")
}

func (s *fakeLoanService) GetByID(ctx context.Context, id uint) (*loan.Loan, error) {
	panic("not used")
}

func (s *fakeLoanService) Return(ctx context.Context, id uint, returned bool) (*loan.Loan, error) {
	panic("not used")
}

func (s *fakeLoanService) Find(ctx context.Context, filter loan.Filter, page book.PageRequest) ([]*loan.Loan, int64, error) {
	panic("not used")
}

func (s *fakeLoanService) FindByBook(ctx context.Context, bookID uint, page book.PageRequest) ([]*loan.Loan, int64, error) {
	panic("not used")
}

func (s *fakeLoanService) GetAllLateLoans(ctx context.Context) ([]*loan.Loan, error) {
	return s.late, s.err
}

// fakeSender 记录发送调用
type fakeSender struct {
	message    string
	recipients []string
	calls      int
	err        error
}

func (s *fakeSender) SendMails(ctx context.Context, message string, recipients []string) error {
	s.calls++
	s.message = message
	s.recipients = recipients
	return s.err
}

func lateLoan(email string) *loan.Loan {
	return &loan.Loan{
		BookID:        1,
		Customer:      "Fulano",
		CustomerEmail: email,
		LoanDate:      time.Now().AddDate(0, 0, -10),
	}
}

// TestNotifyLateLoans 测试逾期提醒用例
func TestNotifyLateLoans(t *testing.T) {
	ctx := context.Background()
	metrics.InitMetrics()

	t.Run("向所有逾期借阅人发送提醒", func(t *testing.T) {
		sender := &fakeSender{}
		uc := NewNotifyLateLoansUseCase(&fakeLoanService{late: []*loan.Loan{
			lateLoan("a@example.com"),
			lateLoan("b@example.com"),
		}}, sender, "please return the book")

		require.NoError(t, uc.Execute(ctx))

		assert.Equal(t, 1, sender.calls, "一轮调度只发送一封邮件")
		assert.Equal(t, "please return the book", sender.message)
		assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.recipients)
	})

	t.Run("收件人不去重", func(t *testing.T) {
		// 同一人逾期两本书就收到两份提醒
		sender := &fakeSender{}
		uc := NewNotifyLateLoansUseCase(&fakeLoanService{late: []*loan.Loan{
			lateLoan("a@example.com"),
			lateLoan("a@example.com"),
		}}, sender, "msg")

		require.NoError(t, uc.Execute(ctx))

		assert.Equal(t, []string{"a@example.com", "a@example.com"}, sender.recipients)
	})

	t.Run("无逾期借阅时跳过发送", func(t *testing.T) {
		sender := &fakeSender{}
		uc := NewNotifyLateLoansUseCase(&fakeLoanService{}, sender, "msg")

		require.NoError(t, uc.Execute(ctx))

		assert.Zero(t, sender.calls, "没有逾期借阅不应发送邮件")
	})

	t.Run("发送失败时返回错误", func(t *testing.T) {
		sender := &fakeSender{err: notification.ErrDispatchFailed}
		uc := NewNotifyLateLoansUseCase(&fakeLoanService{late: []*loan.Loan{
			lateLoan("a@example.com"),
		}}, sender, "msg")

		err := uc.Execute(ctx)
		require.Error(t, err, "发送失败应放弃本轮并上报错误")
		assert.ErrorIs(t, err, notification.ErrDispatchFailed)
	})

	t.Run("查询失败时返回错误", func(t *testing.T) {
		sender := &fakeSender{}
		uc := NewNotifyLateLoansUseCase(&fakeLoanService{err: loan.ErrLoanNotFound}, sender, "msg")

		err := uc.Execute(ctx)
		require.Error(t, err)
		assert.Zero(t, sender.calls)
	})
}
