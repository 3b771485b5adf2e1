package notification

import (
	"context"
	"log"

	"github.com/xiebiao/libraryapi/internal/domain/loan"
	"github.com/xiebiao/libraryapi/internal/domain/notification"
	"github.com/xiebiao/libraryapi/pkg/metrics"
)

// NotifyLateLoansUseCase 逾期借阅提醒用例
// 设计说明:
// 1. 由定时任务触发(每天一次)，不走HTTP入口
// 2. 收件人为全部逾期借阅的借阅人邮箱，不做去重:
//    同一人逾期两本书就收到两份提醒，提醒强度与逾期数量一致
// 3. 发送失败放弃本轮(不重试)，下一轮调度会重新计算逾期名单
type NotifyLateLoansUseCase struct {
	loanService loan.Service
	sender      notification.Sender
	message     string // 提醒正文(配置项)
}

// NewNotifyLateLoansUseCase 创建逾期提醒用例
func NewNotifyLateLoansUseCase(loanService loan.Service, sender notification.Sender, message string) *NotifyLateLoansUseCase {
	return &NotifyLateLoansUseCase{
		loanService: loanService,
		sender:      sender,
		message:     message,
	}
}

// Execute 执行逾期提醒用例
func (uc *NotifyLateLoansUseCase) Execute(ctx context.Context) error {
	// 1. 查询逾期借阅
	lateLoans, err := uc.loanService.GetAllLateLoans(ctx)
	if err != nil {
		metrics.LateLoanNotificationsTotal.WithLabelValues("failure").Inc()
		return err
	}

	// 2. 收集收件人邮箱(不去重)
	recipients := make([]string, len(lateLoans))
	for i, l := range lateLoans {
		recipients[i] = l.CustomerEmail
	}

	// 3. 没有逾期借阅时跳过本轮
	if len(recipients) == 0 {
		log.Println("[notify] 本轮无逾期借阅，跳过提醒")
		metrics.LateLoanNotificationsTotal.WithLabelValues("empty").Inc()
		return nil
	}

	// 4. 批量发送提醒邮件
	if err := uc.sender.SendMails(ctx, uc.message, recipients); err != nil {
		metrics.LateLoanNotificationsTotal.WithLabelValues("failure").Inc()
		return err
	}

	log.Printf("[notify] 逾期提醒已发送, 借阅数=%d", len(recipients))
	metrics.LateLoanNotificationsTotal.WithLabelValues("success").Inc()
	metrics.LateLoanRecipients.Observe(float64(len(recipients)))

	return nil
}
