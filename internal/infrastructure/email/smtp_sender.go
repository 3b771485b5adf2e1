package email

import (
	"context"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/xiebiao/libraryapi/internal/domain/notification"
	"github.com/xiebiao/libraryapi/internal/infrastructure/config"
	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
)

// smtpSender SMTP邮件发送器(gomail实现)
// 设计说明:
// 1. 一次调度批量发送：所有收件人放进同一封邮件的To列表
// 2. 不做重试，发送失败由调用方(通知用例)记录并放弃本轮
// 3. Dialer按需建立连接，发送完即关闭，调度频率低不需要连接池
type smtpSender struct {
	dialer  *gomail.Dialer
	sender  string
	subject string
}

// NewSMTPSender 创建SMTP邮件发送器
func NewSMTPSender(cfg *config.Config) notification.Sender {
	return &smtpSender{
		dialer:  gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password),
		sender:  cfg.Mail.Sender,
		subject: cfg.Mail.LateLoanSubject,
	}
}

// SendMails 批量发送提醒邮件
func (s *smtpSender) SendMails(ctx context.Context, message string, recipients []string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", s.subject)
	m.SetBody("text/plain", message)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("[email] 发送提醒邮件失败: %v", err)
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeDispatchError,
			Message: notification.ErrDispatchFailed.Message,
			Err:     err,
		}
	}

	log.Printf("[email] 提醒邮件发送成功, 收件人数=%d", len(recipients))
	return nil
}
