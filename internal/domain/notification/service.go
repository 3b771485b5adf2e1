package notification

import (
	"context"
)

// Sender 通知发送接口
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(SMTP)
// 2. 一次调用发送一封邮件，收件人为整个批次(不是逐个发送)
// 3. 发送失败必须返回ErrDispatchFailed，不允许吞掉错误;
//    是否重试由调用方决定(当前调度任务选择放弃本轮)
type Sender interface {
	// SendMails 向一批收件人发送同一条消息
	SendMails(ctx context.Context, message string, recipients []string) error
}
