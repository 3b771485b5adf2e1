package notification

import (
	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
)

// 通知领域错误定义
var (
	// ErrDispatchFailed 邮件发送失败
	ErrDispatchFailed = apperrors.New(apperrors.ErrCodeDispatchError, "failed to dispatch notification mails")
)
