// Package scheduler 提供基于cron表达式的定时任务调度
//
// 当前只有一个任务:逾期借阅提醒(默认每天零点执行一次)。
// cron表达式为标准5段格式(分 时 日 月 周)。
package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/xiebiao/libraryapi/internal/application/notification"
)

// Scheduler 定时任务调度器
// 设计说明:
// 1. SkipIfStillRunning:上一轮还没跑完时跳过本轮(任务不可重入)
// 2. Recover:任务panic不会拖垮整个进程
type Scheduler struct {
	cron *cron.Cron
}

// New 创建调度器并注册逾期提醒任务
func New(cronSpec string, notifyUC *notification.NotifyLateLoansUseCase) (*Scheduler, error) {
	logger := cron.VerbosePrintfLogger(log.Default())
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(logger),
		cron.Recover(logger),
	))

	_, err := c.AddFunc(cronSpec, func() {
		if err := notifyUC.Execute(context.Background()); err != nil {
			log.Printf("[scheduler] 逾期提醒任务执行失败: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c}, nil
}

// Start 启动调度器(非阻塞，任务在独立goroutine中执行)
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("✓ 定时任务调度器已启动")
}

// Stop 停止调度器，等待运行中的任务结束
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("定时任务调度器已停止")
}
