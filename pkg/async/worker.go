package async

import (
	"context"
	"fmt"
	"sync"
	"time"

	"classboard/pkg/logger"
)

// Task 表示一个异步任务
type Task struct {
	ID       string
	Handler  func(ctx context.Context) error
	Timeout  time.Duration
	RetryMax int
}

// Worker 异步任务处理器，承载邮件通知、Blob补偿删除等不阻塞请求的工作
type Worker struct {
	taskQueue chan Task
	logger    *logger.Logger
	wg        sync.WaitGroup
}

// NewWorker 创建一个新的工作器
func NewWorker(queueSize int, logger *logger.Logger) *Worker {
	return &Worker{
		taskQueue: make(chan Task, queueSize),
		logger:    logger,
	}
}

// Start 启动工作器
func (w *Worker) Start(numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.processTask()
	}
}

// Stop 停止工作器并等待队列排空
func (w *Worker) Stop() {
	close(w.taskQueue)
	w.wg.Wait()
}

// Submit 提交任务
func (w *Worker) Submit(task Task) {
	if task.ID == "" {
		task.ID = fmt.Sprintf("task_%d", time.Now().UnixNano())
	}
	w.taskQueue <- task
}

// AddTask 提交无返回值的简单任务
func (w *Worker) AddTask(handler func()) {
	w.Submit(Task{
		Handler: func(ctx context.Context) error {
			handler()
			return nil
		},
	})
}

// processTask 工作循环
func (w *Worker) processTask() {
	defer w.wg.Done()
	for task := range w.taskQueue {
		w.executeTask(task)
	}
}

// executeTask 执行单个任务，支持超时与重试
func (w *Worker) executeTask(task Task) {
	start := time.Now()

	ctx := context.Background()
	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	var err error
	for attempt := 0; attempt <= task.RetryMax; attempt++ {
		if attempt > 0 {
			w.logger.Info("重试任务", "task_id", task.ID, "attempt", attempt)
			time.Sleep(time.Second * time.Duration(attempt)) // 线性退避
		}
		if err = task.Handler(ctx); err == nil {
			break
		}
		w.logger.Error("任务执行失败", "task_id", task.ID, "attempt", attempt, "error", err)
	}

	if err != nil {
		w.logger.Error("异步任务最终失败", "task_id", task.ID, "error", err)
		return
	}
	w.logger.Debug("异步任务完成", "task_id", task.ID, "duration", time.Since(start))
}
