package schedule

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Runner 按固定间隔串行执行任务, 上一轮结束后才开始计时
type Runner struct {
	task     Task
	interval time.Duration
	// maxRuns 为 0 时不限次数
	maxRuns int
}

type RunnerOption func(r *Runner)

func WithMaxRuns(n int) RunnerOption {
	return func(r *Runner) {
		r.maxRuns = n
	}
}

func NewRunner(task Task, interval time.Duration, opts ...RunnerOption) *Runner {
	r := &Runner{
		task:     task,
		interval: interval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run blocks until ctx is cancelled, the run limit is reached or the task
// returns an error. Cancellation is not an error.
func (r *Runner) Run(ctx context.Context) error {
	for runs := 1; ; runs++ {
		start := time.Now()
		err := r.task.Run(ctx)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		}
		slog.Info("task finished", "task", r.task.Name(), "run", runs, "elapsed", time.Since(start))

		if r.maxRuns > 0 && runs >= r.maxRuns {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(r.interval):
		}
	}
}
