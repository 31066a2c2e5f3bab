package schedule

import "context"

// Task 一次完整的周期任务
type Task interface {
	Run(ctx context.Context) error
	Name() string
}
