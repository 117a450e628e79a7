package worker

import (
	"context"
)

// Worker - фоновая задача процесса (лента чатов, поллер, прогрев кэша)
type Worker interface {
	// Start блокирует до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует о завершении, повторный вызов безопасен
	Stop() error

	Name() string
}

// Task - одна итерация периодического воркера
type Task func(ctx context.Context) error
