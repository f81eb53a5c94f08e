// internal/common/camunda/worker.go
package camunda

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"
)

// JobHandler processes one activated job. Completion and failure are the
// handler's responsibility (via the job client), so Handle does not
// return an error.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// JobHandlerFunc adapts a plain function to the JobHandler interface.
type JobHandlerFunc func(client worker.JobClient, job entities.Job)

func (f JobHandlerFunc) Handle(client worker.JobClient, job entities.Job) {
	f(client, job)
}

// Worker owns one open job subscription for a task type.
type Worker struct {
	worker   worker.JobWorker
	logger   *zap.Logger
	taskType string
}

// NewWorker opens a job subscription on the broker for the given task
// type and starts polling immediately.
func NewWorker(
	client *Client,
	taskType string,
	maxJobsActive int,
	handler JobHandler,
	logger *zap.Logger,
) *Worker {
	if maxJobsActive <= 0 {
		maxJobsActive = 10
	}

	jobWorker := client.GetClient().NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(maxJobsActive).
		Open()

	logger.Info("worker registered",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", maxJobsActive),
	)

	return &Worker{
		worker:   jobWorker,
		logger:   logger,
		taskType: taskType,
	}
}

// Stop closes the job subscription and waits for in-flight jobs.
func (w *Worker) Stop(ctx context.Context) {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))

	done := make(chan struct{})
	go func() {
		w.worker.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("worker shutdown timed out", zap.String("taskType", w.taskType))
	}
}
