// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"admission-workers/internal/common/config"
	"admission-workers/internal/common/errors"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandlerFunc is the signature every worker's Handle method satisfies.
type JobHandlerFunc func(client worker.JobClient, job entities.Job)

// CamundaWorker owns one Zeebe job subscription.
type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job subscription for taskType. The handler is wrapped
// with duration metrics and panic recovery so a single bad job cannot take
// down the subscription.
func NewWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler JobHandlerFunc,
	log logger.Logger,
) *CamundaWorker {
	errHandler := errors.NewErrorHandler(log)

	wrapped := func(jobClient worker.JobClient, job entities.Job) {
		start := time.Now()
		defer func() {
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
			if r := recover(); r != nil {
				metrics.WorkerJobsFailed.WithLabelValues(taskType, "PANIC").Inc()
				errHandler.HandleJobError(context.Background(), jobClient, job, fmt.Errorf("panic in %s handler: %v", taskType, r))
				return
			}
			metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		}()
		handler(jobClient, job)
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(wrapped).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log.WithFields(map[string]interface{}{"taskType": taskType}),
		taskType: taskType,
	}
}

func (w *CamundaWorker) TaskType() string {
	return w.taskType
}

// Stop drains and closes the job subscription. The shared Zeebe client is
// closed by the caller.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
