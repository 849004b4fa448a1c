// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"vendormatch-workers/internal/common/logger"
)

// JobHandler is implemented by every worker handler in internal/workers.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// WorkerOptions tune the polling behaviour of a registered job worker.
type WorkerOptions struct {
	MaxJobsActive int
	Concurrency   int
	PollInterval  time.Duration
	Timeout       time.Duration
}

func DefaultWorkerOptions() WorkerOptions {
	return WorkerOptions{
		MaxJobsActive: 32,
		Concurrency:   4,
		PollInterval:  100 * time.Millisecond,
		Timeout:       5 * time.Minute,
	}
}

// Worker binds a JobHandler to a Zeebe task type.
type Worker struct {
	client    *Client
	taskType  string
	handler   JobHandler
	options   WorkerOptions
	logger    logger.Logger
	jobWorker worker.JobWorker
}

func NewWorker(client *Client, taskType string, handler JobHandler, opts WorkerOptions, log logger.Logger) *Worker {
	return &Worker{
		client:   client,
		taskType: taskType,
		handler:  handler,
		options:  opts,
		logger:   log.WithFields(map[string]interface{}{"task_type": taskType}),
	}
}

// Start registers the worker with the gateway and begins polling for jobs.
func (w *Worker) Start() {
	w.jobWorker = w.client.Zeebe().NewJobWorker().
		JobType(w.taskType).
		Handler(w.handler.Handle).
		MaxJobsActive(w.options.MaxJobsActive).
		Concurrency(w.options.Concurrency).
		PollInterval(w.options.PollInterval).
		Timeout(w.options.Timeout).
		Open()

	w.logger.Info("Worker started", map[string]interface{}{
		"max_jobs_active": w.options.MaxJobsActive,
		"concurrency":     w.options.Concurrency,
	})
}

// Stop drains in-flight jobs and closes the worker.
func (w *Worker) Stop() {
	if w.jobWorker != nil {
		w.jobWorker.Close()
		w.jobWorker.AwaitClose()
		w.logger.Info("Worker stopped", nil)
	}
}
