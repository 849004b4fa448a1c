// internal/workers/matching/create-match-record/handler.go
package creatematchrecord

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "vendormatch-workers/internal/common/errors"
	"vendormatch-workers/internal/common/logger"
	"vendormatch-workers/internal/common/metrics"
	"vendormatch-workers/internal/common/observability"
	"vendormatch-workers/internal/store"
)

const (
	TaskType = "create-match-record"
)

type Handler struct {
	config  *Config
	matches *store.MatchStore
	obs     *observability.Observability
	logger  logger.Logger
}

func NewHandler(config *Config, matches *store.MatchStore, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		matches: matches,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	start := time.Now()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := string(apperrors.ErrCodeMatchCreateFailed)
		if stdErr, ok := err.(*apperrors.StandardError); ok {
			code = string(stdErr.Code)
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.obs.RecordJobProcessed(ctx, "completed")
	h.obs.RecordJobDuration(ctx, time.Since(start), "completed")
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.RequestID == "" {
		return nil, apperrors.NewMatchCreateFailedError(fmt.Errorf("missing request ID"))
	}

	records, err := h.matches.CreateMatches(ctx, input.RequestID, input.RankedVendors)
	if err != nil {
		return nil, err
	}

	output := &Output{
		MatchIDs:   make([]string, 0, len(records)),
		MatchCount: len(records),
	}
	for _, r := range records {
		output.MatchIDs = append(output.MatchIDs, r.ID)
		if r.Rank == 1 {
			output.TopVendorID = r.VendorID
			output.TopMatchID = r.ID
		}
	}

	h.logger.Info("match records created", map[string]interface{}{
		"requestId":  input.RequestID,
		"matchCount": output.MatchCount,
	})

	return output, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.obs.RecordJobProcessed(context.Background(), "failed")

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
