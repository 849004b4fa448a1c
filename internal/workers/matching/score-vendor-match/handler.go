// internal/workers/matching/score-vendor-match/handler.go
package scorevendormatch

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
	"vendormatch-workers/internal/matching"
	"vendormatch-workers/internal/store"
)

const (
	TaskType = "score-vendor-match"
)

type Handler struct {
	config  *Config
	engine  *matching.Engine
	vendors *store.VendorStore
	scores  *store.ScoreCache
	obs     *observability.Observability
	logger  logger.Logger
}

// NewHandler builds the score worker. scores may be nil, in which case every
// job is scored fresh.
func NewHandler(config *Config, engine *matching.Engine, vendors *store.VendorStore, scores *store.ScoreCache, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		engine:  engine,
		vendors: vendors,
		scores:  scores,
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
		code := string(apperrors.ErrCodeMatchScoreFailed)
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
	vendorID := input.VendorID
	if input.Vendor != nil {
		vendorID = input.Vendor.VendorID
	}
	if vendorID == "" {
		return nil, apperrors.NewMatchScoreFailedError("no vendor payload or vendor ID supplied")
	}

	// A cache hit means this exact pairing was already scored under the
	// current configuration, so vendor resolution can be skipped entirely.
	// Requests without an ID cannot be keyed and are always scored fresh.
	configVersion := h.engine.ConfigVersion()
	if h.scores != nil && input.Request.ID != "" {
		if cached, ok := h.scores.Get(ctx, input.Request.ID, vendorID, configVersion); ok {
			h.logger.Info("match score served from cache", map[string]interface{}{
				"requestId": input.Request.ID,
				"vendorId":  vendorID,
			})
			return &Output{
				VendorID:      vendorID,
				Result:        *cached,
				ConfigVersion: configVersion,
			}, nil
		}
	}

	vendor := input.Vendor
	if vendor == nil {
		loaded, err := h.vendors.GetVendor(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		vendor = &loaded
	}

	matchCtx := matching.BuildContext(&input.Request)
	result := h.engine.Score(matchCtx, vendor)
	if h.scores != nil && input.Request.ID != "" {
		h.scores.Put(ctx, input.Request.ID, vendor.VendorID, configVersion, result)
	}

	metrics.MatchScoresComputed.WithLabelValues(string(result.Confidence)).Inc()
	metrics.MatchScoreDistribution.Observe(result.TotalScore)
	for _, w := range result.Warnings {
		metrics.MatchWarningsRaised.WithLabelValues(string(w.Severity)).Inc()
	}

	h.logger.Info("match score calculated", map[string]interface{}{
		"requestId":  input.Request.ID,
		"vendorId":   vendor.VendorID,
		"totalScore": result.TotalScore,
		"confidence": result.Confidence,
		"warnings":   len(result.Warnings),
	})

	return &Output{
		VendorID:      vendor.VendorID,
		Result:        *result,
		ConfigVersion: configVersion,
	}, nil
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
