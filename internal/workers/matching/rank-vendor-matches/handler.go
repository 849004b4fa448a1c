// internal/workers/matching/rank-vendor-matches/handler.go
package rankvendormatches

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
)

const (
	TaskType = "rank-vendor-matches"
)

type Handler struct {
	config *Config
	engine *matching.Engine
	obs    *observability.Observability
	logger logger.Logger
}

func NewHandler(config *Config, engine *matching.Engine, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: engine,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		code := string(apperrors.ErrCodeRankingFailed)
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Request.ServiceType == "" {
		return nil, apperrors.NewRankingFailedError("request has no service type")
	}

	matchCtx := matching.BuildContext(&input.Request)
	ranked := h.engine.Rank(matchCtx, input.VendorPool)
	totalScored := len(ranked)

	for _, rv := range ranked {
		metrics.MatchScoresComputed.WithLabelValues(string(rv.Result.Confidence)).Inc()
		metrics.MatchScoreDistribution.Observe(rv.Result.TotalScore)
		for _, w := range rv.Result.Warnings {
			metrics.MatchWarningsRaised.WithLabelValues(string(w.Severity)).Inc()
		}
	}

	limit := input.MaxResults
	if limit <= 0 {
		limit = h.config.MaxResults
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	output := &Output{
		RankedVendors: ranked,
		TotalScored:   totalScored,
		ConfigVersion: h.engine.ConfigVersion(),
	}
	if len(ranked) > 0 {
		output.TopVendorID = ranked[0].Vendor.VendorID
	}

	h.logger.Info("vendor ranking completed", map[string]interface{}{
		"requestId":   input.Request.ID,
		"totalScored": totalScored,
		"returned":    len(ranked),
		"topVendorId": output.TopVendorID,
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
