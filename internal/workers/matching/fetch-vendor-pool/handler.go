// internal/workers/matching/fetch-vendor-pool/handler.go
package fetchvendorpool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "vendormatch-workers/internal/common/errors"
	"vendormatch-workers/internal/common/logger"
	"vendormatch-workers/internal/common/metrics"
	"vendormatch-workers/internal/common/observability"
	"vendormatch-workers/internal/common/validation"
	"vendormatch-workers/internal/store"
)

const (
	TaskType = "fetch-vendor-pool"
)

const inputSchema = `{
	"type": "object",
	"properties": {
		"requestId": {"type": "string", "minLength": 1},
		"serviceType": {"type": "string", "minLength": 1},
		"maxResults": {"type": "number", "minimum": 1, "maximum": 100}
	},
	"required": ["requestId", "serviceType"],
	"additionalProperties": true
}`

type Handler struct {
	config  *Config
	vendors *store.VendorStore
	obs     *observability.Observability
	logger  logger.Logger
}

func NewHandler(config *Config, vendors *store.VendorStore, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		vendors: vendors,
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

	if err := validateInput(job.Variables); err != nil {
		h.failJob(client, job, "INVALID_INPUT", err.Error())
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := string(apperrors.ErrCodeVendorPoolFetchFailed)
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
	limit := input.MaxResults
	if limit <= 0 {
		limit = h.config.MaxResults
	}

	pool, err := h.vendors.FetchPool(ctx, input.ServiceType, limit)
	if err != nil {
		return nil, err
	}

	metrics.VendorPoolSize.Observe(float64(len(pool)))
	h.logger.Info("vendor pool fetched", map[string]interface{}{
		"requestId":   input.RequestID,
		"serviceType": input.ServiceType,
		"poolSize":    len(pool),
	})

	return &Output{
		VendorPool: pool,
		PoolSize:   len(pool),
	}, nil
}

func validateInput(variables string) error {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return fmt.Errorf("parse variables: %w", err)
	}

	schema, err := validation.GetSchemaFromJSON(inputSchema)
	if err != nil {
		return err
	}

	result := validation.ValidateInput(raw, schema)
	if !result.Valid {
		return fmt.Errorf("invalid input: %s", strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
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
