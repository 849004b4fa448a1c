// internal/store/matches.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"vendormatch-workers/internal/common/errors"
	"vendormatch-workers/internal/common/logger"
	"vendormatch-workers/internal/matching"
	"vendormatch-workers/internal/models"
)

const insertMatchQuery = `
	INSERT INTO vendor_matches (id, request_id, vendor_id, rank, total_score, confidence, factors, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// uniqueViolation is the PostgreSQL error code raised by the
// (request_id, vendor_id) unique constraint.
const uniqueViolation = "23505"

// MatchStore persists ranked match results.
type MatchStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewMatchStore(db *sql.DB, log logger.Logger) *MatchStore {
	return &MatchStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "match_store"}),
	}
}

// CreateMatches inserts one row per ranked vendor inside a single
// transaction. A duplicate (request, vendor) pair fails the whole batch
// with a DUPLICATE_MATCH error so the process can route it as a business
// outcome rather than retry.
func (s *MatchStore) CreateMatches(ctx context.Context, requestID string, ranked []matching.RankedVendor) ([]models.MatchRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewMatchCreateFailedError(err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	records := make([]models.MatchRecord, 0, len(ranked))

	for _, rv := range ranked {
		factors, err := json.Marshal(rv.Result.Factors)
		if err != nil {
			return nil, errors.NewMatchCreateFailedError(err)
		}

		record := models.MatchRecord{
			ID:          uuid.New().String(),
			RequestID:   requestID,
			VendorID:    rv.Vendor.VendorID,
			Rank:        rv.Rank,
			TotalScore:  rv.Result.TotalScore,
			Confidence:  string(rv.Result.Confidence),
			FactorsJSON: factors,
			CreatedAt:   now,
		}

		_, err = tx.ExecContext(ctx, insertMatchQuery,
			record.ID,
			record.RequestID,
			record.VendorID,
			record.Rank,
			record.TotalScore,
			record.Confidence,
			record.FactorsJSON,
			record.CreatedAt,
		)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
				return nil, errors.NewDuplicateMatchError(requestID, record.VendorID)
			}
			return nil, errors.NewMatchCreateFailedError(err)
		}

		records = append(records, record)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewMatchCreateFailedError(err)
	}

	s.logger.Info("Match records created", map[string]interface{}{
		"request_id": requestID,
		"count":      len(records),
	})
	return records, nil
}
