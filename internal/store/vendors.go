// internal/store/vendors.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"vendormatch-workers/internal/common/errors"
	"vendormatch-workers/internal/common/logger"
	"vendormatch-workers/internal/matching"
	"vendormatch-workers/internal/models"
)

const vendorPoolQuery = `
	SELECT id, name, services, service_areas, specialties,
	       licensed_insured, emergency_services, service_hours, job_size_ranges
	FROM vendors
	WHERE active = true AND $1 = ANY(services)
	ORDER BY id
	LIMIT $2`

const vendorStatsQuery = `
	SELECT avg_response_hours, pending_jobs, performance_score, total_reviews
	FROM vendor_stats
	WHERE vendor_id = $1`

// VendorStore loads vendor pools from PostgreSQL with per-vendor stats
// served through a Redis read-through cache.
type VendorStore struct {
	db       *sql.DB
	redis    *redis.Client
	logger   logger.Logger
	cacheTTL time.Duration
}

func NewVendorStore(db *sql.DB, redisClient *redis.Client, log logger.Logger, cacheTTL time.Duration) *VendorStore {
	return &VendorStore{
		db:       db,
		redis:    redisClient,
		logger:   log.WithFields(map[string]interface{}{"component": "vendor_store"}),
		cacheTTL: cacheTTL,
	}
}

// FetchPool returns scoring inputs for active vendors offering serviceType,
// capped at limit. Vendors with no stats row get zero-valued stats, which
// the scoring engine treats as missing data.
func (s *VendorStore) FetchPool(ctx context.Context, serviceType string, limit int) ([]matching.VendorMatchData, error) {
	rows, err := s.db.QueryContext(ctx, vendorPoolQuery, serviceType, limit)
	if err != nil {
		return nil, errors.NewVendorPoolFetchFailedError(err)
	}
	defer rows.Close()

	var vendors []models.VendorRow
	for rows.Next() {
		var v models.VendorRow
		err := rows.Scan(
			&v.ID,
			&v.Name,
			pq.Array(&v.Services),
			pq.Array(&v.ServiceAreas),
			&v.SpecialtiesJSON,
			&v.LicensedInsured,
			&v.EmergencyService,
			&v.HoursJSON,
			pq.Array(&v.JobSizeRanges),
		)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("vendor_pool", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("vendor_pool", err)
	}

	pool := make([]matching.VendorMatchData, 0, len(vendors))
	for _, v := range vendors {
		stats, err := s.vendorStats(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		pool = append(pool, v.ToMatchData(stats))
	}

	return pool, nil
}

// GetVendor loads a single vendor by ID, including stats.
func (s *VendorStore) GetVendor(ctx context.Context, vendorID string) (matching.VendorMatchData, error) {
	const query = `
		SELECT id, name, services, service_areas, specialties,
		       licensed_insured, emergency_services, service_hours, job_size_ranges
		FROM vendors
		WHERE id = $1`

	var v models.VendorRow
	err := s.db.QueryRowContext(ctx, query, vendorID).Scan(
		&v.ID,
		&v.Name,
		pq.Array(&v.Services),
		pq.Array(&v.ServiceAreas),
		&v.SpecialtiesJSON,
		&v.LicensedInsured,
		&v.EmergencyService,
		&v.HoursJSON,
		pq.Array(&v.JobSizeRanges),
	)
	if err == sql.ErrNoRows {
		return matching.VendorMatchData{}, errors.NewVendorNotFoundError(vendorID)
	}
	if err != nil {
		return matching.VendorMatchData{}, errors.NewQueryExecutionFailedError("vendor_by_id", err)
	}

	stats, err := s.vendorStats(ctx, v.ID)
	if err != nil {
		return matching.VendorMatchData{}, err
	}
	return v.ToMatchData(stats), nil
}

// vendorStats resolves stats through the Redis cache, falling back to the
// aggregate query on a miss. Cache failures are logged and absorbed so a
// degraded Redis never blocks scoring.
func (s *VendorStore) vendorStats(ctx context.Context, vendorID string) (models.VendorStatsRow, error) {
	cacheKey := statsCacheKey(vendorID)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var stats models.VendorStatsRow
			if jsonErr := json.Unmarshal([]byte(cached), &stats); jsonErr == nil {
				return stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("Stats cache read failed", map[string]interface{}{
				"vendor_id": vendorID,
				"error":     err.Error(),
			})
		}
	}

	stats := models.VendorStatsRow{VendorID: vendorID}
	err := s.db.QueryRowContext(ctx, vendorStatsQuery, vendorID).Scan(
		&stats.AvgResponseHours,
		&stats.PendingJobs,
		&stats.PerformanceScore,
		&stats.TotalReviews,
	)
	if err != nil && err != sql.ErrNoRows {
		return models.VendorStatsRow{}, errors.NewQueryExecutionFailedError("vendor_stats", err)
	}

	if s.redis != nil {
		if payload, jsonErr := json.Marshal(stats); jsonErr == nil {
			if setErr := s.redis.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); setErr != nil {
				s.logger.Warn("Stats cache write failed", map[string]interface{}{
					"vendor_id": vendorID,
					"error":     setErr.Error(),
				})
			}
		}
	}

	return stats, nil
}

func statsCacheKey(vendorID string) string {
	return fmt.Sprintf("vendor:stats:%s", vendorID)
}
