// internal/workers/matching/score-vendor-match/handler_test.go
package scorevendormatch

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendormatch-workers/internal/common/logger"
	"vendormatch-workers/internal/matching"
	"vendormatch-workers/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	engine, err := matching.NewEngine(matching.DefaultConfig())
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	vendors := store.NewVendorStore(db, redisClient, log, 5*time.Minute)
	scores := store.NewScoreCache(redisClient, log, 10*time.Minute)
	return NewHandler(LoadConfig(), engine, vendors, scores, nil, log), mock
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func testRequest() matching.ServiceRequest {
	return matching.ServiceRequest{
		ID:          "req-42",
		ServiceType: "plumber_sewer",
		Urgency:     matching.UrgencyEmergency,
		ZipCode:     "19103",
		BudgetRange: "1000_2500",
		CreatedAt:   time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
	}
}

func testVendor() *matching.VendorMatchData {
	return &matching.VendorMatchData{
		VendorID:          "vendor-1",
		Name:              "Apex Plumbing",
		Services:          []string{"plumber_sewer"},
		ServiceAreas:      []string{"19103"},
		EmergencyServices: true,
		JobSizeRanges:     []string{"1k_5k"},
		Stats: matching.VendorStats{
			AvgResponseHours: floatPtr(1.5),
			PendingJobs:      intPtr(2),
			PerformanceScore: 90,
			TotalReviews:     20,
		},
	}
}

func TestExecuteWithInlineVendor(t *testing.T) {
	handler, _ := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Request: testRequest(),
		Vendor:  testVendor(),
	})
	require.NoError(t, err)

	assert.Equal(t, "vendor-1", output.VendorID)
	assert.Len(t, output.Result.Factors, 8)
	assert.Equal(t, matching.ConfidenceHigh, output.Result.Confidence)
	assert.NotEmpty(t, output.ConfigVersion)
}

func TestExecuteResolvesVendorByID(t *testing.T) {
	handler, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("vendor-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "services", "service_areas", "specialties",
			"licensed_insured", "emergency_services", "service_hours", "job_size_ranges",
		}).AddRow("vendor-1", "Apex Plumbing", "{plumber_sewer}", "{19103}",
			[]byte(`{}`), true, true,
			[]byte(`{"weekdays":true,"weekends":false,"all_day":true}`), "{1k_5k}"))

	mock.ExpectQuery(regexp.QuoteMeta("FROM vendor_stats")).
		WithArgs("vendor-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"avg_response_hours", "pending_jobs", "performance_score", "total_reviews",
		}).AddRow(1.5, 2, 92.0, 48))

	output, err := handler.Execute(context.Background(), &Input{
		Request:  testRequest(),
		VendorID: "vendor-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "vendor-1", output.VendorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteVendorNotFound(t *testing.T) {
	handler, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "services", "service_areas", "specialties",
			"licensed_insured", "emergency_services", "service_hours", "job_size_ranges",
		}))

	_, err := handler.Execute(context.Background(), &Input{
		Request:  testRequest(),
		VendorID: "missing",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VENDOR_NOT_FOUND")
}

func TestExecuteServesCachedScore(t *testing.T) {
	handler, mock := newTestHandler(t)

	first, err := handler.Execute(context.Background(), &Input{
		Request: testRequest(),
		Vendor:  testVendor(),
	})
	require.NoError(t, err)

	// No query expectations are registered, so a repeat score for the same
	// pairing must be answered from the cache rather than resolved from the
	// database.
	second, err := handler.Execute(context.Background(), &Input{
		Request:  testRequest(),
		VendorID: "vendor-1",
	})
	require.NoError(t, err)

	assert.Equal(t, first.Result.TotalScore, second.Result.TotalScore)
	assert.Equal(t, first.Result.Confidence, second.Result.Confidence)
	assert.Equal(t, first.ConfigVersion, second.ConfigVersion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteUnidentifiedRequestsNeverShareCache(t *testing.T) {
	handler, _ := newTestHandler(t)

	plumbing := testRequest()
	plumbing.ID = ""
	first, err := handler.Execute(context.Background(), &Input{
		Request: plumbing,
		Vendor:  testVendor(),
	})
	require.NoError(t, err)

	// A second request without an ID for the same vendor must be scored on
	// its own merits, not answered from the first request's cache entry.
	hvac := matching.ServiceRequest{
		ServiceType: "hvac_repair",
		Urgency:     matching.UrgencyFlexible,
		ZipCode:     "90210",
		CreatedAt:   time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
	}
	second, err := handler.Execute(context.Background(), &Input{
		Request: hvac,
		Vendor:  testVendor(),
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.Result.TotalScore, second.Result.TotalScore)
	assert.Less(t, second.Result.TotalScore, first.Result.TotalScore)
}

func TestExecuteNoVendorSupplied(t *testing.T) {
	handler, _ := newTestHandler(t)

	_, err := handler.Execute(context.Background(), &Input{Request: testRequest()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MATCH_SCORE_FAILED")
}
