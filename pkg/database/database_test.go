package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: 5432, User: "reviews", Password: "p@ss word", DBName: "review_insights", SSLMode: "disable"}
	assert.Equal(t, "postgres://reviews:p%40ss%20word@db:5432/review_insights?sslmode=disable", cfg.DSN())
}

func TestBackoff_WithinJitter(t *testing.T) {
	for attempt := 0; attempt < 3; attempt++ {
		base := baseBackoff << attempt
		lo := time.Duration(float64(base) * (1 - jitterFraction))
		hi := time.Duration(float64(base) * (1 + jitterFraction))
		for i := 0; i < 20; i++ {
			d := backoff(attempt)
			assert.GreaterOrEqual(t, d, lo)
			assert.LessOrEqual(t, d, hi)
		}
	}
}

func TestRetry_StopsOnSuccess(t *testing.T) {
	calls := 0
	err := retry(context.Background(), "op", nil, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry(ctx, "connect", nil, func() error {
		calls++
		return errors.New("refused")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRunMigrations_AppliesPending(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	fsys := fstest.MapFS{
		"001_init.up.sql":   {Data: []byte("CREATE TABLE a (id INT)")},
		"001_init.down.sql": {Data: []byte("DROP TABLE a")},
		"002_more.up.sql":   {Data: []byte("CREATE TABLE b (id INT)")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	mock.ExpectQuery("SELECT EXISTS").WithArgs("001_init.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery("SELECT EXISTS").WithArgs("002_more.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE b").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("002_more.up.sql").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	var buf bytes.Buffer
	require.NoError(t, RunMigrations(context.Background(), mock, fsys, newTestLogger(&buf)))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), "002_more.up.sql")
}

func TestRunMigrations_ExecFailure(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	fsys := fstest.MapFS{"001_init.up.sql": {Data: []byte("CREATE TABLE broken")}}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("001_init.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE broken").WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err = RunMigrations(context.Background(), mock, fsys, newTestLogger(&bytes.Buffer{}))
	assert.ErrorContains(t, err, "execute migration 001_init.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTraceQuery_SlowQueryLogged(t *testing.T) {
	var buf bytes.Buffer
	SetSlowQueryLogging(time.Nanosecond, newTestLogger(&buf))
	t.Cleanup(func() { SetSlowQueryLogging(0, nil) })

	_, end := TraceQuery(context.Background(), "ListReviews", "SELECT 1")
	time.Sleep(time.Millisecond)
	end(errors.New("timeout"))

	assert.Contains(t, buf.String(), "slow query")
	assert.Contains(t, buf.String(), "ListReviews")
	assert.Contains(t, buf.String(), "timeout")
}

func TestTraceQuery_Disabled(t *testing.T) {
	var buf bytes.Buffer
	SetSlowQueryLogging(0, newTestLogger(&buf))
	t.Cleanup(func() { SetSlowQueryLogging(0, nil) })

	_, end := TraceQuery(context.Background(), "CountReviews", "SELECT COUNT(*)")
	end(nil)

	assert.Zero(t, buf.Len())
}

func TestPoolStatsCollector_Describe(t *testing.T) {
	c := NewPoolStatsCollector(nil, "review-insights")

	ch := make(chan *prometheus.Desc, 16)
	c.Describe(ch)
	close(ch)

	var names []string
	for d := range ch {
		names = append(names, d.String())
	}
	require.Len(t, names, 7)
	assert.Contains(t, names[0], "db_pool_acquired_connections")

	var _ prometheus.Collector = c
}

func TestRegisterPoolMetrics_Gather(t *testing.T) {
	// pgxpool.New does not dial, so no server is needed to read pool stats.
	pool, err := pgxpool.New(context.Background(), "postgres://reviews@127.0.0.1:1/review_insights?pool_max_conns=4")
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterPoolMetrics(reg, pool, "review-insights"))
	assert.Error(t, RegisterPoolMetrics(reg, pool, "review-insights"), "duplicate registration")

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		byName[f.GetName()] = f
	}
	require.Len(t, byName, 7)

	maxConns := byName["db_pool_max_connections"]
	require.NotNil(t, maxConns)
	assert.Equal(t, dto.MetricType_GAUGE, maxConns.GetType())
	m := maxConns.GetMetric()[0]
	assert.Equal(t, 4.0, m.GetGauge().GetValue())
	require.Len(t, m.GetLabel(), 1)
	assert.Equal(t, "service", m.GetLabel()[0].GetName())
	assert.Equal(t, "review-insights", m.GetLabel()[0].GetValue())

	assert.Equal(t, dto.MetricType_COUNTER, byName["db_pool_acquire_count_total"].GetType())
}
