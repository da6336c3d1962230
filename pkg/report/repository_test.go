package report

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/JMMonte/Accounting-suite/internal/test_utils"
	"github.com/JMMonte/Accounting-suite/pkg/allowance"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func storedReport(uid string) Report {
	return Report{
		Uid:      uid,
		Year:     2025,
		Month:    time.June,
		MaxDaily: 60,
		MaxTotal: 300,
		Total:    75,
		Days: []allowance.Day{
			categorizedDay(date(2025, time.June, 2), allowance.TierFull),
			categorizedDay(date(2025, time.June, 3), allowance.TierQuarter),
		},
		CreatedAt: time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepositoryImpl_StoreAndGet(t *testing.T) {
	// given
	ctx := context.Background()
	repo := NewReportRepo(db)

	// when
	stored, err := repo.Store(ctx, storedReport("repo-test-1"))
	require.NoError(t, err)
	assert.NotZero(t, stored.Id)

	// then
	found, err := repo.Get(ctx, "repo-test-1")
	require.NoError(t, err)
	assert.Equal(t, stored.Id, found.Id)
	assert.Equal(t, 2025, found.Year)
	assert.Equal(t, time.June, found.Month)
	assert.Equal(t, 75.0, found.Total)
	assert.WithinDuration(t, stored.CreatedAt, found.CreatedAt, time.Second)

	require.Len(t, found.Days, 2)
	assert.Equal(t, "2025-06-02", found.Days[0].Date.Format("2006-01-02"))
	assert.Equal(t, allowance.TierFull, found.Days[0].Tier)
	assert.Equal(t, "Reunião", found.Days[0].Objective)
	assert.Equal(t, "2025-06-03", found.Days[1].Date.Format("2006-01-02"))
	assert.Equal(t, allowance.TierQuarter, found.Days[1].Tier)
}

func TestRepositoryImpl_Get_NotFound(t *testing.T) {
	_, err := NewReportRepo(db).Get(context.Background(), "no-such-report")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestRepositoryImpl_List(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepo(db)

	older := storedReport("repo-list-older")
	older.Year = 2024
	_, err := repo.Store(ctx, older)
	require.NoError(t, err)
	_, err = repo.Store(ctx, storedReport("repo-list-newer"))
	require.NoError(t, err)

	reports, err := repo.List(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(reports), 2)

	// newest first, summaries only
	for i := 1; i < len(reports); i++ {
		prev := reports[i-1].Year*100 + int(reports[i-1].Month)
		curr := reports[i].Year*100 + int(reports[i].Month)
		assert.GreaterOrEqual(t, prev, curr)
	}
	for _, report := range reports {
		assert.Empty(t, report.Days)
	}
}

func TestRepositoryImpl_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepo(db)

	_, err := repo.Store(ctx, storedReport("repo-delete-me"))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, "repo-delete-me")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.Get(ctx, "repo-delete-me")
	assert.ErrorIs(t, err, ErrReportNotFound)

	deleted, err = repo.Delete(ctx, "repo-delete-me")
	require.NoError(t, err)
	assert.False(t, deleted)
}
