package report

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amalkitchen-be/internal/order"
)

func TestRepository_StatusCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Branch scoped", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"status", "count"}).
			AddRow("packed", 3).
			AddRow("pending", 5)

		mock.ExpectQuery(`(?s)SELECT status, COUNT\(\*\) FROM orders WHERE branch = \$1 GROUP BY status`).
			WithArgs("Durban").
			WillReturnRows(rows)

		counts, err := repo.StatusCounts(ctx, "Durban")
		require.NoError(t, err)
		assert.Equal(t, []StatusCount{
			{Status: order.StatusPacked, Count: 3},
			{Status: order.StatusPending, Count: 5},
		}, counts)
	})

	t.Run("Global", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT status, COUNT\(\*\) FROM orders GROUP BY status`).
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("pending", 12))

		counts, err := repo.StatusCounts(ctx, "")
		require.NoError(t, err)
		require.Len(t, counts, 1)
		assert.Equal(t, 12, counts[0].Count)
	})
}

func TestRepository_RevenueByDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"day", "revenue"}).
		AddRow(day, 1250.0).
		AddRow(day.AddDate(0, 0, 1), 800.5)

	mock.ExpectQuery(`(?s)SELECT DATE_TRUNC\('day', created_at\).*FROM orders.*INTERVAL '7 days'.*status <> \$1.*AND branch = \$2.*GROUP BY day`).
		WithArgs("cancelled", "Joburg").
		WillReturnRows(rows)

	buckets, err := repo.RevenueByDay(context.Background(), "Joburg")
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, 1250.0, buckets[0].Revenue)
	assert.Equal(t, day, buckets[0].Day)
}

func TestRepository_RevenueByBranch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"branch", "revenue"}).
		AddRow("Cape Town", 500.0).
		AddRow("Durban", 4200.0)

	mock.ExpectQuery(`(?s)SELECT branch, COALESCE\(SUM\(total\), 0\).*FROM orders.*WHERE status <> \$1.*GROUP BY branch`).
		WithArgs("cancelled").
		WillReturnRows(rows)

	totals, err := repo.RevenueByBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []BranchRevenue{
		{Branch: "Cape Town", Revenue: 500},
		{Branch: "Durban", Revenue: 4200},
	}, totals)
}
