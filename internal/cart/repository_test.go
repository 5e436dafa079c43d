package cart

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"items", "selected_region"}).
			AddRow([]byte(`[{"id":"samoosa","title":"Samoosa","price":10,"quantity":3,"region":"durban"}]`), "durban")

		mock.ExpectQuery(`(?s)SELECT items, selected_region.*FROM carts.*WHERE session_id = \$1`).
			WithArgs("sess-1").
			WillReturnRows(rows)

		snap, err := repo.Load(ctx, "sess-1")
		require.NoError(t, err)
		require.NotNil(t, snap)
		require.Len(t, snap.Items, 1)
		assert.Equal(t, "Samoosa", snap.Items[0].Title)
		assert.Equal(t, 3, snap.Items[0].Quantity)
		assert.Equal(t, "durban", snap.SelectedRegion)
	})

	t.Run("NoRows returns nil snapshot", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT items, selected_region.*FROM carts`).
			WithArgs("sess-2").
			WillReturnRows(sqlmock.NewRows([]string{"items", "selected_region"}))

		snap, err := repo.Load(ctx, "sess-2")
		assert.NoError(t, err)
		assert.Nil(t, snap)
	})

	t.Run("Corrupt items surface ErrCorruptSnapshot", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"items", "selected_region"}).
			AddRow([]byte(`{"not":"an array"`), "")

		mock.ExpectQuery(`(?s)SELECT items, selected_region.*FROM carts`).
			WithArgs("sess-3").
			WillReturnRows(rows)

		_, err := repo.Load(ctx, "sess-3")
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})
}

func TestRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`(?s)INSERT INTO carts \(session_id, items, selected_region, updated_at\)`).
		WithArgs("sess-1", sqlmock.AnyArg(), "durban").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Save(context.Background(), "sess-1", &Snapshot{
		Items:          []Item{{ID: "samoosa", Price: 10, Quantity: 2}},
		SelectedRegion: "durban",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM carts WHERE session_id = \$1`).
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
