package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bourbonvault/backend/internal/domain"
)

func newMock(t *testing.T) (*Repositories, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewRepositories(db), mock
}

var ts = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestInitSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range schema {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, InitSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchema_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS profiles").WillReturnError(errors.New("permission denied"))
	assert.Error(t, InitSchema(context.Background(), db))
}

func TestProfileRepository_GetByUser(t *testing.T) {
	columns := []string{"user_id", "display_name", "bio", "location", "favorite_style", "website",
		"twitter_handle", "flavor_preferences", "avatar_url", "onboarding_completed",
		"subscription_tier", "created_at", "updated_at"}

	tests := []struct {
		name      string
		mockQuery func(mock sqlmock.Sqlmock)
		wantErr   error
		check     func(t *testing.T, p *domain.Profile)
	}{
		{
			name: "found",
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).AddRow("u1", "Sam", "", "Louisville", "wheated", "", "",
					"{Vanilla,\"Brown Sugar\"}", "", true, "premium", ts, ts)
				mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").WithArgs("u1").WillReturnRows(rows)
			},
			check: func(t *testing.T, p *domain.Profile) {
				assert.Equal(t, "Sam", p.DisplayName)
				assert.Equal(t, []string{"Vanilla", "Brown Sugar"}, p.FlavorPreferences)
				assert.Equal(t, domain.TierPremium, p.SubscriptionTier)
				assert.True(t, p.OnboardingCompleted)
			},
		},
		{
			name: "missing profile",
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM profiles").WithArgs("u1").WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, mock := newMock(t)
			tt.mockQuery(mock)

			p, err := repos.Profiles.GetByUser(context.Background(), "u1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestProfileRepository_Upsert(t *testing.T) {
	repos, mock := newMock(t)
	mock.ExpectExec("INSERT INTO profiles (.+) ON CONFLICT \\(user_id\\) DO UPDATE").
		WithArgs("u1", "Sam", "", "", "", "", "", sqlmock.AnyArg(), "", false, "free", ts, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repos.Profiles.Upsert(context.Background(), &domain.Profile{
		UserID: "u1", DisplayName: "Sam", SubscriptionTier: domain.TierFree, CreatedAt: ts, UpdatedAt: ts,
	})
	assert.NoError(t, err)
}

func TestTastingNoteRepository_ListByUser(t *testing.T) {
	repos, mock := newMock(t)

	columns := []string{"id", "user_id", "bourbon_id", "bourbon_name", "visible_color", "bouquet", "taste",
		"finish", "overall_thoughts", "discernible_flavors", "rating", "location", "glassware",
		"water_added", "ice_added", "photo_url", "tasted_at", "created_at", "updated_at"}
	rows := sqlmock.NewRows(columns).
		AddRow("n2", "u1", "bookers", "Booker's Bourbon", "#8B4513", "", "", "", "", "{Nuts,Oak}", 4.5,
			"", "", false, false, "", ts.Add(time.Hour), ts, ts).
		AddRow("n1", "u1", "makers-mark", "Maker's Mark", "", "", "", "", "", "{}", nil,
			"", "", true, false, "", ts, ts, ts)
	mock.ExpectQuery("SELECT (.+) FROM tasting_notes WHERE user_id = \\$1 ORDER BY tasted_at DESC").
		WithArgs("u1").WillReturnRows(rows)

	notes, err := repos.TastingNotes.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, notes, 2)

	require.NotNil(t, notes[0].Rating)
	assert.Equal(t, 4.5, *notes[0].Rating)
	assert.Equal(t, []string{"Nuts", "Oak"}, notes[0].DiscernibleFlavors)

	assert.Nil(t, notes[1].Rating)
	assert.Equal(t, []string{}, notes[1].DiscernibleFlavors)
	assert.True(t, notes[1].WaterAdded)
}

func TestTastingNoteRepository_Create(t *testing.T) {
	repos, mock := newMock(t)
	rating := 4.0
	note := &domain.TastingNote{
		ID: "n1", UserID: "u1", BourbonID: "bookers", BourbonName: "Booker's Bourbon",
		DiscernibleFlavors: []string{"Oak"}, Rating: &rating, TastedAt: ts, CreatedAt: ts, UpdatedAt: ts,
	}

	mock.ExpectExec("INSERT INTO tasting_notes").
		WithArgs("n1", "u1", "bookers", "Booker's Bourbon", "", "", "", "", "", sqlmock.AnyArg(), 4.0,
			"", "", false, false, "", ts, ts, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repos.TastingNotes.Create(context.Background(), note))
}

func TestTastingNoteRepository_DeleteMissing(t *testing.T) {
	repos, mock := newMock(t)
	mock.ExpectExec("DELETE FROM tasting_notes").WithArgs("n1", "u1").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repos.TastingNotes.Delete(context.Background(), "u1", "n1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoriteRepository(t *testing.T) {
	t.Run("duplicate maps to ErrAlreadyExists", func(t *testing.T) {
		repos, mock := newMock(t)
		mock.ExpectExec("INSERT INTO favorites").
			WithArgs("f1", "u1", "bookers", ts).
			WillReturnError(&pq.Error{Code: uniqueViolation, Message: "duplicate key value"})

		err := repos.Favorites.Add(context.Background(), &domain.Favorite{ID: "f1", UserID: "u1", BourbonID: "bookers", CreatedAt: ts})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("list", func(t *testing.T) {
		repos, mock := newMock(t)
		rows := sqlmock.NewRows([]string{"id", "user_id", "bourbon_id", "created_at"}).
			AddRow("f2", "u1", "weller-special-reserve", ts.Add(time.Minute)).
			AddRow("f1", "u1", "bookers", ts)
		mock.ExpectQuery("SELECT (.+) FROM favorites WHERE user_id").WithArgs("u1").WillReturnRows(rows)

		favs, err := repos.Favorites.ListByUser(context.Background(), "u1")
		require.NoError(t, err)
		require.Len(t, favs, 2)
		assert.Equal(t, "weller-special-reserve", favs[0].BourbonID)
	})

	t.Run("remove missing", func(t *testing.T) {
		repos, mock := newMock(t)
		mock.ExpectExec("DELETE FROM favorites").WithArgs("u1", "bookers").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repos.Favorites.Remove(context.Background(), "u1", "bookers")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCollectionRepository(t *testing.T) {
	columns := []string{"id", "user_id", "bourbon_id", "status", "purchase_price", "acquired_date", "notes", "created_at", "updated_at"}

	t.Run("get with optional fields", func(t *testing.T) {
		repos, mock := newMock(t)
		rows := sqlmock.NewRows(columns).AddRow("c1", "u1", "blantons-original", "own", 64.99, ts, "gift", ts, ts)
		mock.ExpectQuery("SELECT (.+) FROM collection_items WHERE id").WithArgs("c1", "u1").WillReturnRows(rows)

		item, err := repos.Collection.GetByID(context.Background(), "u1", "c1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOwn, item.Status)
		require.NotNil(t, item.PurchasePrice)
		assert.Equal(t, 64.99, *item.PurchasePrice)
		require.NotNil(t, item.AcquiredDate)
		assert.True(t, ts.Equal(*item.AcquiredDate))
	})

	t.Run("list without optional fields", func(t *testing.T) {
		repos, mock := newMock(t)
		rows := sqlmock.NewRows(columns).AddRow("c1", "u1", "bookers", "want", nil, nil, "", ts, ts)
		mock.ExpectQuery("SELECT (.+) FROM collection_items WHERE user_id").WithArgs("u1").WillReturnRows(rows)

		items, err := repos.Collection.ListByUser(context.Background(), "u1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Nil(t, items[0].PurchasePrice)
		assert.Nil(t, items[0].AcquiredDate)
	})

	t.Run("update missing", func(t *testing.T) {
		repos, mock := newMock(t)
		mock.ExpectExec("UPDATE collection_items").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repos.Collection.Update(context.Background(), &domain.CollectionItem{ID: "c1", UserID: "u1", Status: domain.StatusTried})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		repos, mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM collection_items").WillReturnError(errors.New("connection reset"))

		_, err := repos.Collection.ListByUser(context.Background(), "u1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "connection reset")
	})
}
