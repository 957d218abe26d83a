package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bourbonvault/backend/internal/domain"
)

// dashboardTopFlavors is how many favourite descriptors the dashboard shows
const dashboardTopFlavors = 5

// DashboardService assembles the per-user journal summary
type DashboardService struct {
	notes      *TastingNoteService
	favorites  *FavoriteService
	collection *CollectionService
}

// NewDashboardService creates the dashboard service
func NewDashboardService(notes *TastingNoteService, favorites *FavoriteService, collection *CollectionService) *DashboardService {
	return &DashboardService{notes: notes, favorites: favorites, collection: collection}
}

// Get loads notes, favorites and collection stats concurrently. Any failure fails the whole summary.
func (s *DashboardService) Get(ctx context.Context, userID string) (*domain.Dashboard, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var (
		notes []domain.TastingNote
		favs  []domain.Favorite
		stats domain.CollectionStats
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notes, err = s.notes.List(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		favs, err = s.favorites.List(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.collection.Stats(gCtx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dash := &domain.Dashboard{
		NotesCount:     len(notes),
		FavoritesCount: len(favs),
		Collection:     stats,
	}

	var (
		tags  []string
		total float64
		rated int
	)
	for _, n := range notes {
		tags = append(tags, n.DiscernibleFlavors...)
		if n.Rating != nil {
			total += *n.Rating
			rated++
		}
	}
	if rated > 0 {
		avg := total / float64(rated)
		dash.AverageRating = &avg
	}
	dash.TopFlavors = nonNil(DeriveFlavorProfile(tags, dashboardTopFlavors))

	return dash, nil
}
