package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/catalog"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/storage"
)

// Service applies the pure tracker transforms to the persisted
// per-profile lists. Each write stores the full updated list; a
// failed write is logged and the in-flight result still returned,
// the next view rewrites the lists anyway.
type Service struct {
	store storage.Storage
	repo  catalog.Repository
	log   *zap.Logger
}

func NewService(store storage.Storage, repo catalog.Repository, log *zap.Logger) *Service {
	return &Service{store: store, repo: repo, log: log}
}

// RecordView updates both bounded lists for the profile.
func (s *Service) RecordView(ctx context.Context, profileID string, entry domain.ViewEntry) error {
	recent, err := s.loadEntries(ctx, recentKey(profileID))
	if err != nil {
		return err
	}
	full, err := s.loadEntries(ctx, viewHistoryKey(profileID))
	if err != nil {
		return err
	}

	s.persist(ctx, recentKey(profileID), RecordView(recent, entry, RecentlyViewedCap))
	s.persist(ctx, viewHistoryKey(profileID), RecordView(full, entry, ViewHistoryCap))
	return nil
}

// RecentlyViewed returns the profile's short list hydrated from the
// catalog. Entries whose service no longer exists are skipped.
func (s *Service) RecentlyViewed(ctx context.Context, profileID string) ([]domain.CatalogService, error) {
	entries, err := s.loadEntries(ctx, recentKey(profileID))
	if err != nil {
		return nil, err
	}

	out := make([]domain.CatalogService, 0, len(entries))
	for _, entry := range entries {
		service, err := s.repo.GetService(ctx, entry.ServiceID)
		if err != nil {
			if errors.Is(err, catalog.ErrServiceNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *service)
	}
	return out, nil
}

// Recommend ranks the catalog for the profile from its long view
// history and favorite categories.
func (s *Service) Recommend(ctx context.Context, profileID string) ([]domain.CatalogService, error) {
	viewed, err := s.loadEntries(ctx, viewHistoryKey(profileID))
	if err != nil {
		return nil, err
	}
	favorites, err := s.loadFavorites(ctx, profileID)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	return Recommend(all, viewed, favorites), nil
}

// ToggleFavoriteCategory flips the category in the profile's
// favorites and returns the updated list.
func (s *Service) ToggleFavoriteCategory(ctx context.Context, profileID, category string) ([]string, error) {
	favorites, err := s.loadFavorites(ctx, profileID)
	if err != nil {
		return nil, err
	}
	updated := ToggleFavorite(favorites, category)

	data, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, favoritesKey(profileID), data); err != nil {
		s.log.Warn("persist favorites failed",
			zap.String("profile_id", profileID), zap.Error(err))
	}
	return updated, nil
}

func (s *Service) loadEntries(ctx context.Context, key string) ([]domain.ViewEntry, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []domain.ViewEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode view history: %w", err)
	}
	return entries, nil
}

func (s *Service) loadFavorites(ctx context.Context, profileID string) ([]string, error) {
	data, err := s.store.Get(ctx, favoritesKey(profileID))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var favorites []string
	if err := json.Unmarshal(data, &favorites); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	return favorites, nil
}

func (s *Service) persist(ctx context.Context, key string, entries []domain.ViewEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		s.log.Warn("marshal view history failed", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		s.log.Warn("persist view history failed", zap.String("key", key), zap.Error(err))
	}
}

func recentKey(profileID string) string {
	return fmt.Sprintf("history:recent:%s", profileID)
}

func viewHistoryKey(profileID string) string {
	return fmt.Sprintf("history:views:%s", profileID)
}

func favoritesKey(profileID string) string {
	return fmt.Sprintf("history:favorites:%s", profileID)
}
