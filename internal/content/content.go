// Package content serves the daily lesson items and keeps the glossary in
// step with them.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/example/aihub/internal/progress"
	"github.com/example/aihub/pkg/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of dates kept in the lesson cache.
const DefaultCacheSize = 128

// InfoStore persists lesson items.
type InfoStore interface {
	ListByDate(ctx context.Context, date string) ([]models.AIInfo, error)
	Put(ctx context.Context, item *models.AIInfo) error
	DeleteByDate(ctx context.Context, date string) error
	Dates(ctx context.Context) ([]string, error)
}

// Glossary receives every term attached to saved lesson items.
type Glossary interface {
	Upsert(ctx context.Context, items []models.TermItem) error
}

// Item is lesson content without a slot assignment.
type Item struct {
	Title   string            `json:"title"`
	Content string            `json:"content"`
	Terms   []models.TermItem `json:"terms"`
}

// Service reads and writes lesson items through an LRU cache keyed by date.
type Service struct {
	infos    InfoStore
	glossary Glossary
	cache    *lru.Cache[string, []models.AIInfo]
	log      *slog.Logger
}

// NewService creates a lesson service. A non-positive cacheSize selects
// DefaultCacheSize.
func NewService(infos InfoStore, glossary Glossary, cacheSize int, logger *slog.Logger) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.New[string, []models.AIInfo](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create lesson cache: %w", err)
	}
	return &Service{infos: infos, glossary: glossary, cache: cache, log: logger}, nil
}

// ItemsByDate returns the lesson items of date ordered by index. A date
// without content yields an empty list. The result is a copy callers may
// modify.
func (s *Service) ItemsByDate(ctx context.Context, date string) ([]models.AIInfo, error) {
	if !progress.ValidDate(date) {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", progress.ErrInvalidInput, date)
	}
	if items, ok := s.cache.Get(date); ok {
		return cloneItems(items), nil
	}
	items, err := s.infos.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.AIInfo{}
	}
	s.cache.Add(date, items)
	return cloneItems(items), nil
}

func cloneItems(items []models.AIInfo) []models.AIInfo {
	out := slices.Clone(items)
	for i := range out {
		out[i].Terms = slices.Clone(out[i].Terms)
	}
	return out
}

// Add stores items in the free slots of date, lowest index first. Items
// missing a title or content are ignored, as are items beyond the free
// slots. It returns every item of the date afterwards.
func (s *Service) Add(ctx context.Context, date string, items []Item) ([]models.AIInfo, error) {
	existing, err := s.ItemsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[int]bool, len(existing))
	for _, it := range existing {
		taken[it.ItemIndex] = true
	}

	pending := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Title) == "" || strings.TrimSpace(it.Content) == "" {
			continue
		}
		pending = append(pending, it)
	}

	for idx := 0; idx < models.MaxItemsPerDay && len(pending) > 0; idx++ {
		if taken[idx] {
			continue
		}
		it := pending[0]
		pending = pending[1:]
		if err := s.Put(ctx, &models.AIInfo{
			Date:      date,
			ItemIndex: idx,
			Title:     it.Title,
			Content:   it.Content,
			Terms:     it.Terms,
		}); err != nil {
			return nil, err
		}
	}
	if len(pending) > 0 {
		s.log.Warn("lesson slots full, items dropped", "date", date, "dropped", len(pending))
	}
	return s.ItemsByDate(ctx, date)
}

// Put stores item in its slot, replacing what was there.
func (s *Service) Put(ctx context.Context, item *models.AIInfo) error {
	if !progress.ValidDate(item.Date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", progress.ErrInvalidInput, item.Date)
	}
	if item.ItemIndex < 0 || item.ItemIndex >= models.MaxItemsPerDay {
		return fmt.Errorf("%w: item index %d out of range", progress.ErrInvalidInput, item.ItemIndex)
	}
	defer s.cache.Remove(item.Date)
	if err := s.infos.Put(ctx, item); err != nil {
		return err
	}
	if err := s.glossary.Upsert(ctx, item.Terms); err != nil {
		return err
	}
	return nil
}

// DeleteDate removes every item of date.
func (s *Service) DeleteDate(ctx context.Context, date string) error {
	defer s.cache.Remove(date)
	return s.infos.DeleteByDate(ctx, date)
}

// Dates lists the dates with lesson content.
func (s *Service) Dates(ctx context.Context) ([]string, error) {
	return s.infos.Dates(ctx)
}
