package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"kantinchat/internal/model"
)

// ErrInvalidBudget is returned when a bundle is requested with a
// non-positive budget. This is a caller contract violation, not an
// empty-result situation.
var ErrInvalidBudget = errors.New("bundle budget must be a positive amount")

// MenuStore is the read-only query surface the chat pipeline consumes.
// *repository.MenuRepository implements it.
type MenuStore interface {
	GetKantin(ctx context.Context, kantinID string) (*model.Kantin, error)
	FindItemsByName(ctx context.Context, kantinID, name string, limit int) ([]model.MenuItem, error)
	SearchItems(ctx context.Context, kantinID string, f model.ItemFilter, limit int) ([]model.MenuItem, error)
	RecommendUnderBudget(ctx context.Context, kantinID string, budget int64, categories []string, limit int) ([]model.MenuItem, error)
}

// ComboService builds food+drink bundle recommendations under a budget.
type ComboService struct {
	store      MenuStore
	fetchLimit int // candidate items per side
	topN       int // bundles returned
}

// NewComboService creates a combo service. fetchLimit bounds the cross
// product to fetchLimit^2 pairs.
func NewComboService(store MenuStore, fetchLimit, topN int) *ComboService {
	return &ComboService{
		store:      store,
		fetchLimit: fetchLimit,
		topN:       topN,
	}
}

// RecommendBundles returns up to topN food+drink pairs whose combined price
// fits the budget, best first. Preferred categories narrow the food side
// when they contain food tags. An empty slice means no pair fits; the
// caller decides how to phrase that.
func (s *ComboService) RecommendBundles(ctx context.Context, kantinID string, budget int64, preferred []string) ([]model.Bundle, error) {
	if budget <= 0 {
		return nil, ErrInvalidBudget
	}

	// The two candidate fetches are independent reads; run them
	// concurrently. A failed fetch degrades to an empty side.
	var (
		wg     sync.WaitGroup
		foods  []model.MenuItem
		drinks []model.MenuItem
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		foods = s.fetchSide(ctx, kantinID, budget, FoodCategories(preferred))
	}()
	go func() {
		defer wg.Done()
		drinks = s.fetchSide(ctx, kantinID, budget, []string{CategoryMinuman})
	}()
	wg.Wait()

	if len(foods) == 0 || len(drinks) == 0 {
		return []model.Bundle{}, nil
	}

	// Pre-filtered sides are an optimization; the summed-price check here
	// is the authoritative budget guard.
	var bundles []model.Bundle
	for _, f := range foods {
		for _, d := range drinks {
			total := f.Price + d.Price
			if total > budget {
				continue
			}
			bundles = append(bundles, model.Bundle{
				Food:      f,
				Drink:     d,
				Total:     total,
				Remainder: budget - total,
			})
		}
	}

	// Most popular pair first; on ties prefer the pair that uses the
	// budget most fully.
	sort.SliceStable(bundles, func(i, j int) bool {
		pi := bundles[i].Food.Sold + bundles[i].Drink.Sold
		pj := bundles[j].Food.Sold + bundles[j].Drink.Sold
		if pi != pj {
			return pi > pj
		}
		return bundles[i].Remainder < bundles[j].Remainder
	})

	if len(bundles) > s.topN {
		bundles = bundles[:s.topN]
	}
	return bundles, nil
}

func (s *ComboService) fetchSide(ctx context.Context, kantinID string, budget int64, categories []string) []model.MenuItem {
	items, err := s.store.RecommendUnderBudget(ctx, kantinID, budget, categories, s.fetchLimit)
	if err != nil {
		log.Printf("Warning: bundle candidate fetch failed for %v: %v", categories, err)
		return nil
	}
	return items
}
