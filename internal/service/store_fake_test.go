package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"kantinchat/internal/model"
)

// fakeStore is an in-memory MenuStore for tests. It reproduces the
// repository's ordering and filter semantics on a fixed item slice and
// counts calls so tests can assert that validation short-circuits.
type fakeStore struct {
	kantin *model.Kantin
	items  []model.MenuItem

	failSearch bool

	mu    sync.Mutex // bundle fetches hit the store concurrently
	calls int
}

var errFakeStore = errors.New("store unavailable")

func (f *fakeStore) countCall() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeStore) GetKantin(ctx context.Context, kantinID string) (*model.Kantin, error) {
	f.countCall()
	if f.kantin != nil && f.kantin.ID == kantinID {
		return f.kantin, nil
	}
	return nil, nil
}

func (f *fakeStore) FindItemsByName(ctx context.Context, kantinID, name string, limit int) ([]model.MenuItem, error) {
	f.countCall()
	var out []model.MenuItem
	for _, item := range f.items {
		if !item.IsAvailable {
			continue
		}
		if kantinID != "" && item.KantinID != kantinID {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(name)) {
			out = append(out, item)
		}
	}
	return rankAndCap(out, limit), nil
}

func (f *fakeStore) SearchItems(ctx context.Context, kantinID string, filter model.ItemFilter, limit int) ([]model.MenuItem, error) {
	f.countCall()
	if f.failSearch {
		return nil, errFakeStore
	}
	var out []model.MenuItem
	for _, item := range f.items {
		if !item.IsAvailable {
			continue
		}
		if kantinID != "" && item.KantinID != kantinID {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.Keyword)) {
			continue
		}
		if filter.MaxPrice != nil && item.Price > *filter.MaxPrice {
			continue
		}
		if len(filter.Categories) > 0 {
			any := false
			for _, tag := range filter.Categories {
				if item.Categories.Contains(tag) {
					any = true
				}
			}
			if !any {
				continue
			}
		}
		out = append(out, item)
	}
	return rankAndCap(out, limit), nil
}

func (f *fakeStore) RecommendUnderBudget(ctx context.Context, kantinID string, budget int64, categories []string, limit int) ([]model.MenuItem, error) {
	return f.SearchItems(ctx, kantinID, model.ItemFilter{MaxPrice: &budget, Categories: categories}, limit)
}

// rankAndCap applies the store's sold-desc, price-desc ordering and cap.
func rankAndCap(items []model.MenuItem, limit int) []model.MenuItem {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0; j-- {
			a, b := items[j-1], items[j]
			if b.Sold > a.Sold || (b.Sold == a.Sold && b.Price > a.Price) {
				items[j-1], items[j] = b, a
			} else {
				break
			}
		}
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// testMenuItems is a small menu covering both sides of a bundle at
// varied prices and popularity.
func testMenuItems() []model.MenuItem {
	return []model.MenuItem{
		newItem(1, testKantinID, "Nasi Goreng", 12000, 120, CategoryMakanSiang),
		newItem(2, testKantinID, "Ayam Geprek", 15000, 90, CategoryMakanSiang, CategoryPedas),
		newItem(3, testKantinID, "Bubur Ayam", 10000, 60, CategorySarapan),
		newItem(4, testKantinID, "Es Teh", 5000, 150, CategoryMinuman),
		newItem(5, testKantinID, "Es Kopi Susu", 18000, 100, CategoryMinuman),
		newItem(6, testKantinID, "Jus Alpukat", 12000, 45, CategoryMinuman),
	}
}

func newItem(id int64, kantinID, name string, price, sold int64, tags ...string) model.MenuItem {
	return model.MenuItem{
		ID:          id,
		KantinID:    kantinID,
		Name:        name,
		Price:       price,
		Sold:        sold,
		IsAvailable: true,
		Categories:  model.JSONArray(tags),
	}
}
