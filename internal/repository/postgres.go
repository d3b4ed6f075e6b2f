package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"kantinchat/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Result caps enforced on every menu query. Callers can never force an
// unbounded scan regardless of what limit they pass in.
const (
	MinLimit = 1
	MaxLimit = 50
)

// MenuRepository handles read-only menu and kantin queries
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new PostgreSQL menu repository
func NewMenuRepository(dsn string, maxConn, maxIdleConn int) (*MenuRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MenuRepository{db: db}, nil
}

// Close closes the database connection
func (r *MenuRepository) Close() error {
	return r.db.Close()
}

// ClampLimit forces a result cap into [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// GetKantin returns an active kantin by id, or nil if none exists.
func (r *MenuRepository) GetKantin(ctx context.Context, kantinID string) (*model.Kantin, error) {
	var kantin model.Kantin
	query := `
		SELECT id, name, open_time, close_time, is_open, status
		FROM kantins
		WHERE id = $1 AND status = $2
	`
	err := r.db.GetContext(ctx, &kantin, query, kantinID, model.KantinStatusActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get kantin: %w", err)
	}
	return &kantin, nil
}

// FindItemsByName returns available items whose name partially matches,
// most-sold first. An empty kantinID searches across all active kantins.
func (r *MenuRepository) FindItemsByName(ctx context.Context, kantinID, name string, limit int) ([]model.MenuItem, error) {
	whereClauses, args := r.baseClauses(kantinID)
	argIndex := len(args) + 1

	whereClauses = append(whereClauses, fmt.Sprintf("m.name ILIKE $%d", argIndex))
	args = append(args, "%"+name+"%")
	argIndex++

	return r.selectItems(ctx, whereClauses, args, argIndex, ClampLimit(limit))
}

// SearchItems returns available items matching every filter in f,
// ordered by sold descending then price descending.
func (r *MenuRepository) SearchItems(ctx context.Context, kantinID string, f model.ItemFilter, limit int) ([]model.MenuItem, error) {
	whereClauses, args := r.baseClauses(kantinID)
	argIndex := len(args) + 1

	if f.Keyword != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(m.name ILIKE $%d OR m.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+f.Keyword+"%")
		argIndex++
	}
	if f.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("m.price <= $%d", argIndex))
		args = append(args, *f.MaxPrice)
		argIndex++
	}
	if len(f.Categories) > 0 {
		// any-of match on the jsonb tag array
		whereClauses = append(whereClauses, fmt.Sprintf("m.categories ?| $%d", argIndex))
		args = append(args, pq.Array(f.Categories))
		argIndex++
	}

	return r.selectItems(ctx, whereClauses, args, argIndex, ClampLimit(limit))
}

// RecommendUnderBudget returns available items priced at or below budget.
func (r *MenuRepository) RecommendUnderBudget(ctx context.Context, kantinID string, budget int64, categories []string, limit int) ([]model.MenuItem, error) {
	return r.SearchItems(ctx, kantinID, model.ItemFilter{MaxPrice: &budget, Categories: categories}, limit)
}

// baseClauses builds the filters shared by every item query: availability
// and active-kantin scoping.
func (r *MenuRepository) baseClauses(kantinID string) ([]string, []interface{}) {
	whereClauses := []string{"m.is_available = true", "k.status = 'active'"}
	args := []interface{}{}

	if kantinID != "" {
		whereClauses = append(whereClauses, "m.kantin_id = $1")
		args = append(args, kantinID)
	}
	return whereClauses, args
}

func (r *MenuRepository) selectItems(ctx context.Context, whereClauses []string, args []interface{}, argIndex, limit int) ([]model.MenuItem, error) {
	query := fmt.Sprintf(`
		SELECT
			m.id, m.kantin_id, m.name, m.price, m.description,
			m.is_available, m.categories, m.sold, m.image_url
		FROM menu_items m
		JOIN kantins k ON k.id = m.kantin_id
		WHERE %s
		ORDER BY m.sold DESC, m.price DESC
		LIMIT $%d
	`, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, limit)

	items := []model.MenuItem{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch menu items: %w", err)
	}
	return items, nil
}
