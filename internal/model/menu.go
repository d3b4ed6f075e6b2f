package model

import (
	"database/sql/driver"
	"encoding/json"
)

// Kantin lifecycle statuses. Only active kantins are visible to the chat gateway.
const (
	KantinStatusPending  = "pending"
	KantinStatusActive   = "active"
	KantinStatusRejected = "rejected"
)

// MenuItem represents a single menu entry owned by a kantin.
// The gateway only ever reads menu items; availability and sold counters
// are maintained by the ordering system.
type MenuItem struct {
	ID          int64     `json:"id" db:"id"`
	KantinID    string    `json:"kantin_id" db:"kantin_id"`
	Name        string    `json:"name" db:"name"`
	Price       int64     `json:"price" db:"price"` // rupiah, no decimals
	Description *string   `json:"description,omitempty" db:"description"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	Categories  JSONArray `json:"categories,omitempty" db:"categories"`
	Sold        int64     `json:"sold" db:"sold"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
}

// Kantin represents a food-court vendor.
type Kantin struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	OpenTime  *string `json:"open_time,omitempty" db:"open_time"`
	CloseTime *string `json:"close_time,omitempty" db:"close_time"`
	IsOpen    bool    `json:"is_open" db:"is_open"`
	Status    string  `json:"status" db:"status"`
}

// Bundle is a food+drink pair recommendation. Bundles are derived per request
// and never persisted. Remainder is budget minus total, >= 0 by construction.
type Bundle struct {
	Food      MenuItem `json:"makanan"`
	Drink     MenuItem `json:"minuman"`
	Total     int64    `json:"total"`
	Remainder int64    `json:"sisa"`
}

// ItemFilter holds the optional conjunctive filters for a menu search.
// Categories matches items carrying any of the given tags.
type ItemFilter struct {
	Keyword    string
	MaxPrice   *int64
	Categories []string
}

// JSONArray represents a JSON array field (jsonb in PostgreSQL)
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}

// Contains reports whether the array holds the given tag.
func (j JSONArray) Contains(tag string) bool {
	for _, t := range j {
		if t == tag {
			return true
		}
	}
	return false
}
