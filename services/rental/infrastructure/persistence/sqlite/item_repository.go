package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ghuser/equiprent/pkg/database"
	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
	"github.com/ghuser/equiprent/services/rental/domain/models"
	"github.com/ghuser/equiprent/services/rental/domain/repositories"
)

var _ repositories.ItemRepository = (*ItemRepository)(nil)

const itemColumns = `id, name, daily_price, category, description, image_path, created_at`

// ItemRepository implements repositories.ItemRepository on SQLite.
type ItemRepository struct {
	db *database.Database
}

func NewItemRepository(database *database.Database) *ItemRepository {
	return &ItemRepository{db: database}
}

func (r *ItemRepository) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rentaldomain.ErrItemNotFound
		}
		return nil, storeError("query item", err)
	}
	return item, nil
}

func (r *ItemRepository) ListItems(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, storeError("list items", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, storeError("scan item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list items", err)
	}
	return items, nil
}

func (r *ItemRepository) UpdateImagePath(ctx context.Context, id int64, path string) error {
	res, err := r.db.DB().ExecContext(ctx, `UPDATE items SET image_path = ? WHERE id = ?`, path, id)
	if err != nil {
		return storeError("update item image", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeError("update item image", err)
	}
	if n == 0 {
		return rentaldomain.ErrItemNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*models.Item, error) {
	var (
		item                         models.Item
		category, description, image sql.NullString
		createdAt                    string
	)
	if err := s.Scan(&item.ID, &item.Name, &item.DailyPrice, &category, &description, &image, &createdAt); err != nil {
		return nil, err
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}
	item.Category = nullable(category)
	item.Description = nullable(description)
	item.ImagePath = nullable(image)
	item.CreatedAt = t
	return &item, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// parseTimestamp accepts what the schema default and formatTimestamp write,
// plus SQLite's own "YYYY-MM-DD HH:MM:SS" for rows loaded by hand.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", s)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
