package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ghuser/equiprent/pkg/database"
	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
	"github.com/ghuser/equiprent/services/rental/domain/models"
	"github.com/ghuser/equiprent/services/rental/domain/repositories"
	"github.com/ghuser/equiprent/services/rental/infrastructure/persistence/postgres/db"
)

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db *database.Database
}

// NewItemRepository returns an ItemRepository backed by the given pool.
func NewItemRepository(database *database.Database) *ItemRepository {
	return &ItemRepository{db: database}
}

// GetItem returns ErrItemNotFound if no row has id.
func (r *ItemRepository) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rentaldomain.ErrItemNotFound
		}
		return nil, storeError("query item", err)
	}
	return rowToItem(row), nil
}

func (r *ItemRepository) ListItems(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItems(ctx)
	if err != nil {
		return nil, storeError("list items", err)
	}
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, nil
}

// UpdateImagePath sets the item's image reference. Returns ErrItemNotFound
// when no row matched.
func (r *ItemRepository) UpdateImagePath(ctx context.Context, id int64, path string) error {
	n, err := db.New(r.db.DB()).UpdateItemImagePath(ctx, db.UpdateItemImagePathParams{
		ID:        id,
		ImagePath: sql.NullString{String: path, Valid: true},
	})
	if err != nil {
		return storeError("update item image", err)
	}
	if n == 0 {
		return rentaldomain.ErrItemNotFound
	}
	return nil
}

// rowToItem maps a db.RentalItem to a domain models.Item.
func rowToItem(row db.RentalItem) *models.Item {
	return &models.Item{
		ID:          row.ID,
		Name:        row.Name,
		DailyPrice:  row.DailyPrice,
		Category:    nullable(row.Category),
		Description: nullable(row.Description),
		ImagePath:   nullable(row.ImagePath),
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
