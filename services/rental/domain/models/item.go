package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a rentable piece of equipment. Optional catalog fields are nil
// when unset.
type Item struct {
	ID          int64
	Name        string
	DailyPrice  decimal.Decimal
	Category    *string
	Description *string
	ImagePath   *string
	CreatedAt   time.Time
}
