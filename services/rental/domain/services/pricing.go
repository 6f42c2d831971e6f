package services

import (
	"github.com/shopspring/decimal"

	"github.com/ghuser/equiprent/services/rental/domain/models"
)

// InclusiveDays counts both endpoints, floored at 1.
func InclusiveDays(r models.DateRange) int {
	days := r.Start.DaysUntil(r.End) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Price is dailyRate × InclusiveDays(r), rounded to cents.
func Price(dailyRate decimal.Decimal, r models.DateRange) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(InclusiveDays(r)))).Round(2)
}
