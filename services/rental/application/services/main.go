package services

import (
	"github.com/ghuser/equiprent/pkg/app"
	"github.com/ghuser/equiprent/pkg/cache"
	"github.com/ghuser/equiprent/pkg/config"
	"github.com/ghuser/equiprent/pkg/lock"
	"github.com/ghuser/equiprent/services/rental/domain/repositories"
	"github.com/ghuser/equiprent/services/rental/infrastructure/persistence/postgres"
	"github.com/ghuser/equiprent/services/rental/infrastructure/persistence/sqlite"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Admission    *AdmissionController
	Availability *AvailabilityService
	Catalog      *CatalogService
}

// New wires all rental application services with infrastructure from the
// Application container. The store engine follows a.Db.Driver().
func New(a *app.Application) *Services {
	var (
		items        repositories.ItemRepository
		reservations repositories.ReservationRepository
	)
	if a.Db.Driver() == config.StoreSQLite {
		items = sqlite.NewItemRepository(a.Db)
		reservations = sqlite.NewReservationRepository(a.Db)
	} else {
		items = postgres.NewItemRepository(a.Db)
		reservations = postgres.NewReservationRepository(a.Db, a.EventBus)
	}

	// Interface fields stay nil (not typed-nil) without Redis.
	var (
		itemCache   ItemCache
		rangesCache RangesCache
	)
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
		rangesCache = cache.NewRangesCache(a.Redis, a.Config.BookedRangesCacheTTL)
	}

	locker := a.Locker
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}

	return &Services{
		Admission:    NewAdmissionController(items, reservations, locker, rangesCache, a.Config.AdmissionLockWait, a.Logger),
		Availability: NewAvailabilityService(reservations, rangesCache, a.Logger),
		Catalog:      NewCatalogService(items, itemCache, a.Logger),
	}
}
