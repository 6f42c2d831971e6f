package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/equiprent/pkg/lock"
	"github.com/ghuser/equiprent/pkg/logger"
	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
	"github.com/ghuser/equiprent/services/rental/domain/models"
	"github.com/ghuser/equiprent/services/rental/domain/repositories"
	domainsvcs "github.com/ghuser/equiprent/services/rental/domain/services"
)

const instrumentationName = "github.com/ghuser/equiprent/services/rental"

// Admission outcomes, used as the outcome label and log field.
const (
	OutcomeAdmitted             = "admitted"
	OutcomeInvalid              = "invalid"
	OutcomeItemNotFound         = "item_not_found"
	OutcomeOverlap              = "overlap"
	OutcomeStoreUnavailable     = "store_unavailable"
	OutcomeAdmissionUnavailable = "admission_unavailable"
	OutcomeCanceled             = "canceled"
	OutcomeError                = "error"
)

// DefaultAdmissionWait bounds how long Book waits for the item's admission
// right when no wait is configured.
const DefaultAdmissionWait = 5 * time.Second

// AdmissionController decides whether a booking request becomes a
// reservation. Decisions for one item are serialized through the Locker;
// the store's overlap constraint backs that up.
type AdmissionController struct {
	items        repositories.ItemRepository
	reservations repositories.ReservationRepository
	locker       lock.Locker
	ranges       RangesCache
	wait         time.Duration
	log          logger.Logger

	tracer   trace.Tracer
	outcomes metric.Int64Counter
	waited   metric.Float64Histogram
}

// NewAdmissionController wires the controller. ranges may be nil. A
// non-positive wait falls back to DefaultAdmissionWait.
func NewAdmissionController(
	items repositories.ItemRepository,
	reservations repositories.ReservationRepository,
	locker lock.Locker,
	ranges RangesCache,
	wait time.Duration,
	log logger.Logger,
) *AdmissionController {
	if wait <= 0 {
		wait = DefaultAdmissionWait
	}
	meter := otel.Meter(instrumentationName)
	outcomes, _ := meter.Int64Counter("rental.admission.outcomes",
		metric.WithDescription("Booking requests by admission outcome."))
	waited, _ := meter.Float64Histogram("rental.admission.wait",
		metric.WithDescription("Time spent waiting for an item's admission right."),
		metric.WithUnit("s"))

	return &AdmissionController{
		items:        items,
		reservations: reservations,
		locker:       locker,
		ranges:       ranges,
		wait:         wait,
		log:          log,
		tracer:       otel.Tracer(instrumentationName),
		outcomes:     outcomes,
		waited:       waited,
	}
}

// Book admits req or reports why not. On success exactly one reservation
// row exists for it; on any error none does.
//
// Waiting for the admission right honours ctx. Once the insert is issued it
// runs detached from ctx so a client disconnect cannot abort a commit.
func (c *AdmissionController) Book(ctx context.Context, req models.BookingRequest) (res *models.Reservation, err error) {
	ctx, span := c.tracer.Start(ctx, "rental.book",
		trace.WithAttributes(attribute.Int64("item_id", req.ItemID)))
	defer func() {
		outcome := OutcomeOf(err)
		attrs := attribute.String("outcome", outcome)
		span.SetAttributes(attrs)
		if res != nil {
			span.SetAttributes(attribute.Int64("reservation_id", res.ID))
		}
		if outcome == OutcomeStoreUnavailable || outcome == OutcomeError {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		c.outcomes.Add(ctx, 1, metric.WithAttributes(attrs))
		span.End()
	}()

	valid, err := domainsvcs.ValidateBooking(req)
	if err != nil {
		c.log.DebugContext(ctx, "booking rejected", "item_id", req.ItemID, "outcome", OutcomeInvalid, "error", err)
		return nil, err
	}
	req = valid

	release, err := c.acquire(ctx, req.ItemID)
	if err != nil {
		c.log.WarnContext(ctx, "admission right not obtained", "item_id", req.ItemID, "error", err)
		return nil, err
	}
	defer release()

	existing, err := c.reservations.ListRanges(ctx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	if clash, ok := domainsvcs.FirstOverlap(req.Range, existing); ok {
		c.log.InfoContext(ctx, "booking conflicts",
			"item_id", req.ItemID,
			"outcome", OutcomeOverlap,
			"requested", req.Range.String(),
			"conflict", clash.String(),
		)
		return nil, rentaldomain.ErrReservationOverlap
	}

	item, err := c.items.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	// Detach before the write; the admission right is still held.
	writeCtx := context.WithoutCancel(ctx)
	res, err = c.reservations.Insert(writeCtx, models.NewReservation{
		ItemID:      req.ItemID,
		Range:       req.Range,
		RenterName:  req.RenterName,
		RenterEmail: req.RenterEmail,
		TotalPrice:  domainsvcs.Price(item.DailyPrice, req.Range),
	})
	if err != nil {
		if errors.Is(err, rentaldomain.ErrReservationOverlap) {
			c.log.WarnContext(ctx, "store rejected overlapping booking", "item_id", req.ItemID, "outcome", OutcomeOverlap)
		}
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	if c.ranges != nil {
		if err := c.ranges.Delete(writeCtx, req.ItemID); err != nil {
			c.log.WarnContext(ctx, "booked ranges cache eviction failed", "item_id", req.ItemID, "error", err)
		}
	}

	c.log.InfoContext(ctx, "reservation admitted",
		"item_id", res.ItemID,
		"reservation_id", res.ID,
		"outcome", OutcomeAdmitted,
		"total_price", res.TotalPrice.StringFixed(2),
	)
	return res, nil
}

// acquire takes the admission right for itemID within c.wait.
func (c *AdmissionController) acquire(ctx context.Context, itemID int64) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.wait)
	defer cancel()

	start := time.Now()
	release, err := c.locker.Acquire(waitCtx, "item:"+strconv.FormatInt(itemID, 10))
	c.waited.Record(ctx, time.Since(start).Seconds())
	if err == nil {
		return release, nil
	}
	if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("wait for admission: %w", ctx.Err())
	}
	if errors.Is(err, lock.ErrTimeout) || errors.Is(err, lock.ErrUnavailable) {
		return nil, fmt.Errorf("%w: %v", rentaldomain.ErrAdmissionUnavailable, err)
	}
	return nil, fmt.Errorf("wait for admission: %w", err)
}

// OutcomeOf names the admission outcome err represents.
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeAdmitted
	case errors.Is(err, rentaldomain.ErrInvalidReservation):
		return OutcomeInvalid
	case errors.Is(err, rentaldomain.ErrItemNotFound):
		return OutcomeItemNotFound
	case errors.Is(err, rentaldomain.ErrReservationOverlap):
		return OutcomeOverlap
	case errors.Is(err, rentaldomain.ErrStoreUnavailable):
		return OutcomeStoreUnavailable
	case errors.Is(err, rentaldomain.ErrAdmissionUnavailable):
		return OutcomeAdmissionUnavailable
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}
