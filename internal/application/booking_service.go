package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/hotelbook/service-booking/internal/domain/booking"
	roomDomain "github.com/hotelbook/service-booking/internal/domain/room"
	"github.com/hotelbook/service-booking/internal/events"
	"github.com/hotelbook/service-booking/internal/metrics"
	"github.com/hotelbook/service-booking/pkg/auth"
	"github.com/hotelbook/service-booking/pkg/domain"
	"github.com/hotelbook/service-booking/pkg/kafka"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var tracer = otel.Tracer("github.com/hotelbook/service-booking/internal/application")

// EventPublisher sends CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	RoomID        uuid.UUID `json:"room_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"max=50"`
}

// QuoteRequest asks for the price of a stay without booking it.
type QuoteRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// UpdateStatusRequest is the admin status overwrite.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID            uuid.UUID       `json:"id"`
	RoomID        uuid.UUID       `json:"room_id"`
	UserID        uuid.UUID       `json:"user_id"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	DurationHours int             `json:"duration_hours"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// QuoteDTO is the price preview for a stay.
type QuoteDTO struct {
	RoomID        uuid.UUID       `json:"room_id"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	DurationHours int             `json:"duration_hours"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// BookingOption customizes a BookingService.
type BookingOption func(*BookingService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

// WithStrictTransitions enforces the forward-only status graph on cancel and
// status updates.
func WithStrictTransitions(strict bool) BookingOption {
	return func(s *BookingService) { s.strict = strict }
}

// WithLocation sets the hotel time zone used to resolve calendar days.
func WithLocation(loc *time.Location) BookingOption {
	return func(s *BookingService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithPublishTimeout bounds each background event publish.
func WithPublishTimeout(d time.Duration) BookingOption {
	return func(s *BookingService) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo      bookingDomain.BookingRepository
	rooms     roomDomain.RoomDirectory
	pricing   bookingDomain.PricingStrategy
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    *zap.Logger

	now            func() time.Time
	strict         bool
	location       *time.Location
	publishTimeout time.Duration
	inflight       sync.WaitGroup
}

// NewBookingService creates a new BookingService. publisher and m may be nil.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	rooms roomDomain.RoomDirectory,
	pricing bookingDomain.PricingStrategy,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts ...BookingOption,
) *BookingService {
	s := &BookingService{
		repo:      repo,
		rooms:     rooms,
		pricing:   pricing,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
		location:  time.UTC,

		publishTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBooking confirms a stay for userID after checking the room, the
// interval and overlapping confirmed bookings.
func (s *BookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (result *BookingDTO, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.CreateBooking", trace.WithAttributes(
		attribute.String("room.id", req.RoomID.String()),
	))
	started := time.Now()
	defer func() {
		s.metrics.ObserveCreate(req.PaymentMethodOrDefault(), errorCode(err), time.Since(started))
		endSpan(span, err)
	}()

	rm, err := s.bookableRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	candidate := bookingDomain.NewInterval(req.StartTime.UTC(), req.EndTime.UTC())
	if err := bookingDomain.ValidateInterval(candidate.Start, candidate.End, now); err != nil {
		return nil, err
	}
	method, err := bookingDomain.NormalizePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var bk *bookingDomain.Booking
	err = s.repo.WithRoomLock(ctx, rm.ID(), func(repo bookingDomain.BookingRepository) error {
		existing, err := repo.FindConfirmedByRoom(ctx, rm.ID(), &candidate)
		if err != nil {
			return err
		}
		if bookingDomain.HasConflict(candidate, intervalsOf(existing)) {
			return bookingDomain.ErrSlotUnavailable
		}

		cost, err := s.pricing.Calculate(bookingDomain.PricingParams{
			DailyRate:     rm.DailyRate(),
			DurationHours: bookingDomain.DurationHours(candidate.Start, candidate.End),
		})
		if err != nil {
			return err
		}

		bk, err = bookingDomain.NewBooking(rm.ID(), userID, candidate.Start, candidate.End, cost, method, now)
		if err != nil {
			return err
		}
		return repo.Save(ctx, bk)
	})
	if err != nil {
		if errors.Is(err, bookingDomain.ErrSlotUnavailable) {
			s.logger.Info("booking rejected: slot unavailable",
				zap.String("room_id", rm.ID().String()),
				zap.Time("start_time", candidate.Start),
				zap.Time("end_time", candidate.End),
			)
		}
		if _, ok := domain.AsDomainError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info("booking confirmed",
		zap.String("booking_id", bk.ID().String()),
		zap.String("room_id", bk.RoomID().String()),
		zap.String("user_id", userID.String()),
		zap.String("total_cost", bk.TotalCost().String()),
	)

	s.publishEvent(ctx, events.BookingCreated, bk.ID().String(), events.BookingCreatedEvent{
		BookingID:     bk.ID(),
		RoomID:        bk.RoomID(),
		UserID:        bk.UserID(),
		StartTime:     bk.StartTime(),
		EndTime:       bk.EndTime(),
		DurationHours: bk.DurationHours(),
		TotalCost:     bk.TotalCost(),
		PaymentMethod: bk.PaymentMethod(),
		OccurredAt:    now.UTC(),
	})

	dto := toBookingDTO(bk)
	return &dto, nil
}

// QuoteBooking prices a stay with the same room and interval checks as
// CreateBooking but without the availability check.
func (s *BookingService) QuoteBooking(ctx context.Context, req QuoteRequest) (*QuoteDTO, error) {
	rm, err := s.bookableRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	start, end := req.StartTime.UTC(), req.EndTime.UTC()
	if err := bookingDomain.ValidateInterval(start, end, s.now()); err != nil {
		return nil, err
	}

	hours := bookingDomain.DurationHours(start, end)
	cost, err := s.pricing.Calculate(bookingDomain.PricingParams{DailyRate: rm.DailyRate(), DurationHours: hours})
	if err != nil {
		return nil, err
	}
	return &QuoteDTO{
		RoomID:        rm.ID(),
		StartTime:     start,
		EndTime:       end,
		DurationHours: hours,
		DailyRate:     rm.DailyRate(),
		TotalCost:     cost,
	}, nil
}

// GetMyBookings returns the caller's bookings, newest first.
func (s *BookingService) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]BookingDTO, error) {
	bookings, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// GetBooking returns a booking visible to the caller.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, userID uuid.UUID, role auth.Role) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.CanBeViewedBy(userID, role) {
		return nil, bookingDomain.ErrNotBookingOwner
	}
	dto := toBookingDTO(bk)
	return &dto, nil
}

// GetRoomBookings returns the confirmed bookings of a room. A non-empty date
// (YYYY-MM-DD or RFC 3339) restricts the result to bookings overlapping that
// calendar day in the hotel time zone.
func (s *BookingService) GetRoomBookings(ctx context.Context, roomID uuid.UUID, date string) ([]BookingDTO, error) {
	var window *bookingDomain.Interval
	if date != "" {
		day, err := ParseDay(date, s.location)
		if err != nil {
			return nil, err
		}
		w := bookingDomain.DayWindow(day)
		window = &w
	}

	bookings, err := s.repo.FindConfirmedByRoom(ctx, roomID, window)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// CancelBooking cancels a booking on behalf of its owner or an admin.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID, role auth.Role) (result *BookingDTO, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.CancelBooking", trace.WithAttributes(
		attribute.String("booking.id", bookingID.String()),
	))
	defer func() { endSpan(span, err) }()

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Cancel(userID, role, s.strict); err != nil {
		s.logger.Info("cancel rejected",
			zap.String("booking_id", bookingID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}
	s.metrics.IncCancelled()

	s.publishEvent(ctx, events.BookingCancelled, bk.ID().String(), events.BookingCancelledEvent{
		BookingID:   bk.ID(),
		RoomID:      bk.RoomID(),
		UserID:      bk.UserID(),
		CancelledBy: userID,
		OccurredAt:  s.now().UTC(),
	})

	dto := toBookingDTO(bk)
	return &dto, nil
}

// UpdateStatus overwrites a booking's status (admin).
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string) (result *BookingDTO, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.UpdateStatus", trace.WithAttributes(
		attribute.String("booking.id", bookingID.String()),
		attribute.String("booking.status", status),
	))
	defer func() { endSpan(span, err) }()

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	oldStatus := bk.Status()
	if err := bk.SetStatus(bookingDomain.BookingStatus(strings.TrimSpace(status)), s.strict); err != nil {
		return nil, err
	}
	bk.IncrementVersion()

	if bk.Status() == bookingDomain.StatusConfirmed && oldStatus != bookingDomain.StatusConfirmed {
		// re-confirming takes the slot back, so it needs the same check as create
		err = s.repo.WithRoomLock(ctx, bk.RoomID(), func(repo bookingDomain.BookingRepository) error {
			interval := bk.Interval()
			existing, err := repo.FindConfirmedByRoom(ctx, bk.RoomID(), &interval)
			if err != nil {
				return err
			}
			others := make([]*bookingDomain.Booking, 0, len(existing))
			for _, other := range existing {
				if other.ID() != bk.ID() {
					others = append(others, other)
				}
			}
			if bookingDomain.HasConflict(interval, intervalsOf(others)) {
				return bookingDomain.ErrSlotUnavailable
			}
			return repo.Update(ctx, bk)
		})
	} else {
		err = s.repo.Update(ctx, bk)
	}
	if err != nil {
		if errors.Is(err, bookingDomain.ErrSlotUnavailable) {
			s.logger.Info("status update rejected: slot unavailable",
				zap.String("booking_id", bookingID.String()),
				zap.String("room_id", bk.RoomID().String()),
			)
		}
		return nil, err
	}
	s.metrics.IncStatusChange(string(bk.Status()))

	s.logger.Info("booking status updated",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(bk.Status())),
	)

	s.publishEvent(ctx, events.BookingStatusChanged, bk.ID().String(), events.BookingStatusChangedEvent{
		BookingID:  bk.ID(),
		RoomID:     bk.RoomID(),
		OldStatus:  string(oldStatus),
		NewStatus:  string(bk.Status()),
		OccurredAt: s.now().UTC(),
	})

	dto := toBookingDTO(bk)
	return &dto, nil
}

// --- Admin methods ---

// ListAllBookings returns all bookings newest first (admin). A non-positive
// limit returns every booking.
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns booking counts per status (admin). Every status is
// present in the result.
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	byStatus := make(map[string]int64, len(bookingDomain.AllStatuses))
	for _, st := range bookingDomain.AllStatuses {
		byStatus[string(st)] = 0
	}
	var total int64
	for status, c := range counts {
		byStatus[status] = c
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      byStatus,
	}, nil
}

// --- Helpers ---

// PaymentMethodOrDefault returns the requested payment method or the default.
func (r CreateBookingRequest) PaymentMethodOrDefault() string {
	if m := strings.TrimSpace(r.PaymentMethod); m != "" && len(m) <= 50 {
		return m
	}
	return bookingDomain.DefaultPaymentMethod
}

// ParseDay resolves a date to a time whose calendar day is the one requested.
// A bare YYYY-MM-DD is read in loc; an RFC 3339 timestamp keeps its own offset.
func ParseDay(date string, loc *time.Location) (time.Time, error) {
	if d, err := time.ParseInLocation(dateLayout, date, loc); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, date); err == nil {
		return t, nil
	}
	return time.Time{}, domain.NewValidationError(
		fmt.Sprintf("invalid date %q: expected YYYY-MM-DD or RFC 3339", date))
}

func (s *BookingService) bookableRoom(ctx context.Context, roomID uuid.UUID) (*roomDomain.Room, error) {
	rm, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !rm.IsActive() {
		return nil, bookingDomain.ErrRoomInactive
	}
	return rm, nil
}

func intervalsOf(bookings []*bookingDomain.Booking) []bookingDomain.Interval {
	out := make([]bookingDomain.Interval, len(bookings))
	for i, bk := range bookings {
		out[i] = bk.Interval()
	}
	return out
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:            bk.ID(),
		RoomID:        bk.RoomID(),
		UserID:        bk.UserID(),
		StartTime:     bk.StartTime(),
		EndTime:       bk.EndTime(),
		DurationHours: bk.DurationHours(),
		TotalCost:     bk.TotalCost(),
		PaymentMethod: bk.PaymentMethod(),
		Status:        string(bk.Status()),
		Version:       bk.Version(),
		CreatedAt:     bk.CreatedAt(),
		UpdatedAt:     bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func errorCode(err error) string {
	if err == nil {
		return ""
	}
	if de, ok := domain.AsDomainError(err); ok {
		return de.Code
	}
	return "INTERNAL_ERROR"
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// publishEvent hands the event to the broker in the background so the
// request never waits on it. The context keeps ctx values (trace) but not its
// cancellation, bounded by the publish timeout.
func (s *BookingService) publishEvent(ctx context.Context, eventType, subject string, data interface{}) {
	if s.publisher == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent(events.EventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = subject

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
		defer cancel()

		if err := s.publisher.PublishEvent(pubCtx, events.TopicBookingEvents, cloudEvent); err != nil {
			s.metrics.IncEvent(eventType, false)
			s.logger.Error("failed to publish event",
				zap.String("topic", events.TopicBookingEvents),
				zap.String("event_type", eventType),
				zap.String("event_id", cloudEvent.ID),
				zap.Error(err),
			)
			return
		}
		s.metrics.IncEvent(eventType, true)
	}()
}

// Wait blocks until events handed to the publisher have been sent or have
// failed. Call it before closing the publisher.
func (s *BookingService) Wait() {
	s.inflight.Wait()
}
