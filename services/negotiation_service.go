package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jkimani85/coaching_marketplace/models"
	"github.com/jkimani85/coaching_marketplace/utils"
	"go.uber.org/zap"
)

// counterResponseWindow is how long a student has to answer a
// counter-proposal before the request lapses.
const counterResponseWindow = 48 * time.Hour

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NegotiationService drives the booking-request state machine:
// pending -> {accepted, declined, counter_proposed, expired} and
// counter_proposed -> {accepted, declined, expired}. Accepted, declined
// and expired are terminal. Every transition persists through a
// compare-and-swap on the status the caller read, so two concurrent
// accepts on the same pending request cannot both succeed.
type NegotiationService struct {
	bookings BookingStore
	profiles ProfileStore
	now      func() time.Time
	log      *zap.Logger
}

func NewNegotiationService(bookings BookingStore, profiles ProfileStore) *NegotiationService {
	return &NegotiationService{
		bookings: bookings,
		profiles: profiles,
		now:      time.Now,
		log:      utils.GetLogger(),
	}
}

func (s *NegotiationService) ListForTutor(tutorID uuid.UUID, tutorType, status string, page, pageSize int) ([]models.BookingRequest, Pagination, error) {
	page, pageSize = clampPage(page, pageSize)
	if status != "" && !isKnownStatus(status) {
		return nil, Pagination{}, ErrValidation("unknown status filter %q", status)
	}

	requests, total, err := s.bookings.ListForTutor(tutorID, tutorType, status, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, Pagination{}, err
	}
	return requests, paginate(page, pageSize, total), nil
}

func (s *NegotiationService) GetDetailForTutor(tutorID uuid.UUID, tutorType string, requestID uuid.UUID) (*models.BookingRequest, error) {
	req, err := s.bookings.FindForTutor(requestID, tutorID, tutorType)
	if err != nil {
		return nil, notFoundBooking(err)
	}
	return req, nil
}

func (s *NegotiationService) ListForStudent(studentID uuid.UUID, status string, page, pageSize int) ([]models.BookingRequest, Pagination, error) {
	page, pageSize = clampPage(page, pageSize)
	if status != "" && !isKnownStatus(status) {
		return nil, Pagination{}, ErrValidation("unknown status filter %q", status)
	}

	requests, total, err := s.bookings.ListForStudent(studentID, status, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, Pagination{}, err
	}
	return requests, paginate(page, pageSize, total), nil
}

func (s *NegotiationService) GetDetailForStudent(studentID, requestID uuid.UUID) (*models.BookingRequest, error) {
	req, err := s.bookings.FindForStudent(requestID, studentID)
	if err != nil {
		return nil, notFoundBooking(err)
	}
	return req, nil
}

// Accept confirms a pending request at its proposed window. The final
// price is derived from the rate fixed at creation and the proposed
// duration.
func (s *NegotiationService) Accept(tutorID uuid.UUID, tutorType string, requestID uuid.UUID, note *string) (*models.BookingRequest, error) {
	req, err := s.bookings.FindForTutor(requestID, tutorID, tutorType)
	if err != nil {
		return nil, notFoundBooking(err)
	}
	if err := s.guardTransition(req, "accept", models.BookingStatusPending); err != nil {
		return nil, err
	}

	now := s.now()
	if !req.ProposedStartTime.After(now) {
		return nil, ErrValidation("proposed start time is no longer in the future")
	}

	finalPrice := roundPrice(req.HourlyRate * float64(req.ProposedDurationMinutes) / 60)
	acceptedBy := models.AcceptedByTutor

	req.Status = models.BookingStatusAccepted
	req.FinalPrice = &finalPrice
	req.AcceptedBy = &acceptedBy
	req.AcceptedAt = &now
	setNote(&req.TutorNote, note)

	if err := s.bookings.UpdateWithStatus(req, models.BookingStatusPending); err != nil {
		return nil, casError(err)
	}

	s.log.Info("booking request accepted",
		zap.String("request_id", req.ID.String()),
		zap.Float64("final_price", finalPrice))
	return req, nil
}

// Decline rejects a request. Tutors may decline both a fresh request and
// one they have already countered.
func (s *NegotiationService) Decline(tutorID uuid.UUID, tutorType string, requestID uuid.UUID, note *string) (*models.BookingRequest, error) {
	req, err := s.bookings.FindForTutor(requestID, tutorID, tutorType)
	if err != nil {
		return nil, notFoundBooking(err)
	}
	if err := s.guardTransition(req, "decline", models.BookingStatusPending, models.BookingStatusCounterProposed); err != nil {
		return nil, err
	}

	previous := req.Status
	now := s.now()
	req.Status = models.BookingStatusDeclined
	req.DeclinedAt = &now
	setNote(&req.TutorNote, note)

	if err := s.bookings.UpdateWithStatus(req, previous); err != nil {
		return nil, casError(err)
	}
	return req, nil
}

// CounterPropose offers the student an alternate window. The estimated
// price is recomputed from the counter duration and the response window
// is reset to 48 hours.
func (s *NegotiationService) CounterPropose(tutorID uuid.UUID, tutorType string, requestID uuid.UUID, newStart, newEnd time.Time, note *string) (*models.BookingRequest, error) {
	req, err := s.bookings.FindForTutor(requestID, tutorID, tutorType)
	if err != nil {
		return nil, notFoundBooking(err)
	}
	if err := s.guardTransition(req, "counter-propose", models.BookingStatusPending); err != nil {
		return nil, err
	}

	now := s.now()
	if !newStart.After(now) {
		return nil, ErrValidation("counter-proposed start time must be in the future")
	}
	if !newEnd.After(newStart) {
		return nil, ErrValidation("counter-proposed end time must be after the start time")
	}

	counterDuration := int(math.Round(newEnd.Sub(newStart).Minutes()))
	profile, err := s.profiles.Find(tutorID, tutorType)
	if err != nil && !errors.Is(err, ErrNoRecord) {
		return nil, err
	}
	if profile != nil {
		if counterDuration < profile.MinDurationMinutes {
			return nil, ErrValidation("counter-proposed duration of %d minutes is below your minimum of %d minutes", counterDuration, profile.MinDurationMinutes)
		}
		if counterDuration > profile.MaxDurationMinutes {
			return nil, ErrValidation("counter-proposed duration of %d minutes exceeds your maximum of %d minutes", counterDuration, profile.MaxDurationMinutes)
		}
	}

	req.CounterProposedStartTime = &newStart
	req.CounterProposedEndTime = &newEnd
	req.CounterProposedDurationMinutes = &counterDuration
	req.EstimatedPrice = roundPrice(req.HourlyRate * float64(counterDuration) / 60)
	req.Status = models.BookingStatusCounterProposed
	req.ExpiresAt = now.Add(counterResponseWindow)
	setNote(&req.TutorNote, note)

	if err := s.bookings.UpdateWithStatus(req, models.BookingStatusPending); err != nil {
		return nil, casError(err)
	}

	s.log.Info("booking request counter-proposed",
		zap.String("request_id", req.ID.String()),
		zap.Int("counter_duration_minutes", counterDuration))
	return req, nil
}

// AcceptCounter lets the student confirm the tutor's counter-proposal.
// Scoped to the booking's own student id.
func (s *NegotiationService) AcceptCounter(studentID, requestID uuid.UUID) (*models.BookingRequest, error) {
	req, err := s.bookings.FindForStudent(requestID, studentID)
	if err != nil {
		return nil, notFoundBooking(err)
	}
	if err := s.guardTransition(req, "accept", models.BookingStatusCounterProposed); err != nil {
		return nil, err
	}

	now := s.now()
	if req.CounterProposedStartTime == nil || req.CounterProposedDurationMinutes == nil {
		return nil, ErrValidation("booking request has no counter-proposal to accept")
	}
	if !req.CounterProposedStartTime.After(now) {
		return nil, ErrValidation("counter-proposed start time is no longer in the future")
	}

	finalPrice := roundPrice(req.HourlyRate * float64(*req.CounterProposedDurationMinutes) / 60)
	acceptedBy := models.AcceptedByStudent

	req.Status = models.BookingStatusAccepted
	req.FinalPrice = &finalPrice
	req.AcceptedBy = &acceptedBy
	req.AcceptedAt = &now

	if err := s.bookings.UpdateWithStatus(req, models.BookingStatusCounterProposed); err != nil {
		return nil, casError(err)
	}

	s.log.Info("counter-proposal accepted",
		zap.String("request_id", req.ID.String()),
		zap.Float64("final_price", finalPrice))
	return req, nil
}

// DeclineCounter lets the student reject the tutor's counter-proposal.
func (s *NegotiationService) DeclineCounter(studentID, requestID uuid.UUID, note *string) (*models.BookingRequest, error) {
	req, err := s.bookings.FindForStudent(requestID, studentID)
	if err != nil {
		return nil, notFoundBooking(err)
	}
	if err := s.guardTransition(req, "decline", models.BookingStatusCounterProposed); err != nil {
		return nil, err
	}

	now := s.now()
	req.Status = models.BookingStatusDeclined
	req.DeclinedAt = &now
	setNote(&req.StudentNote, note)

	if err := s.bookings.UpdateWithStatus(req, models.BookingStatusCounterProposed); err != nil {
		return nil, casError(err)
	}
	return req, nil
}

// ExpiryState tags whether a request can still be acted on.
type ExpiryState int

const (
	ExpiryActive ExpiryState = iota
	ExpiryJustLapsed
)

func expiryStateOf(req *models.BookingRequest, now time.Time) ExpiryState {
	if req.ExpiresAt.Before(now) {
		return ExpiryJustLapsed
	}
	return ExpiryActive
}

// guardTransition enforces the two preconditions shared by every
// state-changing operation: the request must not have lapsed, and its
// current status must be one of the allowed source states. A lapsed
// request is flipped to expired in storage before the failure is
// reported; this is the one deliberate exception to
// validate-before-persist.
func (s *NegotiationService) guardTransition(req *models.BookingRequest, operation string, from ...string) error {
	if isTerminalStatus(req.Status) {
		return ErrInvalidTransition(operation, req.Status)
	}

	if expiryStateOf(req, s.now()) == ExpiryJustLapsed {
		previous := req.Status
		req.Status = models.BookingStatusExpired
		if err := s.bookings.UpdateWithStatus(req, previous); err != nil {
			return casError(err)
		}
		s.log.Info("booking request lapsed",
			zap.String("request_id", req.ID.String()),
			zap.String("previous_status", previous))
		return ErrExpired("booking request has expired")
	}

	for _, status := range from {
		if req.Status == status {
			return nil
		}
	}
	return ErrInvalidTransition(operation, req.Status)
}

func isTerminalStatus(status string) bool {
	switch status {
	case models.BookingStatusAccepted, models.BookingStatusDeclined, models.BookingStatusExpired:
		return true
	}
	return false
}

func isKnownStatus(status string) bool {
	switch status {
	case models.BookingStatusPending, models.BookingStatusCounterProposed,
		models.BookingStatusAccepted, models.BookingStatusDeclined, models.BookingStatusExpired:
		return true
	}
	return false
}

// roundPrice applies half-up rounding to 2 decimal places. Used for both
// estimated and final prices so the two can never disagree on cents.
func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

func setNote(dst **string, note *string) {
	if note == nil {
		return
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return
	}
	*dst = &trimmed
}

func notFoundBooking(err error) error {
	if errors.Is(err, ErrNoRecord) {
		return ErrNotFound("booking request not found")
	}
	return err
}

func casError(err error) error {
	if errors.Is(err, ErrStaleStatus) {
		return ErrConflict("booking request was modified by another operation, please reload")
	}
	return err
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func paginate(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
}
