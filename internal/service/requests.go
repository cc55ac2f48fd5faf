package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/pitstop/internal/events"
	"github.com/UnknownOlympus/pitstop/internal/metrics"
	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/UnknownOlympus/pitstop/internal/repository"
)

// RequestPageSize is the number of requests shown per page on the garage dashboard.
const RequestPageSize = 5

// NewRequest is a driver's request for a service.
type NewRequest struct {
	GarageID    int64
	UserID      int64
	ServiceType string
	VehicleType models.VehicleType // defaults to the garage's vehicle type
	Contact     string
	Message     string
}

// RequestPage is one page of a garage's requests plus per-status totals.
type RequestPage struct {
	Items      []models.ServiceRequest      `json:"notifications"`
	Counts     map[models.RequestStatus]int `json:"counts"`
	Total      int                          `json:"total"`
	Page       int                          `json:"page"`
	TotalPages int                          `json:"total_pages"`
}

// RequestService manages service requests between drivers and garages.
type RequestService struct {
	log       *slog.Logger
	requests  repository.RequestStore
	garages   repository.GarageStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewRequestService(
	log *slog.Logger,
	requests repository.RequestStore,
	garages repository.GarageStore,
	publisher events.Publisher,
	metrics *metrics.Metrics,
) *RequestService {
	return &RequestService{
		log:       log,
		requests:  requests,
		garages:   garages,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Create stores a pending request for a service the garage offers.
func (s *RequestService) Create(ctx context.Context, in NewRequest) (*models.ServiceRequest, error) {
	in.Contact = strings.TrimSpace(in.Contact)
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	if in.Contact == "" || in.ServiceType == "" {
		return nil, fmt.Errorf("%w: service type and contact are required", ErrInvalidInput)
	}

	garage, err := s.garages.GarageByID(ctx, in.GarageID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: garage %d", ErrNotFound, in.GarageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load garage: %w", err)
	}

	if !garage.Offers(in.ServiceType) {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidInput, models.ErrUnknownServiceType, in.ServiceType)
	}
	if in.VehicleType == "" {
		in.VehicleType = garage.VehicleType
	}
	if in.VehicleType != garage.VehicleType {
		return nil, fmt.Errorf("%w: garage does not work on %s", ErrInvalidInput, in.VehicleType)
	}

	stored, err := s.requests.CreateRequest(ctx, models.ServiceRequest{
		GarageID:    garage.ID,
		UserID:      in.UserID,
		ServiceType: in.ServiceType,
		VehicleType: in.VehicleType,
		Contact:     in.Contact,
		Message:     strings.TrimSpace(in.Message),
		Status:      models.StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.metrics.RequestTransition.WithLabelValues(string(stored.Status)).Inc()
	s.publish(ctx, events.NewRequestEvent(events.KindCreated, *stored, ""))
	s.log.InfoContext(ctx, "Service request created", "request", stored.ID, "garage", stored.GarageID)

	return stored, nil
}

// ListForGarage returns a page of the requests received by the garage owned by ownerID,
// optionally filtered by status. Pages are numbered from 1.
func (s *RequestService) ListForGarage(
	ctx context.Context,
	ownerID int64,
	status models.RequestStatus,
	page int,
) (*RequestPage, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if page < 1 {
		page = 1
	}

	garage, err := s.garages.GarageByOwner(ctx, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: no garage for account %d", ErrNotFound, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load garage: %w", err)
	}

	all, err := s.requests.RequestsForGarage(ctx, garage.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	result := &RequestPage{
		Items:  []models.ServiceRequest{},
		Counts: make(map[models.RequestStatus]int, len(models.AllStatuses)),
		Page:   page,
	}
	for _, st := range models.AllStatuses {
		result.Counts[st] = 0
	}

	filtered := make([]models.ServiceRequest, 0, len(all))
	for _, req := range all {
		result.Counts[req.Status]++
		if status == "" || req.Status == status {
			filtered = append(filtered, req)
		}
	}

	result.Total = len(filtered)
	result.TotalPages = (len(filtered) + RequestPageSize - 1) / RequestPageSize
	if start := (page - 1) * RequestPageSize; start < len(filtered) {
		end := min(start+RequestPageSize, len(filtered))
		result.Items = filtered[start:end]
	}

	return result, nil
}

// UpdateStatus moves a request to the next status. Only the owner of the garage the
// request was sent to may do that.
func (s *RequestService) UpdateStatus(
	ctx context.Context,
	requestID, ownerID int64,
	next models.RequestStatus,
) (*models.ServiceRequest, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, next)
	}

	req, err := s.requests.RequestByID(ctx, requestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: request %d", ErrNotFound, requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load request: %w", err)
	}

	garage, err := s.garages.GarageByID(ctx, req.GarageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load garage: %w", err)
	}
	if garage.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	previous := req.Status
	if err = previous.CanTransition(next); err != nil {
		return nil, err
	}

	err = s.requests.UpdateRequestStatus(ctx, req.ID, previous, next)
	if errors.Is(err, repository.ErrStale) {
		return nil, fmt.Errorf("%w: request was updated by someone else", models.ErrInvalidTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}

	req.Status = next
	req.UpdatedAt = s.now()

	s.metrics.RequestTransition.WithLabelValues(string(next)).Inc()
	s.publish(ctx, events.NewRequestEvent(events.KindStatusChanged, *req, previous))
	s.log.InfoContext(ctx, "Service request updated", "request", req.ID, "from", previous, "to", next)

	return req, nil
}

// publish never fails the caller: the request is already stored.
func (s *RequestService) publish(ctx context.Context, event events.RequestEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WarnContext(ctx, "Failed to publish request event", "request", event.RequestID, "error", err)
	}
}
