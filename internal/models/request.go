package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransition is returned when a service request cannot move to the requested status.
var ErrInvalidTransition = errors.New("invalid status transition")

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "Pending"
	StatusAccepted  RequestStatus = "Accepted"
	StatusRejected  RequestStatus = "Rejected"
	StatusCompleted RequestStatus = "Completed"
)

// AllStatuses lists the statuses in display order.
var AllStatuses = []RequestStatus{StatusPending, StatusAccepted, StatusRejected, StatusCompleted}

var transitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted},
}

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransition checks whether a request in status s may move to next.
func (s RequestStatus) CanTransition(next RequestStatus) error {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
}

// ServiceRequest is a driver asking a garage for a service.
type ServiceRequest struct {
	ID           int64         `json:"id"`
	GarageID     int64         `json:"garage_id"`
	UserID       int64         `json:"user_id"`
	CustomerName string        `json:"customer_name"`
	ServiceType  string        `json:"service_type"`
	VehicleType  VehicleType   `json:"vehicle_type"`
	Contact      string        `json:"contact"`
	Message      string        `json:"message"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
