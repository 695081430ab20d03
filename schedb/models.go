package schedb

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// BookingsStatus mirrors the application's booking status enum.
type BookingsStatus string

const (
	BookingsStatusAccepted     BookingsStatus = "accepted"
	BookingsStatusPending      BookingsStatus = "pending"
	BookingsStatusCancelled    BookingsStatus = "cancelled"
	BookingsStatusRejected     BookingsStatus = "rejected"
	BookingsStatusAwaitingHost BookingsStatus = "awaiting_host"
)

func (e *BookingsStatus) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = BookingsStatus(s)
	case string:
		*e = BookingsStatus(s)
	default:
		return fmt.Errorf("unsupported scan type for BookingsStatus: %T", src)
	}
	return nil
}

func (e BookingsStatus) Value() (driver.Value, error) {
	return string(e), nil
}

type NullBookingsStatus struct {
	BookingsStatus BookingsStatus
	Valid          bool // Valid is true if BookingsStatus is not NULL
}

func (ns *NullBookingsStatus) Scan(value interface{}) error {
	if value == nil {
		ns.BookingsStatus, ns.Valid = "", false
		return nil
	}
	ns.Valid = true
	return ns.BookingsStatus.Scan(value)
}

func (ns NullBookingsStatus) Value() (driver.Value, error) {
	if !ns.Valid {
		return nil, nil
	}
	return string(ns.BookingsStatus), nil
}

type EventType struct {
	ID                    int64
	Slug                  string
	SchedulingType        string
	RrWeightsEnabled      bool
	DistributionAlgorithm string
}

type Booking struct {
	ID          int64
	CreatedAt   time.Time
	UserID      *int64
	EventTypeID int64
	Status      BookingsStatus
	NoShowHost  bool
}

type Attendee struct {
	ID        int64
	BookingID int64
	Email     string
	Name      string
	NoShow    bool
}
