package domain

import (
	"errors"
	"strings"
)

// Status enumerates order progression. The zero value is not a valid status.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusDelivered  Status = "Delivered"
)

var ErrInvalidStatus = errors.New("order status must be one of Pending, In Progress, Delivered")

// Statuses lists every status in progression order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusDelivered}
}

// ParseStatus accepts the wire values plus the common spellings
// "InProgress" and "in_progress", case-insensitively.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)
	switch normalized {
	case "pending":
		return StatusPending, nil
	case "inprogress":
		return StatusInProgress, nil
	case "delivered":
		return StatusDelivered, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDelivered:
		return true
	default:
		return false
	}
}

// Rank is the position of s in the progression, or -1 when unknown.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusDelivered:
		return 2
	default:
		return -1
	}
}

func (s Status) String() string { return string(s) }
