package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status is the lifecycle state of a task. The numeric values are what the
// backend exchanges on the wire.
type Status int

const (
	StatusPending    Status = 0
	StatusInProgress Status = 1
	StatusCompleted  Status = 2

	// StatusUnknown stands in for a wire value that is neither a number nor
	// a known label. It is never Valid.
	StatusUnknown Status = -1
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// statusNames maps accepted labels (lower-cased) to their status. The
// Portuguese labels match the pt-BR UI texts.
var statusNames = map[string]Status{
	"pending":      StatusPending,
	"pendente":     StatusPending,
	"in progress":  StatusInProgress,
	"in-progress":  StatusInProgress,
	"em progresso": StatusInProgress,
	"completed":    StatusCompleted,
	"concluída":    StatusCompleted,
	"concluida":    StatusCompleted,
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusCompleted
}

// String returns the English label of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus converts a numeric string or a status label into a Status.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		s := Status(n)
		if !s.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidStatus, n)
		}
		return s, nil
	}
	if s, ok := statusNames[strings.ToLower(raw)]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// MarshalJSON encodes the status as its numeric value.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(s))), nil
}

// UnmarshalJSON accepts a JSON number or a string holding a number or label.
// Decoding never fails on the value itself: out-of-range numbers are kept as
// they are and anything else becomes StatusUnknown, so one bad record does
// not break a whole list. Valid reports whether the result is usable.
func (s *Status) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Status(n)
		return nil
	}

	*s = StatusUnknown
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		*s = Status(n)
	} else if st, ok := statusNames[strings.ToLower(raw)]; ok {
		*s = st
	}
	return nil
}
