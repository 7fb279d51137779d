// Package model holds the board's domain types.
package model

import (
	"encoding/json"
	"time"
)

// DisplayDate is the date layout sent to presentation layers.
const DisplayDate = "02 Jan 2006"

// DueStatus partitions orders by how close their delivery date is.
type DueStatus int

const (
	StatusNoDate DueStatus = iota
	StatusOverdue
	StatusDueSoon
	StatusOnTrack
)

func (s DueStatus) String() string {
	switch s {
	case StatusOverdue:
		return "overdue"
	case StatusDueSoon:
		return "due-soon"
	case StatusOnTrack:
		return "on-track"
	default:
		return "no-date"
	}
}

// Order is a kickplate sales order normalized from a Cin7 record.
// Orders are built once per fetch and never mutated afterwards.
type Order struct {
	CreatedDate           *time.Time
	EstimatedDeliveryDate *time.Time
	Reference             string
	ProjectName           string
	FirstName             string
	Stage                 Stage
	ExternalURL           string
	ID                    int64
	QuantityTotal         int
	DaysOverdue           int
	Status                DueStatus
	HasID                 bool
}

// IsOverdue reports whether the delivery date has passed.
func (o Order) IsOverdue() bool { return o.Status == StatusOverdue }

// IsDueSoon reports whether delivery falls within the due-soon window.
func (o Order) IsDueSoon() bool { return o.Status == StatusDueSoon }

// IsOnTrack reports whether delivery is comfortably in the future.
func (o Order) IsOnTrack() bool { return o.Status == StatusOnTrack }

type orderJSON struct {
	ID          *int64 `json:"id"`
	Reference   string `json:"reference"`
	ProjectName string `json:"projectName"`
	FirstName   string `json:"firstName"`
	Stage       Stage  `json:"stage"`
	CreatedDate string `json:"createdDate"`
	ETD         string `json:"etd"`
	QtyTotal    int    `json:"qtyTotal"`
	IsOverdue   bool   `json:"isOverdue"`
	IsDueSoon   bool   `json:"isDueSoon"`
	IsOnTrack   bool   `json:"isOnTrack"`
	DaysOverdue int    `json:"daysOverdue"`
	ExternalURL string `json:"cin7Url"`
}

// MarshalJSON renders the card shape consumed by the board page.
func (o Order) MarshalJSON() ([]byte, error) {
	out := orderJSON{
		Reference:   o.Reference,
		ProjectName: o.ProjectName,
		FirstName:   o.FirstName,
		Stage:       o.Stage,
		CreatedDate: formatDate(o.CreatedDate),
		ETD:         formatDate(o.EstimatedDeliveryDate),
		QtyTotal:    o.QuantityTotal,
		IsOverdue:   o.IsOverdue(),
		IsDueSoon:   o.IsDueSoon(),
		IsOnTrack:   o.IsOnTrack(),
		DaysOverdue: o.DaysOverdue,
		ExternalURL: o.ExternalURL,
	}
	if o.HasID {
		id := o.ID
		out.ID = &id
	}
	return json.Marshal(out)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DisplayDate)
}
