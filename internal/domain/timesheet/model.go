package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field targets carried by validation failure details.
const (
	FieldID        = "ID"
	FieldUserID    = "UserID"
	FieldProjectID = "ProjectID"
	FieldDate      = "Date"
	FieldHours     = "Hours"
)

// Entry represents a single user/project/date/hours record. The Date is
// truncated to UTC midnight before it is stored or compared; the time-of-day
// component carries no meaning. An empty ID means "not yet persisted".
type Entry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	ProjectID   string          `json:"project_id"`
	Date        time.Time       `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description,omitempty"`
}
