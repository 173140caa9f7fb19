package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRow is one weekly-view row: an entry with its user and project names
// resolved.
type EntryRow struct {
	ID          string          `json:"id"`
	UserName    string          `json:"user_name"`
	ProjectName string          `json:"project_name"`
	Date        time.Time       `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description,omitempty"`
}

// ProjectHours is the summed hours logged against one project in the week.
type ProjectHours struct {
	ProjectName string          `json:"project_name"`
	TotalHours  decimal.Decimal `json:"total_hours"`
}

// WeekView is the weekly read model: per-entry rows in fetch order plus
// per-project totals. It is built fresh on every query, never cached.
type WeekView struct {
	Entries      []EntryRow     `json:"entries"`
	ProjectHours []ProjectHours `json:"project_hours"`
}
