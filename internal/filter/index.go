// Package filter implements the composable multi-column search used to
// narrow the live schedule snapshot. Filters evaluate purely in memory and
// compose with logical AND; a field's filter is inactive until a query
// string is set for it.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"courierdesk/internal/models"
	"courierdesk/internal/timeslot"
)

// Field names a filterable schedule column. The time column matches against
// the decoded slot label, not the stored sentinel value.
type Field string

const (
	FieldDate         Field = "booking_date"
	FieldTime         Field = "booking_time"
	FieldCompany      Field = "company_name"
	FieldRequester    Field = "requester_name"
	FieldJobType      Field = "job_type"
	FieldDepartment   Field = "department"
	FieldDetail       Field = "detail"
	FieldContactName  Field = "contact_name"
	FieldContactPhone Field = "contact_phone"
)

// Fields lists every per-field text filter in display order.
func Fields() []Field {
	return []Field{
		FieldDate, FieldTime, FieldCompany, FieldRequester, FieldJobType,
		FieldDepartment, FieldDetail, FieldContactName, FieldContactPhone,
	}
}

func (f Field) valid() bool {
	for _, known := range Fields() {
		if f == known {
			return true
		}
	}
	return false
}

// Index holds the active filter set for one schedule view. The zero value
// from NewIndex matches every booking.
type Index struct {
	queries map[Field]string
	status  models.Status
}

func NewIndex() *Index {
	return &Index{queries: make(map[Field]string)}
}

// SetQuery activates a case-insensitive substring filter on one column.
// A blank query deactivates the column, same as Reset.
func (i *Index) SetQuery(f Field, query string) error {
	if !f.valid() {
		return fmt.Errorf("filter: unknown field %q", f)
	}
	if strings.TrimSpace(query) == "" {
		delete(i.queries, f)
		return nil
	}
	i.queries[f] = query
	return nil
}

// Reset clears one column's filter without touching the others.
func (i *Index) Reset(f Field) {
	delete(i.queries, f)
}

// ResetAll clears every per-field filter and the status filter.
func (i *Index) ResetAll() {
	i.queries = make(map[Field]string)
	i.status = ""
}

// SetStatus activates the exact-match status filter.
func (i *Index) SetStatus(s models.Status) error {
	if !s.Valid() {
		return fmt.Errorf("filter: unknown status %q", s)
	}
	i.status = s
	return nil
}

// ResetStatus deactivates the status filter.
func (i *Index) ResetStatus() {
	i.status = ""
}

// Active reports whether any filter is set.
func (i *Index) Active() bool {
	return len(i.queries) > 0 || i.status != ""
}

// Match reports whether a booking satisfies every active filter.
func (i *Index) Match(b models.Booking) bool {
	if i.status != "" && b.Status != i.status {
		return false
	}
	for f, query := range i.queries {
		value := fieldValue(b, f)
		if !strings.Contains(strings.ToLower(value), strings.ToLower(query)) {
			return false
		}
	}
	return true
}

// Apply returns the bookings visible under the current filter set,
// preserving input order.
func (i *Index) Apply(bookings []models.Booking) []models.Booking {
	visible := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if i.Match(b) {
			visible = append(visible, b)
		}
	}
	return visible
}

// SortByStored orders bookings lexicographically by a column's stored
// representation. The time column sorts by the sentinel string, not the
// decoded label, so "Morning" rows land before "Afternoon" rows by virtue of
// "11:59:59" < "16:29:59".
func SortByStored(bookings []models.Booking, f Field, descending bool) {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := storedValue(bookings[i], f), storedValue(bookings[j], f)
		if descending {
			return a > b
		}
		return a < b
	})
}

func storedValue(b models.Booking, f Field) string {
	if f == FieldTime {
		return b.BookingTime
	}
	return fieldValue(b, f)
}

func fieldValue(b models.Booking, f Field) string {
	switch f {
	case FieldDate:
		return b.BookingDate
	case FieldTime:
		return timeslot.Decode(b.BookingTime)
	case FieldCompany:
		return b.CompanyName
	case FieldRequester:
		return b.RequesterName
	case FieldJobType:
		return b.JobType
	case FieldDepartment:
		return b.Department
	case FieldDetail:
		return b.Detail
	case FieldContactName:
		return b.ContactName
	case FieldContactPhone:
		return b.ContactPhone
	}
	return ""
}
