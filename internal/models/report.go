package models

// ReportQuery selects bookings by inclusive calendar date range, optionally
// narrowed to a single status. An empty Status includes all statuses.
type ReportQuery struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    Status `json:"status,omitempty"`
}

// StatusFacet pairs a wire status value with its display label.
type StatusFacet struct {
	Value Status `json:"value"`
	Label string `json:"label"`
}

// StatusFacets returns the fixed, store-independent status facet list.
func StatusFacets() []StatusFacet {
	return []StatusFacet{
		{Value: StatusPending, Label: StatusPending.Label()},
		{Value: StatusSuccess, Label: StatusSuccess.Label()},
		{Value: StatusCancel, Label: StatusCancel.Label()},
	}
}

// Report is a queried booking list plus the facets derived from it.
// Companies preserves order of first appearance; it is not sorted.
type Report struct {
	Bookings  []Booking     `json:"bookings"`
	Companies []string      `json:"companies"`
	Statuses  []StatusFacet `json:"statuses"`
}

// ExportFormat selects the artifact type the record store renders.
type ExportFormat string

const (
	FormatDocument    ExportFormat = "document"
	FormatSpreadsheet ExportFormat = "spreadsheet"
)

func (f ExportFormat) Valid() bool {
	return f == FormatDocument || f == FormatSpreadsheet
}

// Ext returns the file extension used in generated artifact names.
func (f ExportFormat) Ext() string {
	if f == FormatSpreadsheet {
		return "xlsx"
	}
	return "pdf"
}

// StorePath returns the record store's path segment for the format.
func (f ExportFormat) StorePath() string {
	if f == FormatSpreadsheet {
		return "excel"
	}
	return "pdf"
}
