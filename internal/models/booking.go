package models

// Booking is the core's read-only view of one courier service request.
// The record store owns the row; the core replaces its cached copy wholesale
// on every successful fetch and never mutates fields locally.
type Booking struct {
	ID            int64  `json:"id"`
	CompanyID     int64  `json:"company_id"`
	CompanyName   string `json:"company_name"`
	BookingDate   string `json:"booking_date"`
	BookingTime   string `json:"booking_time"`
	RequesterName string `json:"requester_name"`
	JobType       string `json:"job_type"`
	Detail        string `json:"detail"`
	Department    string `json:"department"`
	Building      string `json:"building"`
	Floor         string `json:"floor"`
	ContactName   string `json:"contact_name"`
	ContactPhone  string `json:"contact_phone"`
	Status        Status `json:"status"`
	MessengerName string `json:"messenger_name,omitempty"`
}

// Company is a client company selectable on the intake form.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingDraft carries the intake fields for a new booking. BookingTime must
// already be in the time slot codec's output space; building and floor are
// the only optional fields.
type BookingDraft struct {
	CompanyID     int64  `json:"company_id"`
	BookingDate   string `json:"booking_date"`
	BookingTime   string `json:"booking_time"`
	RequesterName string `json:"requester_name"`
	JobType       string `json:"job_type"`
	Detail        string `json:"detail"`
	Department    string `json:"department"`
	Building      string `json:"building,omitempty"`
	Floor         string `json:"floor,omitempty"`
	ContactName   string `json:"contact_name"`
	ContactPhone  string `json:"contact_phone"`
}

// TransitionRequest asks the status machine to move a booking into a terminal
// status. Confirmed must be set for CANCEL; the UI runs a propose/confirm step
// before the request reaches the core.
type TransitionRequest struct {
	BookingID     int64  `json:"booking_id"`
	Target        Status `json:"status"`
	MessengerName string `json:"messenger_name,omitempty"`
	Confirmed     bool   `json:"confirmed,omitempty"`
}

// Artifact is an opaque rendered document returned by the record store.
// The core forwards the bytes unchanged and only attaches a file name.
type Artifact struct {
	FileName    string
	ContentType string
	Data        []byte
}
