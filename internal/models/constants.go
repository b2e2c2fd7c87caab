package models

// Status is the dispatch status of a booking. Transitions are directed:
// PENDING may move to SUCCESS or CANCEL, both of which are terminal.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusCancel  Status = "CANCEL"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusCancel:
		return true
	}
	return false
}

// Terminal reports whether the core permits no further transition from s.
// Whether the record store allows out-of-band reversal is store policy.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusCancel
}

// CanTransitionTo reports whether moving from s to target is a legal,
// state-changing transition. A same-status "transition" is handled upstream
// as an idempotent no-op and never reaches this check.
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusPending && (target == StatusSuccess || target == StatusCancel)
}

// Label returns the human-readable status label used in facets and exports.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusSuccess:
		return "Completed"
	case StatusCancel:
		return "Cancelled"
	}
	return string(s)
}

// JobType enumerates the courier job categories offered on the intake form.
type JobType string

const (
	JobTypeSend        JobType = "send"
	JobTypeReceive     JobType = "receive"
	JobTypeSendReceive JobType = "send+receive"
	JobTypeBuy         JobType = "buy"
	JobTypeSell        JobType = "sell"
	JobTypeDeposit     JobType = "deposit"
	JobTypeOther       JobType = "other"
)

func (j JobType) Valid() bool {
	switch j {
	case JobTypeSend, JobTypeReceive, JobTypeSendReceive, JobTypeBuy, JobTypeSell, JobTypeDeposit, JobTypeOther:
		return true
	}
	return false
}

const (
	// DateLayout is the calendar date format used on the wire and in file names.
	DateLayout = "2006-01-02"

	// DefaultMessengerName is the fallback used when a SUCCESS transition
	// carries a blank messenger input and no roster default is configured.
	DefaultMessengerName = "Default Messenger"

	// DefaultSnapshotTTLSeconds bounds how long a persisted schedule snapshot
	// stays warm between restarts.
	DefaultSnapshotTTLSeconds = 24 * 60 * 60

	// DefaultCompaniesCacheTTLSeconds caches the record store's company list.
	DefaultCompaniesCacheTTLSeconds = 30 * 60

	// DefaultStoreTimeoutSeconds is the fixed connection timeout on record
	// store round trips; its expiry surfaces as a connectivity failure.
	DefaultStoreTimeoutSeconds = 10
)
