package service

import "errors"

var (
	ErrInvalidStatus      = errors.New("invalid target status")
	ErrAlreadyFinal       = errors.New("booking already in a final status")
	ErrCancelNotConfirmed = errors.New("cancellation requires confirmation")
	ErrTransitionInFlight = errors.New("transition already in flight for booking")
	ErrInvalidDateRange   = errors.New("invalid report date range")
	ErrInvalidFormat      = errors.New("invalid export format")
	ErrInvalidDraft       = errors.New("invalid booking draft")
)
