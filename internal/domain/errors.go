package domain

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidReference  = errors.New("reference kind not valid for category")
	ErrNoPriceConfigured = errors.New("campaign has no price per post configured")
	ErrMissingProof      = errors.New("transfer proof required")
	ErrUpstreamGateway   = errors.New("payment gateway unavailable")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
)
