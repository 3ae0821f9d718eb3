package services

import "errors"

// Domain errors returned by the service layer. Handlers translate these
// to HTTP statuses in one place: not-found 404, ownership 403, state
// conflicts and validation 400.
var (
	ErrCodeNotFound    = errors.New("tutor code not found")
	ErrCodeAlreadyUsed = errors.New("tutor code already used")

	ErrSessionNotFound     = errors.New("session not found")
	ErrNotYourSession      = errors.New("not your session")
	ErrSessionNotRequested = errors.New("session not in requested state")
	ErrSessionNotConfirmed = errors.New("session not confirmed")
	ErrSessionNotDone      = errors.New("session not done")

	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentNotRequested = errors.New("invalid state: payout not in requested state")
	ErrMustApproveFirst    = errors.New("must be approved first")

	ErrPaymentWithoutTutor = errors.New("payment without tutor")

	ErrUserNotFound     = errors.New("user not found")
	ErrMaterialNotFound = errors.New("material not found")
)
