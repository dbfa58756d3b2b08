package domain

// ErrorKind is a stable machine-readable failure class. The HTTP layer maps
// each kind to a transport status exactly once; nothing downgrades a domain
// error to a generic failure.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindConflict          ErrorKind = "conflict"
	KindNotFound          ErrorKind = "not_found"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindForbidden         ErrorKind = "forbidden"
	KindRateLimited       ErrorKind = "rate_limited"
	KindInsufficientFunds ErrorKind = "insufficient_funds"
	KindTokenExpired      ErrorKind = "token_expired"
)

// Error is a typed domain failure. Sentinel instances below are compared with
// errors.Is; they carry no request-specific state so sharing them is safe.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrInvalidTelegramID = newError(KindValidation, "telegram id must be a positive integer")
	ErrNegativeBalance   = newError(KindValidation, "balance must not be negative")
	ErrInvalidAmount     = newError(KindValidation, "amount must be greater than zero")
	ErrInsufficientFunds = newError(KindInsufficientFunds, "insufficient funds")

	ErrUserNotFound      = newError(KindNotFound, "user not found")
	ErrUserAlreadyExists = newError(KindConflict, "user already exists")
	ErrUserDeleted       = newError(KindConflict, "user is already deleted")
	ErrInvalidRole       = newError(KindValidation, "unknown role")

	ErrInvalidBlockDuration = newError(KindValidation, "block duration must be at least one day")
	ErrAlreadyBlocked       = newError(KindConflict, "user is already blocked")
	ErrActiveBlockNotFound  = newError(KindConflict, "no active block found")

	ErrReferrerAlreadyAssigned = newError(KindConflict, "referrer is already assigned")
	ErrSelfReferral            = newError(KindValidation, "user cannot refer themselves")
	ErrReferrerNotFound        = newError(KindNotFound, "referrer not found")

	ErrInvalidCode         = newError(KindUnauthorized, "invalid code")
	ErrTooManyCodeRequests = newError(KindRateLimited, "code already sent, try again later")

	ErrTokenExpired   = newError(KindTokenExpired, "token expired")
	ErrIncorrectToken = newError(KindUnauthorized, "malformed or invalid token")

	ErrPermissionDenied = newError(KindForbidden, "permission denied")
	ErrSelfBlock        = newError(KindForbidden, "admin cannot block themselves")

	ErrInvalidBotName      = newError(KindValidation, "bot name must not be empty")
	ErrInvalidBotPrice     = newError(KindValidation, "bot price must be greater than zero")
	ErrBotNotFound         = newError(KindNotFound, "bot not found")
	ErrBotCannotBeRented   = newError(KindConflict, "bot is not available for rent")
	ErrBotAlreadyDeleted   = newError(KindConflict, "bot is already deleted")
	ErrBotAlreadyActive    = newError(KindConflict, "bot is already active")
	ErrBotAlreadyInactive  = newError(KindConflict, "bot is already inactive")
	ErrInvalidRentalTerm   = newError(KindValidation, "rental term must be 1, 3, 6 or 12 months")
	ErrRentalNotFound      = newError(KindNotFound, "rental not found")
	ErrRentalAlreadyActive = newError(KindConflict, "rental is already active")
	ErrRentalStopped       = newError(KindConflict, "rental is already stopped")
	ErrRentalExpired       = newError(KindConflict, "rental period has ended")
)
