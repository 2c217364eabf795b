package controllers

// CustomError carries a user-facing message without wrapping an upstream error.
type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoPermission = &CustomError{"You do not have permission"}

	// Authorization failures on orders deliberately read as "not found" so
	// callers cannot probe which order ids exist.
	ErrOrderNotFound = &CustomError{"order not found"}

	ErrEmptyItems        = &CustomError{"order must contain at least one item"}
	ErrInvalidStatus     = &CustomError{"invalid order status"}
	ErrOrderTerminal     = &CustomError{"order is already delivered or cancelled"}
	ErrEditWindowExpired = &CustomError{"edit window has expired"}
	ErrOrderNotEditable  = &CustomError{"order can no longer be edited"}
	ErrStatusConflict    = &CustomError{"order was updated by someone else, please retry"}
	ErrOutsideService    = &CustomError{"address is outside the service area"}
)
