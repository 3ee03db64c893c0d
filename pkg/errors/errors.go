package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition is a business error code with its default message.
type Definition struct {
	Code    string
	Message string
}

// Request parsing errors.
var (
	InvalidRequest = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	ParseError     = Definition{Code: "PARSE_ERROR", Message: "Malformed date or time string"}
)

// Time-clock transition errors. AlreadyCheckedIn is reported but treated as a
// soft success by the check-in handler; the others are hard failures.
var (
	AlreadyCheckedIn  = Definition{Code: "ALREADY_CHECKED_IN", Message: "Already checked in for this date"}
	AlreadyCheckedOut = Definition{Code: "ALREADY_CHECKED_OUT", Message: "Already checked out for this date"}
	NotCheckedIn      = Definition{Code: "NOT_CHECKED_IN", Message: "No check-in recorded for this date"}
	RecordNotFound    = Definition{Code: "RECORD_NOT_FOUND", Message: "No record for this date"}
)

// Infrastructure errors.
var (
	LockTimeout   = Definition{Code: "LOCK_TIMEOUT", Message: "Server busy, please retry"}
	InternalError = Definition{Code: "INTERNAL_ERROR", Message: "Internal server error"}
)

// Lookup provides error-code resolution.
var Lookup = map[string]Definition{
	InvalidRequest.Code:    InvalidRequest,
	ParseError.Code:        ParseError,
	AlreadyCheckedIn.Code:  AlreadyCheckedIn,
	AlreadyCheckedOut.Code: AlreadyCheckedOut,
	NotCheckedIn.Code:      NotCheckedIn,
	RecordNotFound.Code:    RecordNotFound,
	LockTimeout.Code:       LockTimeout,
	InternalError.Code:     InternalError,
}

// Get returns the Definition for a code, or a generic Definition if unknown.
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// WithMessage returns a copy of the Definition carrying a more specific message.
func (d Definition) WithMessage(message string) Definition {
	d.Message = message
	return d
}
