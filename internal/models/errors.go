package models

import "errors"

// ErrorKind tags a SearchError with the stage of the search that failed.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindLookupFailed
	KindNotFound
	KindCurrentUnavailable
	KindHistoricalUnavailable
)

// User-facing messages for each error kind.
const (
	MsgValidation            = "Please enter a city name."
	MsgLookupFailed          = "Unable to reach the location service. Please try again later."
	MsgNotFound              = "City not found. Please check the spelling and try again."
	MsgCurrentUnavailable    = "Failed to fetch current weather data."
	MsgHistoricalUnavailable = "Failed to fetch historical weather data."
	MsgGeneric               = "Failed to fetch weather data. Please try again."
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindLookupFailed:
		return "lookup_failed"
	case KindNotFound:
		return "not_found"
	case KindCurrentUnavailable:
		return "current_unavailable"
	case KindHistoricalUnavailable:
		return "historical_unavailable"
	}
	return "unknown"
}

// SearchError is a failure of the geocode-then-fetch sequence. Error returns
// the message shown to the user; the wrapped cause is kept for logging.
type SearchError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// NewSearchError builds a SearchError carrying the standard message for kind.
func NewSearchError(kind ErrorKind, cause error) *SearchError {
	return &SearchError{Kind: kind, Message: messageFor(kind), Err: cause}
}

func messageFor(kind ErrorKind) string {
	switch kind {
	case KindValidation:
		return MsgValidation
	case KindLookupFailed:
		return MsgLookupFailed
	case KindNotFound:
		return MsgNotFound
	case KindCurrentUnavailable:
		return MsgCurrentUnavailable
	case KindHistoricalUnavailable:
		return MsgHistoricalUnavailable
	}
	return MsgGeneric
}

// KindOf reports the kind of a SearchError anywhere in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// UserMessage maps any error from a search to the text displayed to the user,
// falling back to a generic message when no SearchError is attached.
func UserMessage(err error) string {
	var se *SearchError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return MsgGeneric
}
