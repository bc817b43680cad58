package errors

import "errors"

// Custom application errors
var (
	ErrCandidateNotFound = errors.New("candidate not found")            // Candidate not found
	ErrInterviewNotFound = errors.New("interview not found")            // Candidate has no interview scheduled
	ErrSessionNotFound   = errors.New("session not found")              // Unknown or logged out session
	ErrSessionClosed     = errors.New("session already closed")         // Session was stopped while the request was in flight
	ErrInvalidDateTime   = errors.New("invalid interview date or time") // Date/time failed to parse
	ErrInvalidRequest    = errors.New("invalid request")                // Missing or malformed input
	ErrDatabaseOperation = errors.New("database operation failed")      // Generic database error
	ErrLineAPI           = errors.New("LINE API request failed")        // Generic LINE API error
	ErrLineDisabled      = errors.New("LINE client not configured")     // Credentials absent, push delivery off
	ErrScheduling        = errors.New("scheduling failed")              // Generic scheduling error
	ErrInternalServer    = errors.New("internal server error")          // Generic internal error
)
