package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig = errors.New("invalid configuration")

	// Parsing and validation
	ErrInvalidAddress   = errors.New("invalid recipient address")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidTokenID   = errors.New("invalid token id")
	ErrDuplicateTokenID = errors.New("duplicate token ids in batch")
	ErrEmptyBatch       = errors.New("no valid recipients in batch")
	ErrBatchTooLarge    = errors.New("batch exceeds maximum recipient count")

	// Requirements and sufficiency
	ErrInsufficientBalance = errors.New("insufficient balance for batch")
	ErrBalanceFetchFailed  = errors.New("balance fetch failed")

	// Submission flow
	ErrApprovalFailed   = errors.New("approval transaction failed")
	ErrSubmissionFailed = errors.New("batch submission failed")
	ErrNoDropContract   = errors.New("no drop contract deployed for chain")

	// Token descriptor
	ErrTokenLookupFailed = errors.New("token metadata lookup failed")
	ErrUnknownStandard   = errors.New("unknown token standard")
)

// Error codes returned to API clients.
const (
	ErrorInvalidAddress      = "ERROR_INVALID_ADDRESS"
	ErrorInvalidAmount       = "ERROR_INVALID_AMOUNT"
	ErrorInvalidTokenID      = "ERROR_INVALID_TOKEN_ID"
	ErrorDuplicateTokenID    = "ERROR_DUPLICATE_TOKEN_ID"
	ErrorEmptyBatch          = "ERROR_EMPTY_BATCH"
	ErrorBatchTooLarge       = "ERROR_BATCH_TOO_LARGE"
	ErrorInsufficientBalance = "ERROR_INSUFFICIENT_BALANCE"
	ErrorBalanceFetchFailed  = "ERROR_BALANCE_FETCH_FAILED"
	ErrorApprovalFailed      = "ERROR_APPROVAL_FAILED"
	ErrorSubmissionFailed    = "ERROR_SUBMISSION_FAILED"
	ErrorNoDropContract      = "ERROR_NO_DROP_CONTRACT"
	ErrorTokenLookupFailed   = "ERROR_TOKEN_LOOKUP_FAILED"
	ErrorUnknownStandard     = "ERROR_UNKNOWN_STANDARD"
	ErrorInvalidConfig       = "ERROR_INVALID_CONFIG"
	ErrorDatabase            = "ERROR_DATABASE"
	ErrorInvalidRequest      = "ERROR_INVALID_REQUEST"
)

// CodeForError maps a sentinel error to its API error code. Unknown errors
// map to ErrorInvalidRequest.
func CodeForError(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAddress):
		return ErrorInvalidAddress
	case errors.Is(err, ErrInvalidAmount):
		return ErrorInvalidAmount
	case errors.Is(err, ErrInvalidTokenID):
		return ErrorInvalidTokenID
	case errors.Is(err, ErrDuplicateTokenID):
		return ErrorDuplicateTokenID
	case errors.Is(err, ErrEmptyBatch):
		return ErrorEmptyBatch
	case errors.Is(err, ErrBatchTooLarge):
		return ErrorBatchTooLarge
	case errors.Is(err, ErrInsufficientBalance):
		return ErrorInsufficientBalance
	case errors.Is(err, ErrBalanceFetchFailed):
		return ErrorBalanceFetchFailed
	case errors.Is(err, ErrApprovalFailed):
		return ErrorApprovalFailed
	case errors.Is(err, ErrSubmissionFailed):
		return ErrorSubmissionFailed
	case errors.Is(err, ErrNoDropContract):
		return ErrorNoDropContract
	case errors.Is(err, ErrTokenLookupFailed):
		return ErrorTokenLookupFailed
	case errors.Is(err, ErrUnknownStandard):
		return ErrorUnknownStandard
	case errors.Is(err, ErrInvalidConfig):
		return ErrorInvalidConfig
	default:
		return ErrorInvalidRequest
	}
}
