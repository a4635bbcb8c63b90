package apperrors

// ErrorCode classifies an AppError.
type ErrorCode string

const (
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeStateConflict ErrorCode = "STATE_CONFLICT"
	CodeCooldown      ErrorCode = "COOLDOWN_ACTIVE"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeGateway       ErrorCode = "GATEWAY_ERROR"
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeForbidden     ErrorCode = "FORBIDDEN"
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
)
