package errors

// ErrorCode identifies the class of an application error
type ErrorCode string

const (
	ErrorCode_INTERNAL          ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT  ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND         ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS    ErrorCode = "ALREADY_EXISTS"
	ErrorCode_PERMISSION_DENIED ErrorCode = "PERMISSION_DENIED"
	ErrorCode_VALIDATION_FAILED ErrorCode = "VALIDATION_FAILED"

	ErrorCode_TRANSCRIPTION_FAILED     ErrorCode = "TRANSCRIPTION_FAILED"
	ErrorCode_TRANSCRIPTION_EXISTS     ErrorCode = "TRANSCRIPTION_EXISTS"
	ErrorCode_EXTRACTION_FAILED        ErrorCode = "EXTRACTION_FAILED"
	ErrorCode_UNSUPPORTED_AUDIO_FORMAT ErrorCode = "UNSUPPORTED_AUDIO_FORMAT"
	ErrorCode_SUMMARY_FAILED           ErrorCode = "SUMMARY_FAILED"

	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = "INTEGRATION_STORAGE_FAILED"
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = "INTEGRATION_CACHE_FAILED"
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = "INTEGRATION_EXTERNAL_API_FAILED"

	ErrorCode_DB_CONNECTION_FAILED  ErrorCode = "DB_CONNECTION_FAILED"
	ErrorCode_DB_QUERY_FAILED       ErrorCode = "DB_QUERY_FAILED"
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = "DB_TRANSACTION_FAILED"
)

// String returns the code as a string
func (c ErrorCode) String() string {
	return string(c)
}
