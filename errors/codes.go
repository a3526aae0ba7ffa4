package errors

// ErrorCode identifies an error class in API responses.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003
	ErrorCode_CONFLICT         ErrorCode = 1004

	// Session
	ErrorCode_SESSION_ACTIVE         ErrorCode = 2000
	ErrorCode_SESSION_NOT_RECORDING  ErrorCode = 2001
	ErrorCode_CAPABILITY_UNAVAILABLE ErrorCode = 2002
	ErrorCode_SESSION_CLOSED         ErrorCode = 2003

	// Media
	ErrorCode_MEDIA_INVALID        ErrorCode = 3000
	ErrorCode_MEDIA_TOO_LARGE      ErrorCode = 3001
	ErrorCode_MEDIA_PROCESS_FAILED ErrorCode = 3002
	ErrorCode_STREAM_FAILED        ErrorCode = 3003

	// Enrichment
	ErrorCode_ENRICHMENT_FAILED ErrorCode = 4000
	ErrorCode_JIRA_FAILED       ErrorCode = 4001
	ErrorCode_NO_ACTION_ITEMS   ErrorCode = 4002

	// Integration
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 5000
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 5001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 5002
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_CONFLICT:                        "CONFLICT",
	ErrorCode_SESSION_ACTIVE:                  "SESSION_ACTIVE",
	ErrorCode_SESSION_NOT_RECORDING:           "SESSION_NOT_RECORDING",
	ErrorCode_CAPABILITY_UNAVAILABLE:          "CAPABILITY_UNAVAILABLE",
	ErrorCode_SESSION_CLOSED:                  "SESSION_CLOSED",
	ErrorCode_MEDIA_INVALID:                   "MEDIA_INVALID",
	ErrorCode_MEDIA_TOO_LARGE:                 "MEDIA_TOO_LARGE",
	ErrorCode_MEDIA_PROCESS_FAILED:            "MEDIA_PROCESS_FAILED",
	ErrorCode_STREAM_FAILED:                   "STREAM_FAILED",
	ErrorCode_ENRICHMENT_FAILED:               "ENRICHMENT_FAILED",
	ErrorCode_JIRA_FAILED:                     "JIRA_FAILED",
	ErrorCode_NO_ACTION_ITEMS:                 "NO_ACTION_ITEMS",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
