package errors

// ErrorCode identifies an application error condition independently of the
// HTTP status it maps to.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK           ErrorCode = 200
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INTERNAL          ErrorCode = 1500

	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2001
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2002

	ErrorCode_TRANSCRIPT_NOT_FOUND      ErrorCode = 3001
	ErrorCode_TRANSCRIPT_UPLOAD_FAILED  ErrorCode = 3002
	ErrorCode_TRANSCRIPT_EXPORT_FAILED  ErrorCode = 3003
	ErrorCode_UNSUPPORTED_FORMAT        ErrorCode = 3004
	ErrorCode_PARSE_FAILED              ErrorCode = 3005
	ErrorCode_UTTERANCE_NOT_FOUND       ErrorCode = 3101
	ErrorCode_INVALID_RELABEL_SCOPE     ErrorCode = 3102
	ErrorCode_MERGE_TOO_FEW_UTTERANCES  ErrorCode = 3103
	ErrorCode_MERGE_CROSS_TRANSCRIPT    ErrorCode = 3104
	ErrorCode_INVALID_PAYLOAD           ErrorCode = 3201
	ErrorCode_MISSING_FILE              ErrorCode = 3202
	ErrorCode_INTEGRATION_STORAGE_ERROR ErrorCode = 4001
	ErrorCode_INTEGRATION_CACHE_ERROR   ErrorCode = 4002
	ErrorCode_DB_QUERY_FAILED           ErrorCode = 4101
	ErrorCode_DB_TRANSACTION_FAILED     ErrorCode = 4102
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                   "HTTP_OK",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                 "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:            "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:         "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:           "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                 "FORBIDDEN",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_AUTH_INVALID_TOKEN:        "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:        "AUTH_TOKEN_EXPIRED",
	ErrorCode_TRANSCRIPT_NOT_FOUND:      "TRANSCRIPT_NOT_FOUND",
	ErrorCode_TRANSCRIPT_UPLOAD_FAILED:  "TRANSCRIPT_UPLOAD_FAILED",
	ErrorCode_TRANSCRIPT_EXPORT_FAILED:  "TRANSCRIPT_EXPORT_FAILED",
	ErrorCode_UNSUPPORTED_FORMAT:        "UNSUPPORTED_FORMAT",
	ErrorCode_PARSE_FAILED:              "PARSE_FAILED",
	ErrorCode_UTTERANCE_NOT_FOUND:       "UTTERANCE_NOT_FOUND",
	ErrorCode_INVALID_RELABEL_SCOPE:     "INVALID_RELABEL_SCOPE",
	ErrorCode_MERGE_TOO_FEW_UTTERANCES:  "MERGE_TOO_FEW_UTTERANCES",
	ErrorCode_MERGE_CROSS_TRANSCRIPT:    "MERGE_CROSS_TRANSCRIPT",
	ErrorCode_INVALID_PAYLOAD:           "INVALID_PAYLOAD",
	ErrorCode_MISSING_FILE:              "MISSING_FILE",
	ErrorCode_INTEGRATION_STORAGE_ERROR: "INTEGRATION_STORAGE_ERROR",
	ErrorCode_INTEGRATION_CACHE_ERROR:   "INTEGRATION_CACHE_ERROR",
	ErrorCode_DB_QUERY_FAILED:           "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:     "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
