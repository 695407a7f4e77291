package constants

const (
	// Context keys
	ContextKeyRequestID = "request_id"

	// Headers
	HeaderRequestID = "X-Request-Id"

	// HistoryDateLayout formats due dates in history entries.
	HistoryDateLayout = "2006-01-02"

	// ReportWindowDays is the look-back window of the performance report.
	ReportWindowDays = 30

	// ReportCacheKey stores the most recent performance report.
	ReportCacheKey = "report:performance"
)
