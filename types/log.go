package types

import "time"

// LogEntry is one request/response exchange queued for the logs table.
// Bodies are already truncated and headers stripped of credentials.
type LogEntry struct {
	RequestID       string
	Username        string
	Method          string
	URL             string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	Latency         time.Duration
	CreatedAt       time.Time
}
