package types

// ApiResponse is the envelope of every JSON response. Error responses
// carry the request id so a client report can be matched to the logs table.
type ApiResponse struct {
	Message   string      `json:"message"`
	Status    int         `json:"status"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}
