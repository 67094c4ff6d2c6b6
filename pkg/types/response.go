package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// MessageResponse carries a human-readable confirmation for mutating endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
