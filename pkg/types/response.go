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

// FieldError is the per-field entry carried in validation error details.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
