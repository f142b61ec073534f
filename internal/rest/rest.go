package rest

// ErrorResponse is the common JSON error body returned by the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ValidationErrorResponse carries field-keyed validation messages, matching
// the `{"errors": {...}}` shape the web client already consumes.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// ValidationErrors is a field-keyed set of validation messages. Services
// return it as an error; handlers unwrap it into a ValidationErrorResponse.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	for field, msg := range v {
		return field + ": " + msg
	}
	return "validation failed"
}
