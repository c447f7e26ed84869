package domain

// Result is the outcome of an integration dispatch, rendered as JSON to the caller
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK makes a successful result
func OK(msg string) Result {
	return Result{Success: true, Message: msg}
}

// Fail makes a failed result from an error
func Fail(err error) Result {
	if err == nil {
		return Result{Success: false, Error: "unknown error"}
	}
	return Result{Success: false, Error: err.Error()}
}
