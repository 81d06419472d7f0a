package shell

// HandlerResult is the part every command result shares: whether the operation succeeded
// and the message presented to the caller. On failure the message is the error text.
type HandlerResult struct {
	Success bool
	Message string
}

// NewSuccessResult creates a HandlerResult for a successful operation.
func NewSuccessResult(message string) HandlerResult {
	return HandlerResult{Success: true, Message: message}
}

// NewErrorResult creates a HandlerResult for a failed operation.
func NewErrorResult(err error) HandlerResult {
	if err == nil {
		return HandlerResult{Success: false}
	}

	return HandlerResult{Success: false, Message: err.Error()}
}
