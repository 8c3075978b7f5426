package provisioning

// ConflictError means the order already left the pending state; the
// requested finalize action is refused and nothing changes.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

// ValidationError means the order content is unusable (e.g. zero units)
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NotFoundError means a referenced record does not exist
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}
