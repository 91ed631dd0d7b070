package domain

// Request is a message sent from an observing context to the background hub.
// The set of variants is closed.
type Request interface {
	isRequest()
}

// SolveRequest asks for the words of a grid.
type SolveRequest struct {
	Grid  string
	Depth int
}

// ExtractGridRequest asks the active observing context for its grid.
type ExtractGridRequest struct{}

// StoreInvalidWordRequest records words as rejected.
type StoreInvalidWordRequest struct {
	Words []string
}

// StoreFoundWordRequest records words as accepted.
type StoreFoundWordRequest struct {
	Words []string
}

func (SolveRequest) isRequest()            {}
func (ExtractGridRequest) isRequest()      {}
func (StoreInvalidWordRequest) isRequest() {}
func (StoreFoundWordRequest) isRequest()   {}

// Response is the hub's answer to a Request.
type Response struct {
	Success   bool
	Words     []string
	Grid      PuzzleKey
	Error     string
	ErrorCode string
}

// FailureResponse builds an unsuccessful response from err.
func FailureResponse(err error) Response {
	return Response{
		Success:   false,
		Error:     err.Error(),
		ErrorCode: ErrorCode(err),
	}
}

// Message is a notification delivered to observing contexts.
// The set of variants is closed.
type Message interface {
	isMessage()
}

// ShowResults delivers solve results together with the current attempt sets.
// An empty Words clears the result view.
type ShowResults struct {
	Words        []string
	InvalidWords []string
	FoundWords   []string
}

// UpdateInvalidWords carries the full invalid set.
type UpdateInvalidWords struct {
	Words []string
}

// UpdateFoundWords carries the full found set.
type UpdateFoundWords struct {
	Words []string
}

func (ShowResults) isMessage()        {}
func (UpdateInvalidWords) isMessage() {}
func (UpdateFoundWords) isMessage()   {}
