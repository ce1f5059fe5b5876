package markdown

import "fmt"

// InvalidInputError means a pipeline entry point was handed an argument it
// cannot work with (e.g. an empty document).  Fatal to that call.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("markdown: invalid input: %s", e.Reason)
}
