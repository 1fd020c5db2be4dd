package wizard

import "fmt"

// InvalidStepError reports a step number outside 1..9.
type InvalidStepError struct {
	Step int
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("wizard step %d is out of range", e.Step)
}

// NoSessionError reports an operation against an owner with no active
// wizard session.
type NoSessionError struct {
	Owner string
}

func (e *NoSessionError) Error() string {
	return fmt.Sprintf("no active wizard session for owner %s", e.Owner)
}
