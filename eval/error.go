package eval

import "fmt"

// PositionedError is an evaluation error tied to a source location. A plain
// message produced deep inside evalNode is promoted to a PositionedError at
// the first node whose token position is known; an error that is already
// positioned passes through every ancestor unchanged.
type PositionedError struct {
	Row     int
	Col     int
	Message string
}

func (e *PositionedError) Error() string {
	return fmt.Sprintf("Row %d, Col: %d: %s", e.Row, e.Col, e.Message)
}

// plain builds an error with no attached position, the shape every
// evalNode case and operator helper returns on failure.
func plain(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
