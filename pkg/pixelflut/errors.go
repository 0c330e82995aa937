package pixelflut

import (
	"errors"
	"fmt"
)

// ErrMalformed marks a server response that does not match the expected
// grammar.
var ErrMalformed = errors.New("malformed response")

// ConnectError reports a server that could not be reached.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string { return fmt.Sprintf("connect to %s: %v", e.Addr, e.Err) }
func (e *ConnectError) Unwrap() error { return e.Err }

// ProtocolError reports a failed request/response exchange. Err wraps
// ErrMalformed when the server answered with an unexpected line.
type ProtocolError struct {
	Command string
	Line    string
	Err     error
}

func (e *ProtocolError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %q", e.Command, e.Err, e.Line)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func malformed(command, line, format string, args ...interface{}) error {
	return &ProtocolError{
		Command: command,
		Line:    line,
		Err:     fmt.Errorf("%w: "+format, append([]interface{}{ErrMalformed}, args...)...),
	}
}
