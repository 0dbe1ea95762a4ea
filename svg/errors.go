package svg

import (
	"encoding/xml"
	"fmt"
)

// ParseError reports a malformed XML/SVG document. It wraps the underlying
// encoding/xml error but exposes Line/Column directly, the way xml.SyntaxError
// is re-exposed as xml.SyntaxError in the teacher package this engine grew out of.
type ParseError struct {
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("svg: parse error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("svg: parse error: %s", e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrapXMLError converts an encoding/xml error (or io.EOF-adjacent failure)
// into a *ParseError, extracting line information when available.
func wrapXMLError(err error) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*ParseError); ok {
		return pe
	}
	if se, ok := err.(*xml.SyntaxError); ok {
		return &ParseError{Line: se.Line, Msg: se.Msg, Err: err}
	}
	return &ParseError{Msg: err.Error(), Err: err}
}

// ConfigError reports a malformed pipeline configuration: an unknown pass
// name, or a structurally invalid configuration object.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("svg: config error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("svg: config error: %s", e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// PassInvalidConfigError reports that a pass rejected its own parameters.
type PassInvalidConfigError struct {
	Pass string
	Msg  string
}

func (e *PassInvalidConfigError) Error() string {
	return fmt.Sprintf("svg: pass %q: invalid config: %s", e.Pass, e.Msg)
}

// PassProcessingError reports that a pass aborted mid-run because its input
// violated a precondition it cannot silently skip (e.g. an unparsable
// selector handed to remove-elements-by-attr).
type PassProcessingError struct {
	Pass string
	Msg  string
	Err  error
}

func (e *PassProcessingError) Error() string {
	return fmt.Sprintf("svg: pass %q: %s", e.Pass, e.Msg)
}

func (e *PassProcessingError) Unwrap() error { return e.Err }

// SerializeError reports that a Document reached the serializer in a state
// that violates one of its invariants (e.g. a non-unique attribute key).
type SerializeError struct {
	Msg string
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("svg: serialize error: %s", e.Msg)
}
