package source

import "fmt"

// LoadError reports a source file that is missing or unreadable, or whose
// structure (header, field counts) cannot be read as a delimited table.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports a cell that could not be coerced to its declared type.
// Row is the 1-based data row index (header excluded) so the offending line
// can be found without re-running with extra instrumentation.
type ParseError struct {
	Path   string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s row %d column %q: invalid value %q: %v",
		e.Path, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
