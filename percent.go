package percent

import (
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrOperandType      = errors.New("invalid operand type")
	ErrValueOutOfRange  = errors.New("value out of range")
	ErrBadConversion    = errors.New("unsupported format character")
	ErrIncompleteFormat = errors.New("incomplete format")
	ErrTooFewArguments  = errors.New("not enough arguments for format string")
	ErrTooManyArguments = errors.New("not all arguments converted")
	ErrMappingRequired  = errors.New("format requires a mapping")
	ErrMissingKey       = errors.New("missing format key")
)

// --- Coercion Interfaces ---

// Mapper supplies values for %(name) directives. A call whose single
// argument implements Mapper (or is a map[string]any) is mapping-capable.
type Mapper interface {
	Lookup(key string) (any, bool)
}

// Byter converts a value to bytes. The bytes flavor's %s accepts any value
// implementing it.
type Byter interface {
	Bytes() []byte
}

// Reprer overrides the %r representation of a value.
type Reprer interface {
	Repr() string
}

// Inter converts a value to an integer for %d, %i, and %u.
// A returned error propagates to the caller unchanged.
type Inter interface {
	Int() (int64, error)
}

// Indexer converts a value to an exact integer for %c, %x, %X, and %o.
// Distinct from [Inter]: float-like values must not implement it.
type Indexer interface {
	Index() (int64, error)
}

// Floater converts a value to a float for the e, E, f, F, g, G conversions.
type Floater interface {
	Float() (float64, error)
}

// Format renders a %-template against args and returns the result as text.
//
// args form the positional list. A single map[string]any or [Mapper]
// argument additionally enables %(name) directives.
func Format(template string, args ...any) (string, error) {
	out, err := run(textPolicy{}, []byte(template), args)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FormatBytes renders a %-template against args and returns the result as
// bytes. Argument binding works exactly as in [Format].
func FormatBytes(template []byte, args ...any) ([]byte, error) {
	return run(bytesPolicy{}, template, args)
}

// Write renders template against args and writes the result to w.
// On a formatting error nothing is written.
func Write(w io.Writer, template string, args ...any) error {
	s, err := Format(template, args...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// WriteBytes is the bytes-flavor counterpart of [Write].
func WriteBytes(w io.Writer, template []byte, args ...any) error {
	b, err := FormatBytes(template, args...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// argSource is the resolved argument binding for one call: a positional
// list, optionally mapping-capable. Entering mapping mode (the first
// %(name) directive) is one-way; it rebinds the positional list to the
// looked-up value for that directive.
type argSource struct {
	list    []any
	idx     int
	mapping Mapper
	named   bool
}

type mapAdapter map[string]any

func (m mapAdapter) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func resolveArgs(args []any) *argSource {
	src := &argSource{list: args}
	if len(args) == 1 {
		switch m := args[0].(type) {
		case Mapper:
			src.mapping = m
		case map[string]any:
			src.mapping = mapAdapter(m)
		}
	}
	return src
}

func (s *argSource) next() (any, error) {
	if s.idx >= len(s.list) {
		return nil, ErrTooFewArguments
	}
	v := s.list[s.idx]
	s.idx++
	return v, nil
}

// rebind looks up key and makes its value the sole pending positional
// argument, entering mapping mode.
func (s *argSource) rebind(key string) error {
	if s.mapping == nil {
		return ErrMappingRequired
	}
	v, ok := s.mapping.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	s.list = []any{v}
	s.idx = 0
	s.named = true
	return nil
}

// leftover reports whether unconsumed positional arguments should fail the
// call. A mapping-capable source tolerates its own unconsumed self.
func (s *argSource) leftover() bool {
	return s.idx < len(s.list) && s.mapping == nil
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
