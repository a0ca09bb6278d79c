package percent

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"
)

// Codec sentinel errors.
var (
	ErrUnknownHandler  = errors.New("unknown error handler name")
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// ErrorHandler recovers from an invalid span during transcoding. It
// receives the complete input, a human-readable reason, the encoding label,
// and the [start, end) bad span. It returns the replacement fragment and
// the position to resume from; a negative position counts from the end of
// the input. Returning an error aborts the transcoding with that error.
type ErrorHandler func(input []byte, reason, encoding string, start, end int) (replacement []byte, next int, err error)

var handlerRegistry = struct {
	sync.RWMutex
	m map[string]ErrorHandler
}{m: map[string]ErrorHandler{}}

// RegisterErrorHandler installs a named transcoding error handler, usable
// from any goroutine. The built-in names "strict", "ignore", and "replace"
// cannot be overridden.
func RegisterErrorHandler(name string, h ErrorHandler) {
	handlerRegistry.Lock()
	defer handlerRegistry.Unlock()
	handlerRegistry.m[name] = h
}

// DecodeUTF8 converts bytes to text, resolving invalid sequences through
// the named error handler.
func DecodeUTF8(input []byte, handler string) (string, error) {
	out, err := recodeUTF8(input, handler, false)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeUTF8 converts text to its byte encoding. Go strings may carry
// invalid UTF-8; such bytes are resolved through the named error handler.
func EncodeUTF8(s string, handler string) ([]byte, error) {
	return recodeUTF8([]byte(s), handler, true)
}

func recodeUTF8(input []byte, name string, encoding bool) ([]byte, error) {
	if utf8.Valid(input) {
		return input, nil
	}

	var custom ErrorHandler
	switch name {
	case "strict", "ignore", "replace":
	default:
		handlerRegistry.RLock()
		h, ok := handlerRegistry.m[name]
		handlerRegistry.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownHandler, name)
		}
		custom = h
	}

	out := make([]byte, 0, len(input))
	pos := 0
	for pos < len(input) {
		r, size := utf8.DecodeRune(input[pos:])
		if r != utf8.RuneError || size != 1 {
			out = append(out, input[pos:pos+size]...)
			pos += size
			continue
		}
		end := pos + 1
		reason := "invalid start byte"
		if input[pos]&0xC0 == 0x80 {
			reason = "invalid continuation byte"
		}
		switch {
		case custom != nil:
			rep, next, err := custom(input, reason, "utf-8", pos, end)
			if err != nil {
				return nil, err
			}
			returned := next
			if next < 0 {
				next += len(input)
			}
			if next < 0 || next > len(input) {
				return nil, fmt.Errorf("%w: error handler %q returned position %d out of bounds", ErrValueOutOfRange, name, returned)
			}
			out = append(out, rep...)
			pos = next
		case name == "strict":
			op := "decode"
			if encoding {
				op = "encode"
			}
			return nil, fmt.Errorf("%w: utf-8 codec can't %s byte %#02x in position %d: %s", ErrInvalidEncoding, op, input[pos], pos, reason)
		case name == "ignore":
			pos = end
		default: // replace
			if encoding {
				out = append(out, '?')
			} else {
				out = append(out, "�"...)
			}
			pos = end
		}
	}
	return out, nil
}
