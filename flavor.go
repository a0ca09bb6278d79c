package percent

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// flavor supplies the behavior that differs between the text and bytes
// renditions: argument coercion to text/repr form, %c resolution, code-unit
// accounting, and error wording. Both implementations are stateless and
// shared by concurrent calls.
type flavor interface {
	category() string
	asText(v any) ([]byte, error)
	asRepr(v any) ([]byte, error)
	char(v any) ([]byte, error)
	units(frag []byte) int
	clip(frag []byte, n int) []byte
	errNumberRequired(conv byte, tname string) error
	errRealRequired(inner error, tname string) error
}

// --- Text flavor ---

type textPolicy struct{}

func (textPolicy) category() string { return "string" }

func (textPolicy) asText(v any) ([]byte, error) {
	switch x := v.(type) {
	case string:
		return []byte(x), nil
	case []byte:
		s, err := DecodeUTF8(x, "replace")
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case fmt.Stringer:
		return []byte(x.String()), nil
	case error:
		return []byte(x.Error()), nil
	default:
		return fmt.Append(nil, v), nil
	}
}

func (textPolicy) asRepr(v any) ([]byte, error) {
	switch x := v.(type) {
	case Reprer:
		return []byte(x.Repr()), nil
	case string:
		return []byte(strconv.Quote(x)), nil
	case []byte:
		return []byte(strconv.Quote(string(x))), nil
	default:
		return fmt.Appendf(nil, "%#v", v), nil
	}
}

func (textPolicy) char(v any) ([]byte, error) {
	if s, ok := v.(string); ok {
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("%w: %%c requires int or char", ErrOperandType)
		}
		return []byte(s), nil
	}
	neg, mag, err := toIndex(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %%c requires int or char", ErrOperandType)
	}
	if neg || mag > utf8.MaxRune || !utf8.ValidRune(rune(mag)) {
		return nil, fmt.Errorf("%w: %%c arg not in range(%#x)", ErrValueOutOfRange, utf8.MaxRune+1)
	}
	return utf8.AppendRune(nil, rune(mag)), nil
}

func (textPolicy) units(frag []byte) int { return utf8.RuneCount(frag) }

func (textPolicy) clip(frag []byte, n int) []byte {
	if n >= len(frag) {
		return frag
	}
	i := 0
	for n > 0 && i < len(frag) {
		_, size := utf8.DecodeRune(frag[i:])
		i += size
		n--
	}
	return frag[:i]
}

func (textPolicy) errNumberRequired(conv byte, tname string) error {
	return fmt.Errorf("%w: %%%c format: a number is required, not %s", ErrOperandType, conv, tname)
}

// The text flavor surfaces the coercion failure itself.
func (textPolicy) errRealRequired(inner error, _ string) error { return inner }

// --- Bytes flavor ---

type bytesPolicy struct{}

func (bytesPolicy) category() string { return "bytes" }

func (bytesPolicy) asText(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return EncodeUTF8(x, "strict")
	case Byter:
		return x.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %%s requires a bytes-like object, or an object that implements Byter, not %q", ErrOperandType, typeName(v))
	}
}

// asRepr re-escapes code points above the single-byte range so the repr of
// an arbitrary value stays byte-oriented.
func (bytesPolicy) asRepr(v any) ([]byte, error) {
	frag, err := textPolicy{}.asRepr(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(frag))
	for _, r := range string(frag) {
		if r <= 0xFF {
			out = utf8.AppendRune(out, r)
		} else {
			out = fmt.Appendf(out, `\U%08x`, r)
		}
	}
	return out, nil
}

func (bytesPolicy) char(v any) ([]byte, error) {
	if b, ok := v.([]byte); ok {
		if len(b) != 1 {
			return nil, fmt.Errorf("%w: %%c requires an integer in range(256) or a single byte", ErrOperandType)
		}
		return b[:1], nil
	}
	neg, mag, err := toIndex(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %%c requires an integer in range(256) or a single byte", ErrOperandType)
	}
	if neg || mag > 0xFF {
		return nil, fmt.Errorf("%w: %%c arg not in range(256)", ErrValueOutOfRange)
	}
	return []byte{byte(mag)}, nil
}

func (bytesPolicy) units(frag []byte) int { return len(frag) }

func (bytesPolicy) clip(frag []byte, n int) []byte {
	if n >= len(frag) {
		return frag
	}
	return frag[:n]
}

func (bytesPolicy) errNumberRequired(conv byte, tname string) error {
	if conv == 'i' {
		conv = 'd'
	}
	return fmt.Errorf("%w: %%%c format: a number is required, not %s", ErrOperandType, conv, tname)
}

func (bytesPolicy) errRealRequired(inner error, tname string) error {
	var ce *coercionError
	if errors.As(inner, &ce) {
		return fmt.Errorf("%w: float argument required, not %s", ErrOperandType, tname)
	}
	return inner
}

// asciiEscape rewrites non-ASCII runes of a repr fragment as \x, \u, or \U
// escapes, leaving the result pure ASCII.
func asciiEscape(frag []byte) []byte {
	out := make([]byte, 0, len(frag))
	for _, r := range string(frag) {
		switch {
		case r < utf8.RuneSelf:
			out = append(out, byte(r))
		case r <= 0xFF:
			out = fmt.Appendf(out, `\x%02x`, r)
		case r <= 0xFFFF:
			out = fmt.Appendf(out, `\u%04x`, r)
		default:
			out = fmt.Appendf(out, `\U%08x`, r)
		}
	}
	return out
}
