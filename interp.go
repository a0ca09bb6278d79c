package percent

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Field widths and precisions larger than this are rejected outright.
const maxFieldSize = 1 << 30

// interp drives one format call: a bounds-checked byte cursor over the
// template, an argument source, and the flavor's output accumulator.
// Scanning for '%' byte-wise is safe in both flavors because UTF-8 never
// embeds ASCII inside a multi-byte sequence.
type interp struct {
	policy flavor
	tmpl   []byte
	src    *argSource
	out    []byte
	pos    int
}

func run(policy flavor, tmpl []byte, args []any) ([]byte, error) {
	in := &interp{
		policy: policy,
		tmpl:   tmpl,
		src:    resolveArgs(args),
		out:    make([]byte, 0, len(tmpl)),
	}
	begin := 0
	for {
		rel := bytes.IndexByte(in.tmpl[in.pos:], '%')
		if rel < 0 {
			break
		}
		marker := in.pos + rel
		in.out = append(in.out, in.tmpl[begin:marker]...)
		in.pos = marker + 1
		if err := in.directive(); err != nil {
			return nil, err
		}
		begin = in.pos
	}
	in.out = append(in.out, in.tmpl[begin:]...)
	if in.src.leftover() {
		return nil, fmt.Errorf("%w during %s formatting", ErrTooManyArguments, policy.category())
	}
	return in.out, nil
}

// next consumes one template byte. Running out mid-directive is the
// incomplete-format condition.
func (in *interp) next() (byte, error) {
	if in.pos >= len(in.tmpl) {
		return 0, ErrIncompleteFormat
	}
	c := in.tmpl[in.pos]
	in.pos++
	return c, nil
}

func (in *interp) directive() error {
	c, err := in.next()
	if err != nil {
		return err
	}

	if c == '%' {
		in.out = append(in.out, '%')
		return nil
	}

	if c == '(' {
		if in.src.mapping == nil {
			return ErrMappingRequired
		}
		key, err := in.scanKey()
		if err != nil {
			return err
		}
		if err := in.src.rebind(key); err != nil {
			return err
		}
		if c, err = in.next(); err != nil {
			return err
		}
	}

	var flags uint8
	positiveSign := ""
	alt := false
parseFlags:
	for {
		switch c {
		case '-':
			flags |= flagLJust
		case '+':
			positiveSign = "+"
		case ' ':
			if positiveSign != "+" {
				positiveSign = " "
			}
		case '#':
			alt = true
		case '0':
			flags |= flagZero
		default:
			break parseFlags
		}
		if c, err = in.next(); err != nil {
			return err
		}
	}

	width := -1
	if c == '*' {
		n, err := in.starArg("width")
		if err != nil {
			return err
		}
		width = n
		if width < 0 {
			flags |= flagLJust
			width = -width
		}
		if c, err = in.next(); err != nil {
			return err
		}
	} else if isDigit(c) {
		if width, c, err = in.scanNumber(c, "width"); err != nil {
			return err
		}
	}

	precision := -1
	if c == '.' {
		precision = 0
		if c, err = in.next(); err != nil {
			return err
		}
		if c == '*' {
			n, err := in.starArg("prec")
			if err != nil {
				return err
			}
			precision = max(0, n)
			if c, err = in.next(); err != nil {
				return err
			}
		} else if isDigit(c) {
			if precision, c, err = in.scanNumber(c, "prec"); err != nil {
				return err
			}
		}
	}

	arg, err := in.src.next()
	if err != nil {
		return err
	}

	switch c {
	case 's':
		frag, err := in.policy.asText(arg)
		if err != nil {
			return err
		}
		in.out = renderTextField(in.out, in.policy, flags, width, precision, frag)
	case 'r':
		frag, err := in.policy.asRepr(arg)
		if err != nil {
			return err
		}
		in.out = renderTextField(in.out, in.policy, flags, width, precision, frag)
	case 'a':
		frag, err := textPolicy{}.asRepr(arg)
		if err != nil {
			return err
		}
		in.out = renderTextField(in.out, in.policy, flags, width, precision, asciiEscape(frag))
	case 'c':
		frag, err := in.policy.char(arg)
		if err != nil {
			return err
		}
		in.out = renderTextField(in.out, in.policy, flags, width, precision, frag)
	case 'd', 'i', 'u':
		neg, mag, err := toNumber(arg)
		if err != nil {
			var ce *coercionError
			if errors.As(err, &ce) {
				return in.policy.errNumberRequired(c, typeName(arg))
			}
			return err
		}
		sign := positiveSign
		if neg {
			sign = "-"
		}
		frag := strconv.AppendUint(nil, mag, 10)
		in.out = renderNumericField(in.out, flags, width, precision, sign, "", frag)
	case 'x', 'X', 'o':
		neg, mag, err := toIndex(arg)
		if err != nil {
			var ce *coercionError
			if errors.As(err, &ce) {
				return fmt.Errorf("%w: %%%c format: an integer is required, not %s", ErrOperandType, c, typeName(arg))
			}
			return err
		}
		sign := positiveSign
		if neg {
			sign = "-"
		}
		var prefix string
		var frag []byte
		switch c {
		case 'x':
			frag = strconv.AppendUint(nil, mag, 16)
			if alt {
				prefix = "0x"
			}
		case 'X':
			frag = bytes.ToUpper(strconv.AppendUint(nil, mag, 16))
			if alt {
				prefix = "0X"
			}
		case 'o':
			frag = strconv.AppendUint(nil, mag, 8)
			if alt {
				prefix = "0o"
			}
		}
		in.out = renderNumericField(in.out, flags, width, precision, sign, prefix, frag)
	case 'e', 'E', 'f', 'F', 'g', 'G':
		v, err := toFloat(arg)
		if err != nil {
			return in.policy.errRealRequired(err, typeName(arg))
		}
		if precision < 0 {
			precision = 6
		}
		// The NaN test keeps the payload sign bit from emitting "-nan".
		sign := positiveSign
		if math.Signbit(v) && !math.IsNaN(v) {
			sign = "-"
		}
		frag := formatFloatFrag(v, c, precision, alt)
		if !isDigit(frag[0]) {
			// inf/nan never zero-pad.
			flags &^= flagZero
		}
		in.out = renderNumericField(in.out, flags, width, 0, sign, "", frag)
	default:
		return fmt.Errorf("%w %q (%#x) at index %d", ErrBadConversion, c, c, in.pos-1)
	}
	return nil
}

// scanKey consumes a balanced-parenthesis key, assuming the opening '(' was
// already read. The key may itself contain matched parentheses.
func (in *interp) scanKey() (string, error) {
	depth := 1
	start := in.pos
	for {
		c, err := in.next()
		if err != nil {
			return "", err
		}
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return string(in.tmpl[start : in.pos-1]), nil
			}
		}
	}
}

// scanNumber accumulates a decimal run starting at c and returns the value
// plus the first non-digit byte.
func (in *interp) scanNumber(c byte, what string) (int, byte, error) {
	n := 0
	for {
		n += int(c - '0')
		next, err := in.next()
		if err != nil {
			return 0, 0, err
		}
		c = next
		if !isDigit(c) {
			return n, c, nil
		}
		if n > maxFieldSize/10 {
			return 0, 0, fmt.Errorf("%w: %s too big", ErrValueOutOfRange, what)
		}
		n *= 10
	}
}

// starArg pulls the next positional argument as a dynamic width/precision.
func (in *interp) starArg(what string) (int, error) {
	arg, err := in.src.next()
	if err != nil {
		return 0, err
	}
	n, ok := exactInt(arg)
	if !ok {
		return 0, fmt.Errorf("%w: * wants int", ErrOperandType)
	}
	if n > maxFieldSize || n < -maxFieldSize {
		return 0, fmt.Errorf("%w: %s too big", ErrValueOutOfRange, what)
	}
	return int(n), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
