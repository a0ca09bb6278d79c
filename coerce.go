package percent

import (
	"fmt"
	"math"
)

// coercionError marks a value that does not support the requested
// coercion, so the interpreter can apply flavor-specific wording. Errors
// returned by user hooks are never wrapped in it and propagate unchanged.
type coercionError struct {
	err error
}

func (e *coercionError) Error() string { return e.err.Error() }
func (e *coercionError) Unwrap() error { return e.err }

func cantCoerce(format string, args ...any) error {
	return &coercionError{fmt.Errorf(format, args...)}
}

func intMag(n int64) (bool, uint64) {
	if n < 0 {
		return true, uint64(-n)
	}
	return false, uint64(n)
}

// toNumber coerces an operand for %d/%i/%u: any integer or float kind, or a
// value with an [Inter] (or [Indexer]) hook. Floats truncate toward zero.
func toNumber(v any) (neg bool, mag uint64, err error) {
	switch x := v.(type) {
	case int:
		neg, mag = intMag(int64(x))
		return neg, mag, nil
	case int8:
		neg, mag = intMag(int64(x))
		return neg, mag, nil
	case int16:
		neg, mag = intMag(int64(x))
		return neg, mag, nil
	case int32:
		neg, mag = intMag(int64(x))
		return neg, mag, nil
	case int64:
		neg, mag = intMag(x)
		return neg, mag, nil
	case uint:
		return false, uint64(x), nil
	case uint8:
		return false, uint64(x), nil
	case uint16:
		return false, uint64(x), nil
	case uint32:
		return false, uint64(x), nil
	case uint64:
		return false, x, nil
	case uintptr:
		return false, uint64(x), nil
	case float32:
		return floatMag(float64(x))
	case float64:
		return floatMag(x)
	case Inter:
		n, err := x.Int()
		if err != nil {
			return false, 0, err
		}
		neg, mag = intMag(n)
		return neg, mag, nil
	case Indexer:
		n, err := x.Index()
		if err != nil {
			return false, 0, err
		}
		neg, mag = intMag(n)
		return neg, mag, nil
	}
	return false, 0, cantCoerce("%w: a number is required, not %s", ErrOperandType, typeName(v))
}

func floatMag(f float64) (bool, uint64, error) {
	if math.IsNaN(f) {
		return false, 0, fmt.Errorf("%w: cannot convert float NaN to integer", ErrValueOutOfRange)
	}
	if math.IsInf(f, 0) {
		return false, 0, fmt.Errorf("%w: cannot convert float infinity to integer", ErrValueOutOfRange)
	}
	t := math.Trunc(f)
	a := math.Abs(t)
	if a >= 1<<64 {
		return false, 0, fmt.Errorf("%w: float too large to convert to integer", ErrValueOutOfRange)
	}
	return t < 0, uint64(a), nil
}

// toIndex coerces an operand for %c/%x/%X/%o: integer kinds or an [Indexer]
// hook only. Stricter than [toNumber]: floats are rejected.
func toIndex(v any) (neg bool, mag uint64, err error) {
	switch x := v.(type) {
	case int:
		neg, mag = intMag(int64(x))
		return neg, mag, nil
	case int8:
		neg, mag = intMag(int64(x))
		return neg, mag, nil
	case int16:
		neg, mag = intMag(int64(x))
		return neg, mag, nil
	case int32:
		neg, mag = intMag(int64(x))
		return neg, mag, nil
	case int64:
		neg, mag = intMag(x)
		return neg, mag, nil
	case uint:
		return false, uint64(x), nil
	case uint8:
		return false, uint64(x), nil
	case uint16:
		return false, uint64(x), nil
	case uint32:
		return false, uint64(x), nil
	case uint64:
		return false, x, nil
	case uintptr:
		return false, uint64(x), nil
	case Indexer:
		n, err := x.Index()
		if err != nil {
			return false, 0, err
		}
		neg, mag = intMag(n)
		return neg, mag, nil
	}
	return false, 0, cantCoerce("%w: an integer is required, not %s", ErrOperandType, typeName(v))
}

// toFloat coerces an operand for the float conversions: float and integer
// kinds, or a [Floater] hook.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case Floater:
		return x.Float()
	}
	return 0, cantCoerce("%w: must be real number, not %s", ErrOperandType, typeName(v))
}

// exactInt accepts only integer kinds, for dynamic '*' width/precision.
func exactInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}
