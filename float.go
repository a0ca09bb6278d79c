package percent

import (
	"bytes"
	"math"
	"strconv"
)

// formatFloatFrag renders the magnitude of v for one of the e, E, f, F, g,
// G conversions. The sign is handled by the caller from the float's sign
// bit, so the fragment is always unsigned. Infinities and NaN follow the
// conversion letter's case and carry no digits.
func formatFloatFrag(v float64, conv byte, precision int, alt bool) []byte {
	upper := conv == 'E' || conv == 'F' || conv == 'G'
	if math.IsInf(v, 0) {
		if upper {
			return []byte("INF")
		}
		return []byte("inf")
	}
	if math.IsNaN(v) {
		if upper {
			return []byte("NAN")
		}
		return []byte("nan")
	}

	letter := conv
	if conv == 'F' {
		letter = 'f'
	}
	frag := strconv.AppendFloat(nil, math.Abs(v), letter, precision, 64)

	// Alternate form guarantees a decimal point.
	if alt && !bytes.ContainsRune(frag, '.') {
		if i := bytes.IndexAny(frag, "eE"); i >= 0 {
			withPoint := make([]byte, 0, len(frag)+1)
			withPoint = append(withPoint, frag[:i]...)
			withPoint = append(withPoint, '.')
			frag = append(withPoint, frag[i:]...)
		} else {
			frag = append(frag, '.')
		}
	}
	return frag
}
