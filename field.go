package percent

const (
	flagLJust = 1 << 0
	flagZero  = 1 << 1
)

// renderTextField truncates frag to precision code units, then pads with
// spaces to width on the side opposite the justify flag. Units are runes in
// the text flavor and bytes in the bytes flavor.
func renderTextField(out []byte, policy flavor, flags uint8, width, precision int, frag []byte) []byte {
	if precision >= 0 {
		frag = policy.clip(frag, precision)
	}
	if width <= 0 {
		return append(out, frag...)
	}
	padding := width - policy.units(frag)
	if padding > 0 && flags&flagLJust == 0 {
		out = appendRepeat(out, ' ', padding)
		padding = 0
	}
	out = append(out, frag...)
	if padding > 0 {
		out = appendRepeat(out, ' ', padding)
	}
	return out
}

// renderNumericField assembles sign, base prefix, leading zeros, and the
// digit fragment. Precision acts as a minimum digit count; under the zero
// flag any remaining width is satisfied by growing the zero run instead of
// space padding. Space padding goes before the sign when right-justified
// and after everything when left-justified. All pieces are ASCII, so byte
// counts are unit counts in both flavors.
func renderNumericField(out []byte, flags uint8, width, precision int, sign, prefix string, frag []byte) []byte {
	if width <= 0 && precision < 0 {
		out = append(out, sign...)
		out = append(out, prefix...)
		return append(out, frag...)
	}

	padding := width - len(frag) - len(sign) - len(prefix)

	zeros := 0
	if precision >= 0 {
		zeros = precision - len(frag)
		if zeros > 0 {
			padding -= zeros
		} else {
			zeros = 0
		}
	}

	if flags&flagZero != 0 && flags&flagLJust == 0 {
		// Pad by growing the zero run instead.
		if padding > 0 {
			zeros += padding
		}
		padding = 0
	}

	if padding > 0 && flags&flagLJust == 0 {
		out = appendRepeat(out, ' ', padding)
		padding = 0
	}
	out = append(out, sign...)
	out = append(out, prefix...)
	if zeros > 0 {
		out = appendRepeat(out, '0', zeros)
	}
	out = append(out, frag...)
	if padding > 0 {
		out = appendRepeat(out, ' ', padding)
	}
	return out
}

func appendRepeat(out []byte, c byte, n int) []byte {
	for ; n > 0; n-- {
		out = append(out, c)
	}
	return out
}
