// Package percent implements legacy %-operator formatting over strings and
// byte slices.
//
// The engine renders a template containing %-directives against a sequence
// of arguments, in two parallel flavors: [Format] operates on Unicode text
// and [FormatBytes] on raw byte sequences. Directive syntax is ASCII and
// identical in both flavors:
//
//	%[flags][width][.precision]<conversion>
//
// Flags are '-' (left justify), '+' (force sign), ' ' (space for positive),
// '#' (alternate form), and '0' (zero pad). Width and precision are decimal
// digit runs, or '*' to pull the next positional argument. Conversions are
// s, r, a, c, d, i, u, x, X, o, and the float family e, E, f, F, g, G.
// "%%" emits a literal percent sign.
//
// # Arguments
//
// The variadic arguments form the positional list, consumed strictly left
// to right:
//
//	percent.Format("%s scored %d", "ada", 42)
//
// When exactly one argument is given and it is a map[string]any or
// implements [Mapper], directives may name their value with %(key); the
// first named directive switches the call into mapping mode for good:
//
//	percent.Format("%(user)s: %(count)d", map[string]any{"user": "ada", "count": 3})
//
// Leftover positional arguments are an error unless the source is a
// mapping. Exhausting the arguments mid-template is always an error.
//
// # Interface Design
//
// Argument values may customize their coercions through small optional
// interfaces, checked per value:
//
//   - [Reprer] — custom %r representation
//   - [Byter] — byte conversion for the bytes flavor's %s
//   - [Inter] — integer coercion for %d, %i, %u
//   - [Indexer] — exact integer coercion for %c, %x, %X, %o
//   - [Floater] — float coercion for e, E, f, F, g, G
//
// A failure returned by one of these hooks propagates to the caller
// unchanged; the formatter never substitutes a fallback value.
//
// # Flavors
//
// The two flavors differ only where the data kind forces them to. Text %c
// accepts any valid rune; bytes %c requires 0–255. Text %s renders any
// value, preferring [fmt.Stringer]; bytes %s requires a byte-like value or
// a [Byter]. Width and precision count runes in the text flavor and bytes
// in the bytes flavor. Both flavors are pure and stateless: concurrent
// calls never interfere.
//
// # Transcoding
//
// The bytes flavor crosses the byte/text boundary through [DecodeUTF8] and
// [EncodeUTF8], which recover from invalid input via named error handlers:
// "strict" fails, "ignore" drops the offending span, "replace" substitutes
// U+FFFD (decoding) or '?' (encoding). [RegisterErrorHandler] installs
// custom handlers; a handler receives the invalid span and returns the
// replacement fragment plus the position to resume from.
//
// # Errors
//
// All failures wrap one of the exported sentinels for programmatic
// matching with [errors.Is]:
//
//   - [ErrOperandType] — argument does not support the required coercion
//   - [ErrValueOutOfRange] — resolved value outside the flavor's range
//   - [ErrBadConversion] — unrecognized conversion character
//   - [ErrIncompleteFormat] — template ends mid-directive
//   - [ErrTooFewArguments] — positional arguments exhausted
//   - [ErrTooManyArguments] — positional arguments left over
//   - [ErrMappingRequired] — %(name) used without a mapping source
//   - [ErrMissingKey] — %(name) lookup failed
//
// No partial output is ever produced on failure.
package percent
