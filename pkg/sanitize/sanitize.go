// Package sanitize reduces arbitrary text to the character range the PDF
// core fonts can draw.
//
// The core fonts (Helvetica, Times, Courier) are single-byte encoded, so
// anything outside Latin-1 would print as garbage glyphs. Unsupported runes
// are transliterated where a reasonable ASCII spelling exists and dropped
// otherwise. Every Policy is total and idempotent:
//
//	sanitize.Text(sanitize.Text(s)) == sanitize.Text(s)
package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Policy selects the set of characters that survive sanitization.
type Policy int

const (
	// Latin1 keeps printable ASCII and the printable upper half of ISO-8859-1.
	Latin1 Policy = iota
	// ASCII keeps printable ASCII only; accented letters lose their marks.
	ASCII
)

// ParsePolicy maps a config string to a Policy. Unknown names fall back to
// Latin1 and report false.
func ParsePolicy(name string) (Policy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "latin1", "latin-1", "iso-8859-1":
		return Latin1, true
	case "ascii":
		return ASCII, true
	default:
		return Latin1, false
	}
}

// String returns the config name of the policy.
func (p Policy) String() string {
	if p == ASCII {
		return "ascii"
	}
	return "latin1"
}

// MarshalText implements encoding.TextMarshaler for YAML/JSON configs.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names are
// rejected so typos in config files surface early.
func (p *Policy) UnmarshalText(b []byte) error {
	v, ok := ParsePolicy(string(b))
	if !ok {
		return &UnknownPolicyError{Name: string(b)}
	}
	*p = v
	return nil
}

// UnknownPolicyError is returned when a config names an unsupported policy.
type UnknownPolicyError struct {
	Name string
}

func (e *UnknownPolicyError) Error() string {
	return "sanitize: unknown policy " + `"` + e.Name + `"`
}

// Allowed reports whether r is kept verbatim under the policy.
// Newline is always allowed so multi-line bodies keep their structure.
func (p Policy) Allowed(r rune) bool {
	if r == '\n' {
		return true
	}
	if r >= 0x20 && r <= 0x7E {
		return true
	}
	return p == Latin1 && r >= 0xA0 && r <= 0xFF
}

// Apply returns s reduced to the policy's character set.
func (p Policy) Apply(s string) string {
	if s == "" {
		return ""
	}
	if p.clean(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case p.Allowed(r):
			b.WriteRune(r)
		case r == '\t':
			b.WriteByte(' ')
		case unicode.IsControl(r):
			// CR, C0/C1 controls and DEL carry no glyph
		default:
			p.degrade(&b, r)
		}
	}
	return b.String()
}

// clean reports whether s needs no rewriting at all.
func (p Policy) clean(s string) bool {
	for _, r := range s {
		if !p.Allowed(r) {
			return false
		}
	}
	return true
}

// degrade writes the best-effort replacement for an unsupported rune.
func (p Policy) degrade(b *strings.Builder, r rune) {
	if repl, ok := transliterations[r]; ok {
		b.WriteString(repl)
		return
	}
	for _, d := range norm.NFKD.String(string(r)) {
		if unicode.Is(unicode.Mn, d) {
			continue
		}
		if p.Allowed(d) && d != '\n' {
			b.WriteRune(d)
		}
	}
}

// Text sanitizes s with the default Latin1 policy.
func Text(s string) string {
	return Latin1.Apply(s)
}

// Lines sanitizes s and splits it on newlines. A trailing newline does not
// produce an empty final line.
func Lines(p Policy, s string) []string {
	clean := strings.TrimRight(p.Apply(s), "\n")
	if clean == "" {
		return nil
	}
	return strings.Split(clean, "\n")
}

var latin1Encoder = encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())

// Encode converts sanitized UTF-8 text into the single-byte string the core
// fonts expect. Input that skipped sanitization still encodes; unsupported
// runes become the encoder's replacement byte.
func Encode(s string) string {
	if isASCII(s) {
		return s
	}
	out, err := latin1Encoder.String(s)
	if err != nil {
		return Encode(ASCII.Apply(s))
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// transliterations maps common typographic runes outside Latin-1 to ASCII.
// Every value must be printable ASCII so the result stays idempotent.
var transliterations = map[rune]string{
	'‘': "'", '’': "'", '‚': "'", '‛': "'",
	'“': `"`, '”': `"`, '„': `"`, '‟': `"`,
	'′': "'", '″': `"`,
	'‐': "-", '‑': "-", '‒': "-", '–': "-", '—': "-", '―': "-",
	'−': "-",
	'…': "...",
	'•': "*", '‣': ">", '●': "*", '▪': "*", '⁃': "-",
	'\u2002': " ", '\u2003': " ", '\u2009': " ", '\u200a': " ", '\u202f': " ", '\u3000': " ",
	'\u200b': "", '\u200c': "", '\u200d': "", '\ufeff': "",
	'€': "EUR", '₩': "KRW", '₹': "INR", '₽': "RUB",
	'™': "(TM)",
	'←': "<-", '→': "->", '↑': "^", '↓': "v", '↔': "<->",
	'⇒': "=>", '⇐': "<=",
	'≤': "<=", '≥': ">=", '≠': "!=", '≈': "~", '∞': "inf",
	'‰': "o/oo",
	'✓': "v", '✔': "v", '✗': "x", '✘': "x",
	'▲': "^", '▼': "v",

	// Latin-1 symbols only reach this table under the ASCII policy.
	'©': "(c)", '®': "(R)", '×': "x", '÷': "/",
	'ß': "ss", '°': " deg", '«': "<<", '»': ">>",
	'£': "GBP", '¥': "JPY", '±': "+/-", '·': "*",
}
