package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain ascii unchanged", input: "CAGR (Growth): 12.4%", want: "CAGR (Growth): 12.4%"},
		{name: "latin1 accents kept", input: "Café crème à 5€", want: "Café crème à 5EUR"},
		{name: "emoji dropped", input: "Growth 📈 strong 🚀", want: "Growth  strong "},
		{name: "smart punctuation", input: "“Quoted” — it’s fine…", want: `"Quoted" - it's fine...`},
		{name: "ligature decomposed", input: "ﬁnancial", want: "financial"},
		{name: "fullwidth folded", input: "Ａｌｐｈａ", want: "Alpha"},
		{name: "cjk dropped", input: "수익률 CAGR", want: " CAGR"},
		{name: "crlf and tabs", input: "line1\r\nline2\tx", want: "line1\nline2 x"},
		{name: "c1 controls dropped", input: "a\u0085b\u009fc", want: "abc"},
		{name: "superscript kept in latin1", input: "x²", want: "x²"},
		{name: "zero width removed", input: "Sharpe\u200bRatio", want: "SharpeRatio"},
		{name: "comparison symbols", input: "beta ≥ 1.2 → risky", want: "beta >= 1.2 -> risky"},
		{name: "non latin1 accent stripped", input: "Dvořák", want: "Dvorák"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.input))
		})
	}
}

func TestASCIIPolicy(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Café", want: "Cafe"},
		{input: "x²", want: "x2"},
		{input: "© 2024 Straße", want: "(c) 2024 Strasse"},
		{input: "non\u00a0breaking", want: "non breaking"},
		{input: "±3%", want: "+/-3%"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ASCII.Apply(tt.input))
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"Café 📈 “x” — ﬁ ２ 수익률\r\n\t€ ≥",
		strings.Repeat("🚀é", 50),
		"\u0000\u0001\u007f\u0085",
		"ǅ Ǆ ǲ ℌ ℍ ㎏",
	}
	for _, p := range []Policy{Latin1, ASCII} {
		for _, in := range inputs {
			once := p.Apply(in)
			assert.Equal(t, once, p.Apply(once), "policy %s input %q", p, in)
			for _, r := range once {
				assert.True(t, p.Allowed(r), "policy %s left %q in output of %q", p, r, in)
			}
		}
	}
}

func TestApply_SupportedTextUnchanged(t *testing.T) {
	var b strings.Builder
	for r := rune(0x20); r <= 0xFF; r++ {
		if Latin1.Allowed(r) {
			b.WriteRune(r)
		}
	}
	b.WriteString("\nsecond line")
	supported := b.String()
	assert.Equal(t, supported, Text(supported))
}

func FuzzApply_Idempotent(f *testing.F) {
	f.Add("Portfolio 📊 “summary” — 12%")
	f.Add("ﬀ ﬁ ﬂ ㈱ ½")
	f.Add("\xff\xfe invalid utf8")
	f.Fuzz(func(t *testing.T, s string) {
		for _, p := range []Policy{Latin1, ASCII} {
			once := p.Apply(s)
			if twice := p.Apply(once); twice != once {
				t.Fatalf("policy %s not idempotent: %q -> %q -> %q", p, s, once, twice)
			}
		}
	})
}

func TestLines(t *testing.T) {
	assert.Nil(t, Lines(Latin1, ""))
	assert.Nil(t, Lines(Latin1, "🚀\n"))
	assert.Equal(t, []string{"a", "", "b"}, Lines(Latin1, "a\n\nb\n"))
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "plain", Encode("plain"))
	assert.Equal(t, "Caf\xe9", Encode("Café"))
	assert.Equal(t, "Caf\xe9", Encode(Text("Café📈")))
}

func TestPolicy_UnmarshalText(t *testing.T) {
	var p Policy
	require.NoError(t, p.UnmarshalText([]byte("ASCII")))
	assert.Equal(t, ASCII, p)

	require.NoError(t, p.UnmarshalText([]byte("latin-1")))
	assert.Equal(t, Latin1, p)

	err := p.UnmarshalText([]byte("utf8"))
	var upe *UnknownPolicyError
	require.ErrorAs(t, err, &upe)
	assert.Equal(t, "utf8", upe.Name)
}
