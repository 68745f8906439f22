package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewtool/rew/internal/pattern"
)

// TestParse checks that patterns normalize to the expected canonical form.
// The escape character is '%' to keep the cases readable.
func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Literals and expressions, standalone
		{"", ""},
		{"c1", "c1"},
		{"{}", "{}"},
		{"{  }", "{}"},
		// Literals and expressions, composed
		{"{}c1{}", "{}c1{}"},
		{"c1{}c2{}c3", "c1{}c2{}c3"},
		{"  c1  {  }  c2  {  }  c3  ", "  c1  {}  c2  {}  c3  "},
		// Commands with args
		{"{n}", "{`n`}"},
		{"{n a}", "{`n` `a`}"},
		{"{n a b}", "{`n` `a` `b`}"},
		{"{name arg1 arg2}", "{`name` `arg1` `arg2`}"},
		// External commands
		{"{!name}", "{!`name`}"},
		{"{!name arg1 arg2}", "{!`name` `arg1` `arg2`}"},
		{"{!'name' arg1 arg2}", "{!`name` `arg1` `arg2`}"},
		{"{'!name' arg1 arg2}", "{`!name` `arg1` `arg2`}"}, // ! is part of the command name
		// Pipelines
		{"{n1|n2}", "{`n1`|`n2`}"},
		{"{n1|n2|n3}", "{`n1`|`n2`|`n3`}"},
		{"{n1|n2 a21|n3 a31 a32}", "{`n1`|`n2` `a21`|`n3` `a31` `a32`}"},
		{"{!n1|n2 a21|!n3 a31 a32}", "{!`n1`|`n2` `a21`|!`n3` `a31` `a32`}"},
		// Complex patterns
		{
			"c1{}c2{n1}c3{n2 a21 a22}c4{n3|n4 a41|n5 a51 a52}c5",
			"c1{}c2{`n1`}c3{`n2` `a21` `a22`}c4{`n3`|`n4` `a41`|`n5` `a51` `a52`}c5",
		},
		{
			"  c1  {}  c2  {  n1  }  c3  {  n2  a21  a22  }  c4  {  n3 |  n4  a41  |  n5  a51  a52  }  c5  ",
			"  c1  {}  c2  {`n1`}  c3  {`n2` `a21` `a22`}  c4  {`n3`|`n4` `a41`|`n5` `a51` `a52`}  c5  ",
		},
		// Markers only count directly after the opening brace
		{"{:n1|n2}", "{:`n1`|`n2`}"},
		{"{: n1|n2}", "{:`n1`|`n2`}"},
		{"{ :n1|n2}", "{`:n1`|`n2`}"},
		{"{ : n1|n2}", "{`:` `n1`|`n2`}"},
		{"{#n1|n2}", "{#`n1|n2`}"},
		{"{# n1|n2}", "{#`n1|n2`}"},
		{"{ #n1|n2}", "{`#n1`|`n2`}"},
		{"{ # n1|n2}", "{`#` `n1`|`n2`}"},
		{"{:#n1|n2}", "{:#`n1|n2`}"},
		{"{:# n1|n2}", "{:#`n1|n2`}"},
		{"{ :#n1|n2}", "{`:#n1`|`n2`}"},
		{"{#:n1|n2}", "{#`:n1|n2`}"},
		// Escaping in literals
		{"%%", "%"},
		{"%n", "\n"},
		{"%r", "\r"},
		{"%t", "\t"},
		{"%0", "\x00"},
		{"%}", "}"},
		{"%{", "{"},
		{"%'", "%'"},
		{"%\"", "%\""},
		{"%|", "%|"},
		{"%x", "%x"},
		// Escaping in unquoted args
		{"{a% b}", "{`a b`}"},
		{"{a%'b}", "{`a'b`}"},
		{"{a%\"b}", "{`a\"b`}"},
		{"{a%|b}", "{`a|b`}"},
		{"{a%{b}", "{`a{b`}"},
		{"{a%}b}", "{`a}b`}"},
		{"{a%xb}", "{`a%xb`}"},
		// Escaping in single quoted args
		{"{'a%'b'}", "{`a'b`}"},
		{"{'a% b'}", "{`a% b`}"},
		{"{'a%\"b'}", "{`a%\"b`}"},
		{"{'a%|b'}", "{`a%|b`}"},
		{"{'a%xb'}", "{`a%xb`}"},
		// Escaping in double quoted args
		{"{\"a%\"b\"}", "{`a\"b`}"},
		{"{\"a% b\"}", "{`a% b`}"},
		{"{\"a%'b\"}", "{`a%'b`}"},
		{"{\"a%xb\"}", "{`a%xb`}"},
		// Escaping in raw shell
		{"{#a% b}", "{#`a% b`}"},
		{"{#a%'b}", "{#`a%'b`}"},
		{"{#a%|b}", "{#`a%|b`}"},
		{"{#a%{b}", "{#`a{b`}"},
		{"{#a%}b}", "{#`a}b`}"},
		{"{#a%xb}", "{#`a%xb`}"},
		// Adjacent quoted fragments join into one arg
		{"{a'b'\"c\"}", "{`abc`}"},
		{"{'b'a\"c\"}", "{`bac`}"},
		{"{\"c\"'b'a}", "{`cba`}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tmpl, err := pattern.Parse(tt.input, '%')
			require.NoError(t, err)
			assert.Equal(t, tt.want, tmpl.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
		kind  pattern.Kind
	}{
		{"{{", 1, pattern.KindUnexpectedExprStart},
		{"{a{", 2, pattern.KindUnexpectedExprStart},
		{"{#a{", 3, pattern.KindUnexpectedExprStart},
		{"{|", 1, pattern.KindEmptyStage},
		{"{a|", 3, pattern.KindEmptyStage},
		{"{a|}", 3, pattern.KindEmptyStage},
		{"{'a", 1, pattern.KindUnclosedQuote},
		{"{\"a", 1, pattern.KindUnclosedQuote},
		{"}", 0, pattern.KindUnmatchedExprEnd},
		{"{", 0, pattern.KindUnterminatedExpr},
		{"{upper", 0, pattern.KindUnterminatedExpr},
		{"{#}", 2, pattern.KindEmptyShellCommand},
		{"{# }", 3, pattern.KindEmptyShellCommand},
		{"%", 0, pattern.KindBadEscape},
		{"{a%", 2, pattern.KindBadEscape},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := pattern.Parse(tt.input, '%')
			require.Error(t, err)

			var perr *pattern.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, tt.pos, perr.Pos)
			assert.Equal(t, tt.input, perr.Input)
		})
	}
}

func TestParseRawExprText(t *testing.T) {
	tmpl, err := pattern.Parse("{n1}{n2 a21}_{n3 a31 a32}", '%')
	require.NoError(t, err)

	exprs := tmpl.Exprs()
	require.Len(t, exprs, 3)
	assert.Equal(t, "{n1}", exprs[0].Raw)
	assert.Equal(t, "{n2 a21}", exprs[1].Raw)
	assert.Equal(t, "{n3 a31 a32}", exprs[2].Raw)

	assert.Equal(t, 0, exprs[0].Pos)
	assert.Equal(t, 4, exprs[1].Pos)
	assert.Equal(t, 13, exprs[2].Pos)
}

func TestParseQuoteKind(t *testing.T) {
	_, err := pattern.Parse("{'a", '%')
	var perr *pattern.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, '\'', perr.Quote)
}

func TestErrorExplain(t *testing.T) {
	_, err := pattern.Parse("abc}", '%')
	var perr *pattern.Error
	require.ErrorAs(t, err, &perr)

	expected := "pattern syntax error (UnmatchedExprEnd) at position 3\n" +
		"\n" +
		"abc}\n" +
		"   ^\n" +
		"   missing opening {\n"
	assert.Equal(t, expected, perr.Explain())
}
