package builtin_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewtool/rew/internal/builtin"
	"github.com/rewtool/rew/internal/record"
)

func testConfig() record.Config {
	return record.Config{Sep: '\n', BufMode: record.BufLine, BufSize: record.DefaultBufSize}
}

func run(t *testing.T, cmd builtin.Command, args []string, input string) string {
	t.Helper()
	var out bytes.Buffer
	streams := builtin.IO{
		Config: testConfig(),
		In:     strings.NewReader(input),
		Out:    &out,
		Err:    io.Discard,
	}
	require.NoError(t, cmd.Run(context.Background(), streams, args))
	return out.String()
}

func TestRegistry(t *testing.T) {
	reg := builtin.Default()

	cmd, err := reg.Lookup("upper")
	require.NoError(t, err)
	assert.Equal(t, "upper", cmd.Name())

	_, err = reg.Lookup("nope")
	assert.Error(t, err)

	assert.True(t, reg.IsGenerator("seq"))
	assert.True(t, reg.IsGenerator("stream"))
	assert.False(t, reg.IsGenerator("upper"))
	assert.False(t, reg.IsGenerator("loop"))
	assert.False(t, reg.IsGenerator("nope"))

	names := make([]string, 0)
	for _, c := range reg.All() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "cat")
	assert.NotContains(t, names, "x")
	assert.IsIncreasing(t, names)
}

func TestCase(t *testing.T) {
	assert.Equal(t, "FIRST\nSECOND\n", run(t, &builtin.Upper{}, nil, "first\nsecond\n"))
	assert.Equal(t, "first\nsecond\n", run(t, &builtin.Lower{}, nil, "FIRST\nSECOND\n"))
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "a\nb\n", run(t, &builtin.Trim{}, nil, "  a  \n\tb\t\n"))
	assert.Equal(t, "a  \nb\t\n", run(t, &builtin.Trim{}, []string{"-s"}, "  a  \n\tb\t\n"))
	assert.Equal(t, "  a\n\tb\n", run(t, &builtin.Trim{}, []string{"-e"}, "  a  \n\tb\t\n"))
}

func TestCat(t *testing.T) {
	assert.Equal(t, "raw\r\ndata", run(t, &builtin.Cat{}, nil, "raw\r\ndata"))
	// Line mode normalizes CR+LF to the output delimiter.
	assert.Equal(t, "a\nb\n", run(t, &builtin.Cat{}, []string{"-l"}, "a\r\nb\r\n"))
}

func TestFirst(t *testing.T) {
	assert.Equal(t, "a\n", run(t, &builtin.First{}, nil, "a\nb\nc\n"))
	assert.Equal(t, "a\nb\n", run(t, &builtin.First{}, []string{"2"}, "a\nb\nc\n"))
	assert.Equal(t, "", run(t, &builtin.First{}, []string{"0"}, "a\nb\n"))
	assert.Equal(t, "a\nb\n", run(t, &builtin.First{}, []string{"5"}, "a\nb\n"))
}

func TestLast(t *testing.T) {
	assert.Equal(t, "c\n", run(t, &builtin.Last{}, nil, "a\nb\nc\n"))
	assert.Equal(t, "b\nc\n", run(t, &builtin.Last{}, []string{"2"}, "a\nb\nc\n"))
	assert.Equal(t, "", run(t, &builtin.Last{}, []string{"0"}, "a\nb\n"))
	assert.Equal(t, "a\nb\n", run(t, &builtin.Last{}, []string{"5"}, "a\nb\n"))
}

func TestSkip(t *testing.T) {
	assert.Equal(t, "b\nc\n", run(t, &builtin.Skip{}, []string{"1"}, "a\nb\nc\n"))
	assert.Equal(t, "a\nb\n", run(t, &builtin.Skip{}, []string{"0"}, "a\nb\n"))
	assert.Equal(t, "", run(t, &builtin.Skip{}, []string{"9"}, "a\nb\n"))
}

func TestSplit(t *testing.T) {
	assert.Equal(t, "a\nb\nc\n", run(t, &builtin.Split{}, []string{","}, "a,b,c"))
	assert.Equal(t, "a\nb\n", run(t, &builtin.Split{}, []string{",", "-t"}, "a,b\n"))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a,b,c\n", run(t, &builtin.Join{}, []string{","}, "a\nb\nc\n"))
	assert.Equal(t, "a,b,\n", run(t, &builtin.Join{}, []string{",", "-t"}, "a\nb\n"))
	assert.Equal(t, "\n", run(t, &builtin.Join{}, []string{","}, ""))
}

func TestSeq(t *testing.T) {
	require.True(t, (&builtin.Seq{}).Generator())

	assert.Equal(t, "1\n2\n3\n", run(t, &builtin.Seq{}, []string{"1", "3"}, ""))
	assert.Equal(t, "1\n2\n3\n", run(t, &builtin.Seq{}, []string{"1..3"}, ""))
	assert.Equal(t, "3\n2\n1\n", run(t, &builtin.Seq{}, []string{"3", "1"}, ""))
	assert.Equal(t, "2\n4\n6\n", run(t, &builtin.Seq{}, []string{"2", "6", "-s", "2"}, ""))
	assert.Equal(t, "5\n", run(t, &builtin.Seq{}, []string{"5", "5"}, ""))
}

func TestStream(t *testing.T) {
	require.True(t, (&builtin.Stream{}).Generator())

	assert.Equal(t, "a\nb\n", run(t, &builtin.Stream{}, []string{"a", "b"}, ""))
	assert.Equal(t, "", run(t, &builtin.Stream{}, nil, ""))
}

func TestLoop(t *testing.T) {
	assert.Equal(t, "ab\nab\nab\n", run(t, &builtin.Loop{}, []string{"3"}, "ab\n"))
	assert.Equal(t, "ab\n", run(t, &builtin.Loop{}, []string{"1"}, "ab\n"))
	assert.Equal(t, "", run(t, &builtin.Loop{}, []string{"0"}, "ab\n"))
	assert.Equal(t, "", run(t, &builtin.Loop{}, nil, ""))
}

func TestMatch(t *testing.T) {
	assert.Equal(t, "abc\nabd\n", run(t, &builtin.Match{}, []string{"^ab"}, "abc\nxbc\nabd\n"))
	assert.Equal(t, "ABC\n", run(t, &builtin.Match{}, []string{"-i", "abc"}, "ABC\nxyz\n"))
	assert.Equal(t, "a1\nb22\n", run(t, &builtin.Match{}, []string{"[0-9]+"}, "a1\nbb\nb22\n"))
}

func TestReplace(t *testing.T) {
	assert.Equal(t, "aXc\n", run(t, &builtin.Replace{}, []string{"b", "X"}, "abc\n"))
	assert.Equal(t, "X-X\n", run(t, &builtin.Replace{}, []string{"[0-9]+", "X"}, "12-345\n"))
}

func TestAscii(t *testing.T) {
	assert.Equal(t, "plain\n", run(t, &builtin.Ascii{}, nil, "plain\n"))
	assert.Equal(t, "cafe\n", run(t, &builtin.Ascii{}, nil, "café\n"))
	assert.Equal(t, "caf\n", run(t, &builtin.Ascii{}, []string{"-d"}, "café\n"))
}

func TestAsciiReplacesUnmapped(t *testing.T) {
	assert.Equal(t, "a?b\n", run(t, &builtin.Ascii{}, nil, "a☃b\n"))
}
