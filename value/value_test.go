package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatIntegerAndDecimal(t *testing.T) {
	assert.Equal(t, "+42", Format(Value{Value: 42, Decimals: 0}))
	assert.Equal(t, "+25.50", Format(Value{Value: 25.5, Decimals: 2}))
	assert.Equal(t, "+101.3", Format(Value{Value: 101.3, Decimals: 1}))
	assert.Equal(t, "-10.5", Format(Value{Value: -10.5, Decimals: 1}))
}

func TestParseBasic(t *testing.T) {
	got := Parse("+42+25.50+101.3+65.00-10.5", 99)
	want := []Value{
		{42, 0}, {25.5, 2}, {101.3, 1}, {65, 2}, {-10.5, 1},
	}
	assert.Equal(t, want, got)
}

func TestParseWhitespaceTolerant(t *testing.T) {
	got := Parse("  +1 +2  +3", 99)
	assert.Len(t, got, 3)
}

func TestParseSkipsTokenWithoutDigits(t *testing.T) {
	got := Parse("+.+5", 99)
	assert.Equal(t, []Value{{5, 0}}, got)
}

func TestParseConcatenation(t *testing.T) {
	a, b := "+1+2", "+3.5-4"
	whole := Parse(a+b, 99)
	parts := append(Parse(a, 99), Parse(b, 99)...)
	assert.Equal(t, parts, whole)
}

func TestParseSignSymmetry(t *testing.T) {
	pos := Parse("+7.25", 1)
	neg := Parse("-7.25", 1)
	assert.Equal(t, pos[0].Value, -neg[0].Value)
}

func TestParseDecimalCount(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want uint8
	}{
		{"+5", 0},
		{"+5.", 0},
		{"+5.1", 1},
		{"+5.123", 3},
	} {
		got := Parse(tc.in, 1)
		assert.Len(t, got, 1)
		assert.Equal(t, tc.want, got[0].Decimals, tc.in)
	}
}

func TestParseCapacityLimit(t *testing.T) {
	got := Parse("+1+2+3+4", 2)
	assert.Len(t, got, 2)
}

func TestParseCRCStripped(t *testing.T) {
	got := ParseCRCStripped("0+42+25.50ABC\r\n", 99)
	assert.Equal(t, []Value{{0, 0}, {42, 0}, {25.5, 2}}, got)
}
