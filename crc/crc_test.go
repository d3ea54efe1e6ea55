package crc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeRange(t *testing.T) {
	for v := 0; v < 0x10000; v += 97 {
		enc := CRC16(v).Encode3()
		for _, b := range enc {
			assert.GreaterOrEqual(t, b, byte(0x40))
			assert.LessOrEqual(t, b, byte(0x7F))
		}
	}
}

func TestAppendVerifyRoundtrip(t *testing.T) {
	for _, payload := range [][]byte{
		[]byte("0+42+25.50+101.3+65.00-10.5"),
		[]byte("014TESTCO  MOD001100SN123"),
		{0x00, 0x01, 0x02, 0xFF},
		{},
	} {
		buf := make([]byte, len(payload)+5)
		n := copy(buf, payload)
		total, err := AppendLen(buf, n)
		assert.NoError(t, err)
		ok, err := Verify(buf, total)
		assert.NoError(t, err)
		assert.True(t, ok, "payload %q should verify", payload)
	}
}

func TestMutationSensitivity(t *testing.T) {
	payload := []byte("0+42+25.50+101.3+65.00-10.5")
	base := Of(payload)
	for i := range payload {
		mutated := make([]byte, len(payload))
		copy(mutated, payload)
		mutated[i] ^= 0x01
		assert.NotEqual(t, base, Of(mutated), "offset %d", i)
	}
}

func TestDoubleAppendNotIdempotent(t *testing.T) {
	payload := []byte("0M!")
	buf1 := make([]byte, len(payload)+5)
	n1, err := AppendLen(buf1, copy(buf1, payload))
	assert.NoError(t, err)

	buf2 := make([]byte, n1+5)
	n2, err := AppendLen(buf2, copy(buf2, buf1[:n1]))
	assert.NoError(t, err)

	assert.NotEqual(t, n1, n2)
}

func TestAppendTextUsesNulTerminator(t *testing.T) {
	buf := make([]byte, 16)
	copy(buf, "0") // remainder is NUL-filled by make
	n, err := AppendText(buf)
	assert.NoError(t, err)
	ok, err := Verify(buf, n)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte('\r'), buf[n-2])
}

func TestVerifyTooShort(t *testing.T) {
	_, err := Verify([]byte("ab"), 2)
	assert.Error(t, err)
}

func TestAppendOverflow(t *testing.T) {
	buf := make([]byte, 4)
	_, err := AppendLen(buf, 3)
	assert.ErrorIs(t, err, ErrBufferOverflow)
}

func TestKnownVector(t *testing.T) {
	// Bit-exact reference vector for the CRC-16-IBM (reflected, init 0)
	// algorithm over a single byte of value 10.
	var c CRC16
	c.Single(10)
	assert.EqualValues(t, 0x0780, c)
}
