package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressPartition(t *testing.T) {
	valid, invalid := 0, 0
	for c := 0; c < 128; c++ {
		if isValidAddress(byte(c)) {
			valid++
		} else {
			invalid++
		}
		// idempotence
		assert.Equal(t, isValidAddress(byte(c)), isValidAddress(byte(c)))
	}
	assert.Equal(t, 62, valid)
	assert.Equal(t, 66, invalid)
}

func TestParseAck(t *testing.T) {
	cmd, err := Parse([]byte("0!"))
	assert.NoError(t, err)
	assert.Equal(t, Command{Tag: TagAck, Address: '0'}, cmd)
}

func TestParseQueryAddr(t *testing.T) {
	cmd, err := Parse([]byte("?!"))
	assert.NoError(t, err)
	assert.Equal(t, TagQueryAddr, cmd.Tag)
}

func TestParseIdentify(t *testing.T) {
	cmd, err := Parse([]byte("0I!"))
	assert.NoError(t, err)
	assert.Equal(t, TagIdentify, cmd.Tag)
}

func TestParseMeasureVariants(t *testing.T) {
	cases := []struct {
		in    string
		group uint8
		crc   bool
	}{
		{"0M!", 0, false},
		{"0M3!", 3, false},
		{"0MC!", 0, true},
		{"0MC7!", 7, true},
	}
	for _, tc := range cases {
		cmd, err := Parse([]byte(tc.in))
		assert.NoError(t, err, tc.in)
		assert.Equal(t, TagMeasure, cmd.Tag, tc.in)
		assert.Equal(t, tc.group, cmd.Group, tc.in)
		assert.Equal(t, tc.crc, cmd.CRC, tc.in)
	}
}

func TestParseConcurrent(t *testing.T) {
	cmd, err := Parse([]byte("0C!"))
	assert.NoError(t, err)
	assert.Equal(t, TagConcurrent, cmd.Tag)
}

func TestParseVerify(t *testing.T) {
	cmd, err := Parse([]byte("0V!"))
	assert.NoError(t, err)
	assert.Equal(t, TagVerify, cmd.Tag)
}

func TestParseHighVol(t *testing.T) {
	cmd, err := Parse([]byte("0HA!"))
	assert.NoError(t, err)
	assert.Equal(t, TagHighVol, cmd.Tag)
	assert.False(t, cmd.Binary)

	cmd, err = Parse([]byte("0HBC!"))
	assert.NoError(t, err)
	assert.True(t, cmd.Binary)
	assert.True(t, cmd.CRC)

	cmd, err = Parse([]byte("0H!"))
	assert.NoError(t, err)
	assert.Equal(t, TagHighVolStub, cmd.Tag)
}

func TestParseSendData(t *testing.T) {
	cmd, err := Parse([]byte("0D3!"))
	assert.NoError(t, err)
	assert.Equal(t, TagSendData, cmd.Tag)
	assert.Equal(t, uint8(3), cmd.Page)
}

func TestParseSendBinary(t *testing.T) {
	cmd, err := Parse([]byte("0DB123!"))
	assert.NoError(t, err)
	assert.Equal(t, TagSendBinary, cmd.Tag)
	assert.Equal(t, uint16(123), cmd.BinPage)

	_, err = Parse([]byte("0DB1234!"))
	assert.Error(t, err)
}

func TestParseContinuous(t *testing.T) {
	cmd, err := Parse([]byte("0R5!"))
	assert.NoError(t, err)
	assert.Equal(t, TagContinuous, cmd.Tag)
	assert.Equal(t, uint8(5), cmd.Group)

	cmd, err = Parse([]byte("0RC5!"))
	assert.NoError(t, err)
	assert.True(t, cmd.CRC)
}

func TestParseChangeAddr(t *testing.T) {
	cmd, err := Parse([]byte("0A5!"))
	assert.NoError(t, err)
	assert.Equal(t, TagChangeAddr, cmd.Tag)
	assert.Equal(t, byte('5'), cmd.NewAddress)

	_, err = Parse([]byte("0A!!"))
	assert.Error(t, err)
}

func TestParseIdentifyMeas(t *testing.T) {
	cmd, err := Parse([]byte("0IM!"))
	assert.NoError(t, err)
	assert.Equal(t, TagIdentifyMeas, cmd.Tag)
	assert.Equal(t, MeasKindMeasure, cmd.MeasKind)
	assert.False(t, cmd.HasParam)

	cmd, err = Parse([]byte("0IM3_001!"))
	assert.NoError(t, err)
	assert.Equal(t, uint8(3), cmd.Group)
	assert.True(t, cmd.HasParam)
	assert.Equal(t, uint16(1), cmd.ParamIndex)

	cmd, err = Parse([]byte("0IHB_123!"))
	assert.NoError(t, err)
	assert.Equal(t, MeasKindHighVolBinary, cmd.MeasKind)
	assert.Equal(t, uint16(123), cmd.ParamIndex)
}

func TestParseExtended(t *testing.T) {
	cmd, err := Parse([]byte("0XFOO123!"))
	assert.NoError(t, err)
	assert.Equal(t, TagExtended, cmd.Tag)
	assert.Equal(t, "FOO123", cmd.Body)
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"0Z!", "0M99!", "0AZZ!", "0DB!"} {
		_, err := Parse([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestParseTrailingBangOptional(t *testing.T) {
	withBang, _ := Parse([]byte("0M!"))
	withoutBang, _ := Parse([]byte("0M"))
	assert.Equal(t, withBang, withoutBang)
}
