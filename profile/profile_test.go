package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfile = `
[identification]
address  = 0
vendor   = TESTCO
model    = MOD001
firmware = 100
serial   = SN123

[param 0]
shef     = TMP
units    = degC
group    = 0
decimals = 2

[param 1]
shef     = HUM
units    = pct
group    = 0
decimals = 1

[xcmd 0]
prefix   = XDIAG
`

func TestLoadBytesIdentification(t *testing.T) {
	p, err := LoadBytes([]byte(sampleProfile))
	require.NoError(t, err)
	assert.Equal(t, byte('0'), p.Address)
	assert.Equal(t, "TESTCO", p.Ident.Vendor)
	assert.Equal(t, "MOD001", p.Ident.Model)
	assert.Equal(t, "100", p.Ident.Firmware)
	assert.Equal(t, "SN123", p.Ident.Serial)
}

func TestLoadBytesParams(t *testing.T) {
	p, err := LoadBytes([]byte(sampleProfile))
	require.NoError(t, err)
	require.Len(t, p.Params, 2)
	assert.Equal(t, "TMP", p.Params[0].SHEF)
	assert.Equal(t, uint8(2), p.Params[0].Decimals)
	assert.Equal(t, "HUM", p.Params[1].SHEF)
	assert.Equal(t, uint8(1), p.Params[1].Decimals)
}

func TestXCmdPrefixes(t *testing.T) {
	p, err := LoadBytes([]byte(sampleProfile))
	require.NoError(t, err)
	assert.Equal(t, []string{"XDIAG"}, p.XCmdPrefixes())
}

func TestLoadBytesMissingIdentification(t *testing.T) {
	_, err := LoadBytes([]byte("[param 0]\nshef = X\n"))
	assert.Error(t, err)
}
