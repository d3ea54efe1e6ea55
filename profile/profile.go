// Package profile loads a sensor's identification and parameter table from
// an INI-formatted profile file, the same section-per-entry convention the
// CANopen object-dictionary loader uses for EDS files, adapted here to
// SDI-12's much flatter data model.
//
// A profile file looks like:
//
//	[identification]
//	vendor   = TESTCO
//	model    = MOD001
//	firmware = 100
//	serial   = SN123
//
//	[param 0]
//	shef     = TMP
//	units    = degC
//	group    = 0
//	decimals = 2
//
//	[xcmd 0]
//	prefix   = XDIAG
package profile

import (
	"fmt"
	"regexp"

	"gopkg.in/ini.v1"

	"gosdi12/sensor"
)

var matchParamSection = regexp.MustCompile(`^param (\d+)$`)
var matchXCmdSection = regexp.MustCompile(`^xcmd (\d+)$`)

// Profile holds everything a sensor Init call needs, in registration
// order.
type Profile struct {
	Address byte
	Ident   sensor.Identification
	Params  []sensor.Param

	file *ini.File
}

// Load reads an INI profile from path.
func Load(path string) (*Profile, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return parse(f)
}

// LoadBytes reads an INI profile already held in memory.
func LoadBytes(data []byte) (*Profile, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return parse(f)
}

func parse(f *ini.File) (*Profile, error) {
	p := &Profile{file: f}

	idSec, err := f.GetSection("identification")
	if err != nil {
		return nil, fmt.Errorf("profile: missing [identification] section: %w", err)
	}
	addrStr := idSec.Key("address").MustString("0")
	if len(addrStr) != 1 {
		return nil, fmt.Errorf("profile: address must be a single character, got %q", addrStr)
	}
	p.Address = addrStr[0]
	p.Ident = sensor.Identification{
		Vendor:   idSec.Key("vendor").String(),
		Model:    idSec.Key("model").String(),
		Firmware: idSec.Key("firmware").String(),
		Serial:   idSec.Key("serial").String(),
	}

	// Param sections are numbered but order is determined by registration
	// order in the file, not by the number in the header; we sort by
	// appearance since that's what ini.File.Sections preserves.
	for _, sec := range f.Sections() {
		if !matchParamSection.MatchString(sec.Name()) {
			continue
		}
		group, err := sec.Key("group").Uint()
		if err != nil {
			return nil, fmt.Errorf("profile: section %s: bad group: %w", sec.Name(), err)
		}
		decimals, err := sec.Key("decimals").Uint()
		if err != nil {
			return nil, fmt.Errorf("profile: section %s: bad decimals: %w", sec.Name(), err)
		}
		p.Params = append(p.Params, sensor.Param{
			SHEF:     sec.Key("shef").String(),
			Units:    sec.Key("units").String(),
			Group:    uint8(group),
			Decimals: uint8(decimals),
		})
	}

	return p, nil
}

// XCmdPrefixes returns the ordered list of extended-command prefixes
// declared by [xcmd N] sections; hosts wire the actual handler functions
// themselves since a config file cannot express Go code.
func (p *Profile) XCmdPrefixes() []string {
	var prefixes []string
	for _, sec := range p.file.Sections() {
		if !matchXCmdSection.MatchString(sec.Name()) {
			continue
		}
		prefixes = append(prefixes, sec.Key("prefix").String())
	}
	return prefixes
}
