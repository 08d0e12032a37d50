package relacon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	relacon "github.com/fjenner/relacon-go"
)

func TestLookupCapabilities(t *testing.T) {
	type testCase struct {
		name string
		vid  uint16
		pid  uint16
		want bool
	}

	cases := []testCase{
		{name: "ADU208", vid: relacon.VendorIDOnTrak, pid: relacon.ProductIDADU208, want: true},
		{name: "ADU218", vid: relacon.VendorIDOnTrak, pid: relacon.ProductIDADU218, want: true},
		{name: "Relacon controller", vid: relacon.VendorIDPidCodes, pid: relacon.ProductIDRelacon, want: true},
		{name: "untested ADU200", vid: relacon.VendorIDOnTrak, pid: 200, want: false},
		{name: "vendor and product from different devices", vid: relacon.VendorIDPidCodes, pid: relacon.ProductIDADU208, want: false},
		{name: "unrelated device", vid: 0x046d, pid: 0xc077, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			caps, ok := relacon.LookupCapabilities(tc.vid, tc.pid)
			assert.Equal(t, tc.want, ok)
			if tc.want {
				assert.Equal(t, uint(8), caps.NumRelays)
				assert.Equal(t, uint(8), caps.NumInputs)
			}
		})
	}
}
