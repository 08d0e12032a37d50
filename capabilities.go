package relacon

// USB identifiers of the supported device family.
const (
	VendorIDOnTrak   uint16 = 0x0a07
	VendorIDPidCodes uint16 = 0x1209

	ProductIDADU208  uint16 = 208
	ProductIDADU218  uint16 = 218
	ProductIDRelacon uint16 = 0xfa70
)

// Capabilities describes the I/O complement of a supported device model.
type Capabilities struct {
	NumRelays uint
	NumInputs uint
}

type deviceModel struct {
	vid  uint16
	pid  uint16
	caps Capabilities
}

// The OnTrak ADU200 (4 relays, 4 inputs) speaks the same protocol but has
// not been tested against this library, so it is absent from the table.
var supportedDevices = []deviceModel{
	{VendorIDOnTrak, ProductIDADU208, Capabilities{NumRelays: 8, NumInputs: 8}},
	{VendorIDOnTrak, ProductIDADU218, Capabilities{NumRelays: 8, NumInputs: 8}},
	{VendorIDPidCodes, ProductIDRelacon, Capabilities{NumRelays: 8, NumInputs: 8}},
}

// LookupCapabilities reports the relay and input counts for a known
// (vendor, product) pair. Devices with unknown pairs cannot be controlled by
// this library and are excluded from enumeration.
func LookupCapabilities(vid, pid uint16) (Capabilities, bool) {
	for _, m := range supportedDevices {
		if m.vid == vid && m.pid == pid {
			return m.caps, true
		}
	}
	return Capabilities{}, false
}
