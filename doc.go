// Package relacon controls USB relay/digital-I/O boards that speak the
// OnTrak ADU ASCII command protocol over fixed 8-byte HID reports: the
// OnTrak ADU208 and ADU218 and the pid.codes Relacon relay controller.
//
// The package is transport-agnostic. All device traffic goes through the
// Backend interface, for which two interchangeable implementations ship as
// subpackages: hidapi (managed HID reports via the platform HID layer) and
// rawusb (raw interrupt transfers on the device's fixed endpoints). Pick one
// at wiring time and hand it to New:
//
//	backend, err := hidapi.New(logger)
//	if err != nil { ... }
//	api := relacon.New(backend, logger)
//	defer api.Close()
//
//	dev, err := api.Open(0, 0, "") // first supported device found
//	if err != nil { ... }
//	defer dev.Close()
//	err = dev.WriteRelay(3, true)
//
// Every operation is synchronous: one command report out, at most one
// response report back, with the read bounded by a timeout. Handles are not
// safe for concurrent use; callers must serialize operations per device.
package relacon
