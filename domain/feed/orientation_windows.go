//go:build windows

package feed

// Display rotation via EnumDisplaySettingsW. DEVMODEW.dmDisplayOrientation
// carries DMDO_DEFAULT..DMDO_270 for the display device.

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/soocke/facecam-go/domain/geometry"
)

const enumCurrentSettings = 0xFFFFFFFF

var (
	modUser32                = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayDevicesW  = modUser32.NewProc("EnumDisplayDevicesW")
	procEnumDisplaySettingsW = modUser32.NewProc("EnumDisplaySettingsW")
)

// displayDevice matches DISPLAY_DEVICEW.
type displayDevice struct {
	cb           uint32
	DeviceName   [32]uint16
	DeviceString [128]uint16
	StateFlags   uint32
	DeviceID     [128]uint16
	DeviceKey    [128]uint16
}

// devMode matches the display variant of DEVMODEW.
type devMode struct {
	DeviceName         [32]uint16
	SpecVersion        uint16
	DriverVersion      uint16
	Size               uint16
	DriverExtra        uint16
	Fields             uint32
	PositionX          int32
	PositionY          int32
	DisplayOrientation uint32
	DisplayFixedOutput uint32
	Color              int16
	Duplex             int16
	YResolution        int16
	TTOption           int16
	Collate            int16
	FormName           [32]uint16
	LogPixels          uint16
	BitsPerPel         uint32
	PelsWidth          uint32
	PelsHeight         uint32
	DisplayFlags       uint32
	DisplayFrequency   uint32
	ICMMethod          uint32
	ICMIntent          uint32
	MediaType          uint32
	DitherType         uint32
	Reserved1          uint32
	Reserved2          uint32
	PanningWidth       uint32
	PanningHeight      uint32
}

// SystemProbe reads the rotation of display adapter displayID. The fallback
// rotation is only used on platforms without a display query.
func SystemProbe(_ geometry.Rotation) Probe {
	return func(displayID int) (geometry.Rotation, error) {
		var dd displayDevice
		dd.cb = uint32(unsafe.Sizeof(dd))
		r1, _, err := procEnumDisplayDevicesW.Call(0, uintptr(displayID), uintptr(unsafe.Pointer(&dd)), 0)
		if r1 == 0 {
			return geometry.RotationUnknown, fmt.Errorf("feed: EnumDisplayDevicesW display=%d: %w", displayID, err)
		}
		var dm devMode
		dm.Size = uint16(unsafe.Sizeof(dm))
		r1, _, err = procEnumDisplaySettingsW.Call(uintptr(unsafe.Pointer(&dd.DeviceName[0])), enumCurrentSettings, uintptr(unsafe.Pointer(&dm)))
		if r1 == 0 {
			return geometry.RotationUnknown, fmt.Errorf("feed: EnumDisplaySettingsW display=%d: %w", displayID, err)
		}
		if dm.DisplayOrientation > 3 {
			return geometry.RotationUnknown, fmt.Errorf("feed: unexpected orientation %d", dm.DisplayOrientation)
		}
		return geometry.Rotation(dm.DisplayOrientation * 90), nil
	}
}
