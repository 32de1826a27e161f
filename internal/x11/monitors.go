package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/randr"
)

// Mode is a RandR display mode.
type Mode struct {
	ID      uint32
	Width   int
	Height  int
	Refresh int
}

// Monitor represents a physical display driven by a connected RandR output.
type Monitor struct {
	Output  uint32
	Name    string
	X       int
	Y       int
	Width   int
	Height  int
	Primary bool
	Current Mode
	// Modes lists the output's modes in the order the server reports them,
	// preferred first.
	Modes []Mode
}

// GetMonitors retrieves all active monitors using XRandR. Outputs without a
// CRTC (connected but switched off) are skipped.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	modeInfo := make(map[randr.Mode]randr.ModeInfo, len(resources.Modes))
	for _, mi := range resources.Modes {
		modeInfo[randr.Mode(mi.Id)] = mi
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for _, output := range resources.Outputs {
		outputInfo, err := randr.GetOutputInfo(conn, output, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if outputInfo.Connection != randr.ConnectionConnected || outputInfo.Crtc == 0 {
			continue
		}

		crtcInfo, err := randr.GetCrtcInfo(conn, outputInfo.Crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 {
			continue
		}

		rotated := crtcInfo.Rotation&(randr.RotationRotate90|randr.RotationRotate270) != 0
		mon := Monitor{
			Output:  uint32(output),
			Name:    string(outputInfo.Name),
			X:       int(crtcInfo.X),
			Y:       int(crtcInfo.Y),
			Width:   int(crtcInfo.Width),
			Height:  int(crtcInfo.Height),
			Primary: output == primary,
		}
		if mi, ok := modeInfo[crtcInfo.Mode]; ok {
			mon.Current = modeFromInfo(mi, rotated)
		} else {
			mon.Current = Mode{Width: mon.Width, Height: mon.Height}
		}
		for _, id := range outputInfo.Modes {
			mi, ok := modeInfo[id]
			if !ok || mi.ModeFlags&randr.ModeFlagInterlace != 0 {
				continue
			}
			mon.Modes = append(mon.Modes, modeFromInfo(mi, rotated))
		}

		monitors = append(monitors, mon)
	}

	return monitors, nil
}

func modeFromInfo(mi randr.ModeInfo, rotated bool) Mode {
	m := Mode{
		ID:      mi.Id,
		Width:   int(mi.Width),
		Height:  int(mi.Height),
		Refresh: refreshRate(mi),
	}
	if rotated {
		m.Width, m.Height = m.Height, m.Width
	}
	return m
}

// refreshRate derives the vertical refresh in Hz from mode timings, or 0
// when the timings are unknown.
func refreshRate(mi randr.ModeInfo) int {
	if mi.Htotal == 0 || mi.Vtotal == 0 {
		return 0
	}
	vtotal := float64(mi.Vtotal)
	if mi.ModeFlags&randr.ModeFlagDoubleScan != 0 {
		vtotal *= 2
	}
	if mi.ModeFlags&randr.ModeFlagInterlace != 0 {
		vtotal /= 2
	}
	return int(math.Round(float64(mi.DotClock) / (float64(mi.Htotal) * vtotal)))
}

// SplitDepth divides a visual bit depth into red, green and blue channel
// sizes. 32-bit visuals carry 24 bits of color plus alpha.
func SplitDepth(depth int) (red, green, blue int) {
	if depth == 32 {
		depth = 24
	}
	red = depth / 3
	green = red
	blue = red
	switch depth - red*3 {
	case 1:
		green++
	case 2:
		red++
		green++
	}
	return red, green, blue
}
