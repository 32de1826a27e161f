package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// windowEvents is the event mask selected on every window created here.
const windowEvents = xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
	xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow |
	xproto.EventMaskPointerMotion | xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify | xproto.EventMaskFocusChange

// CreateWindow creates and maps a top-level window that asks the window
// manager for WM_DELETE_WINDOW instead of being killed on close.
func (c *Connection) CreateWindow(x, y, width, height int, title, class string) (xproto.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = win.CreateChecked(c.Root, x, y, width, height,
		xproto.CwBackPixel|xproto.CwEventMask, 0, windowEvents)
	if err != nil {
		return 0, fmt.Errorf("failed to create window: %w", err)
	}

	if err := icccm.WmProtocolsSet(c.XUtil, win.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		win.Destroy()
		return 0, fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}
	if class != "" {
		// Not every WM reads WM_CLASS; ignore failures.
		_ = icccm.WmClassSet(c.XUtil, win.Id, &icccm.WmClass{Instance: class, Class: class})
	}
	c.SetTitle(win.Id, title)

	win.Map()
	return win.Id, nil
}

// DestroyWindow destroys a window created by CreateWindow.
func (c *Connection) DestroyWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Destroy()
}

// SetTitle sets both the EWMH (UTF-8) and ICCCM window names.
func (c *Connection) SetTitle(windowID xproto.Window, title string) {
	_ = ewmh.WmNameSet(c.XUtil, windowID, title)
	_ = icccm.WmNameSet(c.XUtil, windowID, title)
}

// MoveWindow moves a window to an absolute root position.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) {
	xwindow.New(c.XUtil, windowID).Move(x, y)
}

// ResizeWindow resizes a window, dropping any maximized state first so the
// window manager honors the request.
func (c *Connection) ResizeWindow(windowID xproto.Window, width, height int) {
	_ = c.unmaximizeWindow(windowID)
	xwindow.New(c.XUtil, windowID).Resize(width, height)
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) {
	_ = c.unmaximizeWindow(windowID)
	xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			if err := ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state); err != nil {
				return err
			}
		}
	}
	return nil
}

// Geometry returns the root-relative position and the size of a window's
// client area.
func (c *Connection) Geometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// Translate converts window-relative coordinates to root coordinates.
func (c *Connection) Translate(windowID xproto.Window, x, y int) (int, int, error) {
	reply, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, int16(x), int16(y)).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.DstX), int(reply.DstY), nil
}

// SetFullscreen asks the window manager to add or remove
// _NET_WM_STATE_FULLSCREEN.
func (c *Connection) SetFullscreen(windowID xproto.Window, fullscreen bool) error {
	action := ewmh.StateRemove
	if fullscreen {
		action = ewmh.StateAdd
	}
	return ewmh.WmStateReq(c.XUtil, windowID, action, "_NET_WM_STATE_FULLSCREEN")
}

// RequestAttention marks the window as demanding attention.
func (c *Connection) RequestAttention(windowID xproto.Window) error {
	return ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateAdd, "_NET_WM_STATE_DEMANDS_ATTENTION")
}

// IsDeleteRequest reports whether a client message is the window manager's
// WM_DELETE_WINDOW request.
func (c *Connection) IsDeleteRequest(ev xproto.ClientMessageEvent) bool {
	protocols, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
	if err != nil || ev.Type != protocols || len(ev.Data.Data32) == 0 {
		return false
	}
	deleteWindow, err := xprop.Atm(c.XUtil, "WM_DELETE_WINDOW")
	if err != nil {
		return false
	}
	return xproto.Atom(ev.Data.Data32[0]) == deleteWindow
}
