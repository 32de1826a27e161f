package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// WarpPointer moves the pointer to window-relative coordinates.
func (c *Connection) WarpPointer(windowID xproto.Window, x, y int) {
	xproto.WarpPointer(c.XUtil.Conn(), xproto.WindowNone, windowID, 0, 0, 0, 0, int16(x), int16(y))
}

// GrabPointer confines the pointer to the window and hides it.
func (c *Connection) GrabPointer(windowID xproto.Window) error {
	cursor, err := c.blank()
	if err != nil {
		return err
	}

	mask := uint16(xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion)
	reply, err := xproto.GrabPointer(
		c.XUtil.Conn(),
		true,
		windowID,
		mask,
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		windowID,
		cursor,
		xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		return fmt.Errorf("failed to grab pointer: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("failed to grab pointer: status %d", reply.Status)
	}
	return nil
}

// UngrabPointer releases a grab taken by GrabPointer.
func (c *Connection) UngrabPointer() {
	xproto.UngrabPointer(c.XUtil.Conn(), xproto.TimeCurrentTime)
}

// SetCursorVisible shows the default cursor or an invisible one while the
// pointer is over the window.
func (c *Connection) SetCursorVisible(windowID xproto.Window, visible bool) error {
	cursor := xproto.Cursor(xproto.CursorNone)
	if !visible {
		blank, err := c.blank()
		if err != nil {
			return err
		}
		cursor = blank
	}
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), windowID,
		xproto.CwCursor, []uint32{uint32(cursor)}).Check()
}

// blank returns a 1x1 fully transparent cursor, created on first use.
func (c *Connection) blank() (xproto.Cursor, error) {
	if c.blankCursor != 0 {
		return c.blankCursor, nil
	}
	conn := c.XUtil.Conn()

	pix, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, err
	}
	xproto.CreatePixmap(conn, 1, pix, xproto.Drawable(c.Root), 1, 1)
	defer xproto.FreePixmap(conn, pix)

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return 0, err
	}
	xproto.CreateGC(conn, gc, xproto.Drawable(pix), xproto.GcForeground, []uint32{0})
	xproto.PolyFillRectangle(conn, xproto.Drawable(pix), gc, []xproto.Rectangle{{X: 0, Y: 0, Width: 1, Height: 1}})
	xproto.FreeGC(conn, gc)

	cursor, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, err
	}
	if err := xproto.CreateCursorChecked(conn, cursor, pix, pix, 0, 0, 0, 0, 0, 0, 0, 0).Check(); err != nil {
		return 0, fmt.Errorf("failed to create blank cursor: %w", err)
	}
	c.blankCursor = cursor
	return cursor, nil
}
