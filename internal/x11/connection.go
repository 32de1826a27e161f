package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	blankCursor xproto.Cursor
}

// NewConnection establishes a connection to the X11 server and initializes
// the keyboard mapping and RandR.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	// Keysym lookups need the keyboard mapping loaded.
	keybind.Initialize(xu)

	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	// Output changes arrive as ScreenChangeNotify on the root window.
	randr.SelectInput(xu.Conn(), xu.RootWin(), randr.NotifyMaskScreenChange)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Poll hands every queued event to handle without blocking. Protocol errors
// go to onError. It returns when the queue is empty.
func (c *Connection) Poll(handle func(xgb.Event), onError func(xgb.Error)) {
	for {
		ev, xerr := c.XUtil.Conn().PollForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			if onError != nil {
				onError(xerr)
			}
			continue
		}
		handle(ev)
	}
}

// Depth returns the bit depth of the root window.
func (c *Connection) Depth() int {
	return int(c.XUtil.Screen().RootDepth)
}

// Sync waits until the server has processed every request sent so far.
func (c *Connection) Sync() {
	c.XUtil.Sync()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	if c.blankCursor != 0 {
		xproto.FreeCursor(c.XUtil.Conn(), c.blankCursor)
	}
	c.XUtil.Conn().Close()
}
