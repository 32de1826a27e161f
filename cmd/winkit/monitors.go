package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/1broseidon/winkit/internal/platform"
	"github.com/1broseidon/winkit/internal/window"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

type monitorInfo struct {
	Handle  uint64             `json:"handle" yaml:"handle"`
	Primary bool               `json:"primary" yaml:"primary"`
	X       int                `json:"x" yaml:"x"`
	Y       int                `json:"y" yaml:"y"`
	Current window.VideoMode   `json:"current" yaml:"current"`
	Modes   []window.VideoMode `json:"modes,omitempty" yaml:"modes,omitempty"`
}

func collectMonitors(m *window.Manager, withModes bool) []monitorInfo {
	primary := m.PrimaryMonitor()
	var out []monitorInfo
	for _, mon := range m.Monitors() {
		info := monitorInfo{
			Handle:  uint64(mon.Handle()),
			Primary: mon == primary,
			X:       mon.X(),
			Y:       mon.Y(),
			Current: mon.CurrentMode(),
		}
		if withModes {
			info.Modes = mon.VideoModes()
		}
		out = append(out, info)
	}
	return out
}

func runMonitors(args []string, stdout *os.File) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	backendName := fs.String("backend", "auto", "Backend to query ("+strings.Join(platform.Available(), ", ")+")")
	asJSON := fs.Bool("json", false, "Print JSON")
	asYAML := fs.Bool("yaml", false, "Print YAML")
	withModes := fs.Bool("modes", false, "Include every supported video mode")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *asJSON && *asYAML {
		fmt.Fprintln(os.Stderr, "--json and --yaml are mutually exclusive")
		return 2
	}

	backend, err := platform.Open(*backendName, "winkit")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	m, err := window.NewManager(backend, window.Options{Logger: logger})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer m.Free()

	infos := collectMonitors(m, *withModes || *asJSON || *asYAML)
	switch {
	case *asJSON:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(infos)
	case *asYAML:
		var data []byte
		data, err = yaml.Marshal(infos)
		if err == nil {
			_, err = stdout.Write(data)
		}
	default:
		err = writeMonitorTable(stdout, infos, term.IsTerminal(int(stdout.Fd())))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// writeMonitorTable prints one line per monitor, followed by its modes when
// present. Columns are padded only for terminals so piped output stays
// tab separated.
func writeMonitorTable(w io.Writer, infos []monitorInfo, aligned bool) error {
	out := w
	var tw *tabwriter.Writer
	if aligned {
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		out = tw
	}

	fmt.Fprintln(out, "HANDLE\tPRIMARY\tPOSITION\tMODE")
	for _, info := range infos {
		primary := ""
		if info.Primary {
			primary = "*"
		}
		fmt.Fprintf(out, "%d\t%s\t%d,%d\t%s\n", info.Handle, primary, info.X, info.Y, info.Current)
		for _, mode := range info.Modes {
			fmt.Fprintf(out, "\t\t\t  %s\n", mode)
		}
	}

	if tw != nil {
		return tw.Flush()
	}
	return nil
}
