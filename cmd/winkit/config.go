package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/winkit/internal/config"
	"gopkg.in/yaml.v3"
)

const pathUsage = "Config file path (default: $WINKIT_CONFIG or ~/.config/winkit/config.yaml)"

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  winkit config validate [--path PATH]")
	fmt.Fprintln(w, "  winkit config print [--path PATH] [--defaults] [--format yaml|json]")
	fmt.Fprintln(w, "  winkit config explain [--path PATH] <yaml.path>")
}

func runConfig(args []string, stdout io.Writer) int {
	if len(args) == 0 || isHelp(args) {
		printConfigUsage(os.Stderr)
		return 2
	}

	fs := flag.NewFlagSet("config "+args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", pathUsage)

	var run func() error
	switch args[0] {
	case "validate":
		run = func() error { return configValidate(stdout, *path) }
	case "print":
		defaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		format := fs.String("format", "yaml", "Output format: yaml or json")
		run = func() error { return configPrint(stdout, *path, *defaults, *format) }
	case "explain":
		run = func() error {
			if fs.NArg() < 1 {
				return errUsage("explain requires <yaml.path>")
			}
			return configExplain(stdout, *path, fs.Arg(0))
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}

	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if _, ok := err.(errUsage); ok {
			return 2
		}
		return 1
	}
	return 0
}

type errUsage string

func (e errUsage) Error() string { return string(e) }

func configValidate(w io.Writer, path string) error {
	res, err := loadConfig(path)
	if err != nil {
		return err
	}
	if len(res.Files) == 0 {
		fmt.Fprintln(w, "config: ok (defaults)")
		return nil
	}
	fmt.Fprintf(w, "config: ok (%d file(s))\n", len(res.Files))
	return nil
}

func configPrint(w io.Writer, path string, defaults bool, format string) error {
	cfg := config.DefaultConfig()
	var files []string
	if !defaults {
		res, err := loadConfig(path)
		if err != nil {
			return err
		}
		cfg, files = res.Config, res.Files
	}

	switch format {
	case "yaml":
		for _, f := range files {
			fmt.Fprintf(w, "# loaded: %s\n", f)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	default:
		return errUsage(fmt.Sprintf("unknown format %q (want yaml or json)", format))
	}
}

func configExplain(w io.Writer, path, query string) error {
	res, err := loadConfig(path)
	if err != nil {
		return err
	}
	value, src, err := config.Explain(res, query)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(value)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "path: %s\n", query)
	fmt.Fprintf(w, "source: %s\n", formatSource(src))
	fmt.Fprintf(w, "value:\n%s", out)
	return nil
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceEnv:
		return "env:" + src.Name
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
