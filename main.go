package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gomission/gomission/internal/app"
	"github.com/gomission/gomission/internal/config"
	"github.com/gomission/gomission/internal/logging"
	"github.com/gomission/gomission/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// exitError carries the process status for a failure.
type exitError struct {
	code   int
	prefix string
	err    error
}

func (e *exitError) Error() string {
	return fmt.Sprintf("%s: %v", e.prefix, e.err)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func configFailure(err error) error {
	return &exitError{code: 2, prefix: "Configuration error", err: err}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gomission",
		Short:         "Terminal client for the Transmission BitTorrent daemon",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts := config.Bind(root.PersistentFlags())
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return run(opts)
	}
	root.AddCommand(newConfigCmd(opts))
	return root
}

func newConfigCmd(opts *config.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := opts.ConfigPath(os.Environ())
			if err != nil {
				return configFailure(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := opts.ConfigPath(os.Environ())
			if err != nil {
				return configFailure(err)
			}
			written, err := config.WriteDefault(path)
			if err != nil {
				return configFailure(err)
			}
			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	})
	return cmd
}

func run(opts *config.Options) error {
	runtimeCfg, err := opts.Resolve(os.Environ())
	if err != nil {
		return configFailure(err)
	}
	runtimeCfg.Args = append([]string(nil), os.Args[1:]...)
	if err := config.Validate(runtimeCfg); err != nil {
		return configFailure(err)
	}
	if err := logging.Configure(runtimeCfg.Logging.FilePath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logging.Close()
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	if !runtimeCfg.FileLoaded {
		if _, err := config.WriteDefault(runtimeCfg.Path); err != nil {
			logging.Error(err)
		}
	}

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		return &exitError{code: 1, prefix: "Error", err: err}
	}
	return nil
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":       cfg.Args,
		"flags":      flags,
		"config":     config.Redacted(cfg),
		"configPath": cfg.Path,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
