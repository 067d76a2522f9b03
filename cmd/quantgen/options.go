package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"quantgen/internal/driver"
	"quantgen/internal/prof"
	"quantgen/internal/project"
)

// runSettings is the merge of quantgen.toml and the command line; flags win.
type runSettings struct {
	project  *project.Project
	files    []string
	options  driver.Options
	color    bool
	quiet    bool
	timings  bool
	ui       bool
	logLevel slog.Level
	profile  prof.Options
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max unit types processed in parallel (0=auto)")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().String("ui", "auto", "show phase progress (auto|on|off)")
}

func parseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

func colorEnabled(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	}
	return false, fmt.Errorf("unknown color mode %q (must be auto, on or off)", colorFlag)
}

// loadSettings resolves the declaration files and run options. Explicit file
// arguments replace the project inputs.
func loadSettings(cmd *cobra.Command, args []string) (*runSettings, error) {
	s := &runSettings{files: args, logLevel: slog.LevelWarn}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	p, ok, err := project.Load(wd)
	if err != nil {
		return nil, err
	}
	if ok {
		s.project = p
		cfg := p.Config
		s.options.Jobs = cfg.Run.Jobs
		s.options.MaxDiagnostics = cfg.Diagnostics.Max
		s.options.WarningsAsErrors = cfg.Diagnostics.WarningsAsErrors
		if s.logLevel, err = parseLogLevel(cfg.Run.LogLevel); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Path, err)
		}
		if len(s.files) == 0 {
			if s.files, err = p.InputFiles(); err != nil {
				return nil, err
			}
		}
	}
	if len(s.files) == 0 {
		if !ok {
			return nil, errors.New("no " + project.ConfigName + " found; pass declaration files explicitly")
		}
		return nil, fmt.Errorf("%s: input patterns match no files", p.Path)
	}

	flags, root := cmd.Flags(), cmd.Root().PersistentFlags()
	if flags.Changed("jobs") {
		if s.options.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("warnings-as-errors") {
		if s.options.WarningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
			return nil, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
	}
	if root.Changed("max-diagnostics") || !ok {
		if s.options.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if root.Changed("log-level") {
		level, err := root.GetString("log-level")
		if err != nil {
			return nil, fmt.Errorf("failed to get log-level flag: %w", err)
		}
		if s.logLevel, err = parseLogLevel(level); err != nil {
			return nil, err
		}
	}
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.color, err = colorEnabled(cmd, os.Stdout); err != nil {
		return nil, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return nil, err
	}
	s.ui = uiEnabled(mode, s.quiet)
	if s.profile, err = readProfileFlags(cmd); err != nil {
		return nil, err
	}

	s.options.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: s.logLevel}))
	return s, nil
}

// run executes the driver under the requested profilers and prints timings
// when asked to.
func (s *runSettings) run(cmd *cobra.Command) (res *driver.Result, err error) {
	session, err := prof.Start(s.profile)
	if err != nil {
		return nil, err
	}
	defer func() {
		if stopErr := session.Stop(); stopErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", stopErr)
		}
	}()

	s.options.Logger.Debug("running", "files", len(s.files), "jobs", s.options.Jobs, "ui", s.ui)
	if s.ui {
		res, err = runFilesWithUI(cmd.Context(), cmd.ErrOrStderr(), cmd.Name(), s.files, s.options)
	} else {
		res, err = driver.RunFiles(cmd.Context(), s.files, s.options)
	}
	if err != nil {
		return nil, err
	}
	if s.timings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timing.Summary())
	}
	return res, nil
}

func readProfileFlags(cmd *cobra.Command) (prof.Options, error) {
	root := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = root.GetString("cpu-profile"); err != nil {
		return opts, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = root.GetString("mem-profile"); err != nil {
		return opts, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = root.GetString("runtime-trace"); err != nil {
		return opts, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return opts, nil
}
