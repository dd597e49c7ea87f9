package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MHmorgan/remscan/config"
	"github.com/MHmorgan/remscan/logger"
	"github.com/MHmorgan/remscan/scanner"
	"github.com/MHmorgan/remscan/searcher"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type flags struct {
	configPath string
	verbs      []string
	workers    int
	hidden     bool
	noIgnore   bool
	exclude    []string
	color      string
	logLevel   string
	verbose    bool
	cpuprofile string
	memprofile string
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "remscan [path...]",
		Short: "List TODO, FIXME and BUG comments in source files",
		Long: `remscan walks the given files and directories (default: the current
directory) and prints every comment line starting with a reminder verb
followed by a colon, such as "TODO: handle errors".

Each reminder is printed as

  <file>:<row>:<col>:<text>

where row and col are 1-based and col counts bytes. Files listed in
.gitignore or .ignore files, hidden files and files of unknown type
are skipped.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}

			if f.cpuprofile != "" {
				stop, err := startCPUProfile(f.cpuprofile)
				if err != nil {
					return err
				}
				defer stop()
			}

			out := cmd.OutOrStdout()
			err = run(cmd.Context(), args, cfg, out, cmd.ErrOrStderr(), useColor(cfg.Color, out))
			if err != nil {
				return err
			}

			if f.memprofile != "" {
				return writeMemProfile(f.memprofile)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", config.DefaultPath, "config file")
	fl.StringSliceVar(&f.verbs, "verbs", nil, "reminder verbs (default TODO,FIXME,BUG)")
	fl.IntVarP(&f.workers, "workers", "j", 0, "files scanned concurrently (default number of CPUs)")
	fl.BoolVar(&f.hidden, "hidden", false, "include hidden files and directories")
	fl.BoolVar(&f.noIgnore, "no-ignore", false, "do not honor .gitignore and .ignore files")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "extra gitignore-style patterns to skip")
	fl.StringVar(&f.color, "color", "auto", "color output: auto, always or never")
	fl.StringVar(&f.logLevel, "log-level", "warn", "diagnostics level: trace, debug, info, warn or error")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "same as --log-level debug")
	fl.StringVar(&f.cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	fl.StringVar(&f.memprofile, "memprofile", "", "write memory profile to `file`")

	return cmd
}

// loadConfig reads the config file and applies the flags given on the
// command line on top of it.
func (f *flags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	changed := cmd.Flags().Changed

	if changed("config") {
		if _, err := os.Stat(f.configPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	if changed("verbs") {
		cfg.Verbs = f.verbs
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("hidden") {
		cfg.Hidden = f.hidden
	}
	if changed("no-ignore") {
		cfg.NoIgnore = f.noIgnore
	}
	if changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, f.exclude...)
	}
	if changed("color") {
		cfg.Color = f.color
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run scans the roots and prints every reminder found to out.
// Diagnostics go to errOut.
func run(ctx context.Context, roots []string, cfg *config.Config, out, errOut io.Writer, colorize bool) error {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			return fmt.Errorf("cannot scan %s: %w", root, err)
		}
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(errOut, level)

	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	srch := searcher.New(searcher.Options{
		Hidden:   cfg.Hidden,
		NoIgnore: cfg.NoIgnore,
		Exclude:  cfg.Exclude,
		Log:      log,
	})
	files := srch.Search(ctx, roots)

	filter := scanner.NewFilter(cfg.Verbs)
	log.Debugf("scanning %s for %s with %d workers",
		strings.Join(roots, ", "), strings.Join(filter.Verbs(), ", "), cfg.Workers)

	results := scanner.Scan(files, scanner.Options{
		Workers:  cfg.Workers,
		Registry: reg,
		Filter:   filter,
	})

	stats, err := printResults(newPrinter(out, colorize), results, log)
	if err != nil {
		return err
	}
	log.Infof("scanned %d files (%d skipped, %d unreadable), found %d reminders",
		stats.files, stats.skipped, stats.failed, stats.reminders)

	return ctx.Err()
}
