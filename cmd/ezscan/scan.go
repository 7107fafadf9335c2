package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bamsammich/ezscan/internal/attr"
	"github.com/bamsammich/ezscan/internal/config"
	"github.com/bamsammich/ezscan/internal/engine"
	"github.com/bamsammich/ezscan/internal/event"
	"github.com/bamsammich/ezscan/internal/fsys"
	"github.com/bamsammich/ezscan/internal/pathres"
	"github.com/bamsammich/ezscan/internal/report"
	"github.com/bamsammich/ezscan/internal/stats"
	"github.com/bamsammich/ezscan/internal/ui"
)

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: CLI entry point orchestrates flag handling and the scan
func runScan(cmd *cobra.Command, opts *scanOptions, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, cfgErr := config.Load()
	opts.applyConfigDefaults(cmd, cfg)

	logger, closeLog, err := setupLogger(stderr, opts)
	if err != nil {
		return err
	}
	defer closeLog()
	if cfgErr != nil {
		logger.Warn("failed to load config", "path", config.Path(), "error", cfgErr)
	}
	color.NoColor = !ui.UseColor(os.Stderr.Fd(), cfg.Defaults.Color)

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	chain, err := opts.buildChain(time.Now())
	if err != nil {
		return err
	}
	change, err := attr.ParseChange(opts.chattr)
	if err != nil {
		return err
	}

	srcLoc := fsys.ParseLocation(args[0])
	var dstLoc fsys.Location
	withDest := len(args) == 2
	if withDest {
		dstLoc = fsys.ParseLocation(args[1])
		if dstLoc.IsRemote() != srcLoc.IsRemote() || dstLoc.Host != srcLoc.Host {
			return errors.New("source and destination must be on the same host")
		}
	} else if opts.mkdirs {
		return errors.New("--mkdirs requires a destination")
	}

	if h, ok := cfg.Host(srcLoc.Host); ok && srcLoc.User == "" {
		srcLoc.User = h.User
	}
	fs, err := fsys.Open(srcLoc, sshOptions(cmd, opts, cfg, srcLoc.Host))
	if err != nil {
		return fmt.Errorf("source %s: %w", srcLoc, err)
	}
	defer fs.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := stats.NewCollector()
	events := make(chan event.Event, 256)

	presenterEvents := (<-chan event.Event)(events)
	if opts.logFile != "" {
		presenterEvents = teeEvents(events, logger)
	}

	displayRoot, _ := pathres.ResolveDir(srcLoc.Path, fs.Getwd) //nolint:errcheck // the engine reports a bad source
	presenter := ui.NewPresenter(ui.Config{
		Writer:  stderr,
		Stats:   collector,
		Root:    displayRoot,
		Width:   ui.TermWidth(os.Stderr.Fd()),
		IsTTY:   isTerminal(stderr),
		Quiet:   opts.quiet,
		Verbose: opts.verbose,
	})

	hooks := &lister{
		chain:    chain,
		log:      logger,
		change:   change,
		withDest: withDest,
		dryRun:   opts.dryRun,
	}

	engineCfg := engine.Config{
		FS:             fs,
		Events:         events,
		Stats:          collector,
		Logger:         logger,
		Source:         srcLoc.Path,
		Dest:           dstLoc.Path,
		Pattern:        opts.pattern,
		MaxDirList:     opts.maxDirs,
		MaxDepth:       opts.maxDepth,
		CreateDestDirs: opts.mkdirs,
		Recurse:        opts.recursive,
		Sort:           opts.sort,
	}

	if opts.dryRun && !change.IsZero() {
		logger.Info("dry run: attribute changes are reported, not applied", "change", change.String())
	}

	var g errgroup.Group
	g.Go(func() error { return presenter.Run(presenterEvents) })

	result := engine.ScanAll(ctx, engineCfg, hooks)
	close(events)
	if err := g.Wait(); err != nil {
		fmt.Fprintf(stderr, "presenter: %v\n", err)
	}

	if result.Err != nil {
		logger.Error("scan failed", "source", srcLoc.String(), "error", result.Err)
		fmt.Fprintf(stderr, "Error: %v\n", result.Err)
		return &exitError{code: 2}
	}

	if err := writeReport(stdout, opts.output, format, hooks.records); err != nil {
		return err
	}

	if !opts.quiet {
		if summary := presenter.Summary(); summary != "" {
			fmt.Fprintln(stderr, summary)
		}
	}

	if result.Stats.Errors() > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func writeReport(stdout io.Writer, output string, format report.Format, recs []report.Record) (err error) {
	if output == "" {
		return report.Write(stdout, format, recs)
	}
	w, err := report.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", output, cerr)
		}
	}()
	return report.Write(w, format, recs)
}

// setupLogger builds the process logger: a text handler on stderr, plus a
// JSON handler when --log is set. Progress warnings are the presenter's
// job, so the text handler stays at error level unless -v is given.
func setupLogger(stderr io.Writer, opts *scanOptions) (*slog.Logger, func(), error) {
	level := slog.LevelError
	if opts.verbose {
		level = slog.LevelDebug
	}
	textHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})

	var handler slog.Handler = textHandler
	closeFn := func() {}
	if opts.logFile != "" {
		lf, err := os.Create(opts.logFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		closeFn = func() { lf.Close() }
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		handler = ui.NewMultiHandler(textHandler, jsonHandler)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// teeEvents logs each event before forwarding it to the presenter.
func teeEvents(events <-chan event.Event, logger *slog.Logger) <-chan event.Event {
	teed := make(chan event.Event, 256)
	go func() {
		defer close(teed)
		for ev := range events {
			attrs := []slog.Attr{
				slog.String("type", ev.Type.String()),
				slog.String("path", ev.Path),
			}
			if ev.DestPath != "" {
				attrs = append(attrs, slog.String("dest", ev.DestPath))
			}
			if ev.Size != 0 {
				attrs = append(attrs, slog.Int64("size", ev.Size))
			}
			if ev.Count != 0 {
				attrs = append(attrs, slog.Int64("count", ev.Count))
			}
			if ev.Error != nil {
				attrs = append(attrs, slog.String("error", ev.Error.Error()))
			}
			logger.LogAttrs(context.Background(), slog.LevelDebug, "ezscan.event", attrs...)
			teed <- ev
		}
	}()
	return teed
}

// sshOptions merges the SSH flags with the config entry for host. Flags
// that were set explicitly win.
func sshOptions(cmd *cobra.Command, opts *scanOptions, cfg config.Config, host string) fsys.SSHOpts {
	out := fsys.SSHOpts{
		KeyFile:  opts.sshKey,
		Port:     opts.sshPort,
		Insecure: opts.insecure,
		Timeout:  15 * time.Second,
	}
	h, ok := cfg.Host(host)
	if !ok {
		return out
	}
	if !cmd.Flags().Changed("ssh-key") && h.KeyFile != "" {
		out.KeyFile = h.KeyFile
	}
	if !cmd.Flags().Changed("ssh-port") && h.Port != 0 {
		out.Port = h.Port
	}
	if !cmd.Flags().Changed("ssh-insecure") && h.Insecure {
		out.Insecure = true
	}
	out.KnownHostsFile = h.KnownHosts
	return out
}

// isTerminal reports whether w is a terminal. Only *os.File can be one.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTTY(f.Fd())
}
