package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/ezscan/internal/config"
	"github.com/bamsammich/ezscan/internal/engine"
	"github.com/bamsammich/ezscan/internal/filter"
	"github.com/bamsammich/ezscan/internal/report"
	"github.com/bamsammich/ezscan/internal/wildcard"
)

// scanOptions holds the root command's flag values.
type scanOptions struct {
	rules       []string // "+ pat" / "- pat" in command-line order
	pattern     string
	filterFile  string
	minSize     string
	maxSize     string
	newer       string
	older       string
	chattr      string
	format      string
	output      string
	logFile     string
	sshKey      string
	maxDirs     int
	maxDepth    int
	sshPort     int
	recursive   bool
	mkdirs      bool
	sort        bool
	ignoreCase  bool
	dryRun      bool
	verbose     bool
	quiet       bool
	insecure    bool
	showVersion bool
}

func newScanOptions() *scanOptions {
	return &scanOptions{}
}

var _ pflag.Value = (*ruleFlag)(nil)

// ruleFlag keeps --exclude and --include rules in the order they were
// given.
type ruleFlag struct {
	rules  *[]string
	prefix string
}

func (*ruleFlag) String() string { return "" }
func (*ruleFlag) Type() string   { return "pattern" }

func (f *ruleFlag) Set(val string) error {
	if strings.TrimSpace(val) == "" {
		return fmt.Errorf("empty pattern")
	}
	*f.rules = append(*f.rules, f.prefix+val)
	return nil
}

func (o *scanOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&o.showVersion, "version", false, "print version and exit")

	f.StringVarP(&o.pattern, "pattern", "p", wildcard.DefaultPattern, "8.3 wildcard matched against file names")
	f.BoolVarP(&o.recursive, "recursive", "r", false, "descend into subdirectories")
	f.BoolVar(&o.mkdirs, "mkdirs", false, "create the destination root and mirror subdirectories into it")
	f.IntVar(&o.maxDirs, "max-dirs", engine.DefaultMaxDirList, "subdirectories followed per directory")
	f.IntVar(&o.maxDepth, "max-depth", engine.DefaultMaxDepth, "maximum directory nesting, counting the root")
	f.BoolVar(&o.sort, "sort", false, "visit entries in name order")

	f.Var(&ruleFlag{rules: &o.rules, prefix: "- "}, "exclude", "exclude paths matching PATTERN (repeatable)")
	f.Var(&ruleFlag{rules: &o.rules, prefix: "+ "}, "include", "include paths matching PATTERN (repeatable)")
	f.StringVar(&o.filterFile, "filter", "", "read filter rules from FILE")
	f.StringVar(&o.minSize, "min-size", "", "skip files smaller than SIZE (e.g. 1M, 100K)")
	f.StringVar(&o.maxSize, "max-size", "", "skip files larger than SIZE (e.g. 1G, 500M)")
	f.StringVar(&o.newer, "newer", "", "skip files modified before TIME (date, RFC 3339, or age like 7d)")
	f.StringVar(&o.older, "older", "", "skip files modified after TIME (date, RFC 3339, or age like 36h)")
	f.BoolVar(&o.ignoreCase, "ignore-case", false, "match --exclude/--include patterns case-insensitively")

	f.StringVar(&o.chattr, "chattr", "", "change attributes of listed files, e.g. +r-w+a")
	f.BoolVar(&o.dryRun, "dry-run", false, "report --chattr changes without applying them")

	f.StringVar(&o.format, "format", report.Table.String(),
		"listing format: "+strings.Join(report.Formats(), ", "))
	f.StringVarP(&o.output, "output", "o", "", "write the listing to FILE (.zst or .gz to compress)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "suppress progress and summary")
	f.StringVar(&o.logFile, "log", "", "write structured JSON log to FILE")

	f.StringVar(&o.sshKey, "ssh-key", "", "SSH private key file (default: agent, then ~/.ssh)")
	f.IntVar(&o.sshPort, "ssh-port", 22, "SSH port")
	f.BoolVar(&o.insecure, "ssh-insecure", false, "skip SSH host key verification")

	_ = cmd.RegisterFlagCompletionFunc("format", //nolint:errcheck // flag is registered above
		cobra.FixedCompletions(report.Formats(), cobra.ShellCompDirectiveNoFileComp))
}

// applyConfigDefaults applies config file defaults for flags not
// explicitly set on the command line.
func (o *scanOptions) applyConfigDefaults(cmd *cobra.Command, cfg config.Config) {
	changed := cmd.Flags().Changed
	d := cfg.Defaults
	if !changed("pattern") && d.Pattern != nil {
		o.pattern = *d.Pattern
	}
	if !changed("recursive") && d.Recursive != nil {
		o.recursive = *d.Recursive
	}
	if !changed("sort") && d.Sort != nil {
		o.sort = *d.Sort
	}
	if !changed("format") && d.Format != nil {
		o.format = *d.Format
	}
	if !changed("ignore-case") && d.IgnoreCase != nil {
		o.ignoreCase = *d.IgnoreCase
	}
	if !changed("max-dirs") && cfg.Limits.MaxDirs != nil {
		o.maxDirs = *cfg.Limits.MaxDirs
	}
	if !changed("max-depth") && cfg.Limits.MaxDepth != nil {
		o.maxDepth = *cfg.Limits.MaxDepth
	}
}

// buildChain assembles the filter chain from the rule flags, the filter
// file and the size and age bounds.
func (o *scanOptions) buildChain(now time.Time) (*filter.Chain, error) {
	chain := filter.NewChain()
	chain.FoldCase(o.ignoreCase)

	for _, r := range o.rules {
		if err := chain.AddRule(r); err != nil {
			return nil, err
		}
	}
	if o.filterFile != "" {
		if err := chain.LoadFile(o.filterFile); err != nil {
			return nil, fmt.Errorf("load filter file: %w", err)
		}
	}

	if o.minSize != "" {
		n, err := filter.ParseSize(o.minSize)
		if err != nil {
			return nil, fmt.Errorf("invalid --min-size: %w", err)
		}
		chain.SetMinSize(n)
	}
	if o.maxSize != "" {
		n, err := filter.ParseSize(o.maxSize)
		if err != nil {
			return nil, fmt.Errorf("invalid --max-size: %w", err)
		}
		chain.SetMaxSize(n)
	}
	if o.newer != "" {
		t, err := filter.ParseTime(o.newer, now)
		if err != nil {
			return nil, fmt.Errorf("invalid --newer: %w", err)
		}
		chain.SetNewerThan(t)
	}
	if o.older != "" {
		t, err := filter.ParseTime(o.older, now)
		if err != nil {
			return nil, fmt.Errorf("invalid --older: %w", err)
		}
		chain.SetOlderThan(t)
	}
	return chain, nil
}
