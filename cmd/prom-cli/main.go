package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/term"

	"prom-cli/pkg/completion"
	"prom-cli/pkg/config"
	"prom-cli/pkg/display"
	"prom-cli/pkg/promapi"
	"prom-cli/pkg/repl"
)

// Version info. Overridden at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// normalizeLongOpts converts GNU-style "--long" options to stdlib-flag style "-long".
// It leaves the "--" end-of-flags marker intact and doesn't touch single-dash or positional args.
func normalizeLongOpts(args []string) []string {
	out := make([]string, 0, len(args))
	seenTerminator := false
	for _, a := range args {
		if seenTerminator {
			out = append(out, a)
			continue
		}
		if a == "--" {
			seenTerminator = true
			out = append(out, a)
			continue
		}
		if strings.HasPrefix(a, "--") && len(a) > 2 {
			// Convert --flag and --flag=value to -flag and -flag=value
			out = append(out, "-"+a[2:])
			continue
		}
		out = append(out, a)
	}
	return out
}

func main() {
	rootFlags := flag.NewFlagSet("prom-cli", flag.ContinueOnError)
	server := rootFlags.String("server", "", "Prometheus server URL (default "+promapi.DefaultServer+")")
	configFile := rootFlags.String("config", "", "path to YAML config file (default ~/.prom-cli.yaml)")
	username := rootFlags.String("username", "", "basic auth username")
	password := rootFlags.String("password", "", "basic auth password")
	insecure := rootFlags.Bool("insecure", false, "skip TLS certificate verification")
	timeout := rootFlags.Duration("timeout", promapi.DefaultTimeout, "HTTP request timeout")
	replBackend := rootFlags.String("repl", "", "line editor backend: readline|prompt")
	historyFile := rootFlags.String("history-file", "", "query history file (default ~/.prom-cli_history)")
	oneOffQuery := rootFlags.String("query", "", "query expression; skips the interactive prompt")
	rootFlags.StringVar(oneOffQuery, "q", "", "shorthand for --query")
	output := rootFlags.String("output", "", "output format: table (default) or json")
	rootFlags.StringVar(output, "o", "", "shorthand for --output")
	graph := rootFlags.Bool("graph", false, "run a range query and plot an ASCII graph")
	start := rootFlags.String("start", "now-1h", "range start: now[±dur], RFC3339 or unix time")
	end := rootFlags.String("end", "now", "range end: now[±dur], RFC3339 or unix time")
	step := rootFlags.Duration("step", time.Minute, "range query resolution step")
	silent := rootFlags.Bool("silent", false, "suppress informational output")
	rootFlags.BoolVar(silent, "s", false, "shorthand for --silent")

	// setup resolves config file, flag and environment precedence and
	// builds the API client. Shared by the root command and subcommands.
	setup := func() (*promapi.Client, *config.Config, error) {
		cfg := config.New()
		path := *configFile
		if path == "" {
			if home, err := os.UserHomeDir(); err == nil && home != "" {
				path = filepath.Join(home, ".prom-cli.yaml")
			}
		}
		if path != "" {
			if err := cfg.LoadFromFile(path); err != nil {
				return nil, nil, err
			}
		}
		// Flags and PROM_CLI_* environment variables override file values.
		if *server != "" {
			cfg.Server = *server
		}
		if *username != "" {
			cfg.Username = *username
		}
		if *password != "" {
			cfg.Password = *password
		}
		if *insecure {
			cfg.Insecure = true
		}
		if *replBackend != "" {
			cfg.Repl = *replBackend
		}
		if *historyFile != "" {
			cfg.HistoryFile = *historyFile
		}
		if cfg.HistoryFile == "" {
			cfg.HistoryFile = repl.HistoryFilePath()
		}

		client, err := promapi.NewClient(promapi.Options{
			BaseURL:  promapi.APIBase(cfg.Server),
			Username: cfg.Username,
			Password: cfg.Password,
			Insecure: cfg.Insecure,
			Timeout:  *timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, cfg, nil
	}

	run := func(ctx context.Context, _ []string) error {
		client, cfg, err := setup()
		if err != nil {
			return err
		}

		names, err := client.MetricNames(ctx)
		if err != nil {
			return err
		}
		if !*silent {
			fmt.Fprintf(os.Stderr, "%d metric names loaded from %s\n", len(names), cfg.Server)
		}

		query := *oneOffQuery
		if query == "" {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				query, err = repl.ReadQuery(repl.Options{
					Backend:     cfg.Repl,
					HistoryFile: cfg.HistoryFile,
					Completer:   completion.New(names),
				})
			} else {
				query, err = repl.ReadPlain(os.Stdin)
			}
			if err != nil {
				return err
			}
		}

		if *graph {
			startTime, err := promapi.ParseTime(*start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			endTime, err := promapi.ParseTime(*end)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			series, err := client.QueryRange(ctx, query, startTime, endTime, *step)
			if err != nil {
				return err
			}
			display.RenderGraph(os.Stdout, series)
			return nil
		}

		results, err := client.Query(ctx, query)
		if err != nil {
			return err
		}
		if strings.EqualFold(*output, "json") {
			return display.WriteJSON(os.Stdout, results)
		}
		return display.RenderTable(os.Stdout, results)
	}

	metricsCmd := &ffcli.Command{
		Name:       "metrics",
		ShortUsage: "prom-cli [flags] metrics",
		ShortHelp:  "List metric names known to the server",
		Exec: func(ctx context.Context, _ []string) error {
			client, _, err := setup()
			if err != nil {
				return err
			}
			names, err := client.MetricNames(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	versionCmd := &ffcli.Command{
		Name:      "version",
		ShortHelp: "Print version information",
		Exec:      func(ctx context.Context, _ []string) error { printVersion(); return nil },
	}

	root := &ffcli.Command{
		Name:       "prom-cli",
		ShortUsage: "prom-cli [flags] [<subcommand>]",
		FlagSet:    rootFlags,
		Options:    []ff.Option{ff.WithEnvVarPrefix("PROM_CLI")},
		Subcommands: []*ffcli.Command{
			metricsCmd, versionCmd,
		},
		Exec: run,
	}

	// Normalize GNU-style long options ("--long") to stdlib format ("-long")
	norm := normalizeLongOpts(os.Args[1:])
	if err := root.ParseAndRun(context.Background(), norm); err != nil {
		if err == flag.ErrHelp {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printVersion prints a human-readable version string.
func printVersion() {
	fmt.Printf("prom-cli %s\n", version)
	fmt.Printf("  commit: %s\n", commit)
	fmt.Printf("  date:   %s\n", date)
}
