// Command urlpattern clusters a stream of URLs into generalized patterns,
// and matches new URLs against a previously dumped pattern file.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patterncluster/urlpattern/config"
	"github.com/patterncluster/urlpattern/format"
	"github.com/patterncluster/urlpattern/match"
	"github.com/patterncluster/urlpattern/patternmaker"
	"github.com/patterncluster/urlpattern/tree"
	"github.com/patterncluster/urlpattern/urlmeta"
)

func newLineScanner(r io.Reader) *bufio.Scanner {
	return bufio.NewScanner(r)
}

// runErr marks an error that happened after argument parsing succeeded, so
// main can tell it apart from a cobra/pflag usage error. Exit codes follow
// spec.md §6: 0 success, 2 argument error, 1 any other failure.
type runErr struct{ err error }

func (e runErr) Error() string { return e.err.Error() }
func (e runErr) Unwrap() error { return e.err }

func main() {
	root := &cobra.Command{
		Use:           "urlpattern",
		Short:         "Cluster URLs into generalized patterns",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMakeCmd(), newMatchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var re runErr
		if errors.As(err, &re) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func newMakeCmd() *cobra.Command {
	var (
		file       string
		formatter  string
		configFlag []string
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:   "make",
		Short: "Ingest URLs and dump the induced pattern clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMake(file, formatter, configFlag, logLevel); err != nil {
				return runErr{err}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file to process (default: stdin)")
	cmd.Flags().StringVarP(&formatter, "formatter", "F", "json", "output formatter: json, csv, null")
	cmd.Flags().StringArrayVarP(&configFlag, "config", "c", nil, "config file (repeatable, later wins)")
	cmd.Flags().StringVarP(&logLevel, "loglevel", "L", "NOTSET", "log level: NOTSET, DEBUG, INFO, WARN, ERROR, FATAL")
	return cmd
}

func newMatchCmd() *cobra.Command {
	var (
		patternFiles []string
		file         string
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match URLs against a previously dumped pattern file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMatch(patternFiles, file); err != nil {
				return runErr{err}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&patternFiles, "pattern-file", "p", nil, "pattern file to load (repeatable)")
	cmd.MarkFlagRequired("pattern-file")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file of URLs to match (default: stdin)")
	return cmd
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR", "FATAL":
		return slog.LevelError
	default:
		return slog.LevelError + 100 // NOTSET: above every real level, discards everything
	}
}

func openOrStdin(path string) (*os.File, error) {
	if path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func runMake(file, formatterName string, configFiles []string, logLevel string) error {
	cfg := config.Default()
	if len(configFiles) > 0 {
		var err error
		cfg, err = config.Load(configFiles...)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(logLevel)}))

	in, err := openOrStdin(file)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	if in != os.Stdin {
		defer in.Close()
	}

	maker := patternmaker.New(cfg, logger)
	maker.LoadReader(in)

	f, err := newFormatter(formatterName)
	if err != nil {
		return err
	}

	for tr := range maker.Process() {
		dumpTree(f, tr)
		tr.Release()
	}

	logger.Info("done", "stats", maker.Stats().String())
	return nil
}

func newFormatter(name string) (format.Formatter, error) {
	switch strings.ToLower(name) {
	case "json":
		return format.NewJSON(os.Stdout), nil
	case "csv":
		return format.NewCSV(os.Stdout), nil
	case "null":
		return format.Null{}, nil
	default:
		return nil, fmt.Errorf("unknown formatter %q", name)
	}
}

func dumpTree(f format.Formatter, tr *tree.Tree) {
	tr.IterPaths(func(p tree.Path) bool {
		steps := make([]format.Step, len(p))
		for i, n := range p {
			steps[i] = format.Step{Pattern: n.Pattern.String()}
		}
		_ = f.Format(steps, p[len(p)-1].Count)
		return true
	})
}

func runMatch(patternFiles []string, urlFile string) error {
	m := match.NewMatcher()
	for _, pf := range patternFiles {
		if err := loadPatternFile(m, pf); err != nil {
			return fmt.Errorf("loading pattern file %s: %w", pf, err)
		}
	}

	in, err := openOrStdin(urlFile)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	if in != os.Stdin {
		defer in.Close()
	}

	scanner := newLineScanner(in)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url == "" {
			continue
		}
		info, ok, err := m.Match(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\t<error: %v>\n", url, err)
			continue
		}
		if !ok {
			fmt.Printf("%s\t<no match>\n", url)
			continue
		}
		fmt.Printf("%s\t%v\n", url, info)
	}
	return nil
}

// loadPatternFile reads one pattern path per line, tab-separated: the path
// depth, then the pattern steps. Query keys and fragment are not read, so
// every loaded path is treated as path-only; lines with fewer than two
// fields are skipped. This is not the JSON or CSV output of the make
// command, which this loader does not read.
// The exact on-disk pattern-path grammar is this module's own concern
// (spec.md leaves the dump/load file format unspecified beyond "lossless
// enough to round-trip through Pack"); this CLI's loader is deliberately
// minimal, matching spec.md's treatment of match as a thin sketch.
func loadPatternFile(m *match.Matcher, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := newLineScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		depth, patterns := fields[0], fields[1:]
		pathDepth := 0
		fmt.Sscanf(depth, "%d", &pathDepth)
		meta := urlmeta.URLMeta{PathDepth: pathDepth}
		if err := m.Load(meta, patterns, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
