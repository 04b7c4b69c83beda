package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/benjaminschreck/go-mailmacro/pkg/letter"
	"github.com/benjaminschreck/go-mailmacro/pkg/macro"
	"github.com/benjaminschreck/go-mailmacro/pkg/macro/probe"
)

type expandOptions struct {
	contextFile string
	userAgent   string
	screen      string
	dark        bool
	watch       bool
}

var expandOpts expandOptions

var expandCmd = &cobra.Command{
	Use:   "expand [file...]",
	Short: "Expand the placeholders of one or more files",
	Long: `Expand reads each file (or standard input when none is given), expands its
/{...} placeholders and writes the result to standard output.

The letter fields used by /{name}, /{role} and /{sender} come from the YAML file
named by --context. Device and display variables are derived from --user-agent,
--screen and --dark.`,
	Example: `  mailmacro expand --context letter.yml --user-agent "$UA" body.txt
  echo 'Hi /{name}, it is /{Time}' | mailmacro expand --context letter.yml
  mailmacro expand --watch --context letter.yml body.txt`,
	RunE: runExpand,
}

func init() {
	flags := expandCmd.Flags()
	flags.StringVarP(&expandOpts.contextFile, "context", "c", "", "YAML file with the letter fields")
	flags.StringVar(&expandOpts.userAgent, "user-agent", "", "user agent string to classify")
	flags.StringVar(&expandOpts.screen, "screen", "", "screen size as WIDTHxHEIGHT")
	flags.BoolVar(&expandOpts.dark, "dark", false, "report a dark color scheme")
	flags.BoolVarP(&expandOpts.watch, "watch", "w", false, "expand again whenever a file changes")
}

func runExpand(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := engineConfig()
	if err != nil {
		return err
	}
	p, err := expandOpts.probe()
	if err != nil {
		return err
	}
	record, err := loadRecord(expandOpts.contextFile)
	if err != nil {
		return err
	}

	engine := macro.NewWithConfig(config, macro.WithProbe(p))
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		if expandOpts.watch {
			return fmt.Errorf("--watch needs at least one file")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		fmt.Fprint(out, engine.Expand(ctx, string(data), record))
		return nil
	}

	if err := expandFiles(ctx, engine, out, args, record); err != nil {
		return err
	}
	if !expandOpts.watch {
		return nil
	}
	return watchFiles(ctx, args, func(path string) error {
		return expandFiles(ctx, engine, out, []string{path}, record)
	})
}

func (o expandOptions) probe() (probe.Static, error) {
	p := probe.Static{UA: o.userAgent}
	if o.dark {
		p.Scheme = probe.SchemeDark
	}
	if o.screen != "" {
		w, h, ok := strings.Cut(strings.ToLower(o.screen), "x")
		width, werr := strconv.Atoi(w)
		height, herr := strconv.Atoi(h)
		if !ok || werr != nil || herr != nil || width < 0 || height < 0 {
			return p, fmt.Errorf("invalid --screen %q: want WIDTHxHEIGHT", o.screen)
		}
		p.Width, p.Height = width, height
	}
	return p, nil
}

// loadRecord reads the letter fields from a YAML file. An empty path gives an
// empty record.
func loadRecord(path string) (macro.Record, error) {
	if path == "" {
		return macro.Record{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read context: %w", err)
	}
	var l letter.Letter
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse context %s: %w", path, err)
	}
	return l.Record(), nil
}

func expandFiles(ctx context.Context, engine *macro.Engine, out io.Writer, paths []string, record macro.Record) error {
	jobs := make([]macro.Job, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		jobs[i] = macro.Job{Text: string(data), Record: record}
	}

	results := engine.ExpandAll(ctx, jobs)
	for i, result := range results {
		if len(paths) > 1 {
			fmt.Fprintf(out, "==> %s <==\n", paths[i])
		}
		fmt.Fprint(out, result)
		if len(paths) > 1 && !strings.HasSuffix(result, "\n") {
			fmt.Fprintln(out)
		}
	}
	return nil
}

// watchFiles calls onChange for every write to one of paths until ctx is
// done. Directories are watched so editors that replace files on save still
// trigger.
func watchFiles(ctx context.Context, paths []string, onChange func(path string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		targets[abs] = path
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	logger.Info("watching for changes", zap.Strings("files", paths))

	// Editors often emit several events per save.
	const debounce = 100 * time.Millisecond
	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, tracked := targets[filepath.Clean(event.Name)]
			if !tracked || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			pending[path] = true
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			for path := range pending {
				delete(pending, path)
				if err := onChange(path); err != nil {
					logger.Warn("expand failed", zap.String("file", path), zap.Error(err))
				}
			}
		}
	}
}
