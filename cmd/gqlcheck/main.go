// gqlcheck validates GraphQL query documents: fragment cycle detection
// plus the document-shape companion rules.
//
// Run: gqlcheck [flags] [files or globs]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/gqlcheck"
	"github.com/syssam/gqlcheck/rules"
)

func main() {
	var (
		configPath = flag.String("config", ".gqlcheck.yml", "configuration file path")
		ruleNames  = flag.String("rules", "", "comma-separated rule names overriding the config")
		workers    = flag.Int("workers", 4, "maximum concurrent document checks")
		watch      = flag.Bool("watch", false, "keep running and re-check files on change")
	)
	flag.Parse()

	checker, files, err := setup(*configPath, *ruleNames, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	ctx := context.Background()
	failed := checkFiles(ctx, checker, files, *workers)

	if *watch {
		if err := watchFiles(ctx, checker, files, *workers); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		return
	}
	if failed {
		os.Exit(1)
	}
}

// setup builds the checker and resolves the document list from flags and
// configuration.
func setup(configPath, ruleNames string, args []string) (*gqlcheck.Checker, []string, error) {
	cfg, err := gqlcheck.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	names := cfg.Rules
	if ruleNames != "" {
		names = strings.Split(ruleNames, ",")
	}
	var ruleSet []gqlcheck.Rule
	if len(names) > 0 {
		ruleSet, err = rules.ByName(names...)
		if err != nil {
			return nil, nil, err
		}
	} else {
		ruleSet = rules.Default()
	}

	checker := gqlcheck.New(ruleSet...)
	if cfg.Cache.Enabled {
		ttl, err := cfg.Cache.TTLDuration()
		if err != nil {
			return nil, nil, gqlcheck.NewConfigError(configPath, err)
		}
		checker = checker.WithCache(gqlcheck.NewMemoryCache(), ttl)
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Documents
	}
	files, err := expand(patterns)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, gqlcheck.ErrNoDocuments
	}
	return checker, files, nil
}

// expand resolves glob patterns to a sorted, deduplicated file list.
func expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("gqlcheck: bad pattern %q: %w", pattern, err)
		}
		if matches == nil {
			// A plain path with no glob match is still worth trying so
			// the user gets a read error rather than silence.
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// checkFiles validates all files concurrently, one checker invocation per
// document, and reports whether any of them failed.
func checkFiles(ctx context.Context, checker *gqlcheck.Checker, files []string, workers int) bool {
	var (
		mu     sync.Mutex
		failed bool
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, file := range files {
		file := file
		eg.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				mu.Lock()
				fmt.Fprintf(os.Stderr, "%v\n", err)
				failed = true
				mu.Unlock()
				return nil
			}
			report, err := checker.CheckSource(ctx, file, string(data))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				failed = true
				return nil
			}
			printReport(report)
			if report.Status == gqlcheck.StatusError {
				failed = true
			}
			return nil
		})
	}
	_ = eg.Wait()
	return failed
}

func printReport(report *gqlcheck.Report) {
	if report.Status == gqlcheck.StatusOK {
		fmt.Printf("%s: ok\n", report.Document)
		return
	}
	for _, d := range report.Diagnostics {
		line, column := 0, 0
		if len(d.Locations) > 0 {
			line, column = d.Locations[0].Line, d.Locations[0].Column
		}
		fmt.Printf("%s:%d:%d: %s (%s)\n", report.Document, line, column, d.Message, d.Rule)
	}
}

// watchFiles re-checks a file whenever it is written. It blocks until the
// watcher fails.
func watchFiles(ctx context.Context, checker *gqlcheck.Checker, files []string, workers int) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, file := range files {
		watched[file] = true
		// Watch the directory: editors often replace files on save,
		// which drops a watch on the file itself.
		dirs[filepath.Dir(file)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stderr, "watching %d files\n", len(files))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			checkFiles(ctx, checker, []string{filepath.Clean(event.Name)}, workers)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		}
	}
}
