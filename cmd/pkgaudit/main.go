// Command pkgaudit drives one plan.Plug pass over the demo check family
// and reports the results, then drops into an interactive "explain" REPL.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/pkgaudit/pkgaudit/config"
	"github.com/pkgaudit/pkgaudit/internal/demo"
	"github.com/pkgaudit/pkgaudit/plan"
	"github.com/pkgaudit/pkgaudit/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pkgaudit:", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cacheDir, _ := os.UserCacheDir()
	if cacheDir == "" {
		cacheDir = os.TempDir()
	}
	cacheDir = filepath.Join(cacheDir, "pkgaudit")
	_ = os.MkdirAll(cacheDir, 0o755)

	logFile, err := os.OpenFile(filepath.Join(cacheDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err == nil {
		defer logFile.Close()
	} else {
		logFile = os.Stderr
	}
	logger := log.New(logFile, "", log.LstdFlags)

	runID := uuid.NewString()

	out := os.Stdout
	if settings.Dest != "" && settings.Dest != "-" {
		f, err := os.Create(settings.Dest)
		if err != nil {
			return fmt.Errorf("%w: opening destination %s: %w", report.ErrReporterInit, settings.Dest, err)
		}
		defer f.Close()
		out = f
	}

	reporter, err := buildReporter(settings.ReporterKind, out, runID)
	if err != nil {
		return err
	}

	feeder := demo.NewModXFeeder(demo.DefaultModXAllowlist)
	sinks := []plan.Sink{
		demo.NewRedundantVersionCheck(),
		demo.NewUnportedModXCheck(feeder),
	}
	sources := []plan.Source{
		demo.NewFixturePackageVersionsSource(1),
		demo.NewFixtureCategoryPackagesSource(1),
	}

	outcome, err := plan.Plug(sinks, nil, sources, reporter, plan.Options{
		Debug:  logger.Printf,
		RunID:  runID,
		Strict: settings.Strict,
	})
	if err != nil {
		return fmt.Errorf("planning: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := drainOutcome(ctx, outcome, reporter); err != nil {
		return fmt.Errorf("running checks: %w", err)
	}

	fmt.Printf("run %s: %d running, %d unreachable, %d out of scope\n",
		runID, len(outcome.Running), len(outcome.Unreachable), len(outcome.OutOfScope))

	return runExplainREPL(cacheDir, outcome)
}

// buildReporter selects the plan.Reporter to use based on kind
// ("str"/"fancy"/"xml", defaulting to "str").
func buildReporter(kind string, out *os.File, runID string) (plan.Reporter, error) {
	switch kind {
	case "fancy":
		return report.NewFancyReporter(out), nil
	case "xml":
		return report.NewXmlReporter(out, runID), nil
	case "", "str":
		return report.NewStrReporter(out), nil
	default:
		return nil, fmt.Errorf("%w: unknown reporter kind %q", report.ErrReporterInit, kind)
	}
}

// drainOutcome brackets the reporter with Start/Finish and drains every
// pipe, checking ctx between Next calls the way spec.md §5 layers
// cancellation above THE CORE without THE CORE depending on context.
func drainOutcome(ctx context.Context, outcome plan.Outcome, reporter plan.Reporter) error {
	if err := reporter.Start(); err != nil {
		return err
	}
	for _, pipe := range outcome.Pipes {
		for {
			select {
			case <-ctx.Done():
				pipe.Close()
				return ctx.Err()
			default:
			}
			_, ok, err := pipe.Next()
			if err != nil {
				pipe.Close()
				return err
			}
			if !ok {
				break
			}
		}
		if err := pipe.Close(); err != nil {
			return err
		}
	}
	return reporter.Finish()
}
