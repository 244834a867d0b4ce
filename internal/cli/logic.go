package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idelchi/wipe/internal/config"
	"github.com/idelchi/wipe/internal/logging"
	"github.com/idelchi/wipe/internal/wipe"
)

// confirm asks whether to proceed and reports whether the answer was "y".
func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprintln(out, "Are you sure you want to delete the folder and everything inside of it? (y/N)")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}

	return strings.TrimSpace(answer) == "y"
}

func logic(cmd *cobra.Command, cfg config.Config, roots []string) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	log := logging.New(cmd.ErrOrStderr(), level)
	stdout := cmd.OutOrStdout()
	table := cfg.Output == "table"

	if cfg.Yes {
		fmt.Fprintln(cmd.ErrOrStderr(), "Deleting without confirmation...")
	} else if !confirm(cmd.InOrStdin(), cmd.ErrOrStderr()) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Exiting...")

		return nil
	}

	var (
		report Report
		errs   []error
	)

	start := time.Now()

	for _, root := range roots {
		if table {
			fmt.Fprintf(stdout, "Cleaning %s\n", root)
		}

		begin := time.Now()

		err := wipe.New(wipe.Options{
			Path:    root,
			Factor:  cfg.Factor,
			Threads: cfg.Threads,
			Logger:  log,
		}).Clean()

		timing := Timing{Path: root, Elapsed: time.Since(begin)}
		if err != nil {
			log.Error("Failed to clean directory", "path", root, "err", err)

			timing.Error = err.Error()
			errs = append(errs, err)
		}

		report.Roots = append(report.Roots, timing)
	}

	report.Total = time.Since(start)

	log.Debug("Total time", "elapsed", report.Total)

	for _, timing := range report.Roots {
		log.Debug("Directory timing", "path", timing.Path, "elapsed", timing.Elapsed)
	}

	switch cfg.Output {
	case "json":
		err = PrintJSON(report, stdout)
	default:
		err = PrintTable(report, stdout)
	}

	if err != nil {
		return err
	}

	return errors.Join(errs...)
}
