package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// Timing is the time spent cleaning a single directory.
type Timing struct {
	// Path is the directory as given on the command line.
	Path string `json:"path"`
	// Elapsed is the time taken to clean the directory.
	Elapsed time.Duration `json:"elapsed"`
	// Error is set when the directory could not be walked at all.
	Error string `json:"error,omitempty"`
}

// Report holds the timings of a whole run.
type Report struct {
	// Roots lists the timing for each directory, in the order cleaned.
	Roots []Timing `json:"roots"`
	// Total is the time taken for all directories.
	Total time.Duration `json:"total"`
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the report in human-readable table format.
func PrintTable(report Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nDirectory timings:\t\t")

	for i, timing := range report.Roots {
		status := ""
		if timing.Error != "" {
			status = "(failed)"
		}

		fmt.Fprintf(w, "  %d) '%s'\t%v\t%s\n", i+1, timing.Path, timing.Elapsed.Round(time.Millisecond), status)
	}

	fmt.Fprintf(w, "\nDirectories:\t%s\t\n", humanize.Comma(int64(len(report.Roots))))
	fmt.Fprintf(w, "Elapsed:\t%v\t\n", report.Total.Round(time.Millisecond))

	return w.Flush()
}
