// Command smfstat is a supplementary analysis tool (not part of spec.md's
// reference dumper contract): it walks one or more SMF files and reports
// per-instrument and per-percussion-key note counts, tempo changes, and the header's
// time system, grounded on the kind of secondary tool real SMF libraries
// ship alongside their core parser (yalue-midi/instrument_stats).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alxayo/smf-go/internal/logger"
	"github.com/alxayo/smf-go/internal/smf/stat"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "smfstat [files...]",
		Short: "Summarize note, instrument, and tempo usage across SMF files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init()
			if verbose {
				_ = logger.SetLevel("debug")
			}
			return runStat(cmd, args)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics")
	return cmd
}

func runStat(cmd *cobra.Command, paths []string) error {
	log := logger.Logger()
	totals := stat.New()

	for _, path := range paths {
		l := logger.WithSource(log, path)
		l.Debug("parsing started")

		summary, err := stat.Summarize(path)
		if err != nil {
			l.WithField("error", err).Error("failed to summarize file")
			return fmt.Errorf("smfstat: %s: %w", path, err)
		}
		totals.Merge(summary)
		l.Debug("parsing complete")
	}

	totals.WriteReport(cmd.OutOrStdout())
	return nil
}
