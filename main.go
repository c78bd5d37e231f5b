package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"polygon-acreage/internal/calculator"
	"polygon-acreage/internal/config"
	"polygon-acreage/internal/kml"
	"polygon-acreage/internal/logging"
	"polygon-acreage/internal/pipeline"
	"polygon-acreage/internal/report"
)

// errReported is returned once the user has already been told what went wrong.
var errReported = errors.New("reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "acreage",
		Short:         "Report the acreage of the polygons in a KML or KMZ file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml or ./configs/config.yaml)")

	root.AddCommand(newReportCmd(&configFile), newServeCmd(&configFile))
	return root
}

func newReportCmd(configFile *string) *cobra.Command {
	var (
		output  string
		method  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "report <file.kml|file.kmz>",
		Short: "Write a CSV or XLSX acreage report for one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Report.Path = output
			}
			if cmd.Flags().Changed("method") {
				cfg.Area.Method = method
			}
			if cmd.Flags().Changed("workers") {
				cfg.Area.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, closer, err := logging.Setup(logging.Options{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				File:   cfg.Log.File,
				Stderr: cfg.Log.Stderr,
			})
			if err != nil {
				return err
			}
			defer closer.Close()

			res, err := pipeline.Run(args[0], pipeline.Options{
				Method:     calculator.Method(cfg.Area.Method),
				Workers:    cfg.Area.Workers,
				OutputPath: cfg.Report.Path,
				Sheet:      cfg.Report.Sheet,
			}, log)
			return reportOutcome(cmd.OutOrStdout(), args[0], res, err)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "report path; .xlsx writes a workbook, anything else CSV")
	cmd.Flags().StringVar(&method, "method", "", "area method for polygons without a usable annotation: mercator or geodesic")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel area workers, -1 for one per CPU")
	return cmd
}

// reportOutcome tells the user how a run ended. An empty document is a
// successful run.
func reportOutcome(out io.Writer, input string, res *pipeline.Result, err error) error {
	switch {
	case err == nil:
		fmt.Fprintf(out, "Report generated: %s\n", res.OutputPath)
		return nil
	case errors.Is(err, report.ErrNoPolygons):
		fmt.Fprintln(out, "No polygons found in the KML file.")
		return nil
	case errors.Is(err, kml.ErrNotFile):
		fmt.Fprintf(out, "Provided path is not a file: %s\n", input)
	case errors.Is(err, kml.ErrUnsupportedFormat):
		fmt.Fprintln(out, "Please provide a KMZ or KML file.")
	case errors.Is(err, kml.ErrContainer):
		fmt.Fprintln(out, "Error extracting KML from KMZ. See log for details.")
	case kml.IsInputError(err):
		fmt.Fprintln(out, "Error parsing KML. See log for details.")
	default:
		return err
	}
	return errReported
}
