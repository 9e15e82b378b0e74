// Package cli implements the qpextract command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/opd-ai/qpextract"
	"github.com/opd-ai/qpextract/decoder"
	"github.com/opd-ai/qpextract/metrics"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Process exit codes. Explicit help exits 0; usage errors exit 5;
// unopenable files and decode failures exit 10.
const (
	ExitOK      = 0
	ExitUsage   = 5
	ExitFailure = 10
)

// errUsage wraps command line errors that should exit with ExitUsage.
var errUsage = errors.New("usage error")

type rootOptions struct {
	infile  string
	outfile string
	engine  string

	checkHash bool
	nalInput  bool
	minQP     int
	maxQP     int

	qpyMode  bool
	qpcbMode bool
	qpcrMode bool
	predMode bool
	ctuMode  bool
	fullMode bool

	highestTID        int
	disableDeblocking bool
	disableSAO        bool
	noAcceleration    bool
	verbose           bool
	noLogging         bool
}

// NewRootCommand builds the qpextract root command. Factored out of
// Execute so tests can drive the CLI with injected arguments and streams.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "qpextract",
		Short: "Extract per-block QP, prediction mode and CTU statistics from HEVC bitstreams",
		Long: `qpextract decodes an HEVC bitstream (raw Annex B, or a stream of 4-byte
length-prefixed NAL units with --nal) and emits one CSV row per frame with
the distribution of the selected coding parameter, both per block and
weighted by block pixel area. Full mode emits one row per coding block
instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags win over environment; environment over defaults.
			for _, name := range []string{"infile", "outfile", "engine"} {
				if !cmd.Flags().Changed(name) && viper.IsSet(name) {
					_ = cmd.Flags().Set(name, viper.GetString(name))
				}
			}
			for _, name := range []string{"verbose", "check-hash", "nal"} {
				if !cmd.Flags().Changed(name) && viper.IsSet(name) {
					_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(name)))
				}
			}
			configureLogging(opts)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.infile, "infile", "i", "", "input file (- or unset reads standard input)")
	cmd.Flags().StringVarP(&opts.outfile, "outfile", "o", "", "output file (- or unset writes standard output)")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "decoding engine to use (default: first registered)")

	cmd.Flags().BoolVarP(&opts.checkHash, "check-hash", "c", false, "perform SEI picture hash check")
	cmd.Flags().BoolVarP(&opts.nalInput, "nal", "n", false, "input is a stream of 4-byte length-prefixed NAL units")
	cmd.Flags().IntVarP(&opts.minQP, "min-qp", "q", 0, "minimum QP for CSV dump")
	cmd.Flags().IntVarP(&opts.maxQP, "max-qp", "Q", 63, "maximum QP for CSV dump")

	cmd.Flags().BoolVar(&opts.qpyMode, "qpymode", false, "QP Y mode (distribution of luma QP values)")
	cmd.Flags().BoolVar(&opts.qpcbMode, "qpcbmode", false, "QP Cb mode (distribution of chroma Cb QP values)")
	cmd.Flags().BoolVar(&opts.qpcrMode, "qpcrmode", false, "QP Cr mode (distribution of chroma Cr QP values)")
	cmd.Flags().BoolVarP(&opts.predMode, "predmode", "p", false, "pred mode (distribution of prediction modes)")
	cmd.Flags().BoolVar(&opts.ctuMode, "ctumode", false, "ctu mode (distribution of CTU sizes)")
	cmd.Flags().BoolVar(&opts.fullMode, "fullmode", false, "full mode (per-block QP, pred and CTU info)")
	cmd.MarkFlagsMutuallyExclusive("qpymode", "qpcbmode", "qpcrmode", "predmode", "ctumode", "fullmode")

	cmd.Flags().IntVarP(&opts.highestTID, "highest-TID", "T", 100, "highest temporal sublayer to decode")
	cmd.Flags().BoolVar(&opts.disableDeblocking, "disable-deblocking", false, "disable the deblocking filter")
	cmd.Flags().BoolVar(&opts.disableSAO, "disable-sao", false, "disable the sample-adaptive offset filter")
	cmd.Flags().BoolVar(&opts.noAcceleration, "noaccel", false, "disable SIMD acceleration")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose diagnostics")
	cmd.Flags().BoolVarP(&opts.noLogging, "no-logging", "L", false, "suppress non-error diagnostics")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	viper.SetEnvPrefix("QPEXTRACT")
	viper.AutomaticEnv()

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "qpextract: %v\n", err)
		return exitCode(err)
	}
	return ExitOK
}

// exitCode maps an error to the documented process exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage),
		errors.Is(err, qpextract.ErrInvalidRange),
		errors.Is(err, qpextract.ErrUnsupportedMode):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// run assembles the analyzer from the parsed options and drives it.
func run(opts *rootOptions) error {
	options := buildOptions(opts)
	if err := options.Validate(); err != nil {
		return err
	}

	input, err := openInput(opts.infile)
	if err != nil {
		return err
	}
	defer closeIfFile(input)

	output, err := openOutput(opts.outfile)
	if err != nil {
		return err
	}
	defer closeIfFile(output)

	engine, err := decoder.Open(opts.engine, options.DecoderConfig())
	if err != nil {
		return err
	}
	defer engine.Close()

	analyzer, err := qpextract.New(options, engine, output)
	if err != nil {
		return err
	}
	return analyzer.Run(input)
}

// buildOptions translates the flag set into analyzer options. The mode
// flags are mutually exclusive; luma QP is the default.
func buildOptions(opts *rootOptions) *qpextract.Options {
	options := qpextract.NewOptions()
	switch {
	case opts.qpcbMode:
		options.Mode = metrics.KindChromaCbQP
	case opts.qpcrMode:
		options.Mode = metrics.KindChromaCrQP
	case opts.predMode:
		options.Mode = metrics.KindPredMode
	case opts.ctuMode:
		options.Mode = metrics.KindCTUSize
	case opts.fullMode:
		options.Mode = metrics.KindAll
	default:
		options.Mode = metrics.KindLumaQP
	}
	options.MinPrintedQP = opts.minQP
	options.MaxPrintedQP = opts.maxQP
	options.NALInput = opts.nalInput
	options.CheckHash = opts.checkHash
	options.MaxTemporalID = opts.highestTID
	options.DisableDeblocking = opts.disableDeblocking
	options.DisableSAO = opts.disableSAO
	options.NoAcceleration = opts.noAcceleration
	if opts.verbose {
		options.Verbosity = 1
	}
	return options
}

// configureLogging applies the diagnostic flags to the process logger.
func configureLogging(opts *rootOptions) {
	logrus.SetOutput(os.Stderr)
	switch {
	case opts.noLogging:
		logrus.SetLevel(logrus.ErrorLevel)
	case opts.verbose:
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// openInput resolves the input path, treating "-" and the empty string as
// standard input.
func openInput(path string) (io.Reader, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file %s: %w", path, err)
	}
	return f, nil
}

// openOutput resolves the output path, treating "-" and the empty string
// as standard output.
func openOutput(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file %s: %w", path, err)
	}
	return f, nil
}

// closeIfFile closes streams we opened ourselves; the standard streams
// stay open.
func closeIfFile(stream interface{}) {
	f, ok := stream.(*os.File)
	if !ok || f == os.Stdin || f == os.Stdout {
		return
	}
	if err := f.Close(); err != nil {
		logrus.WithError(err).Warn("Failed to close file")
	}
}
