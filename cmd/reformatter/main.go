package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"time"

	"github.com/carlmjohnson/exitcode"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/provide-io/reformatter/pkg"
	rferrors "github.com/provide-io/reformatter/pkg/errors"
	"github.com/provide-io/reformatter/pkg/logging"
	"github.com/provide-io/reformatter/pkg/substitute"
	"github.com/provide-io/reformatter/pkg/utils/permissions"
	"github.com/provide-io/reformatter/pkg/vocab"
)

const version = "0.1.0"

var _ pflag.Value = (*substitute.DeletePolicy)(nil)

type cliFlags struct {
	vocabFile    string
	deletePolicy substitute.DeletePolicy
	workers      int
	mode         string
	logLevel     string
	list         bool
	versionFlag  bool
}

func buildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "reformatter <input-file> <input-vocabulary> <output-vocabulary> <output-file>",
		Short: "Rewrite a script between paired vocabularies",
		Long: `Rewrite a script between paired vocabularies.

Every line has at most one token of the input vocabulary replaced by the token
at the same position in the output vocabulary. The output vocabulary "video"
deletes matched tokens instead.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.list || flags.versionFlag {
				return nil
			}
			if len(args) != 4 {
				return &rferrors.UsageError{Reason: fmt.Sprintf("expected 4 arguments, got %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &rferrors.UsageError{Reason: err.Error()}
	})

	f := cmd.Flags()
	f.StringVar(&flags.vocabFile, "vocab", "", "YAML file with extra vocabularies (defaults to REFORMATTER_VOCAB or the config root)")
	f.Var(&flags.deletePolicy, "delete-policy", "What the video output does with a match: delete or keep")
	f.IntVarP(&flags.workers, "workers", "w", 1, "Number of goroutines transforming lines")
	f.StringVar(&flags.mode, "mode", "", "Output file permissions in octal (default 0644)")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, json[:level])")
	f.BoolVar(&flags.list, "list", false, "List the available vocabularies and exit")
	f.BoolVarP(&flags.versionFlag, "version", "V", false, "Show version information")

	return cmd
}

func run(ctx context.Context, flags *cliFlags, args []string, stdout, stderr io.Writer) error {
	if flags.versionFlag {
		fmt.Fprintf(stdout, "reformatter %s\n", version)
		fmt.Fprintf(stdout, "Built: %s\n", buildTimestamp())
		return nil
	}

	level, source := logging.ResolveLevel(flags.logLevel)
	logger := logging.NewLogger("reformatter", level, stderr)
	logger.Debug("Log level", "level", level, "source", source)

	if flags.list {
		reg, _, err := pkg.LoadRegistry(ctx, flags.vocabFile, logger)
		if err != nil {
			return err
		}
		for _, name := range reg.Names() {
			v, _ := reg.Get(name)
			fmt.Fprintf(stdout, "%-12s %d tokens\n", name, v.Len())
		}
		fmt.Fprintf(stdout, "%-12s output only, deletes matches\n", vocab.Delete)
		return nil
	}

	mode, err := permissions.ParseOctalString(flags.mode)
	if err != nil {
		return &rferrors.UsageError{Reason: err.Error()}
	}
	if !permissions.OwnerWritable(mode) {
		logger.Warn("⚠️ Output will not be writable by its owner", "mode", permissions.FormatOctal(mode))
	}

	_, err = pkg.Reformat(ctx, pkg.Options{
		InputPath:    args[0],
		InputVocab:   args[1],
		OutputVocab:  args[2],
		OutputPath:   args[3],
		VocabFile:    flags.vocabFile,
		DeletePolicy: flags.deletePolicy,
		Workers:      flags.workers,
		FileMode:     mode,
		Logger:       logger,
	})
	return err
}

// printUsage mirrors the usage text of the original tool, listing the
// vocabularies that are actually available.
func printUsage(ctx context.Context, w io.Writer, vocabFile string) {
	reg, _, err := pkg.LoadRegistry(ctx, vocabFile, nil)
	if err != nil {
		reg = vocab.Builtin()
	}
	fmt.Fprintln(w, "Usage is:")
	fmt.Fprintln(w, "reformatter <fileToConvert> <inputFormat> <outputFormat> <destinationLocation>")
	fmt.Fprintf(w, "Valid input formats are { %s }. Valid output formats are { %s }.\n",
		strings.Join(reg.Names(), ", "), strings.Join(reg.OutputNames(), ", "))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if errors.Is(err, rferrors.ErrUsage) {
		vocabFile, _ := cmd.Flags().GetString("vocab")
		printUsage(ctx, stderr, vocabFile)
	}
	return exitcode.Get(err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
