package pkg

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/reformatter/internal/config"
	"github.com/provide-io/reformatter/pkg/logging"
	"github.com/provide-io/reformatter/pkg/substitute"
	"github.com/provide-io/reformatter/pkg/textio"
	"github.com/provide-io/reformatter/pkg/vocab"
)

// Options describes one reformat run.
type Options struct {
	InputPath   string
	InputVocab  string
	OutputVocab string
	OutputPath  string

	// VocabFile adds vocabularies on top of the builtin ones. Empty falls
	// back to REFORMATTER_VOCAB and then the config root.
	VocabFile    string
	DeletePolicy substitute.DeletePolicy
	Workers      int
	FileMode     os.FileMode

	LogLevel string
	Logger   hclog.Logger
}

// Report is what a successful run did.
type Report struct {
	Input       string
	Output      string
	VocabSource config.Source
	Stats       substitute.Stats
}

// LoadRegistry returns the builtin vocabularies merged with the user resource
// selected by vocabFile, REFORMATTER_VOCAB or the config root.
func LoadRegistry(ctx context.Context, vocabFile string, logger hclog.Logger) (*vocab.Registry, config.Source, error) {
	logger = logging.OrNull(logger)
	reg := vocab.Builtin()

	path, source := config.VocabularyFile(vocabFile)
	if path == "" {
		logger.Debug("📚 Using builtin vocabularies", "names", reg.Names())
		return reg, source, nil
	}

	user, err := vocab.LoadFile(ctx, path)
	if err != nil {
		return nil, source, err
	}
	reg.Merge(user)
	logger.Debug("📚 Vocabularies loaded", "path", path, "source", source, "names", reg.Names())
	return reg, source, nil
}

// Reformat rewrites opts.InputPath into opts.OutputPath. Vocabulary names are
// checked before any file is touched, and the output is written only once
// every line has been transformed.
func Reformat(ctx context.Context, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		level, _ := logging.ResolveLevel(opts.LogLevel)
		logger = logging.NewLogger("reformatter", level, nil)
	}

	reg, source, err := LoadRegistry(ctx, opts.VocabFile, logger)
	if err != nil {
		return nil, err
	}

	input, err := reg.Input(opts.InputVocab)
	if err != nil {
		logger.Error("❌ Unknown input vocabulary", "name", opts.InputVocab, "valid", reg.Names())
		return nil, err
	}
	output, err := reg.Output(opts.OutputVocab)
	if err != nil {
		logger.Error("❌ Unknown output vocabulary", "name", opts.OutputVocab, "valid", reg.OutputNames())
		return nil, err
	}

	engine, err := substitute.New(input, output,
		substitute.WithDeletePolicy(opts.DeletePolicy),
		substitute.WithWorkers(opts.Workers),
		substitute.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("🚀 Reformatting", "input", opts.InputPath, "from", input.Name, "to", output.Name, "output", opts.OutputPath)

	store := textio.NewStore(logger)
	lines, err := store.ReadLines(ctx, opts.InputPath)
	if err != nil {
		logger.Error("❌ Failed to read input", "error", err)
		return nil, err
	}

	converted, stats, err := engine.Lines(ctx, lines)
	if err != nil {
		logger.Error("❌ Substitution failed, nothing written", "error", err)
		return nil, fmt.Errorf("%s: %w", opts.InputPath, err)
	}

	if err := store.WriteLines(ctx, opts.OutputPath, converted, opts.FileMode); err != nil {
		logger.Error("❌ Failed to write output", "error", err)
		return nil, err
	}

	logger.Info("✅ Reformat complete",
		"lines", stats.Lines, "substituted", stats.Substituted,
		"deleted", stats.Deleted, "unchanged", stats.Unchanged)
	for _, tc := range stats.Top(5) {
		logger.Debug("📈 Token frequency", "token", tc.Token, "count", tc.Count)
	}

	return &Report{
		Input:       input.Name,
		Output:      output.Name,
		VocabSource: source,
		Stats:       stats,
	}, nil
}
