// Package textio reads and writes line-oriented text files through afs, so
// local paths and any URL scheme afs supports work the same way. Files ending
// in .gz or .bz2 are decompressed on read and compressed on write.
package textio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/viant/afs"

	"github.com/provide-io/reformatter/pkg/logging"
	"github.com/provide-io/reformatter/pkg/utils/permissions"
)

// Store reads and writes line files.
type Store struct {
	fs     afs.Service
	logger hclog.Logger
}

// NewStore creates a Store backed by the default afs service.
func NewStore(logger hclog.Logger) *Store {
	return &Store{
		fs:     afs.New(),
		logger: logging.OrNull(logger).Named("textio"),
	}
}

// ReadLines loads url and splits it into lines. "\n", "\r\n" and a lone "\r"
// all end a line; a terminator at end of file does not add an empty line.
func (s *Store) ReadLines(ctx context.Context, url string) ([]string, error) {
	s.logger.Debug("📖 Reading lines", "url", url)

	raw, err := s.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	codec := CodecFor(url)
	data, err := codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s as %s: %w", url, codec.Name(), err)
	}

	lines := SplitLines(string(data))
	s.logger.Debug("✅ Lines read", "url", url, "codec", codec.Name(), "bytes", len(data), "lines", len(lines))
	return lines, nil
}

// WriteLines writes every line followed by "\n" to url, replacing whatever
// was there.
func (s *Store) WriteLines(ctx context.Context, url string, lines []string, mode os.FileMode) error {
	if mode == 0 {
		mode = permissions.DefaultFileMode
	}

	codec := CodecFor(url)
	data, err := codec.Encode(JoinLines(lines))
	if err != nil {
		return fmt.Errorf("encoding %s as %s: %w", url, codec.Name(), err)
	}

	s.logger.Debug("💾 Writing lines", "url", url, "codec", codec.Name(), "lines", len(lines), "bytes", len(data), "mode", fmt.Sprintf("%#o", mode))
	if err := s.fs.Upload(ctx, url, mode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", url, err)
	}
	return nil
}

// SplitLines breaks text into lines the way a line reader does.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}

	var lines []string
	for len(text) > 0 {
		i := strings.IndexAny(text, "\r\n")
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		text = text[i+1:]
	}
	return lines
}

// JoinLines is the inverse of SplitLines for "\n"-terminated text.
func JoinLines(lines []string) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
