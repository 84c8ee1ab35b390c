package substitute

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// DeletePolicy decides what delete mode does with a detected match.
type DeletePolicy int

const (
	// DeleteMatch removes the matched token from the line.
	DeleteMatch DeletePolicy = iota
	// KeepLine only reports the match and leaves the line as it was.
	KeepLine
)

func (p DeletePolicy) String() string {
	switch p {
	case DeleteMatch:
		return "delete"
	case KeepLine:
		return "keep"
	default:
		return fmt.Sprintf("DeletePolicy(%d)", int(p))
	}
}

// Set implements pflag.Value.
func (p *DeletePolicy) Set(s string) error {
	parsed, err := ParseDeletePolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Type implements pflag.Value.
func (p *DeletePolicy) Type() string {
	return "policy"
}

// ParseDeletePolicy accepts "delete" or "keep".
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "delete", "":
		return DeleteMatch, nil
	case "keep":
		return KeepLine, nil
	}
	return DeleteMatch, fmt.Errorf("unknown delete policy %q (want delete or keep)", s)
}

type options struct {
	policy  DeletePolicy
	workers int
	logger  hclog.Logger
}

func defaultOptions() options {
	return options{policy: DeleteMatch, workers: 1}
}

// Option configures an Engine.
type Option func(*options)

// WithDeletePolicy sets the delete mode behavior.
func WithDeletePolicy(p DeletePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithWorkers transforms lines on n goroutines. Values below 2 run sequentially.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.logger = l }
}
