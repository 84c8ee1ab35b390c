package vocab

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	rferrors "github.com/provide-io/reformatter/pkg/errors"
)

// Delete is the reserved output name that selects the empty vocabulary.
const Delete = "video"

//go:embed builtin.yaml
var builtinYAML []byte

// document is the on-disk shape of a vocabulary resource.
type document struct {
	Vocabularies map[string][]string `yaml:"vocabularies"`
}

// Registry resolves vocabulary names.
type Registry struct {
	vocabs map[string]*Vocabulary
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{vocabs: map[string]*Vocabulary{}}
}

// Builtin returns a registry holding the force and pseudo vocabularies.
func Builtin() *Registry {
	r, err := Load(bytes.NewReader(builtinYAML))
	if err != nil {
		panic(fmt.Sprintf("builtin vocabularies are malformed: %v", err))
	}
	return r
}

// Load parses a YAML vocabulary resource:
//
//	vocabularies:
//	  name: [token, token, ...]
func Load(r io.Reader) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &rferrors.VocabularyError{Reason: "empty document"}
		}
		return nil, &rferrors.VocabularyError{Reason: err.Error()}
	}

	if len(doc.Vocabularies) == 0 {
		return nil, &rferrors.VocabularyError{Reason: "no vocabularies defined"}
	}

	reg := NewRegistry()
	for name, tokens := range doc.Vocabularies {
		reg.vocabs[name] = New(name, tokens)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadFile reads a vocabulary resource from a local path or any URL afs
// understands.
func LoadFile(ctx context.Context, url string) (*Registry, error) {
	rc, err := afs.New().OpenURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary file %s: %w", url, err)
	}
	defer rc.Close()

	reg, err := Load(rc)
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary file %s: %w", url, err)
	}
	return reg, nil
}

// Add registers v, replacing any vocabulary with the same name.
func (r *Registry) Add(v *Vocabulary) error {
	if err := validate(v); err != nil {
		return err
	}
	r.vocabs[v.Name] = v
	return nil
}

// Merge copies every vocabulary of other into r; other wins on conflicts.
func (r *Registry) Merge(other *Registry) {
	if other == nil {
		return
	}
	for name, v := range other.vocabs {
		r.vocabs[name] = v
	}
}

// Validate checks every vocabulary in the registry.
func (r *Registry) Validate() error {
	for _, name := range r.Names() {
		if err := validate(r.vocabs[name]); err != nil {
			return err
		}
	}
	return nil
}

func validate(v *Vocabulary) error {
	switch {
	case v == nil:
		return &rferrors.VocabularyError{Reason: "nil vocabulary"}
	case v.Name == "":
		return &rferrors.VocabularyError{Reason: "vocabulary without a name"}
	case v.Name == Delete:
		return &rferrors.VocabularyError{Vocabulary: v.Name, Reason: "name is reserved for delete mode"}
	case v.IsEmpty():
		return &rferrors.VocabularyError{Vocabulary: v.Name, Reason: "no tokens"}
	}

	seen := make(map[string]int, len(v.Tokens))
	for i, tok := range v.Tokens {
		if tok == "" {
			return &rferrors.VocabularyError{Vocabulary: v.Name, Reason: fmt.Sprintf("empty token at index %d", i)}
		}
		if prev, dup := seen[tok]; dup {
			return &rferrors.VocabularyError{Vocabulary: v.Name, Reason: fmt.Sprintf("token %q repeated at index %d and %d", tok, prev, i)}
		}
		seen[tok] = i
	}
	return nil
}

// Names returns the registered vocabulary names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.vocabs))
	for name := range r.vocabs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OutputNames is Names plus the delete mode.
func (r *Registry) OutputNames() []string {
	return append(r.Names(), Delete)
}

// Get returns the named vocabulary.
func (r *Registry) Get(name string) (*Vocabulary, bool) {
	v, ok := r.vocabs[name]
	return v, ok
}

// Input resolves the vocabulary to match against.
func (r *Registry) Input(name string) (*Vocabulary, error) {
	if v, ok := r.vocabs[name]; ok {
		return v, nil
	}
	return nil, &rferrors.InvalidModeError{Role: rferrors.RoleInput, Name: name, Valid: r.Names()}
}

// Output resolves the vocabulary to substitute from. The reserved name
// "video" yields an empty vocabulary, meaning matches are deleted.
func (r *Registry) Output(name string) (*Vocabulary, error) {
	if name == Delete {
		return New(Delete, nil), nil
	}
	if v, ok := r.vocabs[name]; ok {
		return v, nil
	}
	return nil, &rferrors.InvalidModeError{Role: rferrors.RoleOutput, Name: name, Valid: r.OutputNames()}
}
