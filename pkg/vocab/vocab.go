// Package vocab models the ordered token lists that the substitution engine
// pairs by index, and the registry that resolves them by name.
package vocab

// Vocabulary is an ordered list of distinct tokens. Position is significant:
// index i pairs with index i of whichever vocabulary it is substituted with.
type Vocabulary struct {
	Name   string
	Tokens []string

	index map[string]int
}

// New creates a Vocabulary, building the token lookup.
func New(name string, tokens []string) *Vocabulary {
	v := &Vocabulary{
		Name:   name,
		Tokens: tokens,
		index:  make(map[string]int, len(tokens)),
	}
	for i, tok := range tokens {
		if _, seen := v.index[tok]; !seen {
			v.index[tok] = i
		}
	}
	return v
}

// Len returns the number of tokens.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Tokens)
}

// IsEmpty reports whether the vocabulary has no tokens. An empty output
// vocabulary puts the engine in delete mode.
func (v *Vocabulary) IsEmpty() bool {
	return v.Len() == 0
}

// Token returns the token at index i.
func (v *Vocabulary) Token(i int) (string, bool) {
	if i < 0 || i >= v.Len() {
		return "", false
	}
	return v.Tokens[i], true
}

// Index returns the position of token, or -1 and false.
func (v *Vocabulary) Index(token string) (int, bool) {
	if v == nil {
		return -1, false
	}
	i, ok := v.index[token]
	if !ok {
		return -1, false
	}
	return i, true
}
