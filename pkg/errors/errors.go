// Package errors holds the error taxonomy shared by the reformatter packages.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Selection errors 🎛️
	ErrInvalidMode = errors.New("❌ invalid vocabulary mode")
	ErrUsage       = errors.New("❌ invalid usage")

	// Substitution errors 🔁
	ErrIndexOutOfRange = errors.New("❌ vocabulary index out of range")

	// Vocabulary resource errors 📚
	ErrVocabulary = errors.New("❌ invalid vocabulary")
)

// Exit statuses reported by the CLI. Anything not listed exits with 1.
const (
	ExitUsage        = 2
	ExitInvalidMode  = 3
	ExitOutOfRange   = 4
	ExitBadVocabFile = 5
)

// Role names the side of the pairing a vocabulary was requested for.
type Role string

const (
	RoleInput  Role = "input"
	RoleOutput Role = "output"
)

// InvalidModeError reports a vocabulary name outside the recognized set.
type InvalidModeError struct {
	Role  Role
	Name  string
	Valid []string
}

func (e *InvalidModeError) Error() string {
	msg := fmt.Sprintf("Incorrect %s type: %q", e.Role, e.Name)
	if len(e.Valid) > 0 {
		msg += fmt.Sprintf(" (valid: %s)", strings.Join(e.Valid, ", "))
	}
	return msg
}

func (e *InvalidModeError) Is(target error) bool { return target == ErrInvalidMode }

func (e *InvalidModeError) ExitCode() int { return ExitInvalidMode }

// IndexOutOfRangeError reports a matched input token whose index has no
// counterpart in the output vocabulary.
type IndexOutOfRangeError struct {
	Index int
	Token string
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("token %q matched at index %d but output vocabulary has only %d entries", e.Token, e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

func (e *IndexOutOfRangeError) ExitCode() int { return ExitOutOfRange }

// UsageError is returned when the command line does not have the expected shape.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string { return e.Reason }

func (e *UsageError) Is(target error) bool { return target == ErrUsage }

func (e *UsageError) ExitCode() int { return ExitUsage }

// VocabularyError describes a malformed vocabulary resource.
type VocabularyError struct {
	Vocabulary string
	Reason     string
}

func (e *VocabularyError) Error() string {
	if e.Vocabulary == "" {
		return "vocabulary resource: " + e.Reason
	}
	return fmt.Sprintf("vocabulary %q: %s", e.Vocabulary, e.Reason)
}

func (e *VocabularyError) Is(target error) bool { return target == ErrVocabulary }

func (e *VocabularyError) ExitCode() int { return ExitBadVocabFile }
