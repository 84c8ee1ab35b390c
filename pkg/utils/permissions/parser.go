// Package permissions parses the octal file modes accepted on the command line
package permissions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultFileMode is applied to output files when no mode is given.
const DefaultFileMode os.FileMode = 0o644

// ParseOctalString parses an octal permission string into a file mode.
// Handles formats like "644", "0644", "0o644". Only permission bits are allowed.
func ParseOctalString(s string) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultFileMode, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0")
	if digits == "" {
		return 0, fmt.Errorf("invalid permission string %q: no permission bits", s)
	}

	val, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return DefaultFileMode, fmt.Errorf("invalid permission string %q: %w", s, err)
	}
	if val > 0o777 {
		return DefaultFileMode, fmt.Errorf("invalid permission string %q: only permission bits are allowed", s)
	}

	return os.FileMode(val), nil
}

// FormatOctal formats a permission value as an octal string
func FormatOctal(mode os.FileMode) string {
	return fmt.Sprintf("0%o", mode.Perm())
}

// OwnerWritable reports whether the owner can write a file with this mode.
// Output without owner write cannot be overwritten by a later run.
func OwnerWritable(mode os.FileMode) bool {
	return mode&0o200 != 0
}
