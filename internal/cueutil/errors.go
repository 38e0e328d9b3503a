// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// FormatError rewrites a CUE error as "<file>: <path>: <message>", one line
// per underlying error. Paths use index notation, e.g. "shell[0]".
// Errors that carry no CUE detail are wrapped with the file name.
func FormatError(err error, filename string) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%s: %w", filename, err)
	}

	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		path := FormatPath(cueerrors.Path(e))
		msg := e.Error()
		// CUE may already lead with the dotted path.
		if prefix := strings.Join(cueerrors.Path(e), "."); prefix != "" {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, prefix), ":"))
		}
		if path != "" {
			msg = path + ": " + msg
		}
		lines = append(lines, msg)
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filename, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filename, strings.Join(lines, "\n  "))
}

// FormatPath joins CUE path selectors, turning numeric selectors into
// indexes: ["shell", "0"] becomes "shell[0]".
func FormatPath(path []string) string {
	var sb strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			sb.WriteString("[" + part + "]")
		case i > 0:
			sb.WriteString("." + part)
		default:
			sb.WriteString(part)
		}
	}
	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
