// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds documents accepted by Decode (1 MiB).
const DefaultMaxFileSize int64 = 1 << 20

type (
	decodeOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures Decode.
	Option func(*decodeOptions)
)

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *decodeOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete requires every schema field to have a concrete value.
// Documents whose fields are all optional must leave this off.
func WithConcrete(concrete bool) Option {
	return func(o *decodeOptions) {
		o.concrete = concrete
	}
}

// WithFilename names the document in positions and error messages.
func WithFilename(name string) Option {
	return func(o *decodeOptions) {
		o.filename = name
	}
}

// Decode compiles schema, unifies data with the definition at defPath and
// decodes the result into a T. T is typically a struct with json tags or a
// map[string]any for callers that merge the document elsewhere.
func Decode[T any](schema string, data []byte, defPath string, opts ...Option) (T, error) {
	var zero T

	o := decodeOptions{maxFileSize: DefaultMaxFileSize, filename: "<input>"}
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return zero, err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(schema)
	if err := schemaValue.Err(); err != nil {
		return zero, fmt.Errorf("internal error: failed to compile schema: %w", err)
	}
	def := schemaValue.LookupPath(cue.ParsePath(defPath))
	if err := def.Err(); err != nil {
		return zero, fmt.Errorf("internal error: schema definition %s not found: %w", defPath, err)
	}

	doc := ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := doc.Err(); err != nil {
		return zero, FormatError(err, o.filename)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return zero, FormatError(err, o.filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return zero, FormatError(err, o.filename)
	}
	return out, nil
}

// CheckFileSize rejects documents larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxSize)
	}
	return nil
}
