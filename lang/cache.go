package lang

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// parseCache maps the xxh3 hash of a source text to its parsed forms.
// Parsed trees are never mutated, so entries are shared freely between
// callers and environments. Only parsing is cached, never evaluation.
var parseCache sync.Map

type parsed struct {
	source string
	forms  []Expr
}

// Parse returns the top-level forms of src, reusing a previous parse of the
// same text.
func (in *Interpreter) Parse(ctx context.Context, src string) []Expr {
	key := xxh3.HashString(src)

	if v, ok := parseCache.Load(key); ok {
		if p, ok := v.(*parsed); ok && p.source == src {
			in.logger.TraceContext(ctx, "parse cache hit",
				slog.String("key", strconv.FormatUint(key, 36)),
				slog.Int("forms", len(p.forms)))

			return slices.Clone(p.forms)
		}
	}

	tokens := Lex(src)
	forms := ParseAll(tokens)

	in.logger.TraceContext(ctx, "parse complete",
		slog.String("key", strconv.FormatUint(key, 36)),
		slog.Int("source_bytes", len(src)),
		slog.Int("tokens", len(tokens)),
		slog.Int("forms", len(forms)))

	parseCache.Store(key, &parsed{source: src, forms: forms})

	return slices.Clone(forms)
}

// ParseReader reads r to the end and parses its content.
func (in *Interpreter) ParseReader(ctx context.Context, r io.Reader) ([]Expr, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return in.Parse(ctx, string(data)), nil
}
