package lang

import (
	"errors"
	"sync"
	"testing"
	"testing/iotest"
)

func TestParse_Cached(t *testing.T) {
	t.Parallel()

	in := newTestInterpreter()
	src := "(def cached (lambda (x) x)) (cached 1)"

	first := in.Parse(t.Context(), src)

	var wg sync.WaitGroup

	results := make([][]Expr, 8)
	for i := range results {
		wg.Go(func() { results[i] = in.Parse(t.Context(), src) })
	}

	wg.Wait()

	for i, r := range results {
		if !Equal(List(r), List(first)) {
			t.Errorf("parse %d = %s, want %s", i, Format(List(r)), Format(List(first)))
		}
	}

	// Callers own the returned slice.
	first[0] = Symbol("replaced")

	if again := in.Parse(t.Context(), src); again[0] == Symbol("replaced") {
		t.Error("cached forms were modified through a returned slice")
	}
}

func TestParseReader_Error(t *testing.T) {
	t.Parallel()

	in := newTestInterpreter()

	_, err := in.ParseReader(t.Context(), iotest.ErrReader(errors.New("boom")))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("err = %v, want %v", err, ErrReadInput)
	}
}
