package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
)

type contextKey struct{}

// WithContext returns a copy of ctx carrying ktx.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable name, or "" when ctx carries no kong
// context or the variable is undefined.
func kongVar(ctx context.Context, name string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[name]
}

// SourceFiles reads the content of every --source file in order, followed
// by stdin when it was given as "-". Each file ends with a newline so forms
// never join across files.
type SourceFiles interface {
	io.Reader
	io.WriterTo

	// IsZero reports whether no regular file was opened.
	IsZero() bool
	// Stdin returns os.Stdin if it was included, or nil.
	Stdin() io.Reader
	// Names returns the opened paths in reading order, excluding stdin.
	Names() []string
}

type sourceFiles struct {
	names    []string
	read     []io.Reader
	hasStdin bool
	multi    io.Reader
}

func (s *sourceFiles) IsZero() bool { return len(s.read) == 0 }

func (s *sourceFiles) Names() []string { return s.names }

func (s *sourceFiles) Stdin() io.Reader {
	if s.hasStdin {
		return os.Stdin
	}

	return nil
}

func (s *sourceFiles) reader() io.Reader {
	if s.multi == nil {
		readers := make([]io.Reader, 0, 2*len(s.read)+1)

		for _, r := range s.read {
			readers = append(readers, r, strings.NewReader("\n"))
		}

		if s.hasStdin {
			readers = append(readers, os.Stdin)
		}

		s.multi = io.MultiReader(readers...)
	}

	return s.multi
}

func (s *sourceFiles) Read(p []byte) (int, error) {
	return s.reader().Read(p)
}

func (s *sourceFiles) WriteTo(w io.Writer) (int64, error) {
	return io.Copy(w, s.reader())
}

// fileKey identifies a file independent of the path used to reach it.
type fileKey struct {
	dev, ino uint64
	path     string
}

// stdinSource is the source name standing for stdin.
const stdinSource = "-"

// buildSourceFiles opens each of sources once, comparing files by device and
// inode so symlinks and relative paths to the same file collapse. Every "-"
// collapses to a single stdin reader placed last. Files that cannot be
// opened are skipped. The result is nil when nothing could be read.
func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	seen := make(map[fileKey]struct{})

	stdinKey, stdinOK := fdKey(os.Stdin)

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		path, reader, key, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		// stdin named by its device path reads as stdin, last.
		if stdinOK && key == stdinKey {
			reader.Close()

			srcs.hasStdin = true

			continue
		}

		srcs.names = append(srcs.names, path)
		srcs.read = append(srcs.read, reader)
	}

	if len(srcs.read) == 0 && !srcs.hasStdin {
		return nil
	}

	return &srcs
}

// openUniqueFile opens path unless a file with the same key is in seen.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (string, io.ReadCloser, fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", nil, fileKey{}, false
	}

	key, ok := pathKey(resolved)
	if !ok {
		return "", nil, fileKey{}, false
	}

	if _, exists := seen[key]; exists {
		return "", nil, fileKey{}, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return "", nil, fileKey{}, false
	}

	return resolved, file, key, true
}
