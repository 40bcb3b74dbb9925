package pkg

import (
	"os"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("Version = %q, want %q", Version, want)
	}

	if strings.ContainsAny(Version, " \n") {
		t.Errorf("Version %q holds whitespace", Version)
	}
}

func TestAuthor(t *testing.T) {
	t.Parallel()

	if len(Author) == 0 {
		t.Fatal("no authors")
	}

	for i, a := range Author {
		if a.Name == "" && a.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}
