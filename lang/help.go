package lang

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
)

//go:embed help/*.txt
var helpFS embed.FS

// Reference returns the operator reference shown by (help).
func Reference() string {
	type row struct{ name, call, summary string }

	rows := []row{
		{"def", "(def name value)", "define a binding; the value is stored unevaluated"},
		{"lambda", "(lambda (args) body...)", "create a function"},
	}

	for _, b := range Library() {
		rows = append(rows, row{b.Name, Signature(b.Name, b), b.Summary})
	}

	nameWidth, callWidth := 0, 0
	for _, r := range rows {
		nameWidth = max(nameWidth, len(r.name))
		callWidth = max(callWidth, len(r.call))
	}

	var sb strings.Builder

	sb.WriteString("Available operations:\n\n")

	for _, r := range rows {
		fmt.Fprintf(&sb, "  %-*s  %-*s  %s\n", nameWidth, r.name, callWidth, r.call, r.summary)
	}

	fmt.Fprintf(&sb, "\nTopics: %s\n", strings.Join(HelpTopics(), ", "))

	return strings.TrimRight(sb.String(), "\n")
}

// HelpTopics lists the names of the embedded help documents.
func HelpTopics() []string {
	entries, _ := fs.ReadDir(helpFS, "help")

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}

	slices.Sort(names)

	return names
}

// HelpTopic returns the help document for name: an embedded document if
// one exists, otherwise the summary of the builtin operator called name.
func HelpTopic(name string) (string, error) {
	name = strings.TrimSpace(name)

	if !strings.ContainsAny(name, "/\\") && name != "" {
		if data, err := helpFS.ReadFile(path.Join("help", name+".txt")); err == nil {
			return strings.TrimRight(string(data), "\n"), nil
		}
	}

	for _, b := range Library() {
		if b.Name == name {
			return fmt.Sprintf("%s\n\n  %s", Signature(b.Name, b), b.Summary), nil
		}
	}

	return "", ErrHelpNotFound.With(slog.String("topic", name))
}
