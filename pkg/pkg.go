//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of dlisp embedded at build time. It is
// printed by --version and shown in the console banner.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It appears in help text and names the
	// default configuration and cache directories.
	Name = "dlisp"
	// Description summarizes the project for help output.
	Description = "Dice-rolling expression console"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
