package cli

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/ardnew/mung"

	"github.com/ardnew/dlisp/lang"
	"github.com/ardnew/dlisp/lang/dice"
)

// searchPathEnv names the environment variable holding additional import
// directories, separated by [os.PathListSeparator].
const searchPathEnv = "DLISP_PATH"

type langConfig struct {
	Lib      []string `help:"Import search directory (repeatable)."          placeholder:"DIR" type:"path"`
	BaseDir  string   `default:"."           help:"Directory relative imports resolve against." type:"path"`
	MaxDepth int      `default:"${maxDepth}" help:"Evaluation depth limit (0 disables)."`
	Seed     uint64   `default:"0"           help:"Dice seed for reproducible rolls (0 is random)."`
}

func (*langConfig) vars() kong.Vars {
	return kong.Vars{
		"maxDepth": strconv.Itoa(lang.DefaultMaxDepth),
	}
}

func (*langConfig) group() kong.Group {
	return kong.Group{Key: "lang", Title: "Language options"}
}

// searchPath returns the --lang-lib directories followed by those of
// $DLISP_PATH.
func (f *langConfig) searchPath() []string {
	joined := mung.Make(
		mung.WithSubjectItems(os.Getenv(searchPathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(f.Lib...),
	).String()

	var dirs []string

	for _, dir := range filepath.SplitList(joined) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

func (f *langConfig) roller() dice.Roller {
	if f.Seed != 0 {
		return dice.Seeded(f.Seed)
	}

	return dice.NewRoller(nil)
}

// options returns the interpreter options selected by the flags, other than
// the roller.
func (f *langConfig) options() []lang.Option {
	return []lang.Option{
		lang.WithBaseDir(f.BaseDir),
		lang.WithSearchPath(f.searchPath()...),
		lang.WithMaxDepth(f.MaxDepth),
	}
}
