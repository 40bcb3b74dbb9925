package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/dlisp/lang/dice"
)

// Roll evaluates dice notation without the expression language.
type Roll struct {
	Notation []string `arg:"" help:"Dice notation, such as 2d6+3 or '+ 1d20 5'" name:"notation"`

	out io.Writer
}

// Run executes the roll command.
func (r *Roll) Run(ctx context.Context) error {
	rt := runtimeFrom(ctx)

	roller := rt.Roller
	if roller == nil {
		roller = dice.NewRoller(nil)
	}

	notation := strings.Join(r.Notation, " ")

	result, err := dice.Roll(notation, roller)
	if err != nil {
		return ErrRoll.Wrap(err).With(slog.String("notation", notation))
	}

	_, err = fmt.Fprintf(output(r.out), "%s: %d (%d..%d)\n",
		result.Description, result.Value, result.Min, result.Max)

	return err
}
