package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mohammadwh/Graphqler/selection"
)

// promptChooser asks the user for a comma-separated field list.
type promptChooser struct {
	shell *Shell
}

func (c *promptChooser) Choose(_ context.Context, req selection.Request) ([]string, error) {
	s := c.shell

	label := req.TypeName
	if len(req.Path) > 0 {
		label += " (" + strings.Join(req.Path, ".") + ")"
	}
	fmt.Fprintln(s.out)
	s.palette.ask.Fprintf(s.out, "Available fields for %s: ", label)
	fmt.Fprintln(s.out, strings.Join(req.Names(), ", "))

	answer, err := s.prompter.Prompt("Enter fields to include (comma-separated): ", req.Names())
	if err != nil {
		return nil, err
	}

	var fields []string
	for _, f := range strings.Split(answer, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}

	return fields, nil
}
