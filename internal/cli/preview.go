package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	service "github.com/okian/clipmark/internal/app"
	"github.com/okian/clipmark/internal/domain/model"
	"github.com/okian/clipmark/internal/domain/timecode"
)

// preview prints the resolved mapping and computed times of each input.
func preview(ctx context.Context, conv Converter, c *Config, roles model.RoleMap, w io.Writer) error {
	rows := c.Preview
	for _, input := range c.Inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		req := c.request(data, roles)
		req.PreviewRows = &rows
		insp, err := conv.Inspect(ctx, req)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		if err := writePreview(w, input, insp); err != nil {
			return err
		}
	}
	return nil
}

func writePreview(w io.Writer, name string, insp *service.Inspection) error {
	fmt.Fprintf(w, "%s: %d rows, columns: %s\n", name, insp.Rows, strings.Join(insp.Header, ", "))
	for _, role := range model.Roles {
		fmt.Fprintf(w, "  %-9s <- %s\n", role, insp.Roles[role])
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "code\tteam\tplayer\toutcome\tanchor\tstart\tend")
	for _, p := range insp.Preview {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Code, p.Team, p.Player, p.Outcome,
			timecode.Format(p.Anchor), timecode.Format(p.Start), timecode.Format(p.End))
	}
	return tw.Flush()
}
