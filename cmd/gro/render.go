package gro

import (
	"fmt"
	"io"

	"github.com/arthur-debert/gro/pkg/style"
	"github.com/arthur-debert/gro/pkg/types"
)

// renderPlan prints one workspace's plan: actions with their glyphs, then
// conflicts, then warnings. Quiet when there is nothing to say.
func renderPlan(out io.Writer, f style.Format, ws *types.Workspace, plan *types.Plan) {
	if !plan.HasChanges() && !plan.HasConflicts() && len(plan.Warnings) == 0 {
		return
	}

	fmt.Fprintf(out, "%s\n", style.Render(f, style.Header, ws.Name()))

	for _, a := range plan.Actions {
		line := fmt.Sprintf("  %s %s", style.ActionGlyph(a.Type), a.Description())
		fmt.Fprintln(out, style.Render(f, style.ActionStyle(a.Type), line))
	}
	for _, c := range plan.Conflicts {
		line := fmt.Sprintf("  %s %s", style.GlyphConflict, c.Description())
		fmt.Fprintln(out, style.Render(f, style.Danger, line))
	}
	for _, w := range plan.Warnings {
		line := fmt.Sprintf("  %s %s", style.GlyphOrphan, w)
		fmt.Fprintln(out, style.Render(f, style.Warning, line))
	}
}

// renderResult prints the outcome of an apply for one workspace.
func renderResult(out io.Writer, f style.Format, ws *types.Workspace, created, relinked, removed, errs []string) {
	for _, label := range created {
		fmt.Fprintln(out, style.Render(f, style.Success,
			fmt.Sprintf("  %s %s", style.GlyphCreate, label)))
	}
	for _, label := range relinked {
		fmt.Fprintln(out, style.Render(f, style.Change,
			fmt.Sprintf("  %s %s", style.GlyphRelink, label)))
	}
	for _, label := range removed {
		fmt.Fprintln(out, style.Render(f, style.Danger,
			fmt.Sprintf("  %s %s", style.GlyphRemove, label)))
	}
	for _, e := range errs {
		fmt.Fprintln(out, style.Render(f, style.Danger,
			fmt.Sprintf("  %s %s", style.GlyphConflict, e)))
	}
}
