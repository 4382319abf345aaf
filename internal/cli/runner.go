package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/listy/internal/app"
	"github.com/Makepad-fr/listy/internal/checklist"
	"github.com/Makepad-fr/listy/internal/model"
	"github.com/Makepad-fr/listy/internal/render"
	"github.com/Makepad-fr/listy/internal/sharecodec"
	"github.com/Makepad-fr/listy/internal/tui"
	"github.com/Makepad-fr/listy/internal/ui"
)

// -------------- subcommands ----------------

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.doList(cmd.Context(), group)
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: listy add <text...>")
			}
			return app.doAdd(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <text...>",
		Short: "Replace the text of the item at a 1-based index (empty text deletes it)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return usagef("usage: listy edit <index> <text...>")
			}
			n, err := parseIndex("edit", args[0])
			if err != nil {
				return err
			}
			return app.doEdit(cmd.Context(), n, strings.Join(args[1:], " "))
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "done <index>",
		Aliases: []string{"toggle"},
		Short:   "Toggle done for item at 1-based index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usagef("usage: listy done <index>")
			}
			n, err := parseIndex("done", args[0])
			if err != nil {
				return err
			}
			return app.doToggle(cmd.Context(), n)
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"delete"},
		Short:   "Remove item at 1-based index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usagef("usage: listy rm <index>")
			}
			n, err := parseIndex("rm", args[0])
			if err != nil {
				return err
			}
			return app.doRemove(cmd.Context(), n)
		},
	}
}

func newShareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Print a link that carries the whole list (copied to the clipboard when possible)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.doShare(cmd.Context())
		},
	}
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <link|token>",
		Short: "Replace the list with a shared one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usagef("usage: listy open <link|token>")
			}
			return app.doOpen(cmd.Context(), args[0])
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the list as html, json or text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.doExport(cmd.Context(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "html", "html, json or text")
	return cmd
}

func parseIndex(cmd, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("%s: not a number: %s", cmd, s)
	}
	return n, nil
}

// -------------- subcommand impls ----------------

// start opens storage and runs the startup sequence without a share token.
func (a *App) start(ctx context.Context) (*session, *printNotices, error) {
	notes := &printNotices{stdout: a.stdout, stderr: a.stderr}
	s, err := a.openSession(ctx, sessionOptions{notifier: notes})
	if err != nil {
		return nil, nil, err
	}
	s.ctl.Start(ctx, nil)
	return s, notes, nil
}

// report confirms a mutation, or fails the command when it was not stored.
func (a *App) report(notes *printNotices, done string) error {
	if notes.has(app.NoticeSaveFailed) {
		// the notice already told the user
		return silentError{code: 1}
	}
	ui.OK(a.stdout, done)
	return nil
}

func (a *App) doList(ctx context.Context, group bool) error {
	s, _, err := a.start(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	printList(a.stdout, s.ctl.View(), group)
	return nil
}

func (a *App) doAdd(ctx context.Context, text string) error {
	s, notes, err := a.start(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	if !s.ctl.Add(ctx, text) {
		// blank text is ignored
		return nil
	}
	return a.report(notes, "added")
}

func (a *App) doEdit(ctx context.Context, pos int, text string) error {
	s, notes, err := a.start(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	id, err := a.lookup(s, pos)
	if err != nil {
		return err
	}
	s.ctl.BeginEdit(id)
	s.ctl.SaveEdit(ctx, text)
	if strings.TrimSpace(text) == "" {
		return a.report(notes, "removed")
	}
	return a.report(notes, "edited")
}

func (a *App) doToggle(ctx context.Context, pos int) error {
	s, notes, err := a.start(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	id, err := a.lookup(s, pos)
	if err != nil {
		return err
	}
	s.ctl.Toggle(ctx, id)
	return a.report(notes, "toggled")
}

func (a *App) doRemove(ctx context.Context, pos int) error {
	s, notes, err := a.start(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	id, err := a.lookup(s, pos)
	if err != nil {
		return err
	}
	s.ctl.Delete(ctx, id)
	return a.report(notes, "removed")
}

func (a *App) doShare(ctx context.Context) error {
	s, _, err := a.start(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	res, err := s.ctl.Share()
	if errors.Is(err, sharecodec.ErrEmptyList) {
		// the notice already told the user
		return silentError{code: 1}
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, res.URL)
	return nil
}

func (a *App) doOpen(ctx context.Context, arg string) error {
	notes := &printNotices{stdout: a.stdout, stderr: a.stderr}
	s, err := a.openSession(ctx, sessionOptions{notifier: notes})
	if err != nil {
		return err
	}
	defer s.Close()
	s.ctl.Start(ctx, app.LocationFromArg(arg))
	if notes.has(app.NoticeImportCorrupt) || notes.has(app.NoticeSaveFailed) {
		return silentError{code: 1}
	}
	printList(a.stdout, s.ctl.View(), false)
	return nil
}

func (a *App) doExport(ctx context.Context, format string) error {
	s, _, err := a.start(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	v := s.ctl.View()
	switch strings.ToLower(format) {
	case "html":
		return render.HTML(a.stdout, v)
	case "json":
		items := make([]model.Item, 0, len(v.Rows))
		for _, r := range v.Rows {
			items = append(items, model.Item{ID: r.ID, Text: r.Text, Completed: r.Completed})
		}
		b, err := checklist.Serialize(items)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, string(b))
		return err
	case "text":
		for _, ln := range render.Lines(v, nil) {
			fmt.Fprintln(a.stdout, ln)
		}
		return nil
	}
	return usagef("export: unknown format %q (want html, json or text)", format)
}

func (a *App) runTUI(ctx context.Context, url string) error {
	notices := &tui.Notices{}
	s, err := a.openSession(ctx, sessionOptions{logToFile: true, notifier: notices})
	if err != nil {
		return err
	}
	defer s.Close()
	var loc app.Location
	if strings.TrimSpace(url) != "" {
		loc = app.LocationFromArg(url)
	}
	s.ctl.Start(ctx, loc)
	if err := tui.Run(ctx, s.ctl, notices, tui.Options{HideAfter: s.cfg.HideAfter()}); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (a *App) lookup(s *session, pos int) (string, error) {
	id, ok := s.ctl.ItemIDAt(pos)
	if !ok {
		return "", usageError{msg: fmt.Sprintf("index out of range: have %d, got %d\n%s",
			s.ctl.Len(), pos, ui.C(ui.Current().Muted, "Hint: run `listy ls` to see valid indexes"))}
	}
	return id, nil
}

// -------------- rendering helpers --------------

func printList(w io.Writer, v render.Model, group bool) {
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Listy"),
		ui.C(ui.Current().Success, ui.Current().SymDone), v.Done,
		ui.C(ui.Current().Pending, ui.Current().SymUnchecked), v.Pending,
		ui.C(ui.Current().Accent, "Total"), v.Total(),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(v.Done, v.Total(), 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(v)...)
	} else {
		lines = append(lines, flatLines(v)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `listy add \"Buy milk\"`"))
	ui.Panel(w, lines)
}

func flatLines(v render.Model) []string {
	if v.Empty {
		return []string{ui.C(ui.Current().Muted, v.EmptyText)}
	}
	return render.Lines(v, ui.Box)
}

// groupLines keeps each item's display index so `done`/`rm` still line up.
func groupLines(v render.Model) []string {
	var pend, done []string
	for i, r := range v.Rows {
		ln := fmt.Sprintf("%2d. %s %s", i+1, ui.Box(r.Completed), r.Text)
		if r.Completed {
			done = append(done, ln)
		} else {
			pend = append(pend, ln)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, pend...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, done...)
	}
	return lines
}
