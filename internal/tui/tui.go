// Package tui is the interactive Bubble Tea front end. It owns widgets and
// key handling only; every change goes through the app.Controller.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/listy/internal/app"
	"github.com/Makepad-fr/listy/internal/render"
)

// listItem adapts a render row to bubbles/list.Item
type listItem struct {
	ID   string
	Text string
	Done bool
}

func (i listItem) TitleText() string {
	box := boxUnchecked
	if i.Done {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.Text)
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.TitleText() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

// Notices is the queue the controller's notifier fills and the model drains.
// Shared by pointer because Bubble Tea copies the model on every update.
type Notices struct {
	q []app.Notice
}

func (n *Notices) Notify(x app.Notice) { n.q = append(n.q, x) }

func (n *Notices) pop() (app.Notice, bool) {
	if len(n.q) == 0 {
		return app.Notice{}, false
	}
	x := n.q[0]
	n.q = n.q[1:]
	return x, true
}

// hideShareMsg expires the share link produced by share seq.
type hideShareMsg struct{ seq uint64 }

// Model is the Bubble Tea model.
type Model struct {
	ctx     context.Context
	ctl     *app.Controller
	notices *Notices

	list list.Model
	ti   textinput.Model

	adding  bool // inline add is active
	editing bool // inline edit is active

	notice    *app.Notice // modal on screen, waits for any key
	shareURL  string
	hideAfter time.Duration

	width, height int
}

// Options configure New.
type Options struct {
	// HideAfter is how long a share link stays visible; zero keeps it.
	HideAfter time.Duration
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	boxStyled := mutedStyle.Render(boxUnchecked)
	textStyled := it.Text
	if it.Done {
		boxStyled = successStyle.Render(boxChecked)
		textStyled = doneStyle.Render(it.Text)
	}

	line := fmt.Sprintf("%s %s", boxStyled, textStyled)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	shareBind  = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share"))
)

// New builds the model. ctl must already be started; notices must be the
// Notifier ctl was built with.
func New(ctx context.Context, ctl *app.Controller, notices *Notices, opt Options) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{addBind, editBind, toggleBind, deleteBind, shareBind}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	m := Model{
		ctx:       ctx,
		ctl:       ctl,
		notices:   notices,
		list:      l,
		hideAfter: opt.HideAfter,
	}
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.sync(ctl.View())
	m.nextNotice()
	return m
}

// Run starts the program on the alternate screen.
func Run(ctx context.Context, ctl *app.Controller, notices *Notices, opt Options) error {
	p := tea.NewProgram(New(ctx, ctl, notices, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// sync copies the controller's view into the widgets.
func (m *Model) sync(v render.Model) {
	items := make([]list.Item, 0, len(v.Rows))
	for _, r := range v.Rows {
		items = append(items, listItem{ID: r.ID, Text: r.Text, Done: r.Completed})
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Listy"),
		successStyle.Render("✔"), v.Done,
		pendingStyle.Render("•"), v.Pending,
		accentStyle.Render("Total"), v.Total(),
	)
	m.shareURL = v.ShareURL
	m.editing = v.EditingID != ""
}

func (m *Model) refresh() { m.sync(m.ctl.View()) }

func (m *Model) nextNotice() {
	if m.notice != nil || m.notices == nil {
		return
	}
	if n, ok := m.notices.pop(); ok {
		m.notice = &n
	}
}

func (m Model) selectedID() (string, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return "", false
	}
	return it.ID, true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case hideShareMsg:
		m.ctl.ExpireShare(msg.seq)
		m.refresh()
		return m, nil
	}

	// a modal notice swallows the next key
	if m.notice != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.notice = nil
			m.nextNotice()
		}
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}
	if m.editing {
		return m.updateEditing(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch k.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.shareURL != "" {
				m.ctl.HideShare()
				m.refresh()
				return m, nil
			}
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			return m, tea.Quit
		case " ":
			if id, ok := m.selectedID(); ok {
				m.ctl.Toggle(m.ctx, id)
				m.refresh()
			}
			m.nextNotice()
			return m, nil
		case "d":
			if id, ok := m.selectedID(); ok {
				m.ctl.Delete(m.ctx, id)
				m.refresh()
			}
			m.nextNotice()
			return m, nil
		case "a":
			m.adding = true
			m.ti.SetValue("")
			m.ti.Placeholder = "New item..."
			m.ti.Focus()
			m.layout()
			return m, textinput.Blink
		case "e", "enter":
			id, ok := m.selectedID()
			if !ok || !m.ctl.BeginEdit(id) {
				return m, nil
			}
			_, _, draft := m.ctl.EditSession()
			m.refresh()
			m.ti.SetValue(draft)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit item..."
			m.ti.Focus()
			m.layout()
			return m, textinput.Blink
		case "s":
			res, err := m.ctl.Share()
			m.refresh()
			m.nextNotice()
			if err != nil || m.hideAfter <= 0 {
				return m, nil
			}
			seq := res.Seq
			return m, tea.Tick(m.hideAfter, func(time.Time) tea.Msg { return hideShareMsg{seq: seq} })
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			// blank input closes the bar like esc
			if m.ctl.Add(m.ctx, m.ti.Value()) {
				m.refresh()
				m.list.Select(len(m.list.Items()) - 1)
			}
			m.closeInput()
			m.adding = false
			m.nextNotice()
			return m, nil
		case "esc":
			m.closeInput()
			m.adding = false
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			// blank text deletes the item
			m.ctl.SaveEdit(m.ctx, m.ti.Value())
			m.closeInput()
			m.refresh()
			m.nextNotice()
			return m, nil
		case "esc":
			m.ctl.CancelEdit()
			m.closeInput()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	m.ctl.UpdateDraft(m.ti.Value())
	return m, cmd
}

func (m *Model) closeInput() {
	m.ti.SetValue("")
	m.ti.Blur()
	m.layout()
}

func (m *Model) layout() {
	w, h := m.width, m.height
	if w == 0 || h == 0 {
		w, h = 80, 24
	}
	listHeight := h - 4
	if m.adding || m.editing {
		listHeight -= 4
	}
	if m.shareURL != "" {
		listHeight -= 2
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(w-4, listHeight)
}

func (m Model) View() string {
	var content string
	if len(m.list.Items()) == 0 && !m.adding {
		content = m.list.Title + "\n\n" + mutedStyle.Render(render.EmptyText) + "\n\n" +
			helpStyle.Render("a add • q quit")
	} else {
		content = m.list.View()
	}

	if m.shareURL != "" {
		content += "\n" + accentStyle.Render("Share link:") + " " + linkStyle.Render(m.shareURL)
	}

	if m.adding || m.editing {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add new item"
		if m.editing {
			title = "Edit item " + helpStyle.Render("(enter save • esc cancel • empty deletes)")
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}

	out := panelString(content)
	if m.notice != nil {
		title := "Listy"
		if m.notice.Error {
			title = "Listy — problem"
		}
		modal := modalString(title, wrap(m.notice.Text, 48), m.notice.Error)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
		}
		return out + "\n" + modal
	}
	return out
}

func wrap(s string, width int) string {
	words := strings.Fields(s)
	var b strings.Builder
	col := 0
	for i, w := range words {
		if i > 0 {
			if col+1+len(w) > width {
				b.WriteString("\n")
				col = 0
			} else {
				b.WriteString(" ")
				col++
			}
		}
		b.WriteString(w)
		col += len(w)
	}
	return b.String()
}
