// Package app wires the checklist, its persistence, the share codec and the
// edit session behind one set of named operations.
//
// Every operation runs to completion: it mutates state, writes the list
// through to storage when the list changed, then hands a fresh view model to
// the render hook and delivers any queued notices.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Makepad-fr/listy/internal/checklist"
	"github.com/Makepad-fr/listy/internal/editsession"
	"github.com/Makepad-fr/listy/internal/ids"
	"github.com/Makepad-fr/listy/internal/persist"
	"github.com/Makepad-fr/listy/internal/render"
	"github.com/Makepad-fr/listy/internal/sharecodec"
)

// DefaultHideAfter is how long a share link stays on screen.
const DefaultHideAfter = 10 * time.Second

// Deps are the controller's collaborators. Persist is required; the rest
// fall back to harmless defaults.
type Deps struct {
	Persist *persist.Adapter
	IDs     ids.Generator

	// BaseURL is the page the share token is attached to.
	BaseURL string
	// HideAfter bounds how long a share link is shown. Zero or negative
	// disables the auto-hide.
	HideAfter time.Duration

	Notifier  Notifier
	Clipboard Clipboard
	Render    RenderFunc
	// Scheduler drives the auto-hide. Nil disables it; callers with their
	// own event loop use ExpireShare instead.
	Scheduler Scheduler
	Logger    *slog.Logger
}

// ShareResult describes a produced share link.
type ShareResult struct {
	Token  string
	URL    string
	Copied bool
	// Seq identifies this share for ExpireShare.
	Seq uint64
}

// Controller owns the checklist state of one running app.
type Controller struct {
	mu sync.Mutex

	store   *checklist.Store
	session editsession.Session
	persist *persist.Adapter
	ids     ids.Generator

	baseURL   string
	hideAfter time.Duration
	notifier  Notifier
	clipboard Clipboard
	render    RenderFunc
	sched     Scheduler
	logger    *slog.Logger

	shareURL  string
	shareSeq  uint64
	hideTimer Stopper

	pending []Notice
}

func New(d Deps) (*Controller, error) {
	if d.Persist == nil {
		return nil, errors.New("app: persistence adapter is required")
	}
	if d.IDs == nil {
		d.IDs = ids.UUID{}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		store:     checklist.New(d.IDs),
		persist:   d.Persist,
		ids:       d.IDs,
		baseURL:   d.BaseURL,
		hideAfter: d.HideAfter,
		notifier:  d.Notifier,
		clipboard: d.Clipboard,
		render:    d.Render,
		sched:     d.Scheduler,
		logger:    d.Logger,
	}, nil
}

// Start runs the startup sequence: a share token in loc replaces the list;
// without one, the persisted list is loaded. The first render follows, then
// any startup notice.
func (c *Controller) Start(ctx context.Context, loc Location) {
	c.mu.Lock()
	imported := false
	if loc != nil {
		if token, ok := loc.ShareToken(); ok {
			imported = c.importLocked(ctx, token)
			if imported {
				loc.ClearShareToken()
			}
		}
	}
	if !imported {
		if items, ok := c.persist.Load(ctx); ok {
			c.store.Load(items)
		}
	}
	c.logger.Debug("started", "items", c.store.Len(), "imported", imported)
	c.flushLocked(true)
}

// Import decodes token and replaces the list with its items. It reports
// false, leaving the list untouched, when the token is corrupt.
func (c *Controller) Import(ctx context.Context, token string) bool {
	c.mu.Lock()
	ok := c.importLocked(ctx, token)
	c.flushLocked(ok)
	return ok
}

func (c *Controller) importLocked(ctx context.Context, token string) bool {
	items, err := sharecodec.Decode(token, c.ids)
	if err != nil {
		c.logger.Warn("shared list rejected", "error", err)
		c.queueLocked(NoticeImportCorrupt)
		return false
	}
	c.session.Cancel()
	c.store.ReplaceAll(items)
	c.saveLocked(ctx)
	c.queueLocked(NoticeImported)
	return true
}

// Add appends text as a new item. Blank text is ignored.
func (c *Controller) Add(ctx context.Context, text string) bool {
	c.mu.Lock()
	it, ok := c.store.Add(text)
	if ok {
		c.logger.Debug("item added", "id", it.ID)
		c.saveLocked(ctx)
	}
	c.flushLocked(ok)
	return ok
}

// Toggle flips item id between done and pending.
func (c *Controller) Toggle(ctx context.Context, id string) bool {
	c.mu.Lock()
	ok := c.store.Toggle(id)
	if ok {
		c.saveLocked(ctx)
	}
	c.flushLocked(ok)
	return ok
}

// Delete removes item id, ending its edit if one is open.
func (c *Controller) Delete(ctx context.Context, id string) bool {
	c.mu.Lock()
	ok := c.store.Remove(id)
	if ok {
		c.session.Forget(id)
		c.saveLocked(ctx)
	}
	c.flushLocked(ok)
	return ok
}

// BeginEdit puts item id in inline-edit mode, dropping any other edit.
func (c *Controller) BeginEdit(id string) bool {
	c.mu.Lock()
	it, ok := c.store.Get(id)
	if ok {
		c.session.Begin(id, it.Text)
	}
	c.flushLocked(ok)
	return ok
}

// UpdateDraft records the text typed so far. It does not re-render; the
// presentation layer owns the input widget while editing.
func (c *Controller) UpdateDraft(text string) {
	c.mu.Lock()
	c.session.SetDraft(text)
	c.mu.Unlock()
}

// SaveEdit writes text to the item being edited and leaves edit mode.
// Blank text deletes the item.
func (c *Controller) SaveEdit(ctx context.Context, text string) bool {
	c.mu.Lock()
	if _, editing := c.session.EditingID(); !editing {
		c.mu.Unlock()
		return false
	}
	c.session.SetDraft(text)
	id, draft, _ := c.session.Save()
	removed, found := c.store.UpdateText(id, draft)
	if found {
		c.logger.Debug("item edited", "id", id, "removed", removed)
		c.saveLocked(ctx)
	}
	c.flushLocked(true)
	return found
}

// CancelEdit leaves edit mode without touching the list. Escape and blur
// map here.
func (c *Controller) CancelEdit() bool {
	c.mu.Lock()
	ok := c.session.Cancel()
	c.flushLocked(ok)
	return ok
}

// Share encodes the list into a link, shows it and tries to copy it.
// An empty list yields sharecodec.ErrEmptyList and a notice.
func (c *Controller) Share() (ShareResult, error) {
	c.mu.Lock()
	items := c.store.Items()
	if len(items) == 0 {
		c.queueLocked(NoticeEmptyShare)
		c.flushLocked(false)
		return ShareResult{}, sharecodec.ErrEmptyList
	}
	token, err := sharecodec.Encode(items)
	if err != nil {
		c.mu.Unlock()
		return ShareResult{}, err
	}
	link, err := sharecodec.ShareURL(c.baseURL, token)
	if err != nil {
		c.mu.Unlock()
		return ShareResult{}, fmt.Errorf("share url: %w", err)
	}

	c.shareSeq++
	res := ShareResult{Token: token, URL: link, Seq: c.shareSeq}
	c.shareURL = link
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	if c.sched != nil && c.hideAfter > 0 {
		seq := c.shareSeq
		c.hideTimer = c.sched.AfterFunc(c.hideAfter, func() { c.ExpireShare(seq) })
	}

	if c.clipboard != nil {
		if err := c.clipboard.WriteAll(link); err != nil {
			c.logger.Debug("clipboard unavailable", "error", err)
		} else {
			res.Copied = true
		}
	}
	if res.Copied {
		c.queueLocked(NoticeCopied)
	} else {
		c.queueLocked(NoticeCopyFallback)
	}
	c.flushLocked(true)
	return res, nil
}

// ExpireShare hides the link produced by share seq. A later share keeps its
// link; hiding twice is harmless.
func (c *Controller) ExpireShare(seq uint64) {
	c.mu.Lock()
	if seq != c.shareSeq || c.shareURL == "" {
		c.mu.Unlock()
		return
	}
	c.shareURL = ""
	c.hideTimer = nil
	c.flushLocked(true)
}

// HideShare hides whatever link is on display.
func (c *Controller) HideShare() {
	c.mu.Lock()
	changed := c.shareURL != ""
	c.shareURL = ""
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	c.flushLocked(changed)
}

// View returns the current view model.
func (c *Controller) View() render.Model {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// ItemIDAt maps a 1-based display position to an item id.
func (c *Controller) ItemIDAt(pos int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.store.At(pos - 1)
	return it.ID, ok
}

// Len is the number of items.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// EditSession reports the edit state.
func (c *Controller) EditSession() (state editsession.State, id, draft string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, _ = c.session.EditingID()
	return c.session.State(), id, c.session.Draft()
}

func (c *Controller) viewLocked() render.Model {
	return render.Build(c.store.Items(), &c.session, c.shareURL)
}

func (c *Controller) saveLocked(ctx context.Context) {
	if err := c.persist.Save(ctx, c.store.Items()); err != nil {
		c.logger.Error("save failed", "error", err)
		c.queueLocked(NoticeSaveFailed)
	}
}

func (c *Controller) queueLocked(k NoticeKind) {
	c.pending = append(c.pending, newNotice(k))
}

// flushLocked releases c.mu, then renders (when changed) and delivers queued
// notices. Callbacks run unlocked so they may call back into c.
func (c *Controller) flushLocked(changed bool) {
	var m render.Model
	if changed {
		m = c.viewLocked()
	}
	notes := c.pending
	c.pending = nil
	renderFn, notifier := c.render, c.notifier
	c.mu.Unlock()

	if changed && renderFn != nil {
		renderFn(m)
	}
	for _, n := range notes {
		c.logger.Debug("notice", "kind", n.Kind.String())
		if notifier != nil {
			notifier.Notify(n)
		}
	}
}
