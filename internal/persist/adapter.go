// Package persist writes the checklist through to a key-value slot.
package persist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Makepad-fr/listy/internal/checklist"
	"github.com/Makepad-fr/listy/internal/model"
	"github.com/Makepad-fr/listy/internal/store/kv"
)

// SlotKey is the slot holding the serialized checklist.
const SlotKey = "checklist"

// Adapter saves and loads the whole checklist under SlotKey.
type Adapter struct {
	slots  kv.Store
	logger *slog.Logger
}

func New(slots kv.Store, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{slots: slots, logger: logger}
}

// Save overwrites the slot with items.
func (a *Adapter) Save(ctx context.Context, items []model.Item) error {
	b, err := checklist.Serialize(items)
	if err != nil {
		return err
	}
	if err := a.slots.Set(ctx, SlotKey, b); err != nil {
		return fmt.Errorf("save %s: %w", SlotKey, err)
	}
	a.logger.Debug("checklist saved", "items", len(items), "bytes", len(b))
	return nil
}

// Load returns the stored items. ok is false when nothing usable is stored;
// read and decode failures are logged, never returned.
func (a *Adapter) Load(ctx context.Context) (items []model.Item, ok bool) {
	b, found, err := a.slots.Get(ctx, SlotKey)
	if err != nil {
		a.logger.Warn("reading stored checklist failed; starting empty", "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	items, err = checklist.Deserialize(b)
	if err != nil {
		a.logger.Warn("stored checklist is corrupt; starting empty", "error", err, "bytes", len(b))
		return nil, false
	}
	return items, true
}
