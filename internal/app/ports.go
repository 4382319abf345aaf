package app

import (
	"time"

	"github.com/Makepad-fr/listy/internal/render"
)

// Notifier shows a blocking, modal-style message to the user.
type Notifier interface {
	Notify(n Notice)
}

// Clipboard receives share links.
type Clipboard interface {
	WriteAll(text string) error
}

// RenderFunc is called with a fresh view model after every change.
type RenderFunc func(render.Model)

// Stopper cancels a scheduled call. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

// WallClock schedules with time.AfterFunc.
type WallClock struct{}

func (WallClock) AfterFunc(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }
