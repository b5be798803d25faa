// Package sleeptimer pauses playback after a user-chosen delay.
package sleeptimer

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/samber/mo"
)

// OffLabel is shown while no timer is armed.
const OffLabel = "Off"

// TickInterval is how often the remaining time is recomputed.
const TickInterval = time.Second

// Choice is a preset offered to the user.
type Choice struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

// Choices returns the presets in display order.
func Choices() []Choice {
	return []Choice{
		{Label: OffLabel, Minutes: 0},
		{Label: "5 minutes", Minutes: 5},
		{Label: "10 minutes", Minutes: 10},
		{Label: "15 minutes", Minutes: 15},
		{Label: "20 minutes", Minutes: 20},
		{Label: "30 minutes", Minutes: 30},
		{Label: "45 minutes", Minutes: 45},
		{Label: "1 hour", Minutes: 60},
	}
}

// FindChoice returns the preset with the given minutes.
func FindChoice(minutes int) (Choice, bool) {
	for _, c := range Choices() {
		if c.Minutes == minutes {
			return c, true
		}
	}

	return Choice{}, false
}

// Snapshot is the observable timer state. Version grows with every change.
type Snapshot struct {
	Label     string
	Remaining mo.Option[time.Duration]
	Deadline  mo.Option[time.Time]
	Version   uint64
}

// Active reports whether a timer is armed.
func (s Snapshot) Active() bool {
	return s.Deadline.IsPresent()
}

// Badge renders the compact indicator: the label when off, "N min" rounded up, or "Done".
func (s Snapshot) Badge() string {
	remaining, ok := s.Remaining.Get()
	if !ok {
		return s.Label
	}

	minutes := int(math.Ceil(float64(remaining) / float64(time.Minute)))
	if minutes <= 0 {
		return "Done"
	}

	return fmt.Sprintf("%d min", minutes)
}

// Config configures a Timer.
type Config struct {
	// Clock defaults to RealClock.
	Clock Clock
	// OnFire runs once when an armed timer reaches its deadline.
	OnFire func()
	// OnChange receives state changes in order. A change superseded before its delivery is skipped.
	// It must not call back into the timer.
	OnChange func(Snapshot)
}

// Timer is a cancellable one-shot with a per-second countdown. Safe for concurrent use.
type Timer struct {
	clock    Clock
	onFire   func()
	onChange func(Snapshot)

	mu         sync.Mutex
	generation uint64
	version    uint64
	label      string
	deadline   mo.Option[time.Time]
	remaining  mo.Option[time.Duration]
	fire       Stopper
	tick       Stopper

	// notifyMu orders OnChange deliveries; delivered is the last version handed out.
	notifyMu  sync.Mutex
	delivered uint64
}

// New returns a timer that is off.
func New(config Config) *Timer {
	clock := config.Clock
	if clock == nil {
		clock = RealClock
	}

	return &Timer{
		clock:    clock,
		onFire:   config.OnFire,
		onChange: config.OnChange,
		label:    OffLabel,
	}
}

// Select arms the timer for minutes, replacing any previous one. Zero or negative minutes turn it off.
func (t *Timer) Select(minutes int, label string) {
	if minutes <= 0 {
		t.SelectDuration(0, OffLabel)
		return
	}

	t.SelectDuration(time.Duration(minutes)*time.Minute, label)
}

// SelectDuration is Select with an arbitrary delay.
func (t *Timer) SelectDuration(d time.Duration, label string) {
	t.mu.Lock()
	t.cancelLocked()

	if d <= 0 {
		t.offLocked()
		t.version++
		snapshot := t.snapshotLocked()
		t.mu.Unlock()
		t.notify(snapshot)
		return
	}

	generation := t.generation
	t.label = label
	t.deadline = mo.Some(t.clock.Now().Add(d))
	t.remaining = mo.Some(d)
	t.fire = t.clock.AfterFunc(d, func() { t.expire(generation) })
	t.tick = t.clock.AfterFunc(TickInterval, func() { t.countdown(generation) })
	t.version++

	snapshot := t.snapshotLocked()
	t.mu.Unlock()
	t.notify(snapshot)
}

// Stop cancels the timer without firing and without notifying.
// Deliveries still in flight from before the stop are dropped.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.cancelLocked()
	t.offLocked()
	t.version++
	version := t.version
	t.mu.Unlock()

	t.notifyMu.Lock()
	t.delivered = max(t.delivered, version)
	t.notifyMu.Unlock()
}

// Snapshot returns the current state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshotLocked()
}

// Label returns the selected label, OffLabel when idle.
func (t *Timer) Label() string {
	return t.Snapshot().Label
}

// Remaining returns the last computed remaining time.
func (t *Timer) Remaining() mo.Option[time.Duration] {
	return t.Snapshot().Remaining
}

// Badge renders the compact indicator.
func (t *Timer) Badge() string {
	return t.Snapshot().Badge()
}

func (t *Timer) expire(generation uint64) {
	t.mu.Lock()
	if generation != t.generation {
		t.mu.Unlock()
		return
	}

	t.cancelLocked()
	t.offLocked()
	t.version++
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	if t.onFire != nil {
		t.onFire()
	}
	t.notify(snapshot)
}

func (t *Timer) countdown(generation uint64) {
	t.mu.Lock()
	if generation != t.generation {
		t.mu.Unlock()
		return
	}

	deadline := t.deadline.MustGet()
	remaining := deadline.Sub(t.clock.Now())
	if remaining <= 0 {
		t.remaining = mo.Some(time.Duration(0))
		t.tick = nil
	} else {
		t.remaining = mo.Some(remaining)
		t.tick = t.clock.AfterFunc(TickInterval, func() { t.countdown(generation) })
	}
	t.version++

	snapshot := t.snapshotLocked()
	t.mu.Unlock()
	t.notify(snapshot)
}

// cancelLocked stops pending callbacks and invalidates any that already started.
func (t *Timer) cancelLocked() {
	t.generation++

	if t.fire != nil {
		t.fire.Stop()
		t.fire = nil
	}

	if t.tick != nil {
		t.tick.Stop()
		t.tick = nil
	}
}

func (t *Timer) offLocked() {
	t.label = OffLabel
	t.deadline = mo.None[time.Time]()
	t.remaining = mo.None[time.Duration]()
}

func (t *Timer) snapshotLocked() Snapshot {
	return Snapshot{
		Label:     t.label,
		Remaining: t.remaining,
		Deadline:  t.deadline,
		Version:   t.version,
	}
}

// notify drops snapshots older than one already delivered.
func (t *Timer) notify(snapshot Snapshot) {
	if t.onChange == nil {
		return
	}

	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()

	if snapshot.Version <= t.delivered {
		return
	}
	t.delivered = snapshot.Version

	t.onChange(snapshot)
}
