// Package pomodoro is the countdown model behind the pomodoro screen.
package pomodoro

import (
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type SessionType uint8

const (
	Focus SessionType = iota
	ShortBreak
	LongBreak
)

// SessionTypes lists the session types in display order.
var SessionTypes = []SessionType{Focus, ShortBreak, LongBreak}

func (s SessionType) String() string {
	switch s {
	case Focus:
		return "Focus"
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	}
	return "Unknown"
}

func (s SessionType) Duration() time.Duration {
	switch s {
	case Focus:
		return 25 * time.Minute
	case ShortBreak:
		return 5 * time.Minute
	case LongBreak:
		return 15 * time.Minute
	}
	return 0
}

// TickMsg advances a running timer by one second.
type TickMsg struct {
	Timer uint64
	At    time.Time
}

// FinishedMsg is emitted once when a running timer reaches zero.
type FinishedMsg struct {
	Timer     uint64
	Session   SessionType
	StartedAt time.Time
	Duration  time.Duration
}

// sequence hands out timer ids and generations, unique per process.
var sequence atomic.Uint64

// Timer counts a session down in whole seconds.
type Timer struct {
	id        uint64
	session   SessionType
	total     time.Duration
	remaining time.Duration
	active    bool
	startedAt time.Time
	// generation invalidates ticks scheduled before a pause or reset.
	generation uint64
}

func New() *Timer {
	t := &Timer{id: sequence.Add(1)}
	t.Select(Focus)
	return t
}

func (t *Timer) ID() uint64 { return t.id }
func (t *Timer) Session() SessionType { return t.session }
func (t *Timer) Remaining() time.Duration { return t.remaining }
func (t *Timer) Total() time.Duration { return t.total }
func (t *Timer) Active() bool { return t.active }

// Select switches session type and resets the countdown.
func (t *Timer) Select(s SessionType) {
	t.session = s
	t.Reset()
}

// Progress is the elapsed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	if t.total <= 0 {
		return 0
	}
	return 1 - float64(t.remaining)/float64(t.total)
}

// Clock renders the remaining time as mm:ss.
func (t *Timer) Clock() string {
	secs := int(t.remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Toggle starts or pauses the timer.
func (t *Timer) Toggle(now time.Time) tea.Cmd {
	if t.active {
		t.Pause()
		return nil
	}
	return t.Start(now)
}

func (t *Timer) Start(now time.Time) tea.Cmd {
	if t.active || t.remaining <= 0 {
		return nil
	}
	t.active = true
	if t.remaining == t.total {
		t.startedAt = now
	}
	t.generation = sequence.Add(1)
	return t.tick()
}

func (t *Timer) Pause() {
	t.active = false
	t.generation = sequence.Add(1)
}

func (t *Timer) Reset() {
	t.Pause()
	t.total = t.session.Duration()
	t.remaining = t.total
	t.startedAt = time.Time{}
}

// Update consumes TickMsg for the current generation and schedules the next
// tick. When the countdown hits zero it stops and emits FinishedMsg.
func (t *Timer) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || !t.active || tick.Timer != t.generation {
		return nil
	}
	t.remaining -= time.Second
	if t.remaining > 0 {
		return t.tick()
	}
	t.remaining = 0
	t.active = false
	t.generation = sequence.Add(1)
	done := FinishedMsg{Timer: t.id, Session: t.session, StartedAt: t.startedAt, Duration: t.total}
	return func() tea.Msg { return done }
}

func (t *Timer) tick() tea.Cmd {
	gen := t.generation
	return tea.Tick(time.Second, func(at time.Time) tea.Msg {
		return TickMsg{Timer: gen, At: at}
	})
}
