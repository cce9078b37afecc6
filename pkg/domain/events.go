package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventLoad      EventType = "load"
	EventExpand    EventType = "expand"
	EventInterpret EventType = "interpret"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// LoadEvent is emitted after a grammar replaced the engine's program.
type LoadEvent struct {
	EventBase
	Generation   uint64 `json:"generation"`
	Rules        int    `json:"rules"`
	AxiomLength  int    `json:"axiom_length"`
	IsStochastic bool   `json:"is_stochastic"`
}

// ExpandEvent is emitted after rewriting.
type ExpandEvent struct {
	EventBase
	Iterations uint          `json:"iterations"`
	Symbols    int           `json:"symbols"`
	Duration   time.Duration `json:"duration"`
}

// InterpretEvent is emitted after the turtle walked a sequence.
type InterpretEvent struct {
	EventBase
	Branches int           `json:"branches"`
	Angle    float64       `json:"angle"`
	Step     float64       `json:"step"`
	Duration time.Duration `json:"duration"`
	IsError  bool          `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the caller's goroutine.
type LifecycleHooks struct {
	OnLoad      func(*LoadEvent)
	OnExpand    func(*ExpandEvent)
	OnInterpret func(*InterpretEvent)
}
