// Package dashboard owns the twelve display slots: the explicit State they
// show, the pure transition from one Reading Set to the next State, and the
// renderer that applies every new State to the attached displays.
package dashboard

import (
	"strconv"
	"time"

	"airwatch/backend/services/dashboard-service/internal/reading"
)

// Format renders v as fixed point with exactly two fraction digits.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// State is what the slots currently show. The zero value is the initial,
// blank dashboard.
type State struct {
	Tick    uint64
	Updated time.Time
	Values  [reading.FieldCount]string
	Set     reading.Set
}

// Next computes the state that displays set. It does not mutate prev.
func Next(prev State, set reading.Set, at time.Time) State {
	next := State{
		Tick:    prev.Tick + 1,
		Updated: at,
		Set:     set,
	}
	for i, v := range set {
		next.Values[i] = Format(v)
	}
	return next
}

// Blank reports whether no Reading Set has been rendered yet.
func (s State) Blank() bool {
	return s.Tick == 0
}

// Value returns the formatted slot value for f.
func (s State) Value(f reading.Field) string {
	return s.Values[f]
}

// Snapshot is the wire view of a State pushed to viewers and mirrors.
type Snapshot struct {
	Tick    uint64            `json:"tick"`
	Updated string            `json:"updated,omitempty"`
	Values  map[string]string `json:"values"`

	Set reading.Set `json:"-"`
}

// Snapshot converts the state into its wire form, keyed by slot id.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   s.Tick,
		Values: make(map[string]string, reading.FieldCount),
		Set:    s.Set,
	}
	if !s.Updated.IsZero() {
		snap.Updated = s.Updated.UTC().Format(time.RFC3339)
	}
	for _, f := range reading.Fields() {
		snap.Values[f.Spec().ID] = s.Values[f]
	}
	return snap
}
