// Package schedule orders the pending completions of a game state in the
// order a tick would apply them.
package schedule

import (
	"cmp"
	"container/heap"
	"slices"

	"github.com/napolitain/colony-sim/internal/models"
)

// EventType is the kind of pending completion
type EventType int

const (
	EventConstruction EventType = iota
	EventRecruitment
	EventResearch
	EventMission
)

func (et EventType) String() string {
	switch et {
	case EventConstruction:
		return "Construction"
	case EventRecruitment:
		return "Recruitment"
	case EventResearch:
		return "Research"
	case EventMission:
		return "Mission"
	default:
		return "Unknown"
	}
}

// Priority is the processing rank of an event type at equal times.
// Lower runs first, matching the tick phase order.
func (et EventType) Priority() int {
	switch et {
	case EventConstruction:
		return 0
	case EventRecruitment:
		return 1
	case EventResearch:
		return 2
	case EventMission:
		return 3
	default:
		return 99
	}
}

// Event is one pending completion
type Event struct {
	Time     int64 // epoch millis at which the job is due
	Type     EventType
	ID       string
	Subject  string // building, unit, tech or mission type
	Count    int
	Sequence int64 // insertion order, keeps stored order stable
}

type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	if h[i].Type.Priority() != h[j].Type.Priority() {
		return h[i].Type.Priority() < h[j].Type.Priority()
	}
	return h[i].Sequence < h[j].Sequence
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// Queue is a min-heap of events ordered by (Time, Priority, Sequence)
type Queue struct {
	h   eventHeap
	seq int64
}

func NewQueue() *Queue {
	q := &Queue{h: make(eventHeap, 0)}
	heap.Init(&q.h)
	return q
}

// Push adds an event and stamps its sequence
func (q *Queue) Push(e Event) {
	q.seq++
	e.Sequence = q.seq
	heap.Push(&q.h, e)
}

// Pop removes the earliest event
func (q *Queue) Pop() (Event, bool) {
	if len(q.h) == 0 {
		return Event{}, false
	}
	return heap.Pop(&q.h).(Event), true
}

// Peek returns the earliest event without removing it
func (q *Queue) Peek() (Event, bool) {
	if len(q.h) == 0 {
		return Event{}, false
	}
	return q.h[0], true
}

func (q *Queue) Len() int { return len(q.h) }

func (q *Queue) Empty() bool { return len(q.h) == 0 }

// FromState queues every pending job and mission of state
func FromState(state *models.GameState) *Queue {
	q := NewQueue()
	for _, job := range state.ActiveConstructions {
		q.Push(Event{Time: job.EndTime, Type: EventConstruction, ID: job.ID, Subject: string(job.BuildingType), Count: job.Count})
	}
	for _, job := range state.ActiveRecruitments {
		q.Push(Event{Time: job.EndTime, Type: EventRecruitment, ID: job.ID, Subject: string(job.UnitType), Count: job.Count})
	}
	if r := state.ActiveResearch; r != nil {
		q.Push(Event{Time: r.EndTime, Type: EventResearch, ID: string(r.TechID), Subject: string(r.TechID), Count: 1})
	}
	for _, m := range state.ActiveMissions {
		q.Push(Event{Time: m.EndTime, Type: EventMission, ID: m.ID, Subject: string(m.Type), Count: m.Units.Total()})
	}
	return q
}

// Due returns the events a tick at now would complete, in the order the tick
// applies them: by phase, then by stored order. Completion times do not
// reorder events within one tick.
func Due(state *models.GameState, now int64) []Event {
	q := FromState(state)
	var due []Event
	for {
		e, ok := q.Peek()
		if !ok || e.Time > now {
			break
		}
		q.Pop()
		due = append(due, e)
	}
	slices.SortFunc(due, func(a, b Event) int {
		if c := cmp.Compare(a.Type.Priority(), b.Type.Priority()); c != 0 {
			return c
		}
		return cmp.Compare(a.Sequence, b.Sequence)
	})
	return due
}

// Upcoming returns up to limit events due strictly after now. A limit
// below 1 returns all of them.
func Upcoming(state *models.GameState, now int64, limit int) []Event {
	q := FromState(state)
	var out []Event
	for !q.Empty() {
		if limit > 0 && len(out) >= limit {
			break
		}
		e, _ := q.Pop()
		if e.Time > now {
			out = append(out, e)
		}
	}
	return out
}

// Next returns the time of the first event due after now
func Next(state *models.GameState, now int64) (int64, bool) {
	events := Upcoming(state, now, 1)
	if len(events) == 0 {
		return 0, false
	}
	return events[0].Time, true
}
