package sparc

import "fmt"

// Callback runs when a scheduled event's time arrives.
type Callback func(cpu *CPU, arg int)

// event is one entry of the delta queue: Time is relative to the event
// ahead of it, so advancing the clock by n only needs to decrement the
// head's Time and pop entries that reach zero. Grounded on
// emu/event/event.go's Event/EventList shape, adapted from per-device
// channel events to per-CPU tick events (the tick/tick_cmpr registers
// spec.md's data model names).
type event struct {
	time int
	cb   Callback
	arg  int
	next *event
}

// EventQueue is a delta queue of pending tick events for one CPU.
type EventQueue struct {
	head *event
}

// AddEvent schedules cb to run arg in delta ticks from now.
func (q *EventQueue) AddEvent(delta int, cb Callback, arg int) {
	ev := &event{time: delta, cb: cb, arg: arg}
	if q.head == nil || delta < q.head.time {
		if q.head != nil {
			q.head.time -= delta
		}
		ev.next = q.head
		q.head = ev
		return
	}
	remaining := delta
	prev := q.head
	remaining -= prev.time
	for prev.next != nil && remaining >= prev.next.time {
		remaining -= prev.next.time
		prev = prev.next
	}
	ev.time = remaining
	if prev.next != nil {
		prev.next.time -= remaining
	}
	ev.next = prev.next
	prev.next = ev
}

// CancelEvent removes the first queued event still bound to cb, if any.
func (q *EventQueue) CancelEvent(cb Callback) bool {
	var prev *event
	for e := q.head; e != nil; e = e.next {
		if fnEqual(e.cb, cb) {
			if e.next != nil {
				e.next.time += e.time
			}
			if prev == nil {
				q.head = e.next
			} else {
				prev.next = e.next
			}
			return true
		}
		prev = e
	}
	return false
}

// Advance moves the clock forward by ticks, running and popping every
// event whose time has elapsed.
func (q *EventQueue) Advance(cpu *CPU, ticks int) {
	cpu.Tick += uint64(ticks)
	for q.head != nil && ticks > 0 {
		if ticks < q.head.time {
			q.head.time -= ticks
			return
		}
		ticks -= q.head.time
		ev := q.head
		q.head = q.head.next
		ev.cb(cpu, ev.arg)
	}
}

// fnEqual compares two Callback values by identity. Go doesn't allow
// comparing func values with ==, so this is only used to let a caller
// cancel the most recently scheduled event of a known family via a
// package-level sentinel function rather than a closure.
func fnEqual(a, b Callback) bool {
	return fmt.Sprintf("%p", a) == fmt.Sprintf("%p", b)
}
