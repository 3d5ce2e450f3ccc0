package gaze

import "fmt"

// maxDrainRounds bounds how often the queue is drained again when listeners
// cause new notifications during a drain.
const maxDrainRounds = 10

// Notification is a (source, kind, payload) tuple created during update and
// consumed by the next drain.
type Notification struct {
	Source  *Element
	Kind    NotificationKind
	Payload any
}

// NotificationEvent is the renderer- and tree-independent form of a drained
// notification handed to an EventSink.
type NotificationEvent struct {
	Kind      NotificationKind
	ElementID string
	Amount    float64 // sensor penetration
	Text      string  // pressed key, UTF-8
}

// EventSink receives every drained notification after its listeners ran.
type EventSink interface {
	EmitNotification(ev NotificationEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ev NotificationEvent)

func (f EventSinkFunc) EmitNotification(ev NotificationEvent) { f(ev) }

func (n Notification) event() NotificationEvent {
	ev := NotificationEvent{Kind: n.Kind}
	if n.Source != nil {
		ev.ElementID = n.Source.ID
	}
	switch p := n.Payload.(type) {
	case float64:
		ev.Amount = p
	case KeyPress:
		ev.Text = p.UTF8
	}
	return ev
}

// notificationQueue is the single-threaded, frame-local deferred queue.
// Only the update phase appends to it.
type notificationQueue struct {
	items []Notification
	spare []Notification
}

func (q *notificationQueue) enqueue(n Notification) {
	q.items = append(q.items, n)
}

func (q *notificationQueue) len() int {
	return len(q.items)
}

// drain delivers notifications in enqueue order through deliver. Each
// delivery is isolated: a panic is recovered, reported through onPanic and
// the remaining notifications are still delivered. Notifications enqueued
// while draining are delivered in following rounds, up to maxDrainRounds.
// The queue is empty afterwards. Returns the number delivered and the
// number dropped after the last round.
func (q *notificationQueue) drain(deliver func(Notification), onPanic func(Notification, error)) (delivered, dropped int) {
	for round := 0; round < maxDrainRounds && len(q.items) > 0; round++ {
		batch := q.items
		q.items = q.spare[:0]
		for _, n := range batch {
			deliverIsolated(n, deliver, onPanic)
			delivered++
		}
		clear(batch)
		q.spare = batch[:0]
	}
	dropped = len(q.items)
	clear(q.items)
	q.items = q.items[:0]
	return delivered, dropped
}

func deliverIsolated(n Notification, deliver func(Notification), onPanic func(Notification, error)) {
	callIsolated(func() { deliver(n) }, func(err error) {
		if onPanic != nil {
			onPanic(n, err)
		}
	})
}

// callIsolated runs fn and hands a recovered panic to onPanic as an error.
func callIsolated(fn func(), onPanic func(error)) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			if onPanic != nil {
				onPanic(err)
			}
		}
	}()
	fn()
}
