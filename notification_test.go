package gaze

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQueueDrainsInEnqueueOrderAndClears(t *testing.T) {
	a := NewBlank("a", "")
	b := NewBlank("b", "")
	var q notificationQueue
	q.enqueue(Notification{Source: a, Kind: NotifyButtonHit})
	q.enqueue(Notification{Source: b, Kind: NotifyButtonDown})
	q.enqueue(Notification{Source: a, Kind: NotifyButtonUp})

	var got []string
	delivered, dropped := q.drain(func(n Notification) {
		got = append(got, n.Source.ID+"/"+n.Kind.String())
	}, nil)

	want := []string{"a/BUTTON_HIT", "b/BUTTON_DOWN", "a/BUTTON_UP"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("drain order (-want +got):\n%s", diff)
	}
	if delivered != 3 || dropped != 0 {
		t.Errorf("delivered=%d dropped=%d, want 3 and 0", delivered, dropped)
	}
	if q.len() != 0 {
		t.Errorf("queue len = %d after drain, want 0", q.len())
	}
}

func TestQueueIsolatesPanickingDelivery(t *testing.T) {
	var q notificationQueue
	for _, id := range []string{"a", "boom", "c"} {
		q.enqueue(Notification{Source: NewBlank(id, ""), Kind: NotifyButtonHit})
	}

	var got, panicked []string
	q.drain(func(n Notification) {
		if n.Source.ID == "boom" {
			panic("listener failed")
		}
		got = append(got, n.Source.ID)
	}, func(n Notification, err error) {
		panicked = append(panicked, n.Source.ID+": "+err.Error())
	})

	if diff := cmp.Diff([]string{"a", "c"}, got); diff != "" {
		t.Errorf("remaining deliveries (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"boom: listener failed"}, panicked); diff != "" {
		t.Errorf("panics (-want +got):\n%s", diff)
	}
	if q.len() != 0 {
		t.Error("queue must be cleared even after a panic")
	}
}

func TestQueueDrainsNotificationsEnqueuedWhileDraining(t *testing.T) {
	var q notificationQueue
	src := NewBlank("s", "")
	q.enqueue(Notification{Source: src, Kind: NotifyButtonHit})

	rounds := 0
	delivered, dropped := q.drain(func(n Notification) {
		rounds++
		q.enqueue(Notification{Source: src, Kind: NotifyButtonHit})
	}, nil)

	if delivered != maxDrainRounds {
		t.Errorf("delivered = %d, want %d", delivered, maxDrainRounds)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if q.len() != 0 {
		t.Error("queue must be empty after drain")
	}
}

func TestNotificationEvent(t *testing.T) {
	src := NewBlank("kb", "")
	tests := []struct {
		name string
		n    Notification
		want NotificationEvent
	}{
		{"sensor", Notification{Source: src, Kind: NotifySensorPenetrated, Payload: 0.25},
			NotificationEvent{Kind: NotifySensorPenetrated, ElementID: "kb", Amount: 0.25}},
		{"key", Notification{Source: src, Kind: NotifyKeyPressed, Payload: newKeyPress('ä')},
			NotificationEvent{Kind: NotifyKeyPressed, ElementID: "kb", Text: "ä"}},
		{"button", Notification{Source: src, Kind: NotifyButtonHit},
			NotificationEvent{Kind: NotifyButtonHit, ElementID: "kb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.n.event()); diff != "" {
				t.Errorf("event (-want +got):\n%s", diff)
			}
		})
	}
}
