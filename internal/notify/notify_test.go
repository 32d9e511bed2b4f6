package notify

import "testing"

func TestNew(t *testing.T) {
	owner := &struct{}{}
	n := New(owner)
	if n == nil {
		t.Fatal("New() returned nil")
	}
	if n.Source() != owner {
		t.Error("Source() should return the owner")
	}
	if n.Count() != 0 {
		t.Errorf("Count() = %d, want 0", n.Count())
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New("owner")

	var received []Change
	sub := n.Subscribe(func(change Change) {
		received = append(received, change)
	})

	n.Fire("name", "a", "b")

	if len(received) != 1 {
		t.Fatalf("expected 1 change, got %d", len(received))
	}
	if received[0].Source != "owner" {
		t.Errorf("Source = %v, want owner", received[0].Source)
	}
	if received[0].OldValue != "a" || received[0].NewValue != "b" {
		t.Errorf("unexpected values %v -> %v", received[0].OldValue, received[0].NewValue)
	}

	sub.Unsubscribe()
	n.Fire("name", "b", "c")

	if len(received) != 1 {
		t.Error("unsubscribed observer received notification")
	}
}

func TestNotifier_FireEqualValues(t *testing.T) {
	n := New(nil)

	count := 0
	n.Subscribe(func(Change) { count++ })

	tests := []struct {
		name     string
		old, new any
		fired    bool
	}{
		{"same string", "x", "x", false},
		{"both nil", nil, nil, false},
		{"equal slices", []int{1, 2}, []int{1, 2}, false},
		{"different slices", []int{1, 2}, []int{2, 1}, true},
		{"nil to value", nil, 1, true},
		{"value to nil", false, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := count
			got := n.Fire("attr", tt.old, tt.new)
			if got != tt.fired {
				t.Errorf("Fire() = %v, want %v", got, tt.fired)
			}
			if (count > before) != tt.fired {
				t.Errorf("observer invoked = %v, want %v", count > before, tt.fired)
			}
		})
	}
}

func TestNotifier_SubscribeName(t *testing.T) {
	n := New(nil)

	var enabled, address int
	n.SubscribeName("enabled", func(Change) { enabled++ })
	n.SubscribeName("address", func(Change) { address++ })

	n.Fire("enabled", false, true)
	n.Fire("address.city", "a", "b")
	n.Fire("addressBook", 1, 2)
	n.Fire("other", 1, 2)

	if enabled != 1 {
		t.Errorf("enabled observer called %d times, want 1", enabled)
	}
	if address != 1 {
		t.Errorf("address observer called %d times, want 1", address)
	}
}

func TestNotifier_NotifyWholeObject(t *testing.T) {
	n := New(nil)

	count := 0
	n.Subscribe(func(Change) { count++ })
	n.SubscribeName("a", func(Change) { count++ })
	n.SubscribeName("b", func(Change) { count++ })

	n.Notify(Change{})

	if count != 3 {
		t.Errorf("expected all 3 observers called, got %d", count)
	}
}

func TestNotifier_DeliveryOrder(t *testing.T) {
	n := New(nil)

	var order []int
	n.SubscribeName("x", func(Change) { order = append(order, 1) })
	n.Subscribe(func(Change) { order = append(order, 2) })
	n.SubscribeName("x", func(Change) { order = append(order, 3) })

	n.Fire("x", 0, 1)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("delivery order = %v, want [1 2 3]", order)
	}
}

func TestNotifier_UnsubscribeDuringDelivery(t *testing.T) {
	n := New(nil)

	var sub *Subscription
	calls := 0
	sub = n.Subscribe(func(Change) {
		calls++
		sub.Unsubscribe()
	})

	n.Fire("x", 0, 1)
	n.Fire("x", 1, 2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if n.Count() != 0 {
		t.Errorf("Count() = %d, want 0", n.Count())
	}
}

func TestSubscription_UnsubscribeTwice(t *testing.T) {
	n := New(nil)
	sub := n.SubscribeName("x", func(Change) {})
	if sub.Name() != "x" {
		t.Errorf("Name() = %q, want x", sub.Name())
	}
	sub.Unsubscribe()
	sub.Unsubscribe()

	var nilSub *Subscription
	nilSub.Unsubscribe()
}

func TestIsParentName(t *testing.T) {
	tests := []struct {
		parent, child string
		want          bool
	}{
		{"a", "a.b", true},
		{"a.b", "a.b.c", true},
		{"a", "ab", false},
		{"a", "a", false},
		{"", "a", false},
		{"a.b", "a", false},
	}

	for _, tt := range tests {
		if got := isParentName(tt.parent, tt.child); got != tt.want {
			t.Errorf("isParentName(%q, %q) = %v, want %v", tt.parent, tt.child, got, tt.want)
		}
	}
}

func TestNotifier_Names(t *testing.T) {
	n := New("owner")
	n.Subscribe(func(Change) {})
	b := n.SubscribeName("b", func(Change) {})
	n.SubscribeName("a.x", func(Change) {})
	n.SubscribeName("b", func(Change) {})

	got := n.Names()
	if len(got) != 2 || got[0] != "a.x" || got[1] != "b" {
		t.Errorf("Names() = %v", got)
	}

	b.Unsubscribe()
	if got := n.Names(); len(got) != 2 {
		t.Errorf("Names() after one of two unsubscribed = %v", got)
	}
}
