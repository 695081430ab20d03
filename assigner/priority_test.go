package assigner

import (
	"testing"
)

func TestFilterByPriority(t *testing.T) {
	tests := []struct {
		name     string
		hosts    []Host
		wantIDs  []int64
		wantSize int
	}{
		{
			name: "highest_tier_wins",
			hosts: []Host{
				{ID: 1, Priority: ptr(1)},
				{ID: 2, Priority: ptr(3)},
				{ID: 3, Priority: ptr(2)},
			},
			wantIDs: []int64{2},
		},
		{
			name: "missing_priority_defaults_to_medium",
			hosts: []Host{
				{ID: 1, Priority: ptr(2)},
				{ID: 2}, // no priority set, counts as 2
				{ID: 3, Priority: ptr(1)},
			},
			wantIDs: []int64{1, 2},
		},
		{
			name: "all_default",
			hosts: []Host{
				{ID: 1},
				{ID: 2},
			},
			wantIDs: []int64{1, 2},
		},
		{
			name: "default_beats_lower_explicit",
			hosts: []Host{
				{ID: 1, Priority: ptr(0)},
				{ID: 2}, // default 2
			},
			wantIDs: []int64{2},
		},
		{
			name:    "empty_input",
			hosts:   nil,
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterByPriority(tt.hosts)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d hosts, want %d", len(got), len(tt.wantIDs))
			}
			for i, h := range got {
				if h.ID != tt.wantIDs[i] {
					t.Errorf("host %d: got ID %d, want %d", i, h.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterByPriorityNonEmpty(t *testing.T) {
	// output is non-empty whenever input is
	for n := 1; n <= 5; n++ {
		hosts := make([]Host, n)
		for i := range hosts {
			hosts[i] = Host{ID: int64(i + 1), Priority: ptr(i % 3)}
		}
		got := filterByPriority(hosts)
		if len(got) == 0 {
			t.Errorf("empty output for %d hosts", n)
		}
		maxPriority := got[0].effectivePriority()
		for _, h := range hosts {
			if h.effectivePriority() > maxPriority {
				t.Errorf("returned tier %d but input has tier %d", maxPriority, h.effectivePriority())
			}
		}
	}
}
