package assigner

import (
	"errors"
	"testing"
	"time"
)

func TestPickLeastRecentNeverBookedWins(t *testing.T) {
	a := testAssigner()

	hosts := []Host{
		{ID: 1, Email: "u1@example.com"},
		{ID: 2, Email: "u2@example.com"},
	}
	bookings := []BookingRecord{
		booking(1, at(100), id64(1), Attendee{Email: "guest@example.com"}),
	}

	got, err := a.pickLeastRecent(hosts, bookings)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 2 {
		t.Errorf("got host %d, want never-booked host 2", got.ID)
	}
}

func TestPickLeastRecentOldestWins(t *testing.T) {
	a := testAssigner()

	hosts := []Host{
		{ID: 1, Email: "u1@example.com"},
		{ID: 2, Email: "u2@example.com"},
		{ID: 3, Email: "u3@example.com"},
	}
	bookings := []BookingRecord{
		booking(3, at(300), id64(3), Attendee{Email: "guest@example.com"}),
		booking(2, at(200), id64(2), Attendee{Email: "guest@example.com"}),
		booking(1, at(100), id64(1), Attendee{Email: "guest@example.com"}),
	}

	got, err := a.pickLeastRecent(hosts, bookings)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 1 {
		t.Errorf("got host %d, want host 1 with the oldest booking", got.ID)
	}
}

func TestPickLeastRecentAttendeeOverridesOrganizer(t *testing.T) {
	a := testAssigner()

	// host 1 organized long ago but attended recently; host 2 organized
	// in between. The attendee evidence makes host 1 the more recently
	// booked of the two.
	hosts := []Host{
		{ID: 1, Email: "u1@example.com"},
		{ID: 2, Email: "u2@example.com"},
	}
	bookings := []BookingRecord{
		booking(3, at(300), id64(9), Attendee{Email: "u1@example.com"}),
		booking(2, at(200), id64(2), Attendee{Email: "guest@example.com"}),
		booking(1, at(100), id64(1), Attendee{Email: "guest@example.com"}),
	}

	got, err := a.pickLeastRecent(hosts, bookings)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 2 {
		t.Errorf("got host %d, want host 2", got.ID)
	}
}

func TestPickLeastRecentOlderAttendeeMentionIgnored(t *testing.T) {
	a := testAssigner()

	// host 1's attendee mention predates its own organizer booking and
	// must not override it
	hosts := []Host{
		{ID: 1, Email: "u1@example.com"},
		{ID: 2, Email: "u2@example.com"},
	}
	bookings := []BookingRecord{
		booking(3, at(300), id64(2), Attendee{Email: "guest@example.com"}),
		booking(2, at(200), id64(1), Attendee{Email: "guest@example.com"}),
		booking(1, at(100), id64(9), Attendee{Email: "u1@example.com"}),
	}

	got, err := a.pickLeastRecent(hosts, bookings)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 1 {
		t.Errorf("got host %d, want host 1 (organizer recency at t=200)", got.ID)
	}
}

func TestOrganizerRecencySkipsNoShows(t *testing.T) {
	hosts := []Host{{ID: 1, Email: "u1@example.com"}}

	noShowHost := booking(3, at(300), id64(1), Attendee{Email: "guest@example.com"})
	noShowHost.NoShowHost = true

	allGuestsAbsent := booking(2, at(200), id64(1), Attendee{Email: "guest@example.com", NoShow: true})

	attended := booking(1, at(100), id64(1), Attendee{Email: "guest@example.com"})

	recency := organizerRecency(hosts, []BookingRecord{noShowHost, allGuestsAbsent, attended})

	if got := recency[1]; !got.Equal(at(100)) {
		t.Errorf("got recency %v, want %v (no-show bookings skipped)", got, at(100))
	}
}

func TestMergeRecencyAttendeeAppliedSecond(t *testing.T) {
	organizer := map[int64]time.Time{1: at(100), 2: at(200)}
	attendee := map[int64]time.Time{1: at(300)}

	merged := mergeRecency(organizer, attendee)

	if !merged[1].Equal(at(300)) {
		t.Errorf("host 1: got %v, want attendee value %v", merged[1], at(300))
	}
	if !merged[2].Equal(at(200)) {
		t.Errorf("host 2: got %v, want organizer value %v", merged[2], at(200))
	}
}

func TestPickLeastRecentTieUsesDraw(t *testing.T) {
	hosts := []Host{
		{ID: 1, Email: "u1@example.com"},
		{ID: 2, Email: "u2@example.com"},
		{ID: 3, Email: "u3@example.com"},
	}

	// all never booked: three-way tie
	for want := 0; want < 3; want++ {
		a := testAssigner()
		drawn := -1
		a.randIntN = func(n int) int {
			drawn = n
			return want
		}
		got, err := a.pickLeastRecent(hosts, nil)
		if err != nil {
			t.Fatal(err)
		}
		if drawn != 3 {
			t.Errorf("draw over %d candidates, want 3", drawn)
		}
		if got.ID != hosts[want].ID {
			t.Errorf("got host %d, want %d", got.ID, hosts[want].ID)
		}
	}
}

func TestPickLeastRecentNoDrawWithoutTie(t *testing.T) {
	a := testAssigner()
	a.randIntN = func(n int) int {
		t.Fatal("tie-break draw used without a tie")
		return 0
	}

	hosts := []Host{
		{ID: 1, Email: "u1@example.com"},
		{ID: 2, Email: "u2@example.com"},
	}
	bookings := []BookingRecord{
		booking(1, at(100), id64(1), Attendee{Email: "guest@example.com"}),
	}

	got, err := a.pickLeastRecent(hosts, bookings)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 2 {
		t.Errorf("got host %d, want 2", got.ID)
	}
}

func TestPickLeastRecentDuplicateHost(t *testing.T) {
	a := testAssigner()

	hosts := []Host{
		{ID: 1, Email: "u1@example.com"},
		{ID: 1, Email: "u1@example.com"},
	}

	_, err := a.pickLeastRecent(hosts, nil)
	if !errors.Is(err, ErrRecencyUnresolved) {
		t.Fatalf("got %v, want ErrRecencyUnresolved", err)
	}
	if !IsDataIntegrityError(err) {
		t.Error("duplicate host should be a data integrity error")
	}
}

func TestPickLeastRecentEmptyPool(t *testing.T) {
	a := testAssigner()

	_, err := a.pickLeastRecent(nil, nil)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("got %v, want ErrNoCandidates", err)
	}
}
