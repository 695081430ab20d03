package assigner

// filterByShortfall returns the hosts most owed a booking relative to
// their weighted target share.
//
// Each candidate's target share is its weight divided by the total roster
// weight. The target booking count is (total historical bookings + sum of
// all roster weight adjustments) * target share; the shortfall is the
// target minus what the candidate already has (historical bookings where
// it was organizer or attendee, plus its own adjustment). All candidates
// tied at the maximum shortfall are kept.
func filterByShortfall(hosts []Host, roster []RosterHost, bookings []BookingRecord) ([]Host, error) {
	if len(hosts) == 0 {
		return hosts, nil
	}

	totalWeight := 0
	totalAdjustment := 0
	for _, rh := range roster {
		totalWeight += rh.effectiveWeight()
		totalAdjustment += rh.effectiveAdjustment()
	}
	if totalWeight == 0 {
		return nil, ErrZeroRosterWeight
	}

	shortfalls := make([]float64, len(hosts))
	for i, h := range hosts {
		targetShare := float64(h.effectiveWeight()) / float64(totalWeight)
		target := float64(len(bookings)+totalAdjustment) * targetShare
		have := float64(bookingCount(h, bookings) + h.effectiveAdjustment())
		shortfalls[i] = target - have
	}

	maxShortfall := shortfalls[0]
	for _, s := range shortfalls[1:] {
		if s > maxShortfall {
			maxShortfall = s
		}
	}

	filtered := make([]Host, 0, len(hosts))
	for i, h := range hosts {
		if shortfalls[i] == maxShortfall {
			filtered = append(filtered, h)
		}
	}
	return filtered, nil
}

// bookingCount counts historical bookings where the host is the organizer
// or listed among the attendees.
func bookingCount(h Host, bookings []BookingRecord) int {
	count := 0
	for _, b := range bookings {
		if b.UserID != nil && *b.UserID == h.ID {
			count++
			continue
		}
		for _, att := range b.Attendees {
			if att.Email == h.Email {
				count++
				break
			}
		}
	}
	return count
}
