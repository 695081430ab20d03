package assigner

// filterByPriority returns the hosts at the numerically highest priority
// tier. Hosts without an explicit priority count as the default tier, so a
// host with priority 2 and a host with no priority set are equivalent.
// The result is non-empty whenever the input is.
func filterByPriority(hosts []Host) []Host {
	if len(hosts) == 0 {
		return hosts
	}

	maxPriority := hosts[0].effectivePriority()
	for _, h := range hosts[1:] {
		if p := h.effectivePriority(); p > maxPriority {
			maxPriority = p
		}
	}

	filtered := make([]Host, 0, len(hosts))
	for _, h := range hosts {
		if h.effectivePriority() == maxPriority {
			filtered = append(filtered, h)
		}
	}
	return filtered
}
