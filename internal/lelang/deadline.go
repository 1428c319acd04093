package lelang

import "time"

// ExtendDeadline applies the anti-snipe rule.  When a bid is accepted with
// window or less left before deadline, the deadline becomes now+window so
// other bidders always get a full window to respond.  The result is never
// earlier than deadline.
func ExtendDeadline(now, deadline time.Time, window time.Duration) time.Time {
	if window <= 0 || deadline.Sub(now) > window {
		return deadline
	}
	extended := now.Add(window)
	if extended.Before(deadline) {
		return deadline
	}
	return extended
}
