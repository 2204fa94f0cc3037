package domain

import "time"

// DefaultLockTTL is how long an edit lease is honored after acquisition.
// Activity does not extend it.
const DefaultLockTTL = 5 * time.Minute

// LockActive reports whether the lease recorded on the rule is still honored at now.
func (r Rule) LockActive(now time.Time, ttl time.Duration) bool {
	return r.LockedAt != nil && now.Sub(*r.LockedAt) < ttl
}

// HeldBy reports whether actor holds an active lease.
func (r Rule) HeldBy(actor string, now time.Time, ttl time.Duration) bool {
	return r.LockActive(now, ttl) && r.LockedBy != nil && *r.LockedBy == actor
}

// LockedByOther reports whether an active lease belongs to someone other than actor.
// A lease without an owner counts as foreign.
func (r Rule) LockedByOther(actor string, now time.Time, ttl time.Duration) bool {
	return r.LockActive(now, ttl) && (r.LockedBy == nil || *r.LockedBy != actor)
}

// LeaseCutoff is the latest acquisition time that has already expired at now.
func LeaseCutoff(now time.Time, ttl time.Duration) time.Time {
	return now.Add(-ttl)
}
