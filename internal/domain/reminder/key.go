package reminder

import (
	"fmt"
	"time"
)

// Key identifies one reminder occurrence: a candidate and the distance bucket it fired in.
// Bucket zero is the "starting now" class.
type Key struct {
	CandidateID uint
	Bucket      time.Duration
}

// NowKey returns the key of the "starting now" reminder for a candidate.
func NowKey(candidateID uint) Key {
	return Key{CandidateID: candidateID}
}

// IsNow reports whether k belongs to the "starting now" class.
func (k Key) IsNow() bool {
	return k.Bucket == 0
}

// String renders the key as "{candidateID}_{bucketMinutes}" for logs.
func (k Key) String() string {
	return fmt.Sprintf("%d_%d", k.CandidateID, int64(k.Bucket/time.Minute))
}

// BucketFor maps a positive lead time onto ceil(lead/size)*size, so every lead
// in (size*(n-1), size*n] lands in bucket size*n. Non-positive input yields 0.
func BucketFor(lead, size time.Duration) time.Duration {
	if lead <= 0 || size <= 0 {
		return 0
	}
	n := lead / size
	if lead%size != 0 {
		n++
	}
	return n * size
}
