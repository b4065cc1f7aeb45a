package domain

// Bucket is one of the four ordinal price tiers a store can classify into.
// The enumeration is closed; anything unparseable is BucketUnclassified and
// is excluded from bucket-based filtering rather than treated as a tier.
type Bucket string

const (
	BucketLow   Bucket = "low"
	BucketMid   Bucket = "mid"
	BucketHigh  Bucket = "high"
	BucketUltra Bucket = "ultra"

	// BucketUnclassified is the sentinel for input that maps to no tier.
	BucketUnclassified Bucket = ""
)

// Buckets lists the valid tiers in ascending price order.
func Buckets() []Bucket {
	return []Bucket{BucketLow, BucketMid, BucketHigh, BucketUltra}
}

// IsClassified returns true if the bucket is one of the four real tiers.
func (b Bucket) IsClassified() bool {
	switch b {
	case BucketLow, BucketMid, BucketHigh, BucketUltra:
		return true
	default:
		return false
	}
}
