package catalog

import (
	"strings"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

// priceVocabulary maps every recognized price spelling to its bucket:
// symbolic tiers ("$".."$$$$"), the bucket ids themselves (so classifying an
// already-classified value is idempotent), and a small set of textual tiers.
var priceVocabulary = map[string]domain.Bucket{
	"$":    domain.BucketLow,
	"$$":   domain.BucketMid,
	"$$$":  domain.BucketHigh,
	"$$$$": domain.BucketUltra,

	string(domain.BucketLow):   domain.BucketLow,
	string(domain.BucketMid):   domain.BucketMid,
	string(domain.BucketHigh):  domain.BucketHigh,
	string(domain.BucketUltra): domain.BucketUltra,

	"budget":    domain.BucketLow,
	"cheap":     domain.BucketLow,
	"moderate":  domain.BucketMid,
	"medium":    domain.BucketMid,
	"expensive": domain.BucketHigh,
	"premium":   domain.BucketHigh,
	"luxury":    domain.BucketUltra,
	"designer":  domain.BucketUltra,
}

// ClassifyPrice maps a raw price representation to its ordinal bucket.
// Total and deterministic over the accepted vocabulary; anything else
// resolves to domain.BucketUnclassified, never an error. Stores with an
// unclassified price are excluded whenever a price facet is active.
func ClassifyPrice(raw string) domain.Bucket {
	key := strings.ToLower(strings.TrimSpace(raw))
	if bucket, ok := priceVocabulary[key]; ok {
		return bucket
	}
	return domain.BucketUnclassified
}
