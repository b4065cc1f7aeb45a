package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

func TestClassifyPrice_SymbolicTiers(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Bucket
	}{
		{"$", domain.BucketLow},
		{"$$", domain.BucketMid},
		{"$$$", domain.BucketHigh},
		{"$$$$", domain.BucketUltra},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPrice(tt.input), "input %q", tt.input)
	}
}

func TestClassifyPrice_TextualTiers(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Bucket
	}{
		{"budget", domain.BucketLow},
		{"Moderate", domain.BucketMid},
		{"EXPENSIVE", domain.BucketHigh},
		{"luxury", domain.BucketUltra},
		{"  premium  ", domain.BucketHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPrice(tt.input), "input %q", tt.input)
	}
}

func TestClassifyPrice_UnrecognizedIsUnclassified(t *testing.T) {
	for _, input := range []string{"free", "", "   ", "$$$$$", "twelve dollars"} {
		assert.Equal(t, domain.BucketUnclassified, ClassifyPrice(input), "input %q", input)
	}
}

func TestClassifyPrice_IdempotentOnOwnRange(t *testing.T) {
	// Classifying a returned bucket id returns that same bucket.
	for _, bucket := range domain.Buckets() {
		assert.Equal(t, bucket, ClassifyPrice(string(bucket)))
	}
}
