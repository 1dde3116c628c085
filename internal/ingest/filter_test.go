package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture() *Dataset {
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	return &Dataset{
		Records: []Record{
			{Timestamp: base, TimestampValid: true, Service: "api", Level: "INFO", Message: "one", ResponseMS: 10, ResponseMSValid: true},
			{Timestamp: base.Add(time.Minute), TimestampValid: true, Service: "auth", Level: "ERROR", Message: "two", ResponseMS: 20, ResponseMSValid: true},
			{Timestamp: base.Add(2 * time.Minute), TimestampValid: true, Service: "api", Level: "ERROR", Message: "three", ResponseMS: 30, ResponseMSValid: true},
			{Timestamp: base.Add(3 * time.Minute), TimestampValid: true, Service: "API", Level: "WARN", Message: "four", ResponseMS: 40, ResponseMSValid: true},
		},
		InvalidTimestamps: 2,
		InvalidLatencies:  3,
	}
}

func TestFilter_Apply(t *testing.T) {
	t.Run("zero filter returns dataset unchanged", func(t *testing.T) {
		dataset := filterFixture()
		got := Filter{}.Apply(dataset)

		assert.Same(t, dataset, got)
	})

	t.Run("service match is exact and case-sensitive", func(t *testing.T) {
		got := Filter{Service: "api"}.Apply(filterFixture())

		require.Len(t, got.Records, 2)
		assert.Equal(t, "one", got.Records[0].Message)
		assert.Equal(t, "three", got.Records[1].Message)
	})

	t.Run("service with different case does not match", func(t *testing.T) {
		got := Filter{Service: "API"}.Apply(filterFixture())

		require.Len(t, got.Records, 1)
		assert.Equal(t, "four", got.Records[0].Message)
	})

	t.Run("level match is case-insensitive", func(t *testing.T) {
		upper := Filter{Level: "ERROR"}.Apply(filterFixture())
		lower := Filter{Level: "error"}.Apply(filterFixture())

		require.Len(t, upper.Records, 2)
		assert.Equal(t, upper.Records, lower.Records)
	})

	t.Run("service and level combine as AND", func(t *testing.T) {
		got := Filter{Service: "api", Level: "error"}.Apply(filterFixture())

		require.Len(t, got.Records, 1)
		assert.Equal(t, "three", got.Records[0].Message)
	})

	t.Run("unknown service yields empty dataset", func(t *testing.T) {
		got := Filter{Service: "billing"}.Apply(filterFixture())

		assert.NotNil(t, got)
		assert.Empty(t, got.Records)
	})

	t.Run("record order is preserved", func(t *testing.T) {
		got := Filter{Level: "error"}.Apply(filterFixture())

		require.Len(t, got.Records, 2)
		assert.Equal(t, "two", got.Records[0].Message)
		assert.Equal(t, "three", got.Records[1].Message)
	})

	t.Run("warning counts carry through", func(t *testing.T) {
		got := Filter{Service: "auth"}.Apply(filterFixture())

		assert.Equal(t, 2, got.InvalidTimestamps)
		assert.Equal(t, 3, got.InvalidLatencies)
	})
}

func TestFilter_IsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Service: "api"}.IsZero())
	assert.False(t, Filter{Level: "error"}.IsZero())
	assert.False(t, Filter{Service: "api", Level: "error"}.IsZero())
}
