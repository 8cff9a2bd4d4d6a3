package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tehran = Location{Name: "Tehran", Lat: 35.6892, Lon: 51.3890}

func TestSummarize_SingleRow(t *testing.T) {
	values := Readings{10, 20, 1, 30, 15, 5}
	table := Table{Rows: []Row{NewRow(tehran, values)}}

	s := Summarize(table, ExcludeFailed)

	assert.Equal(t, 1, s.Contributing)
	for i := range Pollutants {
		assert.Equal(t, values[i], s.Stats[i].Mean, Pollutants[i])
		assert.Zero(t, s.Stats[i].StdDev, Pollutants[i])
	}
}

func TestSummarize_PopulationStdDev(t *testing.T) {
	table := Table{Rows: []Row{
		NewRow(Location{Name: "a"}, Readings{2, 4, 4, 4, 5, 5}),
		NewRow(Location{Name: "b"}, Readings{4, 4, 4, 4, 5, 5}),
		NewRow(Location{Name: "c"}, Readings{4, 4, 4, 4, 7, 9}),
		NewRow(Location{Name: "d"}, Readings{6, 4, 4, 4, 7, 9}),
	}}

	s := Summarize(table, ExcludeFailed)

	assert.InDelta(t, 4.0, s.Stats[0].Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2), s.Stats[0].StdDev, 1e-12)
	assert.Zero(t, s.Stats[1].StdDev)
	assert.InDelta(t, 6.0, s.Stats[4].Mean, 1e-12)
	assert.InDelta(t, 1.0, s.Stats[4].StdDev, 1e-12)
	assert.InDelta(t, 7.0, s.Stats[5].Mean, 1e-12)
	assert.InDelta(t, 2.0, s.Stats[5].StdDev, 1e-12)
}

func TestSummarize_Deterministic(t *testing.T) {
	table := Table{Rows: []Row{
		NewRow(Location{Name: "a"}, Readings{1.1, 2.2, 3.3, 4.4, 5.5, 6.6}),
		NewRow(Location{Name: "b"}, Readings{9.9, 8.8, 7.7, 6.6, 5.5, 4.4}),
		FailedRow(Location{Name: "c"}, "status 500"),
	}}

	first := Summarize(table, ZeroFill)
	for range 5 {
		if diff := cmp.Diff(first, Summarize(table, ZeroFill)); diff != "" {
			t.Fatalf("summary changed between calls (-first +again):\n%s", diff)
		}
	}
}

func TestSummarize_FailedRowPolicies(t *testing.T) {
	reading := Readings{10, 20, 1, 30, 15, 5}
	table := Table{Rows: []Row{
		NewRow(tehran, reading),
		FailedRow(Location{Name: "Isfahan", Lat: 32.6539, Lon: 51.6660}, "status 500"),
	}}

	t.Run("zero fill averages the zeros in", func(t *testing.T) {
		s := Summarize(table, ZeroFill)
		assert.Equal(t, 2, s.Contributing)
		assert.Equal(t, 0, s.Excluded)
		for i := range Pollutants {
			assert.Equal(t, (reading[i]+0)/2, s.Stats[i].Mean, Pollutants[i])
			assert.Equal(t, reading[i]/2, s.Stats[i].StdDev, Pollutants[i])
		}
	})

	t.Run("exclude drops the failed row", func(t *testing.T) {
		s := Summarize(table, ExcludeFailed)
		assert.Equal(t, 1, s.Contributing)
		assert.Equal(t, 1, s.Excluded)
		for i := range Pollutants {
			assert.Equal(t, reading[i], s.Stats[i].Mean, Pollutants[i])
			assert.Zero(t, s.Stats[i].StdDev, Pollutants[i])
		}
	})
}

func TestSummarize_AllFailedExcluded(t *testing.T) {
	table := Table{Rows: []Row{FailedRow(tehran, "timeout")}}

	s := Summarize(table, ExcludeFailed)

	assert.Equal(t, 0, s.Contributing)
	assert.Equal(t, 1, s.Excluded)
	assert.Equal(t, [NumPollutants]Stat{}, s.Stats)
}

func TestParseFailurePolicy(t *testing.T) {
	p, err := ParseFailurePolicy("exclude")
	require.NoError(t, err)
	assert.Equal(t, ExcludeFailed, p)

	p, err = ParseFailurePolicy("zero")
	require.NoError(t, err)
	assert.Equal(t, ZeroFill, p)

	_, err = ParseFailurePolicy("drop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drop")
}
