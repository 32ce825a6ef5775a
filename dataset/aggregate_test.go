package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequests(t *testing.T) []ServiceRequest {
	t.Helper()
	input := sampleHeader +
		// 4時間で解決
		"1\t10/31/2013 12:00:00 PM\t10/31/2013 04:00:00 PM\tNYPD\tNoise\tLoud Music\tQUEENS\n" +
		// 2時間で解決
		"2\t10/31/2013 12:00:00 PM\t10/31/2013 02:00:00 PM\tNYPD\tNoise\tLoud Talking\tMANHATTAN\n" +
		// 未解決（空のClosed Date）
		"3\t10/31/2013 12:00:00 PM\t\tDOT\tStreet Condition\tPothole\tBROOKLYN\n" +
		// 番兵値の1900年 → 未解決扱い
		"4\t10/31/2013 12:00:00 PM\t01/01/1900 12:00:00 AM\tDOT\tStreet Condition\tPothole\tQUEENS\n" +
		// 作成前に解決された異常レコード
		"5\t10/31/2013 12:00:00 PM\t10/30/2013 12:00:00 PM\tHPD\tHeating\tNo Heat\tBRONX\n"

	reqs, err := ReadServiceRequests(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, reqs, 5)
	return reqs
}

func TestServiceRequests_SentinelAndAnomaly(t *testing.T) {
	reqs := sampleRequests(t)

	assert.True(t, reqs[0].Closed())
	assert.False(t, reqs[2].Closed(), "empty close date must read as open")
	assert.False(t, reqs[3].Closed(), "1900 sentinel must read as open")
	assert.True(t, reqs[4].Anomalous(), "closed-before-created must be flagged")

	_, err := reqs[4].Resolution()
	assert.Error(t, err, "anomalous record must not yield a duration")

	d, err := reqs[0].Resolution()
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, d)
}

func TestCountByComplaintType(t *testing.T) {
	reqs := sampleRequests(t)

	got := CountByComplaintType(reqs)
	want := []CountEntry{
		{Key: "Noise", Count: 2},
		{Key: "Street Condition", Count: 2},
		{Key: "Heating", Count: 1},
	}
	assert.Equal(t, want, got, "ties must be broken by key for deterministic output")
}

func TestCountByAgencyAndBorough(t *testing.T) {
	reqs := sampleRequests(t)

	agencies := CountByAgency(reqs)
	assert.Equal(t, CountEntry{Key: "DOT", Count: 2}, agencies[0])

	boroughs := CountByBorough(reqs)
	assert.Equal(t, CountEntry{Key: "QUEENS", Count: 2}, boroughs[0])
	assert.Len(t, boroughs, 4)
}

func TestResolution(t *testing.T) {
	reqs := sampleRequests(t)

	stats := Resolution(reqs)
	assert.Equal(t, 2, stats.Resolved)
	assert.Equal(t, 2, stats.Open)
	assert.Equal(t, 1, stats.Anomalous)
	assert.Equal(t, 2*time.Hour, stats.Min)
	assert.Equal(t, 4*time.Hour, stats.Max)
	assert.Equal(t, 3*time.Hour, stats.Mean)
}

func TestResolution_Empty(t *testing.T) {
	stats := Resolution(nil)
	assert.Zero(t, stats.Resolved)
	assert.Zero(t, stats.Mean)
}

func TestBusinessDayResolution(t *testing.T) {
	// 月曜 11/04/2013 から金曜 11/08/2013 まで。祝日は挟まない。
	input := sampleHeader +
		"10\t11/04/2013 10:00:00 AM\t11/08/2013 10:00:00 AM\tDOT\tStreet Condition\tPothole\tQUEENS\n" +
		// 未解決の行は結果に含まれない
		"11\t11/04/2013 10:00:00 AM\t\tDOT\tStreet Condition\tPothole\tQUEENS\n"

	reqs, err := ReadServiceRequests(strings.NewReader(input))
	require.NoError(t, err)

	entries := BusinessDayResolution(reqs)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(10), entries[0].UniqueKey)
	assert.Equal(t, 5, entries[0].BusinessDays)
}
