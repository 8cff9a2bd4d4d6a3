package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/air-quality-comparison/internal/domain"
)

func TestWrite_SingleLocation(t *testing.T) {
	table := domain.Table{Rows: []domain.Row{
		domain.NewRow(domain.Location{Name: "Tehran", Lat: 35.6892, Lon: 51.3890}, domain.Readings{10, 20, 1, 30, 15, 5}),
	}}
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, table, domain.Summarize(table, domain.ExcludeFailed)))

	want := `
Air quality information for each location:

location: Tehran
PM2_5: 10.00 µg/m3
PM10: 20.00 µg/m3
CO: 1.00 µg/m3
O3: 30.00 µg/m3
NO2: 15.00 µg/m3
SO2: 5.00 µg/m3
----------------------------------------

Average values of pollutants for all locations:
PM2_5 Mean: 10.00 µg/m3, STD: 0.00 µg/m3
PM10 Mean: 20.00 µg/m3, STD: 0.00 µg/m3
CO Mean: 1.00 µg/m3, STD: 0.00 µg/m3
O3 Mean: 30.00 µg/m3, STD: 0.00 µg/m3
NO2 Mean: 15.00 µg/m3, STD: 0.00 µg/m3
SO2 Mean: 5.00 µg/m3, STD: 0.00 µg/m3
`
	assert.Equal(t, want, buf.String())
}

func TestWrite_FailedRowIsFlagged(t *testing.T) {
	table := domain.Table{Rows: []domain.Row{
		domain.NewRow(domain.Location{Name: "Tehran"}, domain.Readings{10, 20, 1, 30, 15, 5}),
		domain.FailedRow(domain.Location{Name: "Isfahan"}, "status 500"),
	}}
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, table, domain.Summarize(table, domain.ExcludeFailed)))

	out := buf.String()
	assert.Contains(t, out, "location: Isfahan\nstatus: fetch failed (status 500)\nPM2_5: 0.00 µg/m3\n")
	assert.Contains(t, out, "PM2_5 Mean: 10.00 µg/m3, STD: 0.00 µg/m3\n")
	assert.Contains(t, out, "(1 of 2 locations contributed; 1 failed fetches excluded)\n")
}

func TestWrite_ZeroFillHasNoExclusionNote(t *testing.T) {
	table := domain.Table{Rows: []domain.Row{
		domain.NewRow(domain.Location{Name: "Tehran"}, domain.Readings{10, 20, 1, 30, 15, 5}),
		domain.FailedRow(domain.Location{Name: "Isfahan"}, "status 500"),
	}}
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, table, domain.Summarize(table, domain.ZeroFill)))

	assert.Contains(t, buf.String(), "PM2_5 Mean: 5.00 µg/m3, STD: 5.00 µg/m3\n")
	assert.NotContains(t, buf.String(), "excluded")
}

func TestWrite_NoContributorsPrintsNA(t *testing.T) {
	table := domain.Table{Rows: []domain.Row{
		domain.FailedRow(domain.Location{Name: "Tehran"}, "status 500"),
		domain.FailedRow(domain.Location{Name: "Isfahan"}, "status 500"),
	}}
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, table, domain.Summarize(table, domain.ExcludeFailed)))

	out := buf.String()
	assert.Contains(t, out, "PM2_5 Mean: n/a, STD: n/a\n")
	assert.Contains(t, out, "SO2 Mean: n/a, STD: n/a\n")
	assert.NotContains(t, out, "Mean: 0.00")
	assert.Contains(t, out, "(0 of 2 locations contributed; 2 failed fetches excluded)\n")
}

func TestWrite_AllFailedZeroFillStillNumeric(t *testing.T) {
	table := domain.Table{Rows: []domain.Row{
		domain.FailedRow(domain.Location{Name: "Tehran"}, "status 500"),
	}}
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, table, domain.Summarize(table, domain.ZeroFill)))

	assert.Contains(t, buf.String(), "PM2_5 Mean: 0.00 µg/m3, STD: 0.00 µg/m3\n")
}

func TestWrite_MultiLineReasonStaysOnOneLine(t *testing.T) {
	table := domain.Table{Rows: []domain.Row{
		domain.FailedRow(domain.Location{Name: "Tehran"}, "status 502: <html>\r\n<head><title>502 Bad Gateway</title></head>\r\n</html>"),
	}}
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, table, domain.Summarize(table, domain.ExcludeFailed)))

	assert.Contains(t, buf.String(),
		"location: Tehran\nstatus: fetch failed (status 502: <html> <head><title>502 Bad Gateway</title></head> </html>)\nPM2_5: 0.00 µg/m3\n")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesWriterError(t *testing.T) {
	err := Write(failingWriter{}, domain.Table{}, domain.Summary{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
