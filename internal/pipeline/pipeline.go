package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/couchcryptid/air-quality-comparison/internal/chart"
	"github.com/couchcryptid/air-quality-comparison/internal/domain"
	"github.com/couchcryptid/air-quality-comparison/internal/observability"
	"github.com/couchcryptid/air-quality-comparison/internal/report"
)

// Publisher ships a completed table to a downstream sink.
type Publisher interface {
	Publish(ctx context.Context, t domain.Table) error
}

// Options controls where output goes and how failed rows are summarised.
type Options struct {
	OutputPath    string
	FailurePolicy domain.FailurePolicy
	Renderer      *chart.Renderer // nil selects chart.NewRenderer()
}

// Result is the outcome of one run.
type Result struct {
	Table   domain.Table
	Summary domain.Summary
	Chart   []byte
}

// Pipeline collects readings for every location, then reports, renders and publishes them.
type Pipeline struct {
	fetcher   domain.Fetcher
	publisher Publisher
	out       io.Writer
	logger    *slog.Logger
	metrics   *observability.Metrics
	opts      Options
	result    atomic.Pointer[Result]
}

// New creates a Pipeline. publisher may be nil to skip publication.
func New(f domain.Fetcher, pub Publisher, out io.Writer, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	if opts.Renderer == nil {
		opts.Renderer = chart.NewRenderer()
	}
	if opts.FailurePolicy == "" {
		opts.FailurePolicy = domain.ExcludeFailed
	}
	return &Pipeline{
		fetcher:   f,
		publisher: pub,
		out:       out,
		logger:    logger,
		metrics:   metrics,
		opts:      opts,
	}
}

// CheckReadiness returns nil once a run has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.result.Load() == nil {
		return errors.New("no completed run yet")
	}
	return nil
}

// Chart returns the PNG of the last completed run.
func (p *Pipeline) Chart() ([]byte, bool) {
	res := p.result.Load()
	if res == nil {
		return nil, false
	}
	return res.Chart, true
}

// BuildTable fetches each location in order, one request at a time. A failed
// fetch is logged and recorded as a failed row; it never aborts the table.
// Cancellation of ctx does abort it, returning the context error.
func (p *Pipeline) BuildTable(ctx context.Context, runID string, locations []domain.Location) (domain.Table, error) {
	table := domain.Table{RunID: runID, Rows: make([]domain.Row, 0, len(locations))}

	for _, loc := range locations {
		if err := ctx.Err(); err != nil {
			return domain.Table{}, err
		}
		values, err := p.fetcher.Fetch(ctx, loc.Lat, loc.Lon)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.Table{}, ctxErr
			}
			p.logFetchFailure(loc, err)
			table.Rows = append(table.Rows, domain.FailedRow(loc, err.Error()))
			continue
		}
		table.Rows = append(table.Rows, domain.NewRow(loc, values))
	}

	return table, nil
}

func (p *Pipeline) logFetchFailure(loc domain.Location, err error) {
	attrs := []any{
		"location", loc.Name,
		"lat", loc.Lat,
		"lon", loc.Lon,
	}
	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		attrs = append(attrs, "status", statusErr.StatusCode)
	}
	attrs = append(attrs, "error", err)
	p.logger.Warn("fetch failed", attrs...)
}

// Run executes one full pass: build the table, summarise it, print the
// report, save the chart, and publish the rows. Cancellation, report and
// chart failures abort the run; a cancelled run leaves the output file alone.
func (p *Pipeline) Run(ctx context.Context, locations []domain.Location) (*Result, error) {
	start := domain.Now()
	runID := uuid.NewString()
	p.logger.Info("run started", "run_id", runID, "locations", len(locations), "failure_policy", p.opts.FailurePolicy)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	table, err := p.BuildTable(ctx, runID, locations)
	if err != nil {
		p.logger.Warn("run aborted", "run_id", runID, "error", err)
		return nil, fmt.Errorf("build table: %w", err)
	}
	summary := domain.Summarize(table, p.opts.FailurePolicy)
	p.recordSummary(table, summary)

	if err := report.Write(p.out, table, summary); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	png, err := p.renderChart(table, summary)
	if err != nil {
		return nil, err
	}

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, table); err != nil {
			p.logger.Error("publish rows failed", "run_id", runID, "error", err)
		}
	}

	res := &Result{Table: table, Summary: summary, Chart: png}
	p.result.Store(res)

	elapsed := domain.Now().Sub(start)
	p.metrics.RunDuration.Set(elapsed.Seconds())
	p.metrics.LastRunTimestamp.SetToCurrentTime()
	p.logger.Info("run complete",
		"run_id", runID,
		"rows", len(table.Rows),
		"failed", table.FailedCount(),
		"duration", elapsed,
	)
	return res, nil
}

func (p *Pipeline) renderChart(t domain.Table, s domain.Summary) ([]byte, error) {
	if p.opts.OutputPath == "" {
		var buf bytes.Buffer
		if err := p.opts.Renderer.Render(&buf, t, s); err != nil {
			return nil, fmt.Errorf("render chart: %w", err)
		}
		return buf.Bytes(), nil
	}
	png, err := p.opts.Renderer.Save(p.opts.OutputPath, t, s)
	if err != nil {
		return nil, fmt.Errorf("save chart: %w", err)
	}
	p.logger.Info("chart saved", "path", p.opts.OutputPath, "bytes", len(png))
	return png, nil
}

func (p *Pipeline) recordSummary(t domain.Table, s domain.Summary) {
	p.metrics.Locations.Set(float64(len(t.Rows)))
	p.metrics.FailedRows.Set(float64(t.FailedCount()))
	if s.Contributing == 0 {
		p.metrics.PollutantMean.Reset()
		p.metrics.PollutantStdDev.Reset()
		return
	}
	for i, pol := range domain.Pollutants {
		p.metrics.PollutantMean.WithLabelValues(string(pol)).Set(s.Stats[i].Mean)
		p.metrics.PollutantStdDev.WithLabelValues(string(pol)).Set(s.Stats[i].StdDev)
	}
}
