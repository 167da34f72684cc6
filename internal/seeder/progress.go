package seeder

import (
	"fmt"
	"io"
	"time"

	"userseed/internal/ui"
)

// BatchStats describes one completed batch of a generation run.
type BatchStats struct {
	Batch        int // 1-based index
	TotalBatches int
	BatchSize    int // rows inserted by this batch
	BatchTime    time.Duration
	Elapsed      time.Duration // cumulative since run start
	Completed    int           // rows inserted so far
	Total        int
	Percent      float64
	ETA          time.Duration
	HasETA       bool // false for the first batch
}

// Summary describes a finished generation run.
type Summary struct {
	Total   int
	Batches int
	Elapsed time.Duration
	Rate    float64 // rows per second, 0 when Elapsed is 0
}

// Tracker accumulates timing figures for a generation run. It performs
// no I/O; rendering is the Printer's job.
type Tracker struct {
	total        int
	totalBatches int
	completed    int
	batches      int
	start        time.Time
	batchStart   time.Time
	now          func() time.Time
}

// NewTracker creates a tracker for a run of total rows split into
// ceil(total/batchSize) batches.
func NewTracker(total, batchSize int) *Tracker {
	return &Tracker{
		total:        total,
		totalBatches: (total + batchSize - 1) / batchSize,
		now:          time.Now,
	}
}

// TotalBatches returns the number of batches the run will process.
func (t *Tracker) TotalBatches() int {
	return t.totalBatches
}

// Start marks the beginning of the run and of the first batch.
func (t *Tracker) Start() {
	t.start = t.now()
	t.batchStart = t.start
}

// BatchDone records size rows inserted and returns the stats for the
// batch just finished. The ETA extrapolates the per-row average so far
// and is withheld for the first batch, where it would be noise.
func (t *Tracker) BatchDone(size int) BatchStats {
	end := t.now()
	t.batches++
	t.completed += size

	stats := BatchStats{
		Batch:        t.batches,
		TotalBatches: t.totalBatches,
		BatchSize:    size,
		BatchTime:    end.Sub(t.batchStart),
		Elapsed:      end.Sub(t.start),
		Completed:    t.completed,
		Total:        t.total,
	}
	if t.total > 0 {
		stats.Percent = float64(t.completed) / float64(t.total) * 100
	}
	if t.batches > 1 && t.completed > 0 {
		perRow := stats.Elapsed / time.Duration(t.completed)
		stats.ETA = perRow * time.Duration(t.total-t.completed)
		stats.HasETA = true
	}

	t.batchStart = end
	return stats
}

// Finish returns the summary for the whole run.
func (t *Tracker) Finish() Summary {
	elapsed := t.now().Sub(t.start)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(t.completed) / elapsed.Seconds()
	}
	return Summary{
		Total:   t.completed,
		Batches: t.batches,
		Elapsed: elapsed,
		Rate:    rate,
	}
}

// Printer renders batch stats and run summaries as styled lines.
type Printer struct {
	out     io.Writer
	palette *ui.Palette
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, palette: ui.NewPalette()}
}

// PrintBatch writes the progress lines for one finished batch.
func (p *Printer) PrintBatch(s BatchStats) {
	fmt.Fprintf(p.out, "%s %d/%d: %d rows inserted in %.2fs\n",
		p.palette.Title.Render("batch"), s.Batch, s.TotalBatches, s.BatchSize, s.BatchTime.Seconds())
	fmt.Fprintf(p.out, "  progress: %d/%d rows (%.1f%%), elapsed %.2fs\n",
		s.Completed, s.Total, s.Percent, s.Elapsed.Seconds())
	if s.HasETA {
		fmt.Fprintf(p.out, "  %s %.2fs\n", p.palette.Help.Render("estimated time remaining:"), s.ETA.Seconds())
	}
}

// PrintSummary writes the final throughput line for a run.
func (p *Printer) PrintSummary(s Summary) {
	fmt.Fprintf(p.out, "%s generated %d rows in %d batches over %.2fs (%.2f rows/s)\n",
		p.palette.OK.Render("done:"), s.Total, s.Batches, s.Elapsed.Seconds(), s.Rate)
}
