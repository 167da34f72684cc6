// package seeder implements batched generation of synthetic users with
// uniqueness-conflict retry and progress reporting.
package seeder

import (
	"context"
	"fmt"
	"io"

	sq "github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"

	"userseed/internal/shared"
)

// Generator drives batched synthesis and insertion of seed users.
type Generator struct {
	db      *sqlx.DB
	synth   Synthesizer
	printer *Printer
	logger  *log.Logger
}

// GeneratorOpts contains the dependencies for creating a Generator.
type GeneratorOpts struct {
	DB      *sqlx.DB
	Synth   Synthesizer
	Printer *Printer
	Logger  *log.Logger
}

// NewGenerator creates a new Generator with the provided dependencies.
// Synth, Printer, and Logger fall back to defaults when nil.
func NewGenerator(opts GeneratorOpts) *Generator {
	if opts.Synth == nil {
		opts.Synth = NewSynth(nil)
	}
	if opts.Printer == nil {
		opts.Printer = NewPrinter(io.Discard)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Generator{
		db:      opts.DB,
		synth:   opts.Synth,
		printer: opts.Printer,
		logger:  opts.Logger,
	}
}

// Run ensures the seed table exists, then inserts total rows in batches
// of batchSize. Each row commits individually, which surfaces duplicate
// keys immediately and bounds the loss from a crash to the in-flight row.
// A non-duplicate storage error aborts the run; rows already committed
// stay in place.
func (g *Generator) Run(ctx context.Context, total, batchSize int) (Summary, error) {
	if total <= 0 {
		return Summary{}, fmt.Errorf("%w: count must be positive, got %d", shared.ErrInvalidArgument, total)
	}
	if batchSize <= 0 {
		return Summary{}, fmt.Errorf("%w: batch size must be positive, got %d", shared.ErrInvalidArgument, batchSize)
	}

	if err := EnsureSeedTable(ctx, g.db); err != nil {
		return Summary{}, err
	}

	logger := shared.WithLogger(g.logger, "run", shared.RunID())
	tracker := NewTracker(total, batchSize)
	logger.Info("starting generation", "count", total, "batch_size", batchSize, "batches", tracker.TotalBatches())
	tracker.Start()

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}

		for slot := start; slot < end; slot++ {
			if err := g.insertOne(ctx); err != nil {
				logger.Error("generation aborted", "completed", slot, "err", err)
				return Summary{}, err
			}
		}

		g.printer.PrintBatch(tracker.BatchDone(end - start))
	}

	summary := tracker.Finish()
	g.printer.PrintSummary(summary)
	logger.Info("generation complete", "rows", summary.Total, "elapsed", summary.Elapsed, "rate", fmt.Sprintf("%.2f/s", summary.Rate))
	return summary, nil
}

// insertOne synthesizes candidates until one commits. A duplicate email
// or username discards the candidate and retries the same slot; the
// synthetic space is large relative to any realistic row count, so the
// loop carries no cap or backoff.
func (g *Generator) insertOne(ctx context.Context) error {
	for {
		u := g.synth.Synthesize()

		query, args, err := sq.Insert(SeedTable).
			Columns("name", "email", "gender", "phone", "address", "username", "date_of_birth", "signup_date", "is_active").
			Values(u.Name, u.Email, u.Gender, u.Phone, u.Address, u.Username, u.DateOfBirth, u.SignupDate, u.IsActive).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert: %w", err)
		}

		if _, err := g.db.ExecContext(ctx, query, args...); err != nil {
			if shared.IsDuplicate(err) {
				continue
			}
			return fmt.Errorf("failed to insert seed user: %w", err)
		}

		return nil
	}
}
