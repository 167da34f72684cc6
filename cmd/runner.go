package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v3"

	"userseed/internal/models"
	"userseed/internal/repositories"
	"userseed/internal/seeder"
	"userseed/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, seedCommand, accountsCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolveConfig returns the config from the command's --config flag. The
// Runner's config covers only a missing file at the default path; an
// explicit --config that fails to load is an error, so a bad path can
// never silently aim a command at the wrong database.
func (r *Runner) resolveConfig(cmd *cli.Command) (*shared.Config, error) {
	path := cmd.String("config")
	if path == "" {
		return r.config, nil
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		if !cmd.IsSet("config") && errors.Is(err, os.ErrNotExist) {
			return r.config, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return config, nil
}

// openDB opens, pings, and verifies the configured database. The caller
// owns the returned handle and must close it; no component does.
func (r *Runner) openDB(cmd *cli.Command) (*sqlx.DB, error) {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	db, err := shared.NewDatabase(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.VerifyConnection(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Setup writes a starter config file when absent and ensures both the
// seed table and the accounts table exist.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err != nil {
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file", "path", configPath, "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := seeder.EnsureSeedTable(ctx, db); err != nil {
		return err
	}
	if err := repositories.NewAccountRepository(db).EnsureSchema(ctx); err != nil {
		return err
	}

	return r.writePlainln("database ready")
}

// SeedGenerate runs a batched generation of synthetic users.
func (r *Runner) SeedGenerate(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	count := cmd.Int("count")
	if count == 0 {
		count = config.Seed.Count
	}
	batchSize := cmd.Int("batch-size")
	if batchSize == 0 {
		batchSize = config.Seed.BatchSize
	}

	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	generator := seeder.NewGenerator(seeder.GeneratorOpts{
		DB:      db,
		Printer: seeder.NewPrinter(r.output),
		Logger:  r.logger,
	})

	_, err = generator.Run(ctx, count, batchSize)
	return err
}

// SeedDrop drops the seed table. Destructive and unconditional.
func (r *Runner) SeedDrop(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := seeder.DropSeedTable(ctx, db); err != nil {
		return err
	}

	return r.writePlainln("table %s dropped", seeder.SeedTable)
}

// AccountsAdd creates an account from the command arguments.
func (r *Runner) AccountsAdd(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewAccountRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	id, err := repo.Add(ctx,
		cmd.StringArg("username"),
		cmd.StringArg("email"),
		cmd.String("full-name"),
		cmd.String("password-hash"),
	)
	if err != nil {
		return err
	}

	return r.writePlainln("created account %d", id)
}

// AccountsGet looks up one account by id or username.
func (r *Runner) AccountsGet(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewAccountRepository(db)

	var account *models.Account
	if username := cmd.String("username"); username != "" {
		account, err = repo.GetByUsername(ctx, username)
	} else if cmd.IsSet("id") {
		account, err = repo.GetByID(ctx, int64(cmd.Int("id")))
	} else {
		return fmt.Errorf("%w: provide --id or --username", shared.ErrMissingArgument)
	}

	if errors.Is(err, shared.ErrNotFound) {
		return r.writePlainln("not found")
	}
	if err != nil {
		return err
	}

	return r.writeJSON(account, cmd.Bool("pretty"))
}

// AccountsList prints a page of accounts.
func (r *Runner) AccountsList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	accounts, err := repositories.NewAccountRepository(db).List(ctx, repositories.ListOptions{
		Limit:      uint64(cmd.Int("limit")),
		Offset:     uint64(cmd.Int("offset")),
		ActiveOnly: !cmd.Bool("all"),
	})
	if err != nil {
		return err
	}

	return r.writeJSON(accounts, cmd.Bool("pretty"))
}

// AccountsSearch prints accounts matching the search term.
func (r *Runner) AccountsSearch(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	accounts, err := repositories.NewAccountRepository(db).Search(ctx, cmd.StringArg("term"))
	if err != nil {
		return err
	}

	return r.writeJSON(accounts, cmd.Bool("pretty"))
}

// AccountsEdit applies the flag-supplied fields to an account.
func (r *Runner) AccountsEdit(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	var patch models.AccountPatch
	if cmd.IsSet("email") {
		email := cmd.String("email")
		patch.Email = &email
	}
	if cmd.IsSet("full-name") {
		fullName := cmd.String("full-name")
		patch.FullName = &fullName
	}
	if cmd.IsSet("password-hash") {
		passwordHash := cmd.String("password-hash")
		patch.PasswordHash = &passwordHash
	}
	if cmd.IsSet("active") {
		active := cmd.Bool("active")
		patch.IsActive = &active
	}

	updated, err := repositories.NewAccountRepository(db).Edit(ctx, int64(cmd.Int("id")), patch)
	if err != nil {
		return err
	}
	if !updated {
		return r.writePlainln("no changes")
	}
	return r.writePlainln("updated account %d", cmd.Int("id"))
}

// AccountsDelete removes an account permanently.
func (r *Runner) AccountsDelete(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := repositories.NewAccountRepository(db).Delete(ctx, int64(cmd.Int("id")))
	if err != nil {
		return err
	}
	if !deleted {
		return r.writePlainln("not found")
	}
	return r.writePlainln("deleted account %d", cmd.Int("id"))
}

// AccountsSetActive flips the is_active flag via Deactivate/Activate.
func (r *Runner) AccountsSetActive(ctx context.Context, cmd *cli.Command, active bool) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewAccountRepository(db)

	id := int64(cmd.Int("id"))

	var updated bool
	if active {
		updated, err = repo.Activate(ctx, id)
	} else {
		updated, err = repo.Deactivate(ctx, id)
	}
	if err != nil {
		return err
	}
	if !updated {
		return r.writePlainln("not found")
	}
	return r.writePlainln("updated account %d", id)
}
