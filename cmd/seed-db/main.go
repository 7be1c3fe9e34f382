// Command seed-db prepares a fresh database: it runs migrations, creates the
// default admin account, and loads the menu from a JSON file when the menu
// table is empty.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tlucafe/pos/internal/domain/auth"
	"github.com/tlucafe/pos/internal/domain/catalog"
	"github.com/tlucafe/pos/internal/repository"
)

type menuItemJSON struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Size            string          `json:"size"`
	TemperatureType string          `json:"temperature_type"`
	Description     string          `json:"description"`
}

func main() {
	var (
		databaseURL string
		menuFile    string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&menuFile, "menu-file", "db/seed/menu.json", "path to menu JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, menuFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, menuFile string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedAdmin(ctx, pool); err != nil {
		return errors.Wrap(err, "seed admin")
	}

	if err := seedMenu(ctx, pool, menuFile); err != nil {
		return errors.Wrap(err, "seed menu")
	}

	return nil
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("ensuring default admin account")

	svc := auth.NewService(repository.NewUserRepository(pool))
	return svc.EnsureAdmin(ctx)
}

func seedMenu(ctx context.Context, pool *pgxpool.Pool, menuFile string) error {
	repo := repository.NewCatalogRepository(pool)

	existing, err := repo.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list menu")
	}
	if len(existing) > 0 {
		slog.Info("menu already seeded, skipping", slog.Int("items", len(existing)))
		return nil
	}

	slog.Info("reading menu file", slog.String("path", menuFile))

	data, err := os.ReadFile(menuFile)
	if err != nil {
		return errors.Wrap(err, "read menu file")
	}

	var items []menuItemJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Wrap(err, "parse menu JSON")
	}

	slog.Info("inserting menu items", slog.Int("count", len(items)))

	for _, raw := range items {
		size, err := catalog.ParseSize(raw.Size)
		if err != nil {
			return errors.Wrapf(err, "item %s", raw.Name)
		}
		class, err := catalog.ParseTempClass(raw.TemperatureType)
		if err != nil {
			return errors.Wrapf(err, "item %s", raw.Name)
		}
		item := &catalog.MenuItem{
			Name:        raw.Name,
			Price:       raw.Price,
			Size:        size,
			TempClass:   class,
			Description: raw.Description,
			Available:   true,
		}
		if err := item.Validate(); err != nil {
			return errors.Wrapf(err, "item %s", raw.Name)
		}
		if err := repo.Create(ctx, item); err != nil {
			return errors.Wrapf(err, "insert item %s", raw.Name)
		}

		slog.Info("inserted menu item", slog.Int64("id", item.ID), slog.String("name", item.Name))
	}

	return nil
}
