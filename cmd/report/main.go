package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/ruthwikaki/invochat-go/internal/ai"
	"github.com/ruthwikaki/invochat-go/internal/config"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/reorder"
	"github.com/ruthwikaki/invochat-go/internal/repository"
	"github.com/ruthwikaki/invochat-go/internal/repository/postgres"
	"github.com/ruthwikaki/invochat-go/internal/service"
	"github.com/ruthwikaki/invochat-go/internal/storage"
)

type contextKey string

const dbKey contextKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newCompanyFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "company",
		Usage:    "Company UUID the report is scoped to",
		Required: true,
		EnvVars:  []string{"COMPANY_ID"},
	}
}

func initDB(c *cli.Context) error {
	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*postgres.DB, error) {
	db, ok := c.Context.Value(dbKey).(*postgres.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func companyFromFlag(c *cli.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.String("company"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid company id %q: %w", c.String("company"), err)
	}
	return id, nil
}

func newReorderService(c *cli.Context, db *postgres.DB, cfg *config.Config) *service.ReorderService {
	var refiner reorder.Refiner = reorder.NopRefiner{}
	if c.Bool("refine") && cfg.AI.Enabled && cfg.AI.APIKey != "" {
		refiner = ai.NewRefiner(ai.NewClient(cfg.AI))
	}

	return service.NewReorderService(
		postgres.NewInventoryRepository(db),
		postgres.NewSalesRepository(db),
		postgres.NewSettingsRepository(db, cfg.Reorder),
		postgres.NewPurchaseOrderRepository(db),
		postgres.NewAuditRepository(db),
		refiner,
		cfg.Reorder,
	)
}

func runReorder(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}
	companyID, err := companyFromFlag(c)
	if err != nil {
		return err
	}

	svc := newReorderService(c, db, config.Load())

	var result []domain.ReorderSuggestion
	if c.Bool("refine") {
		result, err = svc.Suggestions(c.Context, companyID)
	} else {
		result, err = svc.BaselineSuggestions(c.Context, companyID)
	}
	if err != nil {
		return fmt.Errorf("failed to compute reorder suggestions: %w", err)
	}

	if len(result) == 0 {
		fmt.Println("No reorder suggestions: all tracked variants are at or above their reorder point.")
		return nil
	}

	if out := c.String("output"); out != "" {
		exporter := service.NewExportService(mustNoopStorage())
		payload, _, err := exporter.SuggestionsCSV(c.Context, companyID, result)
		if err != nil {
			return fmt.Errorf("failed to render CSV: %w", err)
		}
		if err := os.WriteFile(out, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Printf("Wrote %d suggestion(s) to %s\n", len(result), out)
		return nil
	}

	fmt.Printf("%-20s %8s %8s %10s  %s\n", "SKU", "ON HAND", "REORDER", "SUGGESTED", "REASON")
	for _, s := range result {
		reason := ""
		if s.AdjustmentReason != nil {
			reason = *s.AdjustmentReason
		}
		fmt.Printf("%-20s %8d %8d %10d  %s\n",
			s.SKU, s.CurrentQuantity, s.ReorderPoint, s.SuggestedReorderQuantity, reason)
	}
	return nil
}

func runDeadStock(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}
	companyID, err := companyFromFlag(c)
	if err != nil {
		return err
	}

	days := c.Int("days")
	items, err := postgres.NewAnalyticsRepository(db).DeadStock(c.Context, companyID, days)
	if err != nil {
		return fmt.Errorf("failed to compute dead stock: %w", err)
	}

	if len(items) == 0 {
		fmt.Printf("No dead stock: every stocked variant sold within the last %d days.\n", days)
		return nil
	}

	var total int64
	fmt.Printf("%-20s %8s %12s %10s  %s\n", "SKU", "QTY", "VALUE", "IDLE DAYS", "LAST SOLD")
	for _, item := range items {
		lastSold := "never"
		if item.LastSoldAt != nil {
			lastSold = item.LastSoldAt.Format("2006-01-02")
		}
		fmt.Printf("%-20s %8d %12s %10d  %s\n",
			item.SKU, item.Quantity, formatCents(item.TotalValue), item.DaysSinceSale, lastSold)
		total += item.TotalValue
	}
	fmt.Printf("\n%d item(s), %s tied up in dead stock.\n", len(items), formatCents(total))
	return nil
}

func runExport(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}
	companyID, err := companyFromFlag(c)
	if err != nil {
		return err
	}

	dir := c.String("output-dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	exporter := service.NewExportService(mustNoopStorage())
	svc := newReorderService(c, db, config.Load())

	var suggestions []domain.ReorderSuggestion
	if c.Bool("refine") {
		suggestions, err = svc.Suggestions(c.Context, companyID)
	} else {
		suggestions, err = svc.BaselineSuggestions(c.Context, companyID)
	}
	if err != nil {
		return fmt.Errorf("failed to compute reorder suggestions: %w", err)
	}
	payload, filename, err := exporter.SuggestionsCSV(c.Context, companyID, suggestions)
	if err != nil {
		return fmt.Errorf("failed to render suggestions CSV: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %d suggestion(s) to %s\n", len(suggestions), path)

	all, err := collectVariants(c.Context, postgres.NewInventoryRepository(db), companyID)
	if err != nil {
		return fmt.Errorf("failed to list inventory: %w", err)
	}
	payload, filename, err = exporter.InventoryCSV(c.Context, companyID, all)
	if err != nil {
		return fmt.Errorf("failed to render inventory CSV: %w", err)
	}
	path = filepath.Join(dir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %d variant(s) to %s\n", len(all), path)
	return nil
}

// collectVariants walks the paginated listing until every variant is loaded.
func collectVariants(ctx context.Context, repo repository.InventoryRepository, companyID uuid.UUID) ([]domain.ProductVariant, error) {
	const pageSize = 200

	var all []domain.ProductVariant
	for offset := 0; ; offset += pageSize {
		page, total, err := repo.ListVariants(ctx, companyID, "", pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

func formatCents(v int64) string {
	return fmt.Sprintf("$%d.%02d", v/100, v%100)
}

func mustNoopStorage() storage.ObjectStorage {
	store, _ := storage.NewObjectStorage(config.StorageConfig{})
	return store
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "report",
		Usage: "Inventory reporting and seeding against the database directly",
		Commands: []*cli.Command{
			{
				Name:  "reorder",
				Usage: "Print or export the current reorder suggestions",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newCompanyFlag(),
					&cli.BoolFlag{
						Name:  "refine",
						Usage: "Run the AI refinement pass (requires AI_API_KEY)",
						Value: false,
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Write CSV to this path instead of printing a table",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runReorder,
			},
			{
				Name:  "dead-stock",
				Usage: "List stocked variants with no recent sales",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newCompanyFlag(),
					&cli.IntFlag{
						Name:  "days",
						Usage: "Days without a sale before stock counts as dead",
						Value: 90,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runDeadStock,
			},
			{
				Name:  "export",
				Usage: "Write reorder suggestion and inventory CSVs to a directory",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newCompanyFlag(),
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Directory the CSV files are written to",
						Value: ".",
					},
					&cli.BoolFlag{
						Name:  "refine",
						Usage: "Run the AI refinement pass (requires AI_API_KEY)",
						Value: false,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runExport,
			},
			{
				Name:  "seed",
				Usage: "Seed a demo company with suppliers, inventory and sales history",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "company-name",
						Usage: "Name of the demo company to create",
						Value: "Demo Outfitters",
					},
					&cli.IntFlag{
						Name:  "history-days",
						Usage: "Days of order history to generate",
						Value: 120,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runSeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("error: %v", err)
	}
}
