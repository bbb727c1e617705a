package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/farabin/finratio/internal/config"
	"github.com/farabin/finratio/internal/database"
	"github.com/farabin/finratio/internal/domain"
	"github.com/farabin/finratio/internal/export"
	"github.com/farabin/finratio/internal/ratio"
	"github.com/farabin/finratio/internal/recompute"
	"github.com/farabin/finratio/internal/report"
	"github.com/farabin/finratio/internal/store"
	"github.com/farabin/finratio/internal/worker"
)

func newApp(cfg config.Config) *cli.App {
	return &cli.App{
		Name:  "finratio",
		Usage: "compute financial ratios from periodic statements",
		Commands: []*cli.Command{
			{
				Name:  "compute",
				Usage: "compute ratios for a JSON array of periods",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: "-", Usage: "periods JSON file, - for stdin"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "-", Usage: "result JSON file, - for stdout"},
					&cli.StringFlag{Name: "xlsx", Usage: "also write the report workbook to this path"},
					&cli.StringFlag{Name: "company", Value: "company", Usage: "company name used in the workbook"},
				},
				Action: computeAction,
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations",
				Action: func(c *cli.Context) error {
					pool, err := connect(c, cfg)
					if err != nil {
						return err
					}
					pool.Close()
					slog.Info("migrations up to date")
					return nil
				},
			},
			{
				Name:  "import",
				Usage: "store a JSON array of periods for a company",
				Description: "Recompute reads only periods with \"is_tax_record\": true unless\n" +
					"TAX_RECORDS_ONLY=false, so mark yearly tax records in the input.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "company", Required: true, Usage: "company slug"},
					&cli.StringFlag{Name: "name", Usage: "company display name (defaults to the slug)"},
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: "-", Usage: "periods JSON file, - for stdin"},
				},
				Action: func(c *cli.Context) error { return importAction(c, cfg) },
			},
			{
				Name:  "recompute",
				Usage: "recompute and store ratios for one or all companies",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "company", Usage: "company slug"},
					&cli.BoolFlag{Name: "all", Usage: "recompute every company"},
				},
				Action: func(c *cli.Context) error { return recomputeAction(c, cfg) },
			},
			{
				Name:  "status",
				Usage: "show the latest recorded run of a company",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "company", Required: true, Usage: "company slug"},
				},
				Action: func(c *cli.Context) error { return statusAction(c, cfg) },
			},
			{
				Name:   "worker",
				Usage:  "periodically recompute every company until interrupted",
				Action: func(c *cli.Context) error { return workerAction(c, cfg) },
			},
		},
	}
}

func computeAction(c *cli.Context) error {
	in, closeIn, err := openInput(c.String("input"))
	if err != nil {
		return err
	}
	defer closeIn()

	periods, err := domain.DecodePeriods(in)
	if err != nil {
		return err
	}

	result, runErr := ratio.NewEngine().Compute(periods)
	if runErr != nil {
		slog.Error("ratio computation failed", "periods", len(periods), "error", runErr)
	}

	if err := writeJSON(c.String("output"), result); err != nil {
		return err
	}

	if path := c.String("xlsx"); path != "" && result.Succeeded() {
		rep := report.New(c.String("company"), c.String("company"), periods, result)
		if err := export.WriteWorkbookFile(path, export.BuildWorkbook(rep, time.Now())); err != nil {
			return err
		}
		slog.Info("wrote workbook", "path", path)
	}

	if runErr != nil {
		return cli.Exit("computation failed", 1)
	}
	return nil
}

func importAction(c *cli.Context, cfg config.Config) error {
	in, closeIn, err := openInput(c.String("input"))
	if err != nil {
		return err
	}
	defer closeIn()

	periods, err := domain.DecodePeriods(in)
	if err != nil {
		return err
	}

	pool, err := connect(c, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := store.NewPgRepository(pool)
	slug := c.String("company")
	name := c.String("name")
	if name == "" {
		name = slug
	}

	companyID, err := repo.EnsureCompany(c.Context, slug, name)
	if err != nil {
		return err
	}
	if err := repo.SavePeriods(c.Context, companyID, periods); err != nil {
		return fmt.Errorf("importing periods: %w", err)
	}

	slog.Info("imported periods", "company", slug, "periods", len(periods))
	return nil
}

func recomputeAction(c *cli.Context, cfg config.Config) error {
	slug := c.String("company")
	all := c.Bool("all")
	if (slug == "") == !all {
		return cli.Exit("exactly one of --company or --all is required", 2)
	}

	pool, err := connect(c, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := newRecomputeService(pool, cfg)
	exporter, err := newExporter(c, cfg)
	if err != nil {
		return err
	}

	if all {
		summary, err := svc.RecomputeAll(c.Context, func(ctx context.Context, rep report.Report) {
			if exporter == nil {
				return
			}
			if err := exporter.Export(ctx, rep); err != nil {
				slog.Error("export failed", "company", rep.Company, "error", err)
			}
		})
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return cli.Exit(fmt.Sprintf("%d of %d companies failed", summary.Failed, summary.Total), 1)
		}
		return nil
	}

	rep, err := svc.Recompute(c.Context, slug)
	if err != nil {
		return err
	}
	if exporter != nil {
		if err := exporter.Export(c.Context, rep); err != nil {
			return err
		}
	}
	return nil
}

func statusAction(c *cli.Context, cfg config.Config) error {
	pool, err := connect(c, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := store.NewPgRepository(pool)
	company, err := repo.GetCompany(c.Context, c.String("company"))
	if err != nil {
		return err
	}
	run, err := repo.LatestRun(c.Context, company.ID)
	if err != nil {
		return fmt.Errorf("latest run of %s: %w", company.Slug, err)
	}
	return writeJSON("-", run)
}

func workerAction(c *cli.Context, cfg config.Config) error {
	pool, err := connect(c, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	exporter, err := newExporter(c, cfg)
	if err != nil {
		return err
	}
	var hook worker.AfterRecomputeHook
	if exporter != nil {
		hook = exporter
	}

	worker.NewRecomputeWorker(newRecomputeService(pool, cfg), cfg.RecomputeInterval, hook).Run(c.Context)
	slog.Info("shutdown complete")
	return nil
}

// connect opens the database pool and applies pending migrations.
func connect(c *cli.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pool, err := database.Connect(c.Context, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(c.Context, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return pool, nil
}

func newRecomputeService(pool *pgxpool.Pool, cfg config.Config) *recompute.Service {
	return recompute.NewService(store.NewPgRepository(pool), ratio.NewEngine(), cfg.TaxRecordsOnly, cfg.RecomputeConcurrency)
}

// newExporter builds an export service from the configured writers, or nil when none is configured.
func newExporter(c *cli.Context, cfg config.Config) (*export.Service, error) {
	var writers export.MultiWriter

	if cfg.ExportDir != "" {
		w, err := export.NewXLSXWriter(cfg.ExportDir)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}

	if cfg.GoogleSheetsID != "" {
		if cfg.GoogleCredentialsJSON == "" {
			slog.Warn("GOOGLE_SHEETS_ID set without GOOGLE_CREDENTIALS_JSON, sheets export disabled")
		} else {
			w, err := export.NewSheetsWriter(c.Context, cfg.GoogleSheetsID, cfg.GoogleCredentialsJSON)
			if err != nil {
				return nil, err
			}
			writers = append(writers, w)
		}
	}

	if len(writers) == 0 {
		return nil, nil
	}
	return export.NewService(writers), nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func writeJSON(path string, v any) error {
	var out io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
