package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/intuitive-care/operadoras-api/internal/config"
	"github.com/intuitive-care/operadoras-api/internal/etl"
	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/storage"
	"github.com/intuitive-care/operadoras-api/internal/utils"
	"go.uber.org/zap"
)

func main() {
	input := flag.String("input", "", "enriched CSV (REG_ANS;CNPJ;RazaoSocial;...;CNPJ_Valido)")
	migrateFirst := flag.Bool("migrate", false, "apply schema migrations before loading")
	latin1 := flag.Bool("latin1", false, "decode the input as ISO-8859-1")
	flag.Parse()

	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Logger.Sync()

	if *input == "" {
		logging.Logger.Fatal("missing -input")
	}

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	if *migrateFirst {
		if err := storage.RunMigrations(config.AppConfig.DatabaseURL); err != nil {
			logging.Logger.Fatal("failed to apply migrations", zap.Error(err))
		}
		version, dirty, err := storage.MigrationVersion(config.AppConfig.DatabaseURL)
		if err != nil {
			logging.Logger.Fatal("failed to read migration version", zap.Error(err))
		}
		logging.Logger.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}

	if err := config.InitPostgres(); err != nil {
		logging.Logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer config.CloseConnections()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *input, *latin1); err != nil {
		logging.Logger.Error("etl failed", zap.Error(err))
		config.CloseConnections()
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, latin1 bool) (err error) {
	start := time.Now()
	ctx, span, done := utils.TraceOperation(ctx, "etl.run", map[string]interface{}{
		"etl.input":  path,
		"etl.latin1": latin1,
	})
	defer func() {
		if err != nil {
			utils.RecordErrorInSpan(span, err, nil)
		}
		done()
	}()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = etl.Latin1Reader(f)
	}

	records, stats, err := etl.ReadEnrichedCSV(r)
	if err != nil {
		return err
	}
	logging.Logger.Info("input parsed",
		zap.String("file", path),
		zap.Int("rows", stats.Rows),
		zap.Int("skipped", stats.Skipped))

	_, aggSpan := utils.TraceBusinessLogic(ctx, "aggregate_despesas")
	aggregates := etl.Aggregate(records)
	utils.AddSpanAttribute(aggSpan, "aggregates", len(aggregates))
	aggSpan.End()

	result, err := etl.NewLoader(config.DB, logging.Logger.Named("etl")).Load(ctx, records, aggregates)
	if err != nil {
		return err
	}

	logging.Logger.Info("etl finished",
		zap.Int("operadoras", result.Operadoras),
		zap.Int("despesas", result.Despesas),
		zap.Int("agregadas", result.Agregadas),
		zap.Duration("duration", time.Since(start)))
	return nil
}
