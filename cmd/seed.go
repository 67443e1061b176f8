package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

const seedTimeout = 30 * time.Second

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Загрузить каталог агентств и параметризацию по умолчанию",
	Long: `Создает или обновляет четыре агентства каталога и их параметризацию.
Существующая параметризация не перезаписывается, повторный запуск безопасен.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context(), configPath)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(ctx context.Context, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Seed: memory storage is seeded on serve, nothing to do")
		return nil
	}

	st, err := openStorage(cfg, log, nil, nil)
	if err != nil {
		return err
	}
	defer st.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	catalogSvc := catalogService.NewService(st.agencies, log)
	if err := catalogSvc.Seed(ctx, st.parameters, catalogService.DefaultSeed); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	log.Info("Seed: catalog and default parameters loaded")
	return nil
}
