package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nodebucket/nodebucket/internal/config"
	"github.com/nodebucket/nodebucket/internal/database"
	"github.com/nodebucket/nodebucket/internal/employee/repository"
	"github.com/nodebucket/nodebucket/internal/employee/service"
	"github.com/nodebucket/nodebucket/internal/seed"
	"github.com/nodebucket/nodebucket/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Create employees and their tasks from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			entries, err := seed.Load(f)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Printf("%s: %d employees\n", args[0], len(entries))
				return nil
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			svc, closeFn, err := openService(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := seed.Apply(ctx, svc, entries)
			if err != nil {
				return err
			}
			fmt.Printf("created %d, skipped %d\n", res.Created, res.Skipped)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and validate the file without writing")
	return cmd
}

func openService(ctx context.Context, cfg *config.Config) (service.Service, func(), error) {
	opts := []service.Option{
		service.WithMaxTextLength(cfg.Tasks.MaxTextLength),
		service.WithNumericIDs(cfg.Tasks.NumericEmployeeIDs),
	}
	if cfg.MongoDB.URI == "" {
		logger.Warnf("MONGODB_URI not set; seeding an in-memory store that is discarded on exit")
		return service.NewMemoryService(opts...), func() {}, nil
	}
	client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, cfg.MongoDB.ConnectAttempts, time.Second)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewMongoRepo(client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection))
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	return service.New(repo, opts...), func() { _ = client.Disconnect(context.Background()) }, nil
}
