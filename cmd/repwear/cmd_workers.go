package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/repwear/app/jobs"
	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/pkg/cache"
	"github.com/shashiranjanraj/repwear/pkg/queue"
)

var queueWorkersFlag int

// repwear queue:work — run queue workers in a standalone process.
// Requires Redis so this process shares the queue with the API server.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start standalone queue workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		conn, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Disconnect(context.Background())

		if err := cache.Connect(); err != nil {
			return fmt.Errorf("queue:work needs redis: %w", err)
		}
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))

		db := conn.Database()
		jobs.Configure(
			repositories.NewCartRepository(db),
			repositories.NewUserRepository(db),
			repositories.NewOrderRepository(db),
		)
		jobs.RegisterAll()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("Queue workers started (%d). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue workers stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}
