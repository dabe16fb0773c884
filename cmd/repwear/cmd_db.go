package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/repwear/config"
	"github.com/shashiranjanraj/repwear/database/seeders"
	"github.com/shashiranjanraj/repwear/pkg/mongodb"
)

// connectDB loads config and opens a Mongo connection for one-shot
// commands. The caller must Disconnect.
func connectDB(ctx context.Context) (*mongodb.Conn, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return mongodb.Connect(ctx, config.MongoURI(), config.MongoDB())
}

// repwear seed — run all registered seeders.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with baseline data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		conn, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Disconnect(context.Background())

		fmt.Println("Seeding database…")
		if err := seeders.RunAll(ctx, conn.Database()); err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil
	},
}

// repwear db:indexes — create the indexes the application relies on.
var indexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Create MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		conn, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Disconnect(context.Background())

		if err := conn.EnsureIndexes(ctx); err != nil {
			return err
		}
		fmt.Println("Indexes are in sync.")
		return nil
	},
}
