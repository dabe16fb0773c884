// Command repwear is the project CLI: serve the API, seed the database,
// sync indexes, run queue workers, inspect routes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "repwear",
	Short: "RepWear — storefront API CLI",
	Long:  "RepWear is the API behind the RepWear storefront and admin panel.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(indexesCmd)

	rootCmd.AddCommand(queueWorkCmd)
}
