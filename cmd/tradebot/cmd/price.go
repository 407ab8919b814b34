package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:   "price TICKER",
	Short: "Look up the current price of a ticker",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ticker := args[0]
	price, err := newSource(cfg).CurrentPrice(cmd.Context(), ticker)
	if err != nil {
		return fmt.Errorf("get price for %s: %w", ticker, err)
	}

	fmt.Printf("%s: %.2f\n", ticker, price)
	return nil
}
