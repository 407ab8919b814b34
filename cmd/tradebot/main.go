package main

import (
	"os"

	"github.com/MaiconJonatha/trading-bot/cmd/tradebot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
