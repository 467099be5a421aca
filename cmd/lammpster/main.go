package main

import (
	"log/slog"
	"os"

	"github.com/aeveltstra/lammpster/internal/common"
)

func main() {
	logger := common.NewCLILogger(slog.LevelInfo)
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
