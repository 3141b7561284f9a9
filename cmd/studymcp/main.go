package main

import (
	"fmt"
	"os"

	"github.com/Primadeb/pri2025Study/internal/config"
	"github.com/Primadeb/pri2025Study/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}

	server := mcp.NewServer(cfg.ServerURL, cfg.APIKey, os.Stdout)
	if err := server.Run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "mcp server error: %s\n", err)
		os.Exit(1)
	}
}
