package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/freshbites/planner/pkg/infrastructure/config"
	"github.com/freshbites/planner/pkg/infrastructure/logging"
	"github.com/freshbites/planner/pkg/infrastructure/repositories/memory"
	"github.com/freshbites/planner/pkg/interfaces/http"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store := memory.NewStore(nil)
	services := http.NewServices(store, cfg, log)
	router := http.NewRouter(services, cfg, log)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("starting planning API", "addr", addr, "log_mode", cfg.LogMode)
	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
