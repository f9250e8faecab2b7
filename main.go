package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ekaya-inc/ekaya-rekey/pkg/config"
	"github.com/ekaya-inc/ekaya-rekey/pkg/logging"
	"github.com/ekaya-inc/ekaya-rekey/pkg/prompt"
	"github.com/ekaya-inc/ekaya-rekey/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config YAML (default: ./config.yaml if present)")
	inputRoot := flag.String("in", "", "Input tree to copy (overrides input_root)")
	outputRoot := flag.String("out", "", "Output tree to write (overrides output_root)")
	noPrompt := flag.Bool("no-prompt", false, "Fail instead of asking for missing database/schema names")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(Version, *configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *inputRoot != "" {
		cfg.InputRoot = *inputRoot
	}
	if *outputRoot != "" {
		cfg.OutputRoot = *outputRoot
	}

	// Ask for whatever the config did not provide
	if !*noPrompt {
		pair := cfg.Rename.Pair()
		if err := prompt.New(os.Stdin, os.Stdout).FillRenames(&pair); err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		cfg.Rename.SetPair(pair)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := services.NewRekeyService(services.RekeyOptions{
		InputRoot:     cfg.InputRoot,
		OutputRoot:    cfg.OutputRoot,
		DatabasesPath: cfg.DatabasesPath(),
		LogPath:       cfg.LogPath(),
		Extensions:    cfg.Extensions,
		Renames:       cfg.Rename.Pair(),
	}, logger)

	summary, err := svc.Run(ctx)
	if err != nil {
		logger.Sync()
		log.Fatalf("Rekey failed: %v", err)
	}

	fmt.Println("All files have been copied, folder structure updated, and YAML files have been processed in the converted folder.")
	fmt.Printf("Changes have been logged in %s\n", summary.LogPath)
	fmt.Printf("Processed %d files (%d skipped), %d changes, %d files moved, %d directories renamed\n",
		summary.FilesProcessed, summary.FilesSkipped, summary.ChangesLogged,
		summary.FilesRelocated, summary.DirectoriesRenamed)
}
