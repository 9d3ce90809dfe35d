package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/kizilcik/internal/config"
	"chosenoffset.com/kizilcik/internal/placeholders"
)

func main() {
	configPath := flag.String("config", "game.yaml", "Path to the game rules file")
	outDir := flag.String("out", "Karakterler", "Directory to write character images into")
	force := flag.Bool("force", false, "Overwrite existing images")
	flag.Parse()

	fmt.Println("Kızılcık Placeholder Character Generator")
	fmt.Println("========================================")
	fmt.Println()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	written, err := placeholders.Generate(*outDir, cfg, *force)
	for _, path := range written {
		fmt.Printf("  wrote %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	if len(written) == 0 {
		fmt.Printf("All %d characters already have images in %s (use -force to replace them).\n", len(cfg.AllNames()), *outDir)
		return
	}
	fmt.Printf("Done! %d placeholder images written to %s.\n", len(written), *outDir)
}
