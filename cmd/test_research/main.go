package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"coldreach/internal/config"
	"coldreach/internal/research"
)

func main() {
	args := os.Args
	if len(args) < 2 {
		fmt.Println("Usage: go run cmd/test_research/main.go <URL>")
		fmt.Println("Example: go run cmd/test_research/main.go https://example.com")
		os.Exit(1)
	}
	targetURL := args[1]

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Researching %s...\n", targetURL)
	fmt.Println("---")

	researcher := research.NewResearcher(cfg, nil)
	res, err := researcher.Research(context.Background(), targetURL)
	if err != nil {
		log.Fatalf("Research failed: %v", err)
	}

	raw, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render result: %v", err)
	}
	fmt.Println(string(raw))
}
