// Command genschema writes the JSON schema for *.promptpad.yaml files so
// editors can validate and complete them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/isaacphi/promptpad/internal/config"
)

func main() {
	var outFile string
	flag.StringVar(&outFile, "out", "promptpad.schema.json", "Output file path")
	flag.Parse()

	if err := run(outFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outFile string) error {
	outFile, err := filepath.Abs(outFile)
	if err != nil {
		return fmt.Errorf("error resolving output path: %w", err)
	}

	schema, err := config.GenerateJSONSchema()
	if err != nil {
		return fmt.Errorf("error generating schema: %w", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(outFile, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("error writing schema to %s: %w", outFile, err)
	}

	fmt.Printf("Schema written to %s\n", outFile)
	return nil
}
