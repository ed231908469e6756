package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/ndokic/tempo/internal/config"
	"github.com/ndokic/tempo/internal/logging"
	"github.com/ndokic/tempo/internal/store"
)

// doctorCommand checks the data directory and validates each data file
// against its embedded schema.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tempo doctor", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("Tempo Doctor")
	fmt.Println("============")
	fmt.Println()

	allOK := true

	fmt.Printf("Data directory: %s\n", cfg.DataDir)
	if info, err := os.Stat(cfg.DataDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first write)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Println("  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	fmt.Printf("Journal directory: %s\n", cfg.JournalDir)
	if info, err := os.Stat(cfg.JournalDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first write)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Println("  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)
	st, err := store.New(cfg.DataDir, logger)
	if err != nil {
		fmt.Printf("  ❌ Opening store: %v\n", err)
		return fmt.Errorf("doctor checks failed")
	}

	fmt.Println("Data files:")
	for _, result := range st.Check() {
		switch {
		case result.Missing:
			fmt.Printf("  ⚠️  %s: not found (loads as empty)\n", result.File)
		case result.Err != nil:
			fmt.Printf("  ❌ %s: %v\n", result.File, result.Err)
			allOK = false
		default:
			fmt.Printf("  ✅ %s\n", result.File)
		}
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Tempo may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}
