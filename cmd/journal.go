package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/ndokic/tempo/internal/config"
	"github.com/ndokic/tempo/internal/journal"
)

// journalCommand dispatches journal subcommands.
func journalCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("journal: subcommand required (add|list|search)")
	}

	j, err := newJournal(cfg)
	if err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "add":
		return journalAdd(j, rest)
	case "list", "ls":
		return journalList(j, rest)
	case "search":
		return journalSearch(j, rest)
	default:
		return fmt.Errorf("journal: unknown subcommand %q", sub)
	}
}

func journalAdd(j *journal.Journal, args []string) error {
	fs := flag.NewFlagSet("tempo journal add", flag.ContinueOnError)
	duration := fs.Int("duration", 0, "Seconds spent writing the entry")
	continued := fs.Bool("continued", false, "Mark as a continuation of the previous entry")
	if err := fs.Parse(args); err != nil {
		return err
	}

	content := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("journal add: entry content is required")
	}

	entry, err := j.Save(content, *duration, *continued)
	if err != nil {
		return err
	}
	fmt.Printf("Saved journal entry %s\n", entry.ID)
	return nil
}

func journalList(j *journal.Journal, args []string) error {
	fs := flag.NewFlagSet("tempo journal list", flag.ContinueOnError)
	days := fs.Int("days", 0, "Only show entries from the last N days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var entries []journal.Entry
	var err error
	if *days > 0 {
		entries, err = j.Recent(*days)
	} else {
		entries, err = j.All()
	}
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func journalSearch(j *journal.Journal, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("journal search: query is required")
	}
	entries, err := j.Search(args[0])
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func printEntries(entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Println("No journal entries found.")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %s\n", e.Date, summarize(e.Content))
	}
}

// summarize truncates entry content to one display line.
func summarize(content string) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if len(line) > 72 {
		line = line[:69] + "..."
	}
	return line
}
