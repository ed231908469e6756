package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ndokic/tempo/internal/analytics"
	"github.com/ndokic/tempo/internal/config"
)

// statsCommand prints task or habit analytics as JSON.
func statsCommand(cfg *config.Config, args []string) error {
	kind := "tasks"
	if len(args) > 0 {
		kind = args[0]
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	now := time.Now()
	var report *analytics.Report
	switch kind {
	case "tasks":
		report = analytics.ComputeTaskAnalytics(svc.Tasks(), svc.Goals(), now)
	case "habits":
		report = analytics.ComputeHabitAnalytics(svc.Habits(), svc.Goals(), now)
	default:
		return fmt.Errorf("stats: unknown kind %q (expected tasks or habits)", kind)
	}

	return printJSON(report)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
