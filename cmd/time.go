package cmd

import (
	"flag"
	"fmt"
	"time"

	"github.com/ndokic/tempo/internal/analytics"
	"github.com/ndokic/tempo/internal/config"
)

// timeCommand prints time tracking analytics as JSON.
func timeCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tempo time", flag.ContinueOnError)
	period := fs.String("period", cfg.TrendPeriod, "Trend period: daily, weekly, or monthly")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var p analytics.Period
	switch *period {
	case config.PeriodDaily:
		p = analytics.PeriodDaily
	case config.PeriodWeekly:
		p = analytics.PeriodWeekly
	case config.PeriodMonthly:
		p = analytics.PeriodMonthly
	default:
		return fmt.Errorf("time: invalid period %q (expected daily, weekly, or monthly)", *period)
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	report := analytics.ComputeTimeAnalytics(svc.Habits(), svc.Goals(), p, time.Now())
	return printJSON(report)
}
