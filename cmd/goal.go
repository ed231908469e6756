package cmd

import (
	"flag"
	"fmt"

	"github.com/ndokic/tempo/internal/config"
	"github.com/ndokic/tempo/internal/tracker"
)

// goalCommand dispatches goal subcommands.
func goalCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("goal: subcommand required (add|list|progress|update|delete)")
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "add":
		return goalAdd(svc, rest)
	case "list", "ls":
		return goalList(svc)
	case "progress":
		return goalProgress(svc, rest)
	case "update":
		return goalUpdate(svc, rest)
	case "delete", "rm":
		return goalDelete(svc, rest)
	default:
		return fmt.Errorf("goal: unknown subcommand %q", sub)
	}
}

func goalAdd(svc *tracker.Service, args []string) error {
	fs := flag.NewFlagSet("tempo goal add", flag.ContinueOnError)
	title := fs.String("title", "", "Goal title (required)")
	desc := fs.String("desc", "", "Goal description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" && fs.NArg() > 0 {
		*title = fs.Arg(0)
	}

	goal, err := svc.AddGoal(*title, *desc)
	if err != nil {
		return err
	}
	fmt.Printf("Added goal [%d] %s\n", goal.ID, goal.Title)
	return nil
}

func goalList(svc *tracker.Service) error {
	goals := svc.Goals()
	if len(goals) == 0 {
		fmt.Println("No goals found.")
		return nil
	}
	for _, g := range goals {
		p := svc.Progress(g.ID)
		fmt.Printf("  [%d] %s: %d/%d tasks (%.0f%%)\n", g.ID, g.Title, p.Completed, p.Total, p.Percentage)
	}
	return nil
}

func goalProgress(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "goal")
	if err != nil {
		return err
	}
	p := svc.Progress(id)
	fmt.Printf("Goal [%d]: %d of %d linked tasks complete (%.2f%%)\n", id, p.Completed, p.Total, p.Percentage)
	return nil
}

func goalUpdate(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "goal")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("tempo goal update", flag.ContinueOnError)
	title := fs.String("title", "", "New title")
	desc := fs.String("desc", "", "New description")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	goal, err := svc.UpdateGoal(id, optionalStr(fs, "title", title), optionalStr(fs, "desc", desc))
	if err != nil {
		return err
	}
	fmt.Printf("Updated goal [%d] %s\n", goal.ID, goal.Title)
	return nil
}

func goalDelete(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "goal")
	if err != nil {
		return err
	}
	if err := svc.DeleteGoal(id); err != nil {
		return err
	}
	fmt.Printf("Deleted goal [%d] and unlinked its tasks and habits\n", id)
	return nil
}
