package cmd

import (
	"flag"
	"fmt"
	"time"

	"github.com/ndokic/tempo/internal/config"
	"github.com/ndokic/tempo/internal/model"
	"github.com/ndokic/tempo/internal/tracker"
)

// habitCommand dispatches habit subcommands.
func habitCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("habit: subcommand required (add|list|check|uncheck|streak|update|delete|search)")
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "add":
		return habitAdd(svc, rest)
	case "list", "ls":
		return habitList(svc, rest)
	case "check":
		return habitCheck(svc, rest)
	case "uncheck":
		return habitUncheck(svc, rest)
	case "streak":
		return habitStreak(svc, rest)
	case "update":
		return habitUpdate(svc, rest)
	case "delete", "rm":
		return habitDelete(svc, rest)
	case "search":
		return habitSearch(svc, rest)
	default:
		return fmt.Errorf("habit: unknown subcommand %q", sub)
	}
}

func habitAdd(svc *tracker.Service, args []string) error {
	fs := flag.NewFlagSet("tempo habit add", flag.ContinueOnError)
	title := fs.String("title", "", "Habit title (required)")
	desc := fs.String("desc", "", "Habit description")
	priority := fs.String("priority", string(model.PriorityNext), "Priority: Now, Next, or Later")
	frequency := fs.String("frequency", model.FrequencyDaily, "Frequency: daily, weekly, or custom")
	goalID := fs.Int("goal", 0, "Goal ID to link to")
	trackTime := fs.Bool("track-time", false, "Record minutes spent on each check-in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" && fs.NArg() > 0 {
		*title = fs.Arg(0)
	}

	p := model.Priority(*priority)
	if !p.Valid() {
		return fmt.Errorf("invalid priority %q: must be Now, Next, or Later", *priority)
	}
	var goal *int
	if *goalID > 0 {
		goal = goalID
	}

	habit, err := svc.AddHabit(*title, *desc, p, *frequency, goal, *trackTime)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit [%d] %s\n", habit.ID, habit.Title)
	return nil
}

func habitList(svc *tracker.Service, args []string) error {
	fs := flag.NewFlagSet("tempo habit list", flag.ContinueOnError)
	priority := fs.String("priority", "", "Filter by priority")
	frequency := fs.String("frequency", "", "Filter by frequency")
	goalID := fs.Int("goal", 0, "Filter by goal ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f := tracker.HabitFilter{
		Priority:  model.Priority(*priority),
		Frequency: *frequency,
	}
	if *goalID > 0 {
		f.GoalID = goalID
	}

	habits := svc.FilterHabits(f)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}
	today := model.DateOf(time.Now())
	for _, h := range habits {
		printHabit(svc, h, today)
	}
	return nil
}

func habitCheck(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "habit")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("tempo habit check", flag.ContinueOnError)
	date := fs.String("date", "", "Check-in date (YYYY-MM-DD, default today)")
	minutes := fs.Float64("minutes", 0, "Minutes spent (time-tracking habits only)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var timeSpent *float64
	if flagWasSet(fs, "minutes") {
		timeSpent = minutes
	}

	habit, err := svc.CheckIn(id, *date, timeSpent)
	if err != nil {
		return err
	}
	fmt.Printf("Checked in habit [%d] %s\n", habit.ID, habit.Title)
	return nil
}

func habitUncheck(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "habit")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("tempo habit uncheck", flag.ContinueOnError)
	date := fs.String("date", "", "Check-in date to remove (YYYY-MM-DD, default today)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	habit, err := svc.Uncheck(id, *date)
	if err != nil {
		return err
	}
	fmt.Printf("Removed check-in for habit [%d] %s\n", habit.ID, habit.Title)
	return nil
}

func habitStreak(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "habit")
	if err != nil {
		return err
	}
	count, err := svc.Streak(id)
	if err != nil {
		return err
	}
	fmt.Printf("Habit [%d] streak: %d day(s)\n", id, count)
	return nil
}

func habitUpdate(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "habit")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("tempo habit update", flag.ContinueOnError)
	title := fs.String("title", "", "New title")
	desc := fs.String("desc", "", "New description")
	priority := fs.String("priority", "", "New priority")
	frequency := fs.String("frequency", "", "New frequency")
	trackTime := fs.Bool("track-time", false, "Record minutes spent on each check-in")
	goalID := fs.Int("goal", 0, "New goal ID to link to")
	clearGoal := fs.Bool("clear-goal", false, "Unlink from goal")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	upd := tracker.HabitUpdate{
		Title:       optionalStr(fs, "title", title),
		Description: optionalStr(fs, "desc", desc),
		Frequency:   optionalStr(fs, "frequency", frequency),
		ClearGoal:   *clearGoal,
	}
	if flagWasSet(fs, "priority") {
		p := model.Priority(*priority)
		if !p.Valid() {
			return fmt.Errorf("invalid priority %q: must be Now, Next, or Later", *priority)
		}
		upd.Priority = &p
	}
	if flagWasSet(fs, "track-time") {
		upd.TrackTime = trackTime
	}
	if flagWasSet(fs, "goal") {
		upd.GoalID = goalID
	}

	habit, err := svc.UpdateHabit(id, upd)
	if err != nil {
		return err
	}
	fmt.Printf("Updated habit [%d] %s\n", habit.ID, habit.Title)
	return nil
}

func habitDelete(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "habit")
	if err != nil {
		return err
	}
	if err := svc.DeleteHabit(id); err != nil {
		return err
	}
	fmt.Printf("Deleted habit [%d]\n", id)
	return nil
}

func habitSearch(svc *tracker.Service, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("habit search: query is required")
	}
	habits := svc.SearchHabits(args[0])
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}
	today := model.DateOf(time.Now())
	for _, h := range habits {
		printHabit(svc, h, today)
	}
	return nil
}

// printHabit prints a single habit line with today's check state and streak.
func printHabit(svc *tracker.Service, h model.Habit, today string) {
	icon := " "
	if h.CheckedInOn(today) {
		icon = "x"
	}
	count, _ := svc.Streak(h.ID)
	line := fmt.Sprintf("  [%s] %d (%s) %s, %s, streak %d", icon, h.ID, h.Priority, h.Title, h.Frequency, count)
	if h.TrackTime {
		line += ", tracks time"
	}
	fmt.Println(line)
}
