package cmd

import (
	"flag"
	"fmt"

	"github.com/ndokic/tempo/internal/config"
	"github.com/ndokic/tempo/internal/model"
	"github.com/ndokic/tempo/internal/tracker"
)

// taskCommand dispatches task subcommands.
func taskCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("task: subcommand required (add|list|done|update|delete|search)")
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "add":
		return taskAdd(svc, rest)
	case "list", "ls":
		return taskList(svc, rest)
	case "done", "toggle":
		return taskDone(svc, rest)
	case "update":
		return taskUpdate(svc, rest)
	case "delete", "rm":
		return taskDelete(svc, rest)
	case "search":
		return taskSearch(svc, rest)
	default:
		return fmt.Errorf("task: unknown subcommand %q", sub)
	}
}

func taskAdd(svc *tracker.Service, args []string) error {
	fs := flag.NewFlagSet("tempo task add", flag.ContinueOnError)
	title := fs.String("title", "", "Task title (required)")
	desc := fs.String("desc", "", "Task description")
	priority := fs.String("priority", string(model.PriorityNext), "Priority: Now, Next, or Later")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	goalID := fs.Int("goal", 0, "Goal ID to link to")
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

	task, err := svc.AddTask(*title, *desc, p, *due, goal)
	if err != nil {
		return err
	}
	fmt.Printf("Added task [%d] %s\n", task.ID, task.Title)
	return nil
}

func taskList(svc *tracker.Service, args []string) error {
	fs := flag.NewFlagSet("tempo task list", flag.ContinueOnError)
	priority := fs.String("priority", "", "Filter by priority")
	pending := fs.Bool("pending", false, "Show only pending tasks")
	done := fs.Bool("done", false, "Show only completed tasks")
	goalID := fs.Int("goal", 0, "Filter by goal ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f := tracker.TaskFilter{Priority: model.Priority(*priority)}
	if *pending {
		v := false
		f.Completed = &v
	}
	if *done {
		v := true
		f.Completed = &v
	}
	if *goalID > 0 {
		f.GoalID = goalID
	}

	tasks := svc.FilterTasks(f)
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}
	for _, t := range tasks {
		printTask(t)
	}
	return nil
}

func taskDone(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "task")
	if err != nil {
		return err
	}
	task, err := svc.ToggleTask(id)
	if err != nil {
		return err
	}
	if task.Completed {
		fmt.Printf("Completed task [%d] %s\n", task.ID, task.Title)
	} else {
		fmt.Printf("Reopened task [%d] %s\n", task.ID, task.Title)
	}
	return nil
}

func taskUpdate(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "task")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("tempo task update", flag.ContinueOnError)
	title := fs.String("title", "", "New title")
	desc := fs.String("desc", "", "New description")
	priority := fs.String("priority", "", "New priority")
	due := fs.String("due", "", "New due date (YYYY-MM-DD)")
	goalID := fs.Int("goal", 0, "New goal ID to link to")
	clearGoal := fs.Bool("clear-goal", false, "Unlink from goal")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	upd := tracker.TaskUpdate{
		Title:       optionalStr(fs, "title", title),
		Description: optionalStr(fs, "desc", desc),
		DueDate:     optionalStr(fs, "due", due),
		ClearGoal:   *clearGoal,
	}
	if flagWasSet(fs, "priority") {
		p := model.Priority(*priority)
		if !p.Valid() {
			return fmt.Errorf("invalid priority %q: must be Now, Next, or Later", *priority)
		}
		upd.Priority = &p
	}
	if flagWasSet(fs, "goal") {
		upd.GoalID = goalID
	}

	task, err := svc.UpdateTask(id, upd)
	if err != nil {
		return err
	}
	fmt.Printf("Updated task [%d] %s\n", task.ID, task.Title)
	return nil
}

func taskDelete(svc *tracker.Service, args []string) error {
	id, err := parseID(args, "task")
	if err != nil {
		return err
	}
	if err := svc.DeleteTask(id); err != nil {
		return err
	}
	fmt.Printf("Deleted task [%d]\n", id)
	return nil
}

func taskSearch(svc *tracker.Service, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("task search: query is required")
	}
	tasks := svc.SearchTasks(args[0])
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}
	for _, t := range tasks {
		printTask(t)
	}
	return nil
}

// printTask prints a single task line.
func printTask(t model.Task) {
	icon := " "
	if t.Completed {
		icon = "x"
	}
	line := fmt.Sprintf("  [%s] %d (%s) %s", icon, t.ID, t.Priority, t.Title)
	if t.DueDate != "" {
		line += " due " + t.DueDate
	}
	if t.GoalID != nil {
		line += fmt.Sprintf(" (goal %d)", *t.GoalID)
	}
	fmt.Println(line)
}
