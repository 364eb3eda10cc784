package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tagtodo/internal/task"
)

func newAddCmd(opts *options) *cobra.Command {
	var (
		due      string
		priority string
	)
	cmd := &cobra.Command{
		Use:     "add [task text with #tags]",
		Aliases: []string{"new"},
		Short:   "Add a task; #words in the text become tags",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := task.ParsePriority(priority)
			if !ok {
				return fmt.Errorf("unknown priority %q (want low, medium or high)", priority)
			}
			due = strings.TrimSpace(due)
			if due != "" {
				if _, err := time.Parse(task.DateLayout, due); err != nil {
					return fmt.Errorf("due date %q must be YYYY-MM-DD", due)
				}
			}

			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			a := openApp(cfg)
			defer a.Close()

			id := a.repo.Add(strings.Join(args, " "), due, p)
			if id == "" {
				return errors.New("task text is empty")
			}
			if err := a.repo.LastWriteError(); err != nil {
				return fmt.Errorf("task added but not saved: %w", err)
			}
			t, _ := a.repo.Find(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q %v\n", t.Title, t.Tags)
			return nil
		},
	}
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(task.PriorityMedium), "low, medium or high")
	return cmd
}
