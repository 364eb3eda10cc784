package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagtodo/internal/task"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		filter string
		search string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the visible tasks and the completion summary",
		Long: `Print tasks narrowed by the saved filter and search. --filter and --search
override them for this run only; the saved view is not changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			a := openApp(cfg)
			defer a.Close()

			s := a.repo.State()
			if cmd.Flags().Changed("filter") {
				f, ok := task.ParseFilter(filter)
				if !ok {
					return fmt.Errorf("unknown filter %q (want all, active or done)", filter)
				}
				s = task.SetFilter(s, f)
			}
			if cmd.Flags().Changed("search") {
				s = task.SetSearch(s, search)
			}
			printTasks(cmd.OutOrStdout(), task.VisibleTasks(s), task.CompletionSummary(s))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "status filter: all, active or done")
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text matched against title and tags")
	return cmd
}
