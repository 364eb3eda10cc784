package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tagtodo/internal/task"
	"tagtodo/internal/ui"
)

// isTerminal reports whether the TUI can take over the terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

type options struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "tagtodo",
		Short: "A tagged task list for the terminal.",
		Long: `tagtodo keeps a short list of tasks with #tags, due dates and priorities.
Run it without arguments to open the interactive list. When stdin or stdout
is not a terminal the visible tasks are printed instead.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default is $TAGTODO_CONFIG or <user config dir>/tagtodo/config.toml)")

	root.AddCommand(newListCmd(opts), newAddCmd(opts))
	return root
}

// Execute runs the command tree; it is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	if !isTerminal() {
		a := openApp(cfg)
		defer a.Close()
		printTasks(cmd.OutOrStdout(), a.repo.Visible(), a.repo.Summary())
		return nil
	}

	restore, err := redirectLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer restore()

	a := openApp(cfg)
	defer a.Close()
	if err := ui.Run(a.repo, cfg); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func printTasks(w io.Writer, tasks []task.Task, sum task.Summary) {
	for _, t := range tasks {
		check := "[ ]"
		if t.Done {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s  (%s", check, t.Title, t.Priority)
		if due := t.DueLabel(); due != "" {
			line += ", due " + due
		}
		line += ")"
		for _, tag := range t.Tags {
			line += " #" + tag
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%s done\n", sum)
}
