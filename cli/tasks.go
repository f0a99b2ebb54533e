package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Oudwins/seedance/internals/cliutil"
	"github.com/Oudwins/seedance/internals/schemas"
	"github.com/Oudwins/seedance/sdk"
)

func (a *app) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <task-id>",
		Short: "Show one task",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			task, err := client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return notFound(err, args[0])
			}
			if a.jsonOutput {
				return cliutil.PrintJSON(a.stdout, task.Raw)
			}
			cliutil.PrintTask(a.stdout, task)
			return nil
		},
	}
}

func (a *app) waitCommand() *cobra.Command {
	var opts watchOptions
	cmd := &cobra.Command{
		Use:   "wait <task-id>",
		Short: "Watch a task until it completes",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed
			if !changed("poll-interval") {
				opts.pollInterval = a.config.Watch.PollIntervalDuration()
			}
			if !changed("timeout") {
				opts.timeout = a.config.Watch.TimeoutDuration()
			}
			if !changed("output-dir") {
				opts.outputDir = a.config.Output.Dir
			}
			if opts.pollInterval <= 0 {
				return fmt.Errorf("%w: --poll-interval must be positive", ErrUsage)
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			return notFound(a.watch(cmd.Context(), client, args[0], opts), args[0])
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&opts.pollInterval, "poll-interval", 0, "time between polls (default from config, 5s)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "give up after this long (default from config, 10m)")
	flags.BoolVar(&opts.autoDownload, "auto-download", false, "download the video when done")
	flags.StringVar(&opts.outputDir, "output-dir", "", "download directory (default from config, ./output)")
	flags.StringVar(&opts.prompt, "prompt", "", "prompt used to name the downloaded file")
	flags.BoolVar(&opts.open, "open", false, "open the video URL in the browser when done")
	return cmd
}

func (a *app) listCommand() *cobra.Command {
	var (
		status  string
		taskIDs string
		args    schemas.ListArgs
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with filters and pagination",
		Example: `  seedance list
  seedance list --status succeeded
  seedance list --model seedance-1-5-pro-251215
  seedance list --page-num 2 --page-size 20
  seedance list --task-ids task1,task2,task3`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			args.Status = sdk.TaskStatus(status)
			args.TaskIDs = schemas.SplitList(taskIDs)
			if err := args.Validate(); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			list, err := client.ListTasks(cmd.Context(), args.Options())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return cliutil.PrintJSON(a.stdout, list.Raw)
			}
			fmt.Fprintln(a.stdout, cliutil.FormatTaskList(a.stdout, list))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&status, "status", "", "queued, running, succeeded, failed, expired or cancelled")
	flags.StringVar(&args.Model, "model", "", "filter by model id")
	flags.StringVar(&taskIDs, "task-ids", "", "comma separated task ids")
	flags.IntVar(&args.PageNum, "page-num", 1, "page number")
	flags.IntVar(&args.PageSize, "page-size", sdk.DefaultPageSize, "results per page, max 500")
	return cmd
}

func (a *app) cancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <task-id>",
		Short: "Cancel a queued task or delete a finished one",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]
			client, err := a.newClient()
			if err != nil {
				return err
			}
			result, err := client.CancelTask(cmd.Context(), taskID)
			if err != nil {
				return notFound(err, taskID)
			}
			if a.jsonOutput {
				return cliutil.PrintJSON(a.stdout, result)
			}
			fmt.Fprintf(a.stdout, "Task %s cancelled/deleted successfully.\n", taskID)
			if len(result) > 0 {
				fmt.Fprintf(a.stdout, "Response: %v\n", result)
			}
			return nil
		},
	}
}

// notFound names the task in not-found errors.
func notFound(err error, taskID string) error {
	if errors.Is(err, sdk.ErrTaskNotFound) {
		return fmt.Errorf("%w: %s", sdk.ErrTaskNotFound, taskID)
	}
	return err
}

