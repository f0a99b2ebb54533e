package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/Oudwins/seedance/internals/cliutil"
	"github.com/Oudwins/seedance/internals/desktop"
	"github.com/Oudwins/seedance/internals/download"
	"github.com/Oudwins/seedance/internals/naming"
	"github.com/Oudwins/seedance/internals/term"
	"github.com/Oudwins/seedance/internals/timeouts"
	"github.com/Oudwins/seedance/sdk"
)

type watchOptions struct {
	prompt       string
	pollInterval time.Duration
	timeout      time.Duration
	autoDownload bool
	outputDir    string
	open         bool
}

// watch waits for a task to finish, reports the outcome and then downloads
// or prints the video URL.
func (a *app) watch(ctx context.Context, client *sdk.Client, taskID string, opts watchOptions) error {
	progress := a.stdout
	if a.jsonOutput {
		progress = io.Discard
	}

	fmt.Fprintf(progress, "\nWatching task: %s\n", taskID)
	fmt.Fprintf(progress, "   Poll interval: %s, Timeout: %s\n\n", opts.pollInterval, opts.timeout)

	task, err := client.WaitForCompletion(ctx, taskID, sdk.WaitOptions{
		PollInterval: opts.pollInterval,
		Timeout:      opts.timeout,
		OnUpdate: func(task sdk.TaskRecord) {
			fmt.Fprint(progress, cliutil.PollLine(task))
		},
	})
	cliutil.ClearLine(progress)
	if err != nil {
		return err
	}

	if a.jsonOutput {
		if err := cliutil.PrintJSON(a.stdout, task.Raw); err != nil {
			return err
		}
	} else {
		cliutil.PrintFinalStatus(a.stdout, task)
	}

	if task.Status != sdk.TaskStatusSucceeded || task.VideoURL == "" {
		return nil
	}

	if opts.autoDownload {
		if err := a.download(ctx, task, opts); err != nil {
			return err
		}
	} else if !a.jsonOutput {
		fmt.Fprintf(a.stdout, "\nVideo URL: %s\n", term.ClickableLink(task.VideoURL, task.VideoURL))
		fmt.Fprintln(a.stdout, "   (URL valid for 24 hours)")
	}

	if opts.open {
		if err := desktop.Open(task.VideoURL); err != nil {
			a.logger.Warn("could not open video url", "error", err)
		}
	}
	return nil
}

func (a *app) download(ctx context.Context, task *sdk.TaskRecord, opts watchOptions) error {
	dir, err := download.OutputDir(opts.outputDir)
	if err != nil {
		return err
	}
	target := filepath.Join(dir, naming.VideoFilename(task.ID, opts.prompt))

	out := a.stdout
	if a.jsonOutput {
		out = a.stderr
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Download)
	defer cancel()

	d := &download.Downloader{Out: out, Logger: a.logger}
	_, err = d.Download(ctx, task.VideoURL, target)
	return err
}
