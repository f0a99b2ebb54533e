package sdk

import (
	"context"
	"fmt"
	"time"
)

type WaitOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
	// OnUpdate sees every polled record. It cannot influence the loop.
	OnUpdate func(task TaskRecord)
}

// WaitForCompletion polls GetTask until the task reaches a terminal status.
// The deadline is checked before sleeping, so a timeout of zero means a single
// poll. Errors from GetTask end the wait immediately.
func (c *Client) WaitForCompletion(ctx context.Context, taskID string, opts WaitOptions) (*TaskRecord, error) {
	started := time.Now()

	for poll := 1; ; poll++ {
		task, err := c.GetTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if opts.OnUpdate != nil {
			opts.OnUpdate(*task)
		}
		if task.Status.IsTerminal() {
			return task, nil
		}

		elapsed := time.Since(started)
		if elapsed >= opts.Timeout {
			return nil, fmt.Errorf("%w: task %s still %s after %s", ErrPollTimeout, taskID, task.Status, opts.Timeout)
		}
		c.logger.Debug("task not finished", "task_id", taskID, "status", task.Status, "poll", poll, "elapsed", elapsed)

		timer := time.NewTimer(opts.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
