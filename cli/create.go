package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Oudwins/seedance/internals/cliutil"
	"github.com/Oudwins/seedance/internals/content"
	"github.com/Oudwins/seedance/internals/media"
	"github.com/Oudwins/seedance/internals/schemas"
	"github.com/Oudwins/seedance/tui"
)

type createFlags struct {
	args            schemas.CreateArgs
	referenceImages string
	seed            int
	interactive     bool
	open            bool
}

func (a *app) createCommand() *cobra.Command {
	f := &createFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a video generation task",
		Example: `  seedance create --prompt "A cute kitten yawning in the sunlight"
  seedance create --prompt "Camera slowly zooms out" --image cat.jpg --auto-download
  seedance create --prompt "Smooth transition" --image first.jpg --last-frame last.jpg
  seedance create --prompt "Seaside sunset, cinematic feel" --resolution 1080p --ratio 21:9 --duration 8`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCreate(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.args.Prompt, "prompt", "", "text prompt for video generation")
	flags.StringVar(&f.args.Model, "model", "", "model id (default from config, seedance-1-5-pro-251215)")
	flags.StringVar(&f.args.Image, "image", "", "first frame image path (image-to-video)")
	flags.StringVar(&f.args.LastFrame, "last-frame", "", "last frame image path (requires --image)")
	flags.StringVar(&f.referenceImages, "reference-images", "", "comma separated reference image paths (1-4)")
	flags.StringVar(&f.args.Resolution, "resolution", "", "480p, 720p or 1080p (default from config, 720p)")
	flags.StringVar(&f.args.Ratio, "ratio", "", "16:9, 4:3, 1:1, 3:4, 9:16, 21:9 or adaptive (default from config, 16:9)")
	flags.IntVar(&f.args.Duration, "duration", 0, "seconds, 2-12 or -1 for auto (default from config, 5)")
	flags.IntVar(&f.seed, "seed", 0, "random seed for reproducibility")
	flags.BoolVar(&f.args.Watermark, "watermark", false, "include watermark")
	flags.BoolVar(&f.args.CameraFixed, "camera-fixed", false, "fix camera position")
	flags.BoolVar(&f.args.GenerateAudio, "generate-audio", false, "generate audio (Seedance 1.5 pro only)")
	flags.BoolVar(&f.args.Draft, "draft", false, "generate a draft preview (Seedance 1.5 pro only)")
	flags.StringVar(&f.args.DraftTaskID, "draft-task-id", "", "generate the final video from a draft task")
	flags.StringVar(&f.args.ServiceTier, "service", "", "service tier, default or flex (default from config)")
	flags.BoolVar(&f.args.ReturnLastFrame, "return-last-frame", false, "return the last frame image")
	flags.BoolVar(&f.args.Watch, "watch", false, "watch the task until it completes")
	flags.BoolVar(&f.args.AutoDownload, "auto-download", false, "download the video when done (implies --watch)")
	flags.StringVar(&f.args.OutputDir, "output-dir", "", "download directory (default from config, ./output)")
	flags.DurationVar(&f.args.PollInterval, "poll-interval", 0, "time between polls when watching (default from config, 5s)")
	flags.DurationVar(&f.args.Timeout, "timeout", 0, "give up watching after this long (default from config, 10m)")
	flags.BoolVarP(&f.interactive, "interactive", "i", false, "fill in the prompt and frames in a form")
	flags.BoolVar(&f.open, "open", false, "open the video URL in the browser when done")

	return cmd
}

// applyDefaults fills every flag the user left unset from the config file.
func (a *app) applyDefaults(cmd *cobra.Command, f *createFlags) {
	args := &f.args
	defaults := a.config.Defaults
	changed := cmd.Flags().Changed

	if !changed("model") {
		args.Model = defaults.Model
	}
	if !changed("resolution") {
		args.Resolution = defaults.Resolution
	}
	if !changed("ratio") {
		args.Ratio = defaults.Ratio
	}
	if !changed("duration") {
		args.Duration = defaults.Duration
	}
	if !changed("service") {
		args.ServiceTier = defaults.ServiceTier
	}
	if !changed("output-dir") {
		args.OutputDir = a.config.Output.Dir
	}
	if !changed("poll-interval") {
		args.PollInterval = a.config.Watch.PollIntervalDuration()
	}
	if !changed("timeout") {
		args.Timeout = a.config.Watch.TimeoutDuration()
	}
	if changed("seed") {
		seed := f.seed
		args.Seed = &seed
	}
	args.ReferenceImages = schemas.SplitList(f.referenceImages)
}

func (a *app) runCreate(cmd *cobra.Command, f *createFlags) error {
	a.applyDefaults(cmd, f)

	args := f.args
	if f.interactive {
		filled, ok, err := tui.RunCreateForm(args)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.stderr, "Cancelled.")
			return nil
		}
		args = filled
	}
	if err := args.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if args.PollInterval <= 0 {
		return fmt.Errorf("%w: --poll-interval must be positive", ErrUsage)
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}

	built, err := content.Build(args, media.ImageDataURI)
	if err != nil {
		return err
	}
	for _, warning := range built.Warnings {
		fmt.Fprintf(a.stderr, "Warning: %s\n", warning)
	}

	ctx := cmd.Context()
	task, err := client.CreateTask(ctx, content.Payload(args, built.Items))
	if err != nil {
		return err
	}

	// In JSON mode a watched create emits only the final task document.
	switch {
	case a.jsonOutput && !args.Watch:
		if err := cliutil.PrintJSON(a.stdout, cliutil.TaskSummary(task)); err != nil {
			return err
		}
	case !a.jsonOutput:
		cliutil.PrintTaskCreated(a.stdout, task)
	}

	if !args.Watch {
		return nil
	}
	return a.watch(ctx, client, task.ID, watchOptions{
		prompt:       args.Prompt,
		pollInterval: args.PollInterval,
		timeout:      args.Timeout,
		autoDownload: args.AutoDownload,
		outputDir:    args.OutputDir,
		open:         f.open,
	})
}
