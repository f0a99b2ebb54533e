package schemas

import (
	"fmt"
	"strings"
	"time"

	"github.com/Oudwins/seedance/sdk"

	z "github.com/Oudwins/zog"
)

const MaxReferenceImages = 4

// CreateArgs are the user-facing knobs of `seedance create`.
type CreateArgs struct {
	Prompt          string
	Model           string
	Image           string
	LastFrame       string
	ReferenceImages []string
	Resolution      string
	Ratio           string
	Duration        int
	Seed            *int
	Watermark       bool
	CameraFixed     bool
	GenerateAudio   bool
	Draft           bool
	DraftTaskID     string
	ServiceTier     string
	ReturnLastFrame bool

	Watch        bool
	AutoDownload bool
	OutputDir    string
	PollInterval time.Duration
	Timeout      time.Duration
}

var CreateArgsSchema = z.Struct(z.Shape{
	"Prompt":          z.String().Optional().Trim(),
	"Model":           z.String().Required(z.Message("model is required")).Trim(),
	"Image":           z.String().Optional().Trim(),
	"LastFrame":       z.String().Optional().Trim(),
	"ReferenceImages": z.Slice(z.String().Trim()).Max(MaxReferenceImages, z.Message("--reference-images supports maximum 4 images")),
	"Resolution":      z.String().OneOf(sdk.Resolutions, z.Message("resolution must be one of 480p, 720p, 1080p")),
	"Ratio":           z.String().OneOf(sdk.Ratios, z.Message("ratio must be one of 16:9, 4:3, 1:1, 3:4, 9:16, 21:9, adaptive")),
	"DraftTaskID":     z.String().Optional().Trim(),
	"ServiceTier":     z.String().OneOf(sdk.ServiceTiers, z.Message("service must be default or flex")),
}).TestFunc(func(valPtr any, ctx z.Ctx) bool {
	args := valPtr.(*CreateArgs)
	if args.DraftTaskID != "" {
		return args.Prompt == "" && args.Image == ""
	}
	return true
}, z.Message("--draft-task-id cannot be used with --prompt or --image")).TestFunc(func(valPtr any, ctx z.Ctx) bool {
	args := valPtr.(*CreateArgs)
	return args.DraftTaskID != "" || args.Prompt != "" || args.Image != ""
}, z.Message("--prompt or --image is required (unless using --draft-task-id)")).TestFunc(func(valPtr any, ctx z.Ctx) bool {
	args := valPtr.(*CreateArgs)
	return args.LastFrame == "" || args.Image != ""
}, z.Message("--last-frame requires --image to be specified")).TestFunc(func(valPtr any, ctx z.Ctx) bool {
	return sdk.ValidDuration(valPtr.(*CreateArgs).Duration)
}, z.Message("--duration must be between 2 and 12, or -1 for auto"))

// Validate trims the arguments in place and reports every rule they break.
// --auto-download turns on --watch.
func (a *CreateArgs) Validate() error {
	if issues := CreateArgsSchema.Validate(a); len(issues) > 0 {
		return fmt.Errorf("invalid arguments:\n%s", z.Issues.Prettify(issues))
	}
	if a.AutoDownload {
		a.Watch = true
	}
	return nil
}

// SplitList splits a comma separated flag value, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
