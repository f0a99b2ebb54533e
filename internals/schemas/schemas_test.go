package schemas

import (
	"strings"
	"testing"
)

func validCreateArgs() CreateArgs {
	return CreateArgs{
		Prompt:      "  A cute kitten yawning  ",
		Model:       "seedance-1-5-pro-251215",
		Resolution:  "720p",
		Ratio:       "16:9",
		Duration:    5,
		ServiceTier: "default",
	}
}

func TestCreateArgsTrimAndAutoDownload(t *testing.T) {
	args := validCreateArgs()
	args.AutoDownload = true
	if err := args.Validate(); err != nil {
		t.Fatalf("expected valid args, got %v", err)
	}
	if args.Prompt != "A cute kitten yawning" {
		t.Fatalf("expected trimmed prompt, got %q", args.Prompt)
	}
	if !args.Watch {
		t.Fatalf("expected auto download to imply watch")
	}
}

func TestCreateArgsRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateArgs)
		want   string
	}{
		{
			name:   "nothing to generate from",
			mutate: func(a *CreateArgs) { a.Prompt = "" },
			want:   "--prompt or --image is required",
		},
		{
			name:   "draft with prompt",
			mutate: func(a *CreateArgs) { a.DraftTaskID = "cgt-draft" },
			want:   "--draft-task-id cannot be used",
		},
		{
			name:   "last frame without image",
			mutate: func(a *CreateArgs) { a.LastFrame = "last.png" },
			want:   "--last-frame requires --image",
		},
		{
			name:   "duration too long",
			mutate: func(a *CreateArgs) { a.Duration = 13 },
			want:   "--duration must be between 2 and 12",
		},
		{
			name:   "duration zero",
			mutate: func(a *CreateArgs) { a.Duration = 0 },
			want:   "--duration must be between 2 and 12",
		},
		{
			name:   "too many reference images",
			mutate: func(a *CreateArgs) { a.ReferenceImages = []string{"1", "2", "3", "4", "5"} },
			want:   "maximum 4 images",
		},
		{
			name:   "bad ratio",
			mutate: func(a *CreateArgs) { a.Ratio = "2:1" },
			want:   "ratio must be one of",
		},
	}

	for _, tt := range tests {
		args := validCreateArgs()
		tt.mutate(&args)
		err := args.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: expected %q in %q", tt.name, tt.want, err.Error())
		}
	}
}

func TestCreateArgsAcceptedShapes(t *testing.T) {
	tests := map[string]func(*CreateArgs){
		"auto duration": func(a *CreateArgs) { a.Duration = -1 },
		"image only":    func(a *CreateArgs) { a.Prompt = ""; a.Image = "cat.png" },
		"first and last": func(a *CreateArgs) {
			a.Image = "first.png"
			a.LastFrame = "last.png"
		},
		"draft only": func(a *CreateArgs) {
			a.Prompt = ""
			a.DraftTaskID = "cgt-draft"
		},
		"four references": func(a *CreateArgs) { a.ReferenceImages = []string{"1", "2", "3", "4"} },
	}
	for name, mutate := range tests {
		args := validCreateArgs()
		mutate(&args)
		if err := args.Validate(); err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
	}
}

func TestListArgs(t *testing.T) {
	args := ListArgs{Status: "failed", PageNum: 1, PageSize: 500, TaskIDs: SplitList(" a, ,b ")}
	if err := args.Validate(); err != nil {
		t.Fatalf("expected valid args, got %v", err)
	}
	opts := args.Options()
	if len(opts.TaskIDs) != 2 || opts.TaskIDs[0] != "a" || opts.TaskIDs[1] != "b" {
		t.Fatalf("unexpected task ids %v", opts.TaskIDs)
	}

	for _, bad := range []ListArgs{
		{PageNum: 0, PageSize: 10},
		{PageNum: 1, PageSize: 0},
		{PageNum: 1, PageSize: 501},
		{PageNum: 1, PageSize: 10, Status: "done"},
	} {
		if err := bad.Validate(); err == nil {
			t.Fatalf("expected error for %+v", bad)
		}
	}
}
