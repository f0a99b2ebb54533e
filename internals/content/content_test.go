package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/Oudwins/seedance/internals/schemas"
	"github.com/Oudwins/seedance/sdk"
)

func fakeLoader(path string) (string, error) {
	return "data:image/png;base64," + path, nil
}

func TestBuildTextOnly(t *testing.T) {
	result, err := Build(schemas.CreateArgs{Prompt: "hello"}, fakeLoader)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0] != sdk.TextItem("hello") {
		t.Fatalf("unexpected items %+v", result.Items)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
}

func TestBuildTruncatesLongPrompt(t *testing.T) {
	prompt := strings.Repeat("é", MaxPromptLength+20)
	result, err := Build(schemas.CreateArgs{Prompt: prompt}, fakeLoader)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := []rune(result.Items[0].Text); len(got) != MaxPromptLength {
		t.Fatalf("expected %d runes, got %d", MaxPromptLength, len(got))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected a truncation warning, got %v", result.Warnings)
	}
}

func TestBuildImageOrder(t *testing.T) {
	args := schemas.CreateArgs{
		Prompt:          "move",
		Image:           "first",
		LastFrame:       "last",
		ReferenceImages: []string{"ref1", "ref2"},
	}
	result, err := Build(args, fakeLoader)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []sdk.ContentItem{
		sdk.TextItem("move"),
		sdk.ImageItem("data:image/png;base64,first", sdk.ImageRoleFirstFrame),
		sdk.ImageItem("data:image/png;base64,last", sdk.ImageRoleLastFrame),
		sdk.ImageItem("data:image/png;base64,ref1", sdk.ImageRoleReferenceImage),
		sdk.ImageItem("data:image/png;base64,ref2", sdk.ImageRoleReferenceImage),
	}
	if len(result.Items) != len(want) {
		t.Fatalf("expected %d items, got %+v", len(want), result.Items)
	}
	for i := range want {
		if result.Items[i] != want[i] {
			t.Fatalf("item %d: expected %+v, got %+v", i, want[i], result.Items[i])
		}
	}
}

func TestBuildDraftTaskSkipsImages(t *testing.T) {
	called := false
	loader := func(path string) (string, error) {
		called = true
		return "", nil
	}
	result, err := Build(schemas.CreateArgs{DraftTaskID: "cgt-draft", ReferenceImages: []string{"ref"}}, loader)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if called {
		t.Fatalf("expected no images to be loaded for a draft task")
	}
	if len(result.Items) != 1 || result.Items[0] != sdk.DraftTaskItem("cgt-draft") {
		t.Fatalf("unexpected items %+v", result.Items)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(schemas.CreateArgs{Prompt: "x", LastFrame: "last"}, fakeLoader); err == nil {
		t.Fatalf("expected last frame without image to fail")
	}

	boom := errors.New("boom")
	_, err := Build(schemas.CreateArgs{Image: "missing"}, func(string) (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	if _, err := Build(schemas.CreateArgs{}, fakeLoader); err == nil {
		t.Fatalf("expected empty content to fail")
	}
}

func TestPayloadOptionalFields(t *testing.T) {
	args := schemas.CreateArgs{
		Model:       "seedance-1-5-pro-251215",
		Resolution:  "720p",
		Ratio:       "16:9",
		Duration:    5,
		ServiceTier: "flex",
	}
	payload := Payload(args, []sdk.ContentItem{sdk.TextItem("x")})
	for _, key := range []string{"model", "content", "resolution", "ratio", "duration", "watermark", "service_tier", "return_last_frame"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("expected %s in payload", key)
		}
	}
	for _, key := range []string{"seed", "camera_fixed", "generate_audio", "draft"} {
		if _, ok := payload[key]; ok {
			t.Fatalf("expected %s to be omitted", key)
		}
	}

	seed := 0
	args.Seed = &seed
	args.CameraFixed = true
	args.GenerateAudio = true
	args.Draft = true
	payload = Payload(args, nil)
	if payload["seed"] != 0 || payload["camera_fixed"] != true || payload["generate_audio"] != true || payload["draft"] != true {
		t.Fatalf("expected optional fields, got %v", payload)
	}
}
