package cliutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Oudwins/seedance/sdk"
)

func TestFormatTaskListEmpty(t *testing.T) {
	var buf bytes.Buffer
	if got := FormatTaskList(&buf, &sdk.TaskList{}); got != "No tasks found." {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatTaskList(t *testing.T) {
	var buf bytes.Buffer
	list := &sdk.TaskList{
		Tasks: []sdk.TaskRecord{
			{
				ID:        "cgt-20250101123456-abcd",
				Status:    sdk.TaskStatusSucceeded,
				Model:     "doubao-seedance-1-5-pro-251215-with-a-long-suffix",
				CreatedAt: "2025-01-01T12:34:56.789Z",
			},
			{ID: "short", Status: sdk.TaskStatusQueued, Model: "m1", CreatedAt: "1735689600"},
		},
		Page: sdk.PageInfo{PageNum: 2, PageSize: 10, Total: 21},
	}

	out := FormatTaskList(&buf, list)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Status       Model") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if strings.Trim(lines[1], "-") != "" || len(lines[1]) != 12+1+35+1+12+1+20 {
		t.Fatalf("unexpected separator %q", lines[1])
	}

	row := lines[2]
	if !strings.Contains(row, "doubao-seedance-1-5-pro-25121...") {
		t.Fatalf("expected truncated model in %q", row)
	}
	if !strings.Contains(row, "cgt-2025..") {
		t.Fatalf("expected truncated id in %q", row)
	}
	if !strings.Contains(row, "2025-01-01T12:34:56 ") || strings.Contains(row, ".789") {
		t.Fatalf("expected created truncated to seconds in %q", row)
	}
	if !strings.HasPrefix(lines[3], "queued       m1") || !strings.Contains(lines[3], "short") {
		t.Fatalf("unexpected second row %q", lines[3])
	}
	if lines[5] != "Page 2/3 | Total tasks: 21" {
		t.Fatalf("unexpected footer %q", lines[5])
	}
}

func TestPrintFinalStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintFinalStatus(&buf, &sdk.TaskRecord{
		Status: sdk.TaskStatusSucceeded,
		Usage:  map[string]any{"input_tokens": float64(0), "output_tokens": float64(1200)},
	})
	out := buf.String()
	if !strings.Contains(out, "✅ Task completed!") || !strings.Contains(out, "Usage: 0 input + 1200 output tokens") {
		t.Fatalf("unexpected output %q", out)
	}

	buf.Reset()
	PrintFinalStatus(&buf, &sdk.TaskRecord{Status: sdk.TaskStatusFailed, ErrorMessage: "blocked"})
	if !strings.Contains(buf.String(), "❌") || !strings.Contains(buf.String(), "Error: blocked") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPollLine(t *testing.T) {
	if got := PollLine(sdk.TaskRecord{ID: "cgt-20250101", Status: sdk.TaskStatusRunning}); got != "\rRunning... (Task: cgt-2025...)" {
		t.Fatalf("unexpected line %q", got)
	}
	if got := PollLine(sdk.TaskRecord{ID: "abc", Status: sdk.TaskStatusQueued}); got != "\rQueued... (Task: abc...)" {
		t.Fatalf("unexpected line %q", got)
	}
	if got := PollLine(sdk.TaskRecord{Status: sdk.TaskStatusSucceeded}); got != "" {
		t.Fatalf("expected no line for terminal status, got %q", got)
	}
}

func TestPrintJSONKeepsUnicode(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, map[string]any{"prompt": "猫 <3"}); err != nil {
		t.Fatalf("PrintJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"prompt": "猫 <3"`) {
		t.Fatalf("unexpected json %q", buf.String())
	}
}
