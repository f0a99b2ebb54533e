package desktop

import (
	"os/exec"
	"testing"
)

func stubExec(t *testing.T, goos string) (*string, *[]string) {
	t.Helper()
	originalExec := ExecCommand
	originalGOOS := RuntimeGOOS
	t.Cleanup(func() {
		ExecCommand = originalExec
		RuntimeGOOS = originalGOOS
	})

	RuntimeGOOS = goos
	var gotName string
	var gotArgs []string
	ExecCommand = func(name string, args ...string) *exec.Cmd {
		gotName = name
		gotArgs = append([]string(nil), args...)
		return exec.Command("sh", "-c", "true")
	}
	return &gotName, &gotArgs
}

func TestOpenRejectsBadURLs(t *testing.T) {
	if err := Open(""); err == nil {
		t.Fatalf("expected error for empty url")
	}
	if err := Open("file:///etc/passwd"); err == nil {
		t.Fatalf("expected error for non-http url")
	}
}

func TestOpenUnsupportedPlatform(t *testing.T) {
	stubExec(t, "plan9")
	if err := Open("https://example.com"); err == nil {
		t.Fatalf("expected error for unsupported platform")
	}
}

func TestOpenUsesExecSeam(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs int
	}{
		{goos: "linux", wantName: "xdg-open", wantArgs: 1},
		{goos: "darwin", wantName: "open", wantArgs: 1},
		{goos: "windows", wantName: "rundll32", wantArgs: 2},
	}
	for _, tt := range tests {
		gotName, gotArgs := stubExec(t, tt.goos)
		if err := Open("https://cdn.example.com/video.mp4"); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.goos, err)
		}
		if *gotName != tt.wantName {
			t.Fatalf("%s: expected %s, got %s", tt.goos, tt.wantName, *gotName)
		}
		if len(*gotArgs) != tt.wantArgs || (*gotArgs)[tt.wantArgs-1] != "https://cdn.example.com/video.mp4" {
			t.Fatalf("%s: expected url as last arg, got %v", tt.goos, *gotArgs)
		}
	}
}
