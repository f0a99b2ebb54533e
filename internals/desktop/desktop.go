package desktop

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

var ExecCommand = exec.Command
var RuntimeGOOS = runtime.GOOS

// Open hands an http(s) URL to the platform's default handler without waiting
// for it.
func Open(url string) error {
	if url == "" {
		return errors.New("url is empty")
	}
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return fmt.Errorf("refusing to open non-http url %q", url)
	}

	var cmd *exec.Cmd
	switch RuntimeGOOS {
	case "darwin":
		cmd = ExecCommand("open", url)
	case "linux", "freebsd", "openbsd":
		cmd = ExecCommand("xdg-open", url)
	case "windows":
		cmd = ExecCommand("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform %s", RuntimeGOOS)
	}

	return cmd.Start()
}
