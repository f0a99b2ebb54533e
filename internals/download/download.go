package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"

	"github.com/Oudwins/seedance/internals/logging"
	"github.com/Oudwins/seedance/internals/version"
)

const DefaultOutputDir = "output"

// OutputDir resolves dir (./output when empty) and creates it with parents.
func OutputDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, DefaultOutputDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}
	return dir, nil
}

type Downloader struct {
	HTTPClient *http.Client
	Out        io.Writer
	Logger     *slog.Logger
	// Bar forces the progress bar on or off. Nil means on for terminals.
	Bar *bool
}

type Result struct {
	Path  string
	Bytes int64
}

// Download streams url into path. The body goes to path+".part" first and is
// renamed once complete, so path never holds a partial video.
func (d *Downloader) Download(ctx context.Context, url string, path string) (Result, error) {
	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	out := d.Out
	if out == nil {
		out = io.Discard
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("User-Agent", version.UserAgent())

	fmt.Fprintf(out, "\nDownloading video to: %s\n", path)
	resp, err := client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("download failed: unexpected status %d", resp.StatusCode)
	}

	partPath := path + ".part"
	file, err := os.Create(partPath)
	if err != nil {
		return Result{}, err
	}

	reporter := d.reporter(out, resp.ContentLength)
	written, copyErr := io.Copy(file, io.TeeReader(resp.Body, reporter))
	closeErr := file.Close()
	reporter.finish()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(partPath)
		return Result{}, fmt.Errorf("download failed: %w", err)
	}
	if err := os.Rename(partPath, path); err != nil {
		_ = os.Remove(partPath)
		return Result{}, err
	}
	logger.Debug("download complete", "path", path, "bytes", written)

	fmt.Fprintf(out, "Video saved: %s (%s)\n", path, humanize.Bytes(uint64(written)))
	return Result{Path: path, Bytes: written}, nil
}

func (d *Downloader) reporter(out io.Writer, total int64) *progressWriter {
	bar := logging.IsTerminal(out)
	if d.Bar != nil {
		bar = *d.Bar
	}
	w := &progressWriter{out: out, total: total}
	if bar {
		model := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
		w.bar = &model
	}
	return w
}

// progressWriter renders progress as bytes pass through it.
type progressWriter struct {
	out     io.Writer
	total   int64
	done    int64
	bar     *progress.Model
	printed bool
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.done += int64(len(p))
	w.render()
	return len(p), nil
}

func (w *progressWriter) render() {
	switch {
	case w.bar != nil && w.total > 0:
		percent := float64(w.done) / float64(w.total)
		fmt.Fprintf(w.out, "\r%s %s / %s", w.bar.ViewAs(percent), humanize.Bytes(uint64(w.done)), humanize.Bytes(uint64(w.total)))
	case w.bar != nil:
		fmt.Fprintf(w.out, "\rDownloading... %s", humanize.Bytes(uint64(w.done)))
	case w.total > 0:
		fmt.Fprintf(w.out, "\r%.1f%%", float64(w.done)/float64(w.total)*100)
	default:
		return
	}
	w.printed = true
}

func (w *progressWriter) finish() {
	if w.printed {
		fmt.Fprintln(w.out)
	}
}
