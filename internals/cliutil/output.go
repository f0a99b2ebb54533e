package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Oudwins/seedance/internals/term"
	"github.com/Oudwins/seedance/sdk"
)

// PrintJSON writes v indented, without escaping HTML or non-ASCII text.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// TaskSummary is the JSON shape printed after a task is created.
func TaskSummary(task *sdk.TaskRecord) map[string]any {
	return map[string]any{
		"id":         task.ID,
		"status":     task.Status,
		"model":      task.Model,
		"created_at": task.CreatedAt,
		"resolution": task.Resolution,
		"ratio":      task.Ratio,
		"duration":   task.Duration,
	}
}

func PrintTaskCreated(w io.Writer, task *sdk.TaskRecord) {
	fmt.Fprintln(w, "Task created successfully!")
	printTaskFields(w, task)
}

func PrintTask(w io.Writer, task *sdk.TaskRecord) {
	printTaskFields(w, task)
	if task.ErrorMessage != "" {
		fmt.Fprintf(w, "   Error: %s\n", task.ErrorMessage)
	}
	if task.VideoURL != "" {
		fmt.Fprintf(w, "   Video URL: %s\n", term.ClickableLink(task.VideoURL, task.VideoURL))
	}
	if task.LastFrameURL != "" {
		fmt.Fprintf(w, "   Last frame: %s\n", term.ClickableLink(task.LastFrameURL, task.LastFrameURL))
	}
}

func printTaskFields(w io.Writer, task *sdk.TaskRecord) {
	fmt.Fprintf(w, "   Task ID: %s\n", task.ID)
	fmt.Fprintf(w, "   Status: %s\n", task.Status)
	fmt.Fprintf(w, "   Model: %s\n", task.Model)
	fmt.Fprintf(w, "   Created at: %s\n", task.CreatedAt)
	if task.Resolution != "" {
		fmt.Fprintf(w, "   Resolution: %s\n", task.Resolution)
	}
	if task.Ratio != "" {
		fmt.Fprintf(w, "   Ratio: %s\n", task.Ratio)
	}
	if task.Duration != 0 {
		fmt.Fprintf(w, "   Duration: %ds\n", task.Duration)
	}
}

var statusEmoji = map[sdk.TaskStatus]string{
	sdk.TaskStatusSucceeded: "✅",
	sdk.TaskStatusFailed:    "❌",
	sdk.TaskStatusExpired:   "⏰",
	sdk.TaskStatusCancelled: "🚫",
}

// PrintFinalStatus reports a task that stopped being watched.
func PrintFinalStatus(w io.Writer, task *sdk.TaskRecord) {
	emoji, ok := statusEmoji[task.Status]
	if !ok {
		emoji = "❓"
	}
	fmt.Fprintf(w, "%s Task completed!\n", emoji)
	fmt.Fprintf(w, "   Status: %s\n", statusStyle(lipgloss.NewRenderer(w), task.Status).Render(task.Status.String()))
	if task.Status == sdk.TaskStatusFailed && task.ErrorMessage != "" {
		fmt.Fprintf(w, "   Error: %s\n", task.ErrorMessage)
	}
	if task.Status == sdk.TaskStatusSucceeded && task.Usage != nil {
		fmt.Fprintf(w, "   Usage: %d input + %d output tokens\n", task.InputTokens(), task.OutputTokens())
	}
}

// PollLine is the single-line progress shown while watching a task.
func PollLine(task sdk.TaskRecord) string {
	switch task.Status {
	case sdk.TaskStatusRunning:
		return fmt.Sprintf("\rRunning... (Task: %s...)", shortID(task.ID))
	case sdk.TaskStatusQueued:
		return fmt.Sprintf("\rQueued... (Task: %s...)", shortID(task.ID))
	default:
		return ""
	}
}

// ClearLine blanks the poll line.
func ClearLine(w io.Writer) {
	fmt.Fprint(w, "\r"+strings.Repeat(" ", 60)+"\r")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

const (
	statusWidth  = 12
	modelWidth   = 35
	taskIDWidth  = 12
	createdWidth = 20
)

// FormatTaskList renders tasks as a fixed-width table followed by the page
// footer. Status cells are coloured when w supports it.
func FormatTaskList(w io.Writer, list *sdk.TaskList) string {
	if len(list.Tasks) == 0 {
		return "No tasks found."
	}

	renderer := lipgloss.NewRenderer(w)
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s", statusWidth, "Status", modelWidth, "Model", taskIDWidth, "Task ID", createdWidth, "Created")
	lines := []string{
		renderer.NewStyle().Bold(true).Render(header),
		strings.Repeat("-", len(header)),
	}

	for _, task := range list.Tasks {
		model := task.Model
		if len(model) > 32 {
			model = model[:29] + "..."
		}
		taskID := task.ID
		if len(taskID) > 10 {
			taskID = taskID[:8] + ".."
		}
		created := task.CreatedAt
		if len(created) > 19 {
			created = created[:19]
		}

		status := fmt.Sprintf("%-*s", statusWidth, task.Status)
		lines = append(lines, fmt.Sprintf("%s %-*s %-*s %-*s",
			statusStyle(renderer, task.Status).Render(status),
			modelWidth, model,
			taskIDWidth, taskID,
			createdWidth, created,
		))
	}

	lines = append(lines, "", fmt.Sprintf("Page %d/%d | Total tasks: %d", list.Page.PageNum, list.Page.TotalPages(), list.Page.Total))
	return strings.Join(lines, "\n")
}

func statusStyle(renderer *lipgloss.Renderer, status sdk.TaskStatus) lipgloss.Style {
	style := renderer.NewStyle()
	switch status {
	case sdk.TaskStatusSucceeded:
		return style.Foreground(lipgloss.Color("2"))
	case sdk.TaskStatusFailed:
		return style.Foreground(lipgloss.Color("1"))
	case sdk.TaskStatusRunning:
		return style.Foreground(lipgloss.Color("4"))
	case sdk.TaskStatusQueued:
		return style.Foreground(lipgloss.Color("3"))
	default:
		return style.Faint(true)
	}
}
