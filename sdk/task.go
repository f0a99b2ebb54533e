package sdk

import (
	"strconv"
)

type TaskStatus string

const (
	TaskStatusQueued    TaskStatus = "queued"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusSucceeded TaskStatus = "succeeded"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusExpired   TaskStatus = "expired"
	TaskStatusCancelled TaskStatus = "cancelled"
)

var TaskStatuses = []TaskStatus{
	TaskStatusQueued,
	TaskStatusRunning,
	TaskStatusSucceeded,
	TaskStatusFailed,
	TaskStatusExpired,
	TaskStatusCancelled,
}

// ParseTaskStatus never fails: anything unrecognised is treated as queued.
func ParseTaskStatus(raw string) TaskStatus {
	for _, status := range TaskStatuses {
		if string(status) == raw {
			return status
		}
	}
	return TaskStatusQueued
}

func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusSucceeded, TaskStatusFailed, TaskStatusExpired, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

func (s TaskStatus) String() string {
	return string(s)
}

// TaskRecord is one generation task as last reported by the server. Optional
// fields are zero when the server omitted them, whatever the status.
type TaskRecord struct {
	ID           string
	Status       TaskStatus
	Model        string
	CreatedAt    string
	VideoURL     string
	LastFrameURL string
	Resolution   string
	Ratio        string
	Duration     int
	ErrorMessage string
	Usage        map[string]any
	Raw          map[string]any
}

func ParseTaskRecord(data map[string]any) TaskRecord {
	content, _ := data["content"].(map[string]any)
	usage, _ := data["usage"].(map[string]any)

	createdAt := textField(data, "created_at")
	if createdAt == "" {
		createdAt = textField(data, "created")
	}

	errorMessage := stringField(data, "error_message")
	if errorMessage == "" {
		if nested, ok := data["error"].(map[string]any); ok {
			errorMessage = stringField(nested, "message")
		}
	}

	return TaskRecord{
		ID:           stringField(data, "id"),
		Status:       ParseTaskStatus(stringField(data, "status")),
		Model:        stringField(data, "model"),
		CreatedAt:    createdAt,
		VideoURL:     stringField(content, "video_url"),
		LastFrameURL: stringField(content, "last_frame_url"),
		Resolution:   stringField(data, "resolution"),
		Ratio:        stringField(data, "ratio"),
		Duration:     intField(data, "duration"),
		ErrorMessage: errorMessage,
		Usage:        usage,
		Raw:          data,
	}
}

func (t TaskRecord) InputTokens() int {
	return intField(t.Usage, "input_tokens")
}

func (t TaskRecord) OutputTokens() int {
	return intField(t.Usage, "output_tokens")
}

type PageInfo struct {
	PageNum  int
	PageSize int
	Total    int
}

// TotalPages is zero when the page size is unknown.
func (p PageInfo) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

type TaskList struct {
	Tasks []TaskRecord
	Page  PageInfo
	Raw   map[string]any
}

func parseTaskList(data map[string]any, requested PageInfo) TaskList {
	items, ok := data["tasks"].([]any)
	if !ok {
		items, _ = data["items"].([]any)
	}

	tasks := make([]TaskRecord, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			tasks = append(tasks, ParseTaskRecord(obj))
		}
	}

	page := requested
	if nested, ok := data["page"].(map[string]any); ok {
		if num := intField(nested, "page_num"); num > 0 {
			page.PageNum = num
		}
		if size := intField(nested, "page_size"); size > 0 {
			page.PageSize = size
		}
		page.Total = intField(nested, "total")
	} else if _, ok := data["total"]; ok {
		page.Total = intField(data, "total")
	}

	return TaskList{Tasks: tasks, Page: page, Raw: data}
}

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	value, _ := data[key].(string)
	return value
}

func textField(data map[string]any, key string) string {
	switch value := data[key].(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return ""
	}
}

func intField(data map[string]any, key string) int {
	if data == nil {
		return 0
	}
	switch value := data[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	case string:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
