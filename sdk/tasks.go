package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const tasksEndpoint = "/contents/generations/tasks"

const (
	MaxPageSize     = 500
	DefaultPageSize = 10
)

// ServiceTierUnsupportedPrefixes lists model id prefixes that reject the
// service_tier field on task creation. Append new models here.
var ServiceTierUnsupportedPrefixes = []string{
	"seedance-2-0-260128",
	"seedance-2-0",
}

// Payload is the caller-owned create request body.
type Payload map[string]any

func (p Payload) Model() string {
	model, _ := p["model"].(string)
	return model
}

func (c *Client) CreateTask(ctx context.Context, payload Payload) (*TaskRecord, error) {
	body := c.prepareCreatePayload(payload)

	data, err := c.execute(ctx, http.MethodPost, tasksEndpoint, body, nil)
	if err != nil {
		return nil, err
	}

	rawID, hasID := data["id"]
	if id := textField(data, "id"); id != "" {
		task := ParseTaskRecord(data)
		task.ID = id
		return &task, nil
	}
	if taskID := textField(data, "task_id"); taskID != "" {
		c.logger.Debug("create returned bare task id, fetching task", "task_id", taskID)
		return c.GetTask(ctx, taskID)
	}

	if hasID {
		return nil, fmt.Errorf("%w: create response id is not a usable string (got %T)", ErrMalformedResponse, rawID)
	}
	return nil, fmt.Errorf("%w: create response has neither id nor task_id (keys: %s)", ErrMalformedResponse, strings.Join(sortedKeys(data), ", "))
}

// prepareCreatePayload drops service_tier for models that reject it. The
// caller's map is never modified.
func (c *Client) prepareCreatePayload(payload Payload) Payload {
	if _, ok := payload["service_tier"]; !ok {
		return payload
	}
	model := payload.Model()
	if !c.rejectsServiceTier(model) {
		return payload
	}

	out := make(Payload, len(payload))
	for key, value := range payload {
		if key == "service_tier" {
			continue
		}
		out[key] = value
	}
	c.logger.Debug("dropped service_tier for model", "model", model)
	return out
}

func (c *Client) rejectsServiceTier(model string) bool {
	for _, prefix := range c.serviceTierUnsupported {
		if prefix != "" && strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

func (c *Client) GetTask(ctx context.Context, taskID string) (*TaskRecord, error) {
	path, err := taskPath(taskID)
	if err != nil {
		return nil, err
	}
	data, err := c.execute(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	task := ParseTaskRecord(data)
	return &task, nil
}

type ListOptions struct {
	PageNum  int
	PageSize int
	Status   TaskStatus
	Model    string
	TaskIDs  []string
}

type listFilter struct {
	Status  string `json:"status,omitempty"`
	Model   string `json:"model,omitempty"`
	TaskIDs string `json:"task_ids,omitempty"`
}

// Query builds the list query string. Page size is clamped to MaxPageSize and
// empty filters are left out of the filter object entirely.
func (o ListOptions) Query() (url.Values, error) {
	pageNum := o.PageNum
	if pageNum <= 0 {
		pageNum = 1
	}
	pageSize := o.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)

	query := url.Values{}
	query.Set("page_num", strconv.Itoa(pageNum))
	query.Set("page_size", strconv.Itoa(pageSize))

	filter := listFilter{
		Status: string(o.Status),
		Model:  o.Model,
	}
	if len(o.TaskIDs) > 0 {
		filter.TaskIDs = strings.Join(o.TaskIDs, ",")
	}
	if filter != (listFilter{}) {
		encoded, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("%w: encode filter: %w", ErrInvalidRequest, err)
		}
		query.Set("filter", string(encoded))
	}
	return query, nil
}

func (c *Client) ListTasks(ctx context.Context, opts ListOptions) (*TaskList, error) {
	query, err := opts.Query()
	if err != nil {
		return nil, err
	}
	data, err := c.execute(ctx, http.MethodGet, tasksEndpoint, nil, query)
	if err != nil {
		return nil, err
	}

	pageNum, _ := strconv.Atoi(query.Get("page_num"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	list := parseTaskList(data, PageInfo{PageNum: pageNum, PageSize: pageSize})
	return &list, nil
}

// CancelTask cancels a queued or running task, or deletes the record of a
// finished one. The server does not say which happened.
func (c *Client) CancelTask(ctx context.Context, taskID string) (map[string]any, error) {
	path, err := taskPath(taskID)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, http.MethodDelete, path, nil, nil)
}

func taskPath(taskID string) (string, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return "", fmt.Errorf("%w: task id is required", ErrInvalidRequest)
	}
	return tasksEndpoint + "/" + url.PathEscape(taskID), nil
}

func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
