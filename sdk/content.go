package sdk

type ContentType string

const (
	ContentTypeText      ContentType = "text"
	ContentTypeImage     ContentType = "image"
	ContentTypeDraftTask ContentType = "draft_task"
)

type ImageRole string

const (
	ImageRoleFirstFrame     ImageRole = "first_frame"
	ImageRoleLastFrame      ImageRole = "last_frame"
	ImageRoleReferenceImage ImageRole = "reference_image"
)

// ContentItem is one entry of a create payload's content array.
type ContentItem struct {
	Type        ContentType `json:"type"`
	Text        string      `json:"text,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	Role        ImageRole   `json:"role,omitempty"`
	DraftTaskID string      `json:"draft_task_id,omitempty"`
}

func TextItem(text string) ContentItem {
	return ContentItem{Type: ContentTypeText, Text: text}
}

func ImageItem(dataURI string, role ImageRole) ContentItem {
	return ContentItem{Type: ContentTypeImage, ImageURL: dataURI, Role: role}
}

func DraftTaskItem(taskID string) ContentItem {
	return ContentItem{Type: ContentTypeDraftTask, DraftTaskID: taskID}
}

var (
	Resolutions  = []string{"480p", "720p", "1080p"}
	Ratios       = []string{"16:9", "4:3", "1:1", "3:4", "9:16", "21:9", "adaptive"}
	ServiceTiers = []string{"default", "flex"}
)

// AutoDuration lets the model pick the clip length.
const AutoDuration = -1

const (
	MinDuration = 2
	MaxDuration = 12
)

func ValidDuration(seconds int) bool {
	return seconds == AutoDuration || (seconds >= MinDuration && seconds <= MaxDuration)
}
