package content

import (
	"fmt"
	"unicode/utf8"

	"github.com/Oudwins/seedance/internals/schemas"
	"github.com/Oudwins/seedance/sdk"

	z "github.com/Oudwins/zog"
)

const MaxPromptLength = 500

var contentTypes = []sdk.ContentType{sdk.ContentTypeText, sdk.ContentTypeImage, sdk.ContentTypeDraftTask}
var imageRoles = []sdk.ImageRole{sdk.ImageRoleFirstFrame, sdk.ImageRoleLastFrame, sdk.ImageRoleReferenceImage}

var ContentItemSchema = z.Struct(z.Shape{
	"Type": z.StringLike[sdk.ContentType]().OneOf(contentTypes).Required(),
	"Role": z.StringLike[sdk.ImageRole]().Optional().OneOf(imageRoles),
}).TestFunc(func(valPtr any, ctx z.Ctx) bool {
	item := valPtr.(*sdk.ContentItem)
	switch item.Type {
	case sdk.ContentTypeText:
		return item.Text != ""
	case sdk.ContentTypeImage:
		return item.ImageURL != "" && item.Role != ""
	case sdk.ContentTypeDraftTask:
		return item.DraftTaskID != ""
	default:
		return false
	}
}, z.Message("Invalid content item"))

// ImageLoader turns an image reference into the value sent as image_url.
type ImageLoader func(path string) (string, error)

type Result struct {
	Items    []sdk.ContentItem
	Warnings []string
}

// Build assembles the content array: the prompt first, then either the draft
// task reference alone or the images in first, last, reference order.
func Build(args schemas.CreateArgs, load ImageLoader) (Result, error) {
	result := Result{}

	if args.Prompt != "" {
		prompt := args.Prompt
		if utf8.RuneCountInString(prompt) > MaxPromptLength {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Prompt exceeds %d characters, truncating...", MaxPromptLength))
			prompt = string([]rune(prompt)[:MaxPromptLength])
		}
		result.Items = append(result.Items, sdk.TextItem(prompt))
	}

	if args.DraftTaskID != "" {
		result.Items = append(result.Items, sdk.DraftTaskItem(args.DraftTaskID))
		return result, validate(result.Items)
	}

	if args.Image != "" {
		if err := appendImage(&result, load, args.Image, sdk.ImageRoleFirstFrame); err != nil {
			return Result{}, err
		}
	}
	if args.LastFrame != "" {
		if args.Image == "" {
			return Result{}, fmt.Errorf("--last-frame requires --image to be specified")
		}
		if err := appendImage(&result, load, args.LastFrame, sdk.ImageRoleLastFrame); err != nil {
			return Result{}, err
		}
	}
	for _, ref := range args.ReferenceImages {
		if err := appendImage(&result, load, ref, sdk.ImageRoleReferenceImage); err != nil {
			return Result{}, err
		}
	}

	return result, validate(result.Items)
}

func appendImage(result *Result, load ImageLoader, path string, role sdk.ImageRole) error {
	uri, err := load(path)
	if err != nil {
		return fmt.Errorf("error processing images: %w", err)
	}
	result.Items = append(result.Items, sdk.ImageItem(uri, role))
	return nil
}

func validate(items []sdk.ContentItem) error {
	if len(items) == 0 {
		return fmt.Errorf("content is empty")
	}
	for i := range items {
		if issues := ContentItemSchema.Validate(&items[i]); len(issues) > 0 {
			return fmt.Errorf("content item %d:\n%s", i, z.Issues.Prettify(issues))
		}
	}
	return nil
}

// Payload is the create request body for args. Optional knobs are only sent
// when turned on.
func Payload(args schemas.CreateArgs, items []sdk.ContentItem) sdk.Payload {
	payload := sdk.Payload{
		"model":             args.Model,
		"content":           items,
		"resolution":        args.Resolution,
		"ratio":             args.Ratio,
		"duration":          args.Duration,
		"watermark":         args.Watermark,
		"service_tier":      args.ServiceTier,
		"return_last_frame": args.ReturnLastFrame,
	}
	if args.Seed != nil {
		payload["seed"] = *args.Seed
	}
	if args.CameraFixed {
		payload["camera_fixed"] = true
	}
	if args.GenerateAudio {
		payload["generate_audio"] = true
	}
	if args.Draft {
		payload["draft"] = true
	}
	return payload
}
