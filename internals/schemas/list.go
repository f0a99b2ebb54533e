package schemas

import (
	"fmt"

	"github.com/Oudwins/seedance/sdk"

	z "github.com/Oudwins/zog"
)

type ListArgs struct {
	Status   sdk.TaskStatus
	Model    string
	TaskIDs  []string
	PageNum  int
	PageSize int
}

var ListArgsSchema = z.Struct(z.Shape{
	"Status":  z.StringLike[sdk.TaskStatus]().Optional().OneOf(sdk.TaskStatuses, z.Message("status must be one of queued, running, succeeded, failed, expired, cancelled")),
	"Model":   z.String().Optional().Trim(),
	"TaskIDs": z.Slice(z.String().Trim()),
}).TestFunc(func(valPtr any, ctx z.Ctx) bool {
	return valPtr.(*ListArgs).PageNum >= 1
}, z.Message("--page-num must be >= 1")).TestFunc(func(valPtr any, ctx z.Ctx) bool {
	size := valPtr.(*ListArgs).PageSize
	return size >= 1 && size <= sdk.MaxPageSize
}, z.Message("--page-size must be between 1 and 500"))

func (a *ListArgs) Validate() error {
	if issues := ListArgsSchema.Validate(a); len(issues) > 0 {
		return fmt.Errorf("invalid arguments:\n%s", z.Issues.Prettify(issues))
	}
	return nil
}

func (a ListArgs) Options() sdk.ListOptions {
	return sdk.ListOptions{
		PageNum:  a.PageNum,
		PageSize: a.PageSize,
		Status:   a.Status,
		Model:    a.Model,
		TaskIDs:  a.TaskIDs,
	}
}
