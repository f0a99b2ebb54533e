package naming

import "strings"

const promptPrefixLength = 20

// TaskSuffix is the part of a task id after its last '-'.
func TaskSuffix(taskID string) string {
	if i := strings.LastIndexByte(taskID, '-'); i >= 0 {
		return taskID[i+1:]
	}
	return taskID
}

// VideoFilename names a downloaded video after the first 20 characters of the
// prompt, with anything outside [A-Za-z0-9_-] replaced by '_'. Without a prompt
// the name is video_<suffix>.mp4.
func VideoFilename(taskID string, prompt string) string {
	suffix := TaskSuffix(taskID)
	if prompt == "" {
		return "video_" + suffix + ".mp4"
	}

	runes := []rune(prompt)
	if len(runes) > promptPrefixLength {
		runes = runes[:promptPrefixLength]
	}
	var b strings.Builder
	b.Grow(len(runes) + len(suffix) + 5)
	for _, r := range runes {
		isAZ := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		is09 := r >= '0' && r <= '9'
		if isAZ || is09 || r == '_' || r == '-' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	b.WriteString("_" + suffix + ".mp4")
	return b.String()
}
