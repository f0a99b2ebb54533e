package env

import (
	"fmt"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zenv"
)

const DefaultBaseURL = "https://ark.ap-southeast.bytepluses.com/api/v3"

type EnvStruct struct {
	HOME         string `zog:"HOME"`
	ARK_API_KEY  string `zog:"ARK_API_KEY"`
	ARK_BASE_URL string `zog:"ARK_BASE_URL"`
	LOG_LEVEL    string `zog:"SEEDANCE_LOG_LEVEL"`
}

var EnvSchema = z.Struct(z.Shape{
	"HOME":         z.String().Optional(),
	"ARK_API_KEY":  z.String().Optional().Trim(),
	"ARK_BASE_URL": z.String().Optional().Trim(),
	"LOG_LEVEL":    z.String().Optional().Trim(),
})

// Load parses the process environment. Callers read it once when building a client.
func Load() (*EnvStruct, error) {
	parsed := &EnvStruct{}
	if errs := EnvSchema.Parse(zenv.NewDataProvider(), parsed); errs != nil {
		return nil, fmt.Errorf("failed to parse environment variables:\n%s", z.Issues.Prettify(errs))
	}
	if parsed.ARK_BASE_URL == "" {
		parsed.ARK_BASE_URL = DefaultBaseURL
	}
	parsed.ARK_BASE_URL = strings.TrimRight(parsed.ARK_BASE_URL, "/")
	parsed.LOG_LEVEL = strings.ToLower(parsed.LOG_LEVEL)
	return parsed, nil
}
