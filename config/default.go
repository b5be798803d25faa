package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/constant"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a single documented configuration entry.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `creatv config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable bound to this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Creatv + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes both the current and the default value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds every registered configuration field by key.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.APIVideoMetadataURL, "https://api.creatv.io/video-metadata", "Base URL of the video metadata API")
	register(key.APISearchURL, "https://api.creatv.io/search", "Base URL of the search API")
	register(key.APIUserURL, "https://api.creatv.io/users-api", "Base URL of the user API")
	register(key.APISharingURL, "", "Base URL of the sharing API.\nWhen empty, share links point directly at the web player")
	register(key.APITimeout, 30, "Timeout for API requests, in seconds")
	register(key.CDNMediaBaseURL, "https://cdn.creatv.io", "CDN base prepended to relative media keys")
	register(key.CDNBucketBaseURL, "https://cdn.creatv.io", "Public bucket base; URLs already under it are left untouched")
	register(key.WebBaseURL, "https://creatv.io", "Web base used for fallback share links")
	register(key.Player, "mpv", "Media player used to render videos")
	register(key.PlayerPlatform, "android", "Candidate ordering policy.\nandroid: premium DASH, then HLS, then file\nios: HLS, then file")
	register(key.PlayerCompletionPercentage, 90, "Percentage required to mark a video as watched (1-100)")
	register(key.PlayerApplyChapters, true, "Send chapters parsed from the description to the player")
	register(key.PlayerResume, true, "Resume from the last locally saved position")
	register(key.HistorySaveOnWatch, true, "Save local watch history when a session ends")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.SearchLimit, 20, "Number of search results to show")
	register(key.ShareDefaultTarget, "copy", "Share target used when none is given.\nAvailable options are: copy, email, sms, whatsapp, telegram, x, facebook, linkedin, instagram, other")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain, squares")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
