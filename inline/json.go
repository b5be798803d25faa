// Package inline is the non-interactive, scriptable mode: it lists or searches videos and
// prints them, optionally with their playback candidates and chapters.
package inline

import (
	"encoding/json"

	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/playback"
)

type Video struct {
	// Video is the listing entry.
	Video *api.VideoSummary `json:"video"`
	// Candidates are the playback sources in fallback order (optional).
	Candidates []playback.Candidate `json:"candidates,omitempty"`
	// Chapters are parsed from the description (optional).
	Chapters []chapters.Chapter `json:"chapters,omitempty"`
}

type Output struct {
	Query  string   `json:"query,omitempty" jsonschema:"description=Search query, empty for the latest feed"`
	Result []*Video `json:"result"`
}

func asJson(videos []*Video, query string) ([]byte, error) {
	if videos == nil {
		videos = []*Video{}
	}

	return json.Marshal(&Output{
		Query:  query,
		Result: videos,
	})
}
