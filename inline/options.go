package inline

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/util"
	"github.com/samber/mo"
)

// Catalog is the part of api.Client inline mode reads from.
type Catalog interface {
	LatestVideos(ctx context.Context, page, limit int) (*api.LatestPage, error)
	SearchVideos(ctx context.Context, q string, limit, offset int) (*api.SearchPage, error)
	Video(ctx context.Context, id string) (*api.Video, error)
}

type Picker func([]*api.VideoSummary) *api.VideoSummary

type Options struct {
	Out     io.Writer
	Catalog Catalog
	Json    bool

	// Query searches when set, otherwise the latest feed is listed.
	Query  string
	Page   int
	Limit  int
	Offset int

	Picker mo.Option[Picker]

	// IncludeCandidates resolves the playback candidates of every selected video.
	IncludeCandidates bool
	IncludeChapters   bool
	Platform          playback.Platform
	URLs              playback.URLResolver
}

// ParsePicker accepts first, last, exact or a zero-based index.
func ParsePicker(kind, query string) (Picker, error) {
	switch kind {
	case "first":
		return func(videos []*api.VideoSummary) *api.VideoSummary {
			if len(videos) == 0 {
				return nil
			}
			return videos[0]
		}, nil
	case "last":
		return func(videos []*api.VideoSummary) *api.VideoSummary {
			if len(videos) == 0 {
				return nil
			}
			return videos[len(videos)-1]
		}, nil
	case "exact":
		return func(videos []*api.VideoSummary) *api.VideoSummary {
			for _, v := range videos {
				if strings.EqualFold(v.Title, query) {
					return v
				}
			}
			return nil
		}, nil
	default:
		idx, err := strconv.ParseUint(kind, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unknown picker: %s", kind)
		}
		return func(videos []*api.VideoSummary) *api.VideoSummary {
			if len(videos) == 0 {
				return nil
			}
			return videos[util.Clamp(int(idx), 0, len(videos)-1)]
		}, nil
	}
}
