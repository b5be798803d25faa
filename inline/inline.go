package inline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/cdn"
	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/log"
	"github.com/creatv/creatv/playback"
	"github.com/samber/lo"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	summaries, err := list(ctx, options)
	if err != nil {
		return err
	}

	selected := summaries
	if picker, ok := options.Picker.Get(); ok {
		selected = nil
		if choice := picker(summaries); choice != nil {
			selected = []*api.VideoSummary{choice}
		}
	}

	videos := make([]*Video, 0, len(selected))
	for _, summary := range selected {
		video := &Video{Video: summary}
		if err := prepareVideo(ctx, video, options); err != nil {
			return err
		}
		videos = append(videos, video)
	}

	if options.Json {
		return writeJson(options.Out, videos, options)
	}

	for _, video := range videos {
		if options.IncludeCandidates && len(video.Candidates) > 0 {
			for _, c := range video.Candidates {
				fmt.Fprintln(options.Out, c.URL)
			}
			continue
		}

		fmt.Fprintf(options.Out, "%d\t%s\n", video.Video.ID, video.Video.Title)
	}

	return nil
}

func list(ctx context.Context, options *Options) ([]*api.VideoSummary, error) {
	limit := lo.Ternary(options.Limit > 0, options.Limit, 20)

	if options.Query != "" {
		page, err := options.Catalog.SearchVideos(ctx, options.Query, limit, options.Offset)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", options.Query, err)
		}
		return page.Results, nil
	}

	page, err := options.Catalog.LatestVideos(ctx, max(options.Page, 1), limit)
	if err != nil {
		return nil, fmt.Errorf("latest videos: %w", err)
	}

	return page.Videos, nil
}

// prepareVideo fetches the full record when candidates or chapters were asked for.
func prepareVideo(ctx context.Context, video *Video, options *Options) error {
	if !options.IncludeCandidates && !options.IncludeChapters {
		return nil
	}

	full, err := options.Catalog.Video(ctx, video.Video.IDString())
	if err != nil {
		if api.IsNotFound(err) {
			log.Warnf("video %d disappeared while listing", video.Video.ID)
			return nil
		}
		return err
	}

	if options.IncludeCandidates {
		urls := options.URLs
		if urls == nil {
			urls = cdn.FromConfig()
		}

		platform := lo.Ternary(options.Platform == "", playback.PlatformAndroid, options.Platform)
		video.Candidates = playback.NewResolver(urls).Resolve(full.IDString(), full.ManifestKeys(), platform).Items
	}

	if options.IncludeChapters {
		video.Chapters = chapters.Parse(full.Description, full.DurationSeconds)
	}

	return nil
}

func writeJson(out io.Writer, videos []*Video, options *Options) error {
	data, err := asJson(videos, options.Query)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
