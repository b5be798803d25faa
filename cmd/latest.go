package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/format"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/style"
	"github.com/creatv/creatv/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(latestCmd)

	latestCmd.Flags().IntP("page", "p", 1, "Page of the feed to show")
	latestCmd.Flags().IntP("limit", "l", 0, "Videos per page, defaults to search.limit")
}

// latestCmd lists the newest public videos and plays the chosen one.
var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Browse the newest videos",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			page  = lo.Must(cmd.Flags().GetInt("page"))
			limit = lo.Must(cmd.Flags().GetInt("limit"))
		)

		if limit <= 0 {
			limit = viper.GetInt(key.SearchLimit)
		}

		client := newClient()

		erase := util.PrintErasable(fmt.Sprintf("%s Fetching the latest videos...", icon.Get(icon.Progress)))
		feed, err := client.LatestVideos(cmd.Context(), page, limit)
		erase()
		handleErr(err)

		if len(feed.Videos) == 0 {
			handleErr(errors.New("no videos on this page"))
		}

		picked := pickVideo("Latest videos", feed.Videos)
		handleErr(playVideo(cmd.Context(), picked.IDString(), mo.None[float64]()))
	},
}

// videoLabel renders one listing row: title, channel, views, age and length.
func videoLabel(v *api.VideoSummary, now time.Time) string {
	var details []string

	if v.ChannelDisplayName != "" {
		details = append(details, v.ChannelDisplayName)
	}

	details = append(details, format.Views(v.ViewCount))

	if published := v.Published(); !published.IsZero() {
		details = append(details, format.RelativeTime(published, now))
	}

	if v.DurationSeconds > 0 {
		details = append(details, format.Duration(v.DurationSeconds))
	}

	if p := v.WatchProgress; p != nil && p.Completed {
		details = append(details, "watched")
	}

	return fmt.Sprintf("%s %s", v.Title, style.Faint(strings.Join(details, " · ")))
}

// pickVideo asks the user to choose one of videos.
func pickVideo(message string, videos []*api.VideoSummary) *api.VideoSummary {
	now := time.Now()
	labels := lo.Map(videos, func(v *api.VideoSummary, _ int) string {
		return videoLabel(v, now)
	})

	var index int
	prompt := &survey.Select{
		Message:  message,
		Options:  labels,
		PageSize: 15,
	}

	handleErr(survey.AskOne(prompt, &index))
	return videos[index]
}
