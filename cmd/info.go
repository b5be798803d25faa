package cmd

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/cdn"
	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/format"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/log"
	"github.com/creatv/creatv/open"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/share"
	"github.com/creatv/creatv/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.SetOut(os.Stdout)

	infoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	infoCmd.Flags().BoolP("web", "w", false, "Open the video in the browser")
}

// videoInfo is the --json shape of the info command.
type videoInfo struct {
	Video      *api.Video           `json:"video"`
	Channel    *api.Channel         `json:"channel,omitempty"`
	Candidates []playback.Candidate `json:"candidates"`
	Chapters   []chapters.Chapter   `json:"chapters"`
	WebURL     string               `json:"web_url"`
}

// infoCmd prints the metadata, channel and playback sources of a video.
var infoCmd = &cobra.Command{
	Use:   "info <video id>",
	Short: "Show details and playback sources of a video",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		video, err := fetchVideo(cmd.Context(), client, args[0])
		handleErr(err)

		platform, err := playback.ParsePlatform(viper.GetString(key.PlayerPlatform))
		handleErr(err)

		info := videoInfo{
			Video:      video,
			Candidates: playback.NewResolver(cdn.FromConfig()).Resolve(video.IDString(), video.ManifestKeys(), platform).Items,
			Chapters:   chapters.Parse(video.Description, video.DurationSeconds),
			WebURL:     share.NewBuilder(viper.GetString(key.WebBaseURL), nil).WebURL(video.ID, 0),
		}

		if video.ChannelID > 0 {
			channel, err := client.Channel(cmd.Context(), strconv.FormatInt(video.ChannelID, 10))
			if err != nil {
				log.Warnf("channel %d: %v", video.ChannelID, err)
			} else {
				info.Channel = channel
			}
		}

		if lo.Must(cmd.Flags().GetBool("web")) {
			handleErr(open.Start(info.WebURL))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			if info.Candidates == nil {
				info.Candidates = []playback.Candidate{}
			}
			if info.Chapters == nil {
				info.Chapters = []chapters.Chapter{}
			}
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
			return
		}

		printInfo(cmd, info)
	},
}

func printInfo(cmd *cobra.Command, info videoInfo) {
	var (
		video = info.Video
		label = style.Fg(color.Purple)
	)

	cmd.Println(style.Bold(video.Title))

	if info.Channel != nil {
		name := info.Channel.DisplayName
		if info.Channel.IsVerified {
			name += " ✓"
		}
		cmd.Printf("%s %s %s\n", label("Channel"), name, style.Faint(format.Count(info.Channel.SubscriberCount)+" subscribers"))
	}

	cmd.Printf("%s %s\n", label("Length"), format.Duration(video.DurationSeconds))
	cmd.Printf(
		"%s %s · %s likes · %s comments\n",
		label("Stats"),
		format.Views(video.ViewCount),
		format.Count(video.LikeCount),
		format.Count(video.CommentCount),
	)

	if video.PublishedAt != nil {
		cmd.Printf("%s %s\n", label("Published"), format.RelativeTime(*video.PublishedAt, time.Now()))
	}

	cmd.Printf("%s %s\n", label("Link"), info.WebURL)

	if len(info.Candidates) == 0 {
		cmd.Printf("%s %s\n", label("Sources"), style.Fg(color.Red)("none"))
	} else {
		cmd.Println(label("Sources"))
		for i, c := range info.Candidates {
			cmd.Printf("  %d. %s %s\n", i+1, style.Fg(color.Yellow)(string(c.Mode)), c.URL)
		}
	}

	if len(info.Chapters) > 0 {
		cmd.Println(label("Chapters"))
		for _, c := range info.Chapters {
			cmd.Printf("  %s  %s\n", style.Fg(color.Yellow)(c.Timestamp), c.Title)
		}
	}
}
