package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/color"
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
	rootCmd.AddCommand(subscriptionsCmd)
	subscriptionsCmd.SetOut(os.Stdout)

	subscriptionsCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	subscriptionsCmd.Flags().IntP("limit", "l", 200, "Maximum number of channels to list")

	subscriptionsCmd.AddCommand(subscriptionsVideosCmd)
	subscriptionsVideosCmd.Flags().IntP("page", "p", 1, "Page of the feed to show")
	subscriptionsVideosCmd.Flags().IntP("limit", "l", 0, "Videos per page, defaults to search.limit")

	subscriptionsCmd.AddCommand(subscribeCmd)
	subscriptionsCmd.AddCommand(unsubscribeCmd)
}

// parseID reads a positive numeric id argument.
func parseID(kind, arg string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		handleErr(fmt.Errorf("invalid %s id %q", kind, arg))
	}
	return id
}

var subscriptionsCmd = &cobra.Command{
	Use:     "subscriptions",
	Aliases: []string{"subs"},
	Short:   "List the channels you follow",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()

		page, err := client.SubscriptionChannels(cmd.Context(), 1, lo.Must(cmd.Flags().GetInt("limit")))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			channels := page.Channels
			if channels == nil {
				channels = []*api.SubscriptionChannel{}
			}
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(channels))
			return
		}

		if len(page.Channels) == 0 {
			cmd.Println(style.Faint("Not following any channel yet"))
			return
		}

		for _, ch := range page.Channels {
			cmd.Printf("%s %s\n", style.Fg(color.Yellow)(strconv.FormatInt(ch.ChannelID, 10)), ch.DisplayName)
		}
	},
}

var subscriptionsVideosCmd = &cobra.Command{
	Use:   "videos",
	Short: "Browse new videos from the channels you follow",
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

		erase := util.PrintErasable(fmt.Sprintf("%s Fetching your subscriptions...", icon.Get(icon.Progress)))
		feed, err := client.SubscriptionVideos(cmd.Context(), page, limit)
		erase()
		handleErr(err)

		if len(feed.Videos) == 0 {
			handleErr(errors.New("no new videos from your subscriptions"))
		}

		picked := pickVideo("Subscriptions", feed.Videos)
		handleErr(playVideo(cmd.Context(), picked.IDString(), mo.None[float64]()))
	},
}

var subscribeCmd = &cobra.Command{
	Use:   "add <channel id>",
	Short: "Follow a channel",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setSubscription(cmd, parseID("channel", args[0]), true)
	},
}

var unsubscribeCmd = &cobra.Command{
	Use:   "remove <channel id>",
	Short: "Stop following a channel",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setSubscription(cmd, parseID("channel", args[0]), false)
	},
}

func setSubscription(cmd *cobra.Command, channelID int64, subscribe bool) {
	client := newClient()
	handleErr(client.SetSubscription(cmd.Context(), channelID, subscribe))

	verb := lo.Ternary(subscribe, "Subscribed to", "Unsubscribed from")
	cmd.Printf("%s %s channel %d\n", style.Fg(color.Green)(icon.Get(icon.Success)), verb, channelID)
}
