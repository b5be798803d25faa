package cmd

import (
	"errors"
	"fmt"
	"os"

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
	rootCmd.AddCommand(watchLaterCmd)
	watchLaterCmd.SetOut(os.Stdout)

	watchLaterCmd.Flags().IntP("page", "p", 1, "Page of the list to show")
	watchLaterCmd.Flags().IntP("limit", "l", 0, "Videos per page, defaults to search.limit")

	watchLaterCmd.AddCommand(watchLaterAddCmd)
	watchLaterCmd.AddCommand(watchLaterRemoveCmd)
	watchLaterCmd.AddCommand(watchLaterHasCmd)
}

// watchLaterCmd lists saved videos and plays the chosen one.
var watchLaterCmd = &cobra.Command{
	Use:     "watch-later",
	Aliases: []string{"later"},
	Short:   "Browse the videos you saved for later",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			page  = lo.Must(cmd.Flags().GetInt("page"))
			limit = lo.Must(cmd.Flags().GetInt("limit"))
		)

		if limit <= 0 {
			limit = viper.GetInt(key.SearchLimit)
		}

		client := newClient()

		erase := util.PrintErasable(fmt.Sprintf("%s Fetching Watch Later...", icon.Get(icon.Progress)))
		list, err := client.WatchLater(cmd.Context(), page, limit)
		erase()
		handleErr(err)

		if len(list.Videos) == 0 {
			handleErr(errors.New("nothing saved for later"))
		}

		picked := pickVideo("Watch Later", list.Videos)
		handleErr(playVideo(cmd.Context(), picked.IDString(), mo.None[float64]()))
	},
}

var watchLaterAddCmd = &cobra.Command{
	Use:   "add <video id>",
	Short: "Save a video for later",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID("video", args[0])
		change, err := newClient().AddToWatchLater(cmd.Context(), id)
		handleErr(err)

		message := lo.Ternary(change.Added, fmt.Sprintf("Saved %d for later", id), fmt.Sprintf("%d was already saved", id))
		cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), message)
	},
}

var watchLaterRemoveCmd = &cobra.Command{
	Use:   "remove <video id>",
	Short: "Remove a video from Watch Later",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID("video", args[0])
		change, err := newClient().RemoveFromWatchLater(cmd.Context(), id)
		handleErr(err)

		message := lo.Ternary(change.Removed, fmt.Sprintf("Removed %d from Watch Later", id), fmt.Sprintf("%d was not saved", id))
		cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), message)
	},
}

var watchLaterHasCmd = &cobra.Command{
	Use:   "has <video id>",
	Short: "Check whether a video is saved for later",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID("video", args[0])
		saved, err := newClient().InWatchLater(cmd.Context(), id)
		handleErr(err)

		cmd.Println(lo.Ternary(saved, "saved", "not saved"))
		if !saved {
			os.Exit(1)
		}
	},
}
