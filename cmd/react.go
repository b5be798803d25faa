package cmd

import (
	"fmt"
	"os"

	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/format"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reactCmd)
	reactCmd.SetOut(os.Stdout)
}

// reactCmd toggles like and dislike the way the like buttons do: repeating a reaction clears it.
var reactCmd = &cobra.Command{
	Use:       "react <video id> [like|dislike|none]",
	Short:     "Like or dislike a video, or show its reactions",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{string(api.ReactionLike), string(api.ReactionDislike), "none"},
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		videoID := args[0]

		current, err := client.Reactions(cmd.Context(), videoID)
		handleErr(err)

		if len(args) == 1 {
			cmd.Println(reactionSummary(current))
			return
		}

		pressed, err := api.ParseReaction(args[1])
		handleErr(err)

		next := api.NextReaction(current.UserReaction, pressed)
		handleErr(client.React(cmd.Context(), videoID, next))

		updated, err := client.Reactions(cmd.Context(), videoID)
		handleErr(err)

		cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), reactionSummary(updated))
	},
}

// reactionSummary renders the counters and marks the viewer's own reaction.
func reactionSummary(r *api.Reactions) string {
	mark := func(label string, count int64, own bool) string {
		text := fmt.Sprintf("%s %s", format.Count(count), label)
		if own {
			return style.Fg(color.Brand)(text + " (you)")
		}
		return text
	}

	return fmt.Sprintf(
		"%s · %s",
		mark("likes", r.LikeCount, r.UserReaction == api.ReactionLike),
		mark("dislikes", r.DislikeCount, r.UserReaction == api.ReactionDislike),
	)
}
