package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/format"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/style"
	"github.com/creatv/creatv/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(commentsCmd)
	commentsCmd.SetOut(os.Stdout)

	commentsCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	commentsCmd.Flags().IntP("limit", "l", 20, "Maximum number of comments to show")
	commentsCmd.Flags().IntP("offset", "o", 0, "Number of comments to skip")
	commentsCmd.Flags().Int64P("replies", "r", 0, "List the replies of a comment id")
	commentsCmd.Flags().StringP("post", "p", "", "Post a comment instead of listing")
	commentsCmd.Flags().Int64("reply-to", 0, "Comment id to reply to, with --post")
	commentsCmd.MarkFlagsMutuallyExclusive("post", "json")
}

var commentsCmd = &cobra.Command{
	Use:   "comments <video id>",
	Short: "Read or post comments on a video",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		videoID := args[0]

		if text := lo.Must(cmd.Flags().GetString("post")); text != "" {
			id, err := client.PostComment(cmd.Context(), videoID, text, lo.Must(cmd.Flags().GetInt64("reply-to")))
			handleErr(err)
			cmd.Printf("%s Posted comment %d\n", style.Fg(color.Green)(icon.Get(icon.Success)), id)
			return
		}

		comments, err := client.Comments(cmd.Context(), videoID, api.CommentOptions{
			ParentID: lo.Must(cmd.Flags().GetInt64("replies")),
			Limit:    lo.Must(cmd.Flags().GetInt("limit")),
			Offset:   lo.Must(cmd.Flags().GetInt("offset")),
		})
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			if comments == nil {
				comments = []*api.Comment{}
			}
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(comments))
			return
		}

		if len(comments) == 0 {
			cmd.Println(style.Faint("No comments yet"))
			return
		}

		width := 80
		if w, _, err := util.TerminalSize(); err == nil && w > 0 {
			width = w
		}

		now := time.Now()
		for _, c := range comments {
			cmd.Println(commentHeader(c, now))
			if c.IsHidden {
				cmd.Println(style.Faint(strings.TrimSpace("Hidden " + c.HiddenReason)))
			} else {
				cmd.Println(util.Wrap(c.Content, width))
			}
			cmd.Println()
		}
	},
}

// commentHeader renders the id, badges and counters above a comment's text.
func commentHeader(c *api.Comment, now time.Time) string {
	var badges []string
	if c.IsPinned {
		badges = append(badges, "pinned")
	}
	if c.IsCreatorReply {
		badges = append(badges, "creator")
	}

	details := []string{
		util.Quantify(int(c.LikeCount), "like", "likes"),
	}
	if c.ReplyCount > 0 {
		details = append(details, util.Quantify(int(c.ReplyCount), "reply", "replies"))
	}
	if !c.CreatedAt.IsZero() {
		details = append(details, format.RelativeTime(c.CreatedAt, now))
	}

	header := style.Fg(color.Yellow)(fmt.Sprintf("#%d", c.ID))
	if len(badges) > 0 {
		header += " " + style.Fg(color.Brand)(strings.Join(badges, " "))
	}

	return header + " " + style.Faint(strings.Join(details, " · "))
}
