package cmd

import (
	"encoding/json"
	"os"

	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/format"
	"github.com/creatv/creatv/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chaptersCmd)
	chaptersCmd.SetOut(os.Stdout)

	chaptersCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

// chaptersCmd prints the chapter markers parsed from a video description.
var chaptersCmd = &cobra.Command{
	Use:   "chapters <video id>",
	Short: "List the chapters of a video",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		video, err := fetchVideo(cmd.Context(), newClient(), args[0])
		handleErr(err)

		list := chapters.Parse(video.Description, video.DurationSeconds)

		if lo.Must(cmd.Flags().GetBool("json")) {
			if list == nil {
				list = []chapters.Chapter{}
			}
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(list))
			return
		}

		if len(list) == 0 {
			cmd.Println(style.Faint("No chapters in the description"))
			return
		}

		cmd.Println(style.Bold(video.Title), style.Faint(format.Duration(video.DurationSeconds)))
		for _, c := range list {
			cmd.Printf("  %s  %s\n", style.Fg(color.Yellow)(c.Timestamp), c.Title)
		}
	},
}
