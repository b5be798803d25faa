package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/format"
	"github.com/creatv/creatv/history"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.SetOut(os.Stdout)

	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.Flags().IntP("limit", "l", 20, "Maximum number of entries to show")
	historyCmd.Flags().StringP("remove", "r", "", "Forget the entry of a video id")
}

// historyCmd lists locally recorded watch progress, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently watched videos",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if id := lo.Must(cmd.Flags().GetString("remove")); id != "" {
			handleErr(history.Remove(id))
			cmd.Printf("%s Removed %s from history\n", style.Fg(color.Green)(icon.Get(icon.Success)), id)
			return
		}

		entries, err := history.Recent()
		handleErr(err)

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			if entries == nil {
				entries = []*history.Entry{}
			}
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("Nothing watched yet"))
			return
		}

		now := time.Now()
		for _, e := range entries {
			progress := lo.Ternary(
				e.Completed,
				style.Fg(color.Green)("watched"),
				format.Duration(e.LastPosition)+" / "+format.Duration(e.DurationSeconds),
			)

			cmd.Printf(
				"%s %s %s %s\n",
				style.Fg(color.Yellow)(e.VideoID),
				e.Title,
				progress,
				style.Faint(format.RelativeTime(e.UpdatedAt, now)),
			)
		}
	},
}
