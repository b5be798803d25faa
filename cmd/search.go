package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/format"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/log"
	"github.com/creatv/creatv/query"
	"github.com/creatv/creatv/style"
	"github.com/creatv/creatv/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("limit", "l", 0, "Maximum number of results, defaults to search.limit")
	searchCmd.Flags().IntP("offset", "o", 0, "Number of results to skip")
	searchCmd.Flags().BoolP("channels", "C", false, "Search channels instead of videos")
}

// searchCmd searches public videos and plays the chosen one.
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search videos by title, description or tags, or channels by name",
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			limit  = lo.Must(cmd.Flags().GetInt("limit"))
			offset = lo.Must(cmd.Flags().GetInt("offset"))
			q      = strings.TrimSpace(strings.Join(args, " "))
		)

		if limit <= 0 {
			limit = viper.GetInt(key.SearchLimit)
		}

		if q == "" {
			q = askQuery()
		}

		if err := query.Remember(q, 1); err != nil {
			log.Warnf("remember query: %v", err)
		}

		client := newClient()

		if lo.Must(cmd.Flags().GetBool("channels")) {
			erase := util.PrintErasable(fmt.Sprintf("%s Searching channels for %s...", icon.Get(icon.Progress), q))
			results, err := client.SearchChannels(cmd.Context(), q, limit, offset)
			erase()
			handleErr(err)

			if len(results.Results) == 0 {
				handleErr(fmt.Errorf("no channels found for %q", q))
			}

			cmd.SetOut(os.Stdout)
			for _, ch := range results.Results {
				cmd.Println(channelLabel(ch))
			}
			return
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Searching for %s...", icon.Get(icon.Progress), q))
		results, err := client.SearchVideos(cmd.Context(), q, limit, offset)
		erase()
		handleErr(err)

		if len(results.Results) == 0 {
			handleErr(fmt.Errorf("no videos found for %q", q))
		}

		message := fmt.Sprintf("%s for %q", util.Quantify(results.Total, "result", "results"), q)
		picked := pickVideo(message, results.Results)
		handleErr(playVideo(cmd.Context(), picked.IDString(), mo.None[float64]()))
	},
}

// channelLabel renders one channel search row: id, name and counters.
func channelLabel(ch *api.Channel) string {
	name := ch.DisplayName
	if ch.IsVerified {
		name += " " + style.Fg(color.Brand)("verified")
	}

	details := []string{
		format.Count(ch.SubscriberCount) + " subscribers",
		util.Quantify(int(ch.VideoCount), "video", "videos"),
	}

	return fmt.Sprintf(
		"%s %s %s",
		style.Fg(color.Yellow)(strconv.FormatInt(ch.ID, 10)),
		name,
		style.Faint(strings.Join(details, " · ")),
	)
}

// askQuery prompts for a search, offering remembered queries as suggestions.
func askQuery() string {
	var response string

	input := &survey.Input{
		Message: "Search",
		Suggest: query.SuggestMany,
	}

	if suggestion, ok := query.Suggest("").Get(); ok {
		input.Help = "Recent: " + suggestion
	}

	handleErr(survey.AskOne(input, &response, survey.WithValidator(survey.Required)))
	return strings.TrimSpace(response)
}
