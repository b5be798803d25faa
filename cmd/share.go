package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/format"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/share"
	"github.com/creatv/creatv/style"
	"github.com/creatv/creatv/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.SetOut(os.Stdout)

	shareCmd.Flags().StringP("target", "T", "", "Where to share: copy, email, sms, whatsapp, telegram, x, facebook, linkedin, instagram, other")
	lo.Must0(shareCmd.RegisterFlagCompletionFunc("target", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(share.Targets, func(t share.TargetInfo, _ int) string {
			return string(t.Target)
		}), cobra.ShellCompDirectiveNoFileComp
	}))

	shareCmd.Flags().StringP("at", "t", "", "Start the shared link at a timestamp such as 90 or 1:30")
	shareCmd.Flags().BoolP("print", "p", false, "Only print the link")
}

// shareCmd builds a share link for a video and hands it to the chosen target.
var shareCmd = &cobra.Command{
	Use:   "share <video id>",
	Short: "Share a link to a video",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		start := 0
		if at := lo.Must(cmd.Flags().GetString("at")); at != "" {
			seconds, ok := format.ParseShareTimestamp(at).Get()
			if !ok {
				handleErr(fmt.Errorf("invalid timestamp %q", at))
			}
			start = seconds
		}

		target, err := shareTarget(cmd)
		handleErr(err)

		client := newClient()
		video, err := fetchVideo(cmd.Context(), client, args[0])
		handleErr(err)

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		erase := util.PrintErasable(fmt.Sprintf("%s Creating link...", icon.Get(icon.Progress)))
		link := share.FromConfig(client).Build(ctx, video.ID, target, start)
		erase()

		if lo.Must(cmd.Flags().GetBool("print")) {
			cmd.Println(link)
			return
		}

		action, err := share.DefaultDispatcher().Dispatch(target, video.Title, link)
		handleErr(err)

		if action == share.ActionPrinted {
			return
		}

		fmt.Printf(
			"%s %s %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Capitalize(action.String()),
			style.Fg(color.Yellow)(link),
		)
	},
}

// shareTarget reads --target, asks when attached to a terminal, and falls back to
// share.default_target otherwise.
func shareTarget(cmd *cobra.Command) (share.Target, error) {
	if cmd.Flags().Changed("target") {
		return share.ParseTarget(lo.Must(cmd.Flags().GetString("target")))
	}

	fallback, err := share.ParseTarget(viper.GetString(key.ShareDefaultTarget))
	if err != nil {
		return "", err
	}

	if !util.IsTerminal() || lo.Must(cmd.Flags().GetBool("print")) {
		return fallback, nil
	}

	var label string
	prompt := &survey.Select{
		Message: "Share to",
		Options: lo.Map(share.Targets, func(t share.TargetInfo, _ int) string { return t.Label }),
		Default: fallback.Label(),
	}
	if err := survey.AskOne(prompt, &label); err != nil {
		return "", err
	}

	return share.ParseTarget(label)
}
