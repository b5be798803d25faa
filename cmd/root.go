// Package cmd implements the command-line interface for creatv.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/constant"
	"github.com/creatv/creatv/history"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/log"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/style"
	"github.com/creatv/creatv/util"
	"github.com/creatv/creatv/version"
	"github.com/creatv/creatv/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist playback progress to the local watch history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnWatch, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().StringP("platform", "P", "", "Client platform deciding whether DASH is tried first (android, ios)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("platform", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(playback.Platforms, func(p playback.Platform, _ int) string {
			return string(p)
		}), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlayerPlatform, rootCmd.PersistentFlags().Lookup("platform")))

	rootCmd.Flags().BoolP("continue", "c", false, "Resume the most recently watched video")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(cmd.Context())
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd plays a video by id, or resumes the last one with --continue.
var rootCmd = &cobra.Command{
	Use:   constant.Creatv + " [video id]",
	Short: "Watch CreaTV videos from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.Brand).Render("    - Watch CreaTV videos from the terminal"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if lo.Must(cmd.Flags().GetBool("continue")) {
			entries, err := history.Recent()
			handleErr(err)

			if len(entries) == 0 {
				handleErr(errors.New("nothing to continue, the watch history is empty"))
			}

			handleErr(playVideo(cmd.Context(), entries[0].VideoID, mo.None[float64]()))
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		handleErr(playVideo(cmd.Context(), args[0], mo.None[float64]()))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
