package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/util"
	"github.com/creatv/creatv/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is a file or directory the clear command can remove.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"watch history", "history", mo.Some("H"), where.History},
	{"search suggestions", "queries", mo.Some("q"), where.Queries},
	{"video metadata cache", "videos", mo.Some("v"), where.Videos},
	{"temporary files", "temp", mo.None[string](), where.Temp},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("all", "a", false, "clear everything listed below")

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd removes cached and recorded data.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove caches, history or search suggestions",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			anyCleared bool
			all        = lo.Must(cmd.Flags().GetBool("all"))
		)

		for _, target := range clearTargets {
			if !all && !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			location := target.location()
			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := util.Delete(location)
			e()
			if !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
