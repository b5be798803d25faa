package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creatv/creatv/cdn"
	"github.com/creatv/creatv/filesystem"
	"github.com/creatv/creatv/inline"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/query"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "Search query, the latest feed is listed when omitted")
	inlineCmd.Flags().StringP("video", "V", "", "Criteria for selecting a single video from the results")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("candidates", "c", false, "Resolve the playback sources of the selected videos")
	inlineCmd.Flags().BoolP("chapters", "C", false, "Include chapters parsed from the descriptions")
	inlineCmd.Flags().IntP("page", "p", 1, "Page of the latest feed")
	inlineCmd.Flags().IntP("limit", "l", 0, "Maximum number of videos, defaults to search.limit")
	inlineCmd.Flags().IntP("offset", "O", 0, "Number of search results to skip")
	inlineCmd.Flags().StringP("output", "o", "", "Write the output to a file instead of stdout")

	_ = inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// inlineCmd prints videos for scripts, optionally with stream URLs.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "List or search videos without the interactive interface",
	Long: `List the latest videos or search results for use in scripts.

Video selectors:
  first - first video in the list
  last - last video in the list
  exact - video whose title equals the query
  [number] - select video by index (starting from 0)

Without --json the output is one "id<TAB>title" line per video, or the
candidate URLs in fallback order when --candidates is set.`,
	Example: `  creatv inline -q "surf" -V first -c | head -n1 | xargs mpv`,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			q      = lo.Must(cmd.Flags().GetString("query"))
			output = lo.Must(cmd.Flags().GetString("output"))
			limit  = lo.Must(cmd.Flags().GetInt("limit"))
		)

		if limit <= 0 {
			limit = viper.GetInt(key.SearchLimit)
		}

		picker := mo.None[inline.Picker]()
		if selector := lo.Must(cmd.Flags().GetString("video")); selector != "" {
			fn, err := inline.ParsePicker(selector, q)
			handleErr(err)
			picker = mo.Some(fn)
		}

		platform, err := playback.ParsePlatform(viper.GetString(key.PlayerPlatform))
		handleErr(err)

		var (
			buffer bytes.Buffer
			writer io.Writer = os.Stdout
		)
		if output != "" {
			writer = &buffer
		}

		options := &inline.Options{
			Out:               writer,
			Catalog:           newClient(),
			Json:              lo.Must(cmd.Flags().GetBool("json")),
			Query:             q,
			Page:              lo.Must(cmd.Flags().GetInt("page")),
			Limit:             limit,
			Offset:            lo.Must(cmd.Flags().GetInt("offset")),
			Picker:            picker,
			IncludeCandidates: lo.Must(cmd.Flags().GetBool("candidates")),
			IncludeChapters:   lo.Must(cmd.Flags().GetBool("chapters")),
			Platform:          platform,
			URLs:              cdn.FromConfig(),
		}

		handleErr(inline.Run(cmd.Context(), options))

		if output != "" {
			handleErr(filesystem.WriteAtomic(output, buffer.Bytes()))
		}
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates the JSON schema of the --json output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the inline output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "video", "output", "candidate", "chapter":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
