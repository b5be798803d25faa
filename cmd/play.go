package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/auth"
	"github.com/creatv/creatv/format"
	"github.com/creatv/creatv/history"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/log"
	"github.com/creatv/creatv/player"
	"github.com/creatv/creatv/session"
	"github.com/creatv/creatv/share"
	"github.com/creatv/creatv/tui"
	"github.com/creatv/creatv/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("at", "t", "", "Start at a timestamp such as 90, 1:30 or 1:02:03")
	playCmd.Flags().BoolP("from-start", "s", false, "Ignore the saved position and start from the beginning")
	playCmd.MarkFlagsMutuallyExclusive("at", "from-start")
}

// playCmd plays a single video in mpv with the control surface attached.
var playCmd = &cobra.Command{
	Use:   "play <video id>",
	Short: "Play a video by its id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		start := mo.None[float64]()

		if at := lo.Must(cmd.Flags().GetString("at")); at != "" {
			seconds, ok := format.ParseShareTimestamp(at).Get()
			if !ok {
				handleErr(fmt.Errorf("invalid timestamp %q", at))
			}
			start = mo.Some(float64(seconds))
		}

		if lo.Must(cmd.Flags().GetBool("from-start")) {
			start = mo.Some(0.0)
		}

		handleErr(playVideo(cmd.Context(), args[0], start))
	},
}

// newClient builds an API client with whatever credentials the keyring holds.
func newClient() *api.Client {
	credentials, err := auth.Load()
	if err != nil {
		log.Warnf("load credentials: %v", err)
		credentials = auth.Credentials{}
	}

	return api.FromConfig(credentials)
}

// fetchVideo loads metadata behind a progress line.
func fetchVideo(ctx context.Context, client *api.Client, id string) (*api.Video, error) {
	erase := util.PrintErasable(fmt.Sprintf("%s Loading video %s...", icon.Get(icon.Progress), id))
	defer erase()

	return client.Video(ctx, id)
}

// isPremium asks the user service whether the signed-in viewer has Premium. Anonymous
// viewers and lookup failures count as free.
func isPremium(ctx context.Context, client *api.Client) bool {
	credentials := client.Credentials()
	if !credentials.LoggedIn() || credentials.UID == "" {
		return false
	}

	user, err := client.User(ctx, credentials.UID)
	if err != nil {
		log.Warnf("premium status: %v", err)
		return false
	}

	return user.IsPremium
}

// remoteResume returns the server-side position when nothing is saved locally.
func remoteResume(ctx context.Context, client *api.Client, id string) mo.Option[float64] {
	if !viper.GetBool(key.PlayerResume) || client.Credentials().UserID == "" {
		return mo.None[float64]()
	}

	if local, err := history.Find(id); err == nil && local.IsPresent() {
		return mo.None[float64]()
	}

	progress, err := client.WatchProgress(ctx, id)
	if err != nil {
		log.Warnf("watch progress: %v", err)
		return mo.None[float64]()
	}

	if progress.Completed || progress.LastPositionSeconds <= 0 {
		return mo.None[float64]()
	}

	return mo.Some(progress.LastPositionSeconds)
}

// playVideo runs a full session: mpv, the fallback controller and the TUI.
func playVideo(ctx context.Context, id string, start mo.Option[float64]) error {
	CheckDependencies()

	client := newClient()
	video, err := fetchVideo(ctx, client, id)
	if err != nil {
		return err
	}

	if start.IsAbsent() {
		start = remoteResume(ctx, client, video.IDString())
	}

	p, err := player.New(viper.GetString(key.Player))
	if err != nil {
		return err
	}

	s, err := session.New(session.Options{
		Video:   video,
		Player:  p,
		Premium: isPremium(ctx, client),
		Start:   start,
	})
	if err != nil {
		return errors.Join(err, p.Close())
	}

	if err := s.Start(); err != nil {
		return errors.Join(err, s.Close())
	}

	err = tui.Run(&tui.Options{
		Session: s,
		Builder: share.FromConfig(client),
	})

	return errors.Join(err, s.Close())
}
