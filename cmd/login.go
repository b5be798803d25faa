package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/auth"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/style"
	"github.com/creatv/creatv/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().String("token", "", "Access token, asked for when omitted")
	loginCmd.Flags().String("uid", "", "Account uid, asked for when omitted")
}

// loginCmd stores an access token in the system keyring and resolves the profile behind it.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with an access token",
	Long: `Sign in with an access token and account uid.
The token is kept in the system keyring and sent with every request.
Signed-in viewers get their Premium qualities unlocked.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		token := lo.Must(cmd.Flags().GetString("token"))
		if token == "" {
			prompt := &survey.Password{Message: "Access token"}
			handleErr(survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)))
		}

		uid := lo.Must(cmd.Flags().GetString("uid"))
		if uid == "" {
			prompt := &survey.Input{Message: "Account uid"}
			handleErr(survey.AskOne(prompt, &uid, survey.WithValidator(survey.Required)))
		}

		credentials := auth.Credentials{
			Token: strings.TrimSpace(token),
			UID:   strings.TrimSpace(uid),
		}

		if credentials.Token == "" || credentials.UID == "" {
			handleErr(errors.New("both token and uid are required"))
		}

		client := api.FromConfig(credentials)

		erase := util.PrintErasable(fmt.Sprintf("%s Checking your account...", icon.Get(icon.Progress)))
		user, err := client.User(cmd.Context(), credentials.UID)
		erase()
		handleErr(err)

		credentials.UserID = strconv.FormatInt(user.ID, 10)
		handleErr(auth.Save(credentials))

		name := lo.Ternary(user.DisplayName != "", user.DisplayName, user.Email)
		plan := lo.Ternary(user.IsPremium, style.Fg(color.Premium)("Premium"), "Free")
		fmt.Printf(
			"%s Signed in as %s %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Bold(name),
			style.Faint("("+plan+")"),
		)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// logoutCmd forgets stored credentials.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored access token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.Delete())
		fmt.Printf("%s Signed out\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
