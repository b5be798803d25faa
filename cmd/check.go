package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/style"
	"github.com/spf13/viper"
)

// CheckDependencies exits when the configured player binary is not on PATH.
func CheckDependencies() {
	binary := viper.GetString(key.Player)
	if binary == "" {
		binary = "mpv"
	}

	if _, err := exec.LookPath(binary); err != nil {
		printMissingDependencyError(binary)
		os.Exit(1)
	}
}

func installHint(goos string) string {
	switch goos {
	case "darwin":
		return "brew install mpv"
	case "linux":
		for _, manager := range [][2]string{
			{"apt", "sudo apt install mpv"},
			{"dnf", "sudo dnf install mpv"},
			{"pacman", "sudo pacman -S mpv"},
		} {
			if _, err := exec.LookPath(manager[0]); err == nil {
				return manager[1]
			}
		}
		return "install mpv with your package manager"
	case "windows":
		return "scoop install mpv"
	default:
		return ""
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Missing player", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("CreaTV plays videos through %s, which was not found in your PATH.", dep))

	suggestion := ""
	if hint := installHint(runtime.GOOS); hint != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
