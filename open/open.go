// Package open hands URLs to the desktop's default handler: mail client, browser, messaging apps.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/creatv/creatv/constant"
)

// Start launches the handler for input without waiting for it.
func Start(input string) error {
	cmd, err := command(runtime.GOOS, input)
	if err != nil {
		return err
	}

	return cmd.Start()
}

func command(goos, input string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		// rundll32 truncates at unescaped ampersands in mailto and sms links
		return exec.Command(rundll, "url.dll,FileProtocolHandler", strings.ReplaceAll(input, "&", "^&")), nil
	case constant.Darwin, constant.IOS:
		return exec.Command("open", input), nil
	case constant.Linux:
		return exec.Command("xdg-open", input), nil
	case constant.Android:
		return exec.Command("termux-open-url", input), nil
	default:
		return nil, fmt.Errorf("opening links is not supported on %s", goos)
	}
}
