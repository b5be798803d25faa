package share

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/creatv/creatv/open"
)

// Action is what Dispatch ended up doing.
type Action int

const (
	ActionCopied Action = iota
	ActionOpened
	ActionPrinted
)

func (a Action) String() string {
	switch a {
	case ActionCopied:
		return "copied"
	case ActionOpened:
		return "opened"
	default:
		return "printed"
	}
}

// Dispatcher delivers a link to a target.
type Dispatcher struct {
	Copy func(text string) error
	Open func(url string) error
	Out  io.Writer
}

// DefaultDispatcher uses the system clipboard, the desktop URL handler and stdout.
func DefaultDispatcher() *Dispatcher {
	return &Dispatcher{
		Copy: clipboard.WriteAll,
		Open: open.Start,
		Out:  os.Stdout,
	}
}

// Dispatch copies, opens or prints the link. When an intent cannot be opened the message is
// printed instead.
func (d *Dispatcher) Dispatch(target Target, title, link string) (Action, error) {
	if target == TargetCopy {
		if err := d.Copy(link); err != nil {
			return ActionCopied, fmt.Errorf("copy to clipboard: %w", err)
		}
		return ActionCopied, nil
	}

	if intent, ok := IntentURL(target, title, link); ok {
		if err := d.Open(intent); err == nil {
			return ActionOpened, nil
		}
	}

	_, err := fmt.Fprintln(d.Out, Message(title, link))
	return ActionPrinted, err
}
