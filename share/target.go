package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Target is where a link is being shared to. It is reported to the sharing API.
type Target string

const (
	TargetCopy      Target = "copy"
	TargetEmail     Target = "email"
	TargetSMS       Target = "sms"
	TargetWhatsApp  Target = "whatsapp"
	TargetTelegram  Target = "telegram"
	TargetX         Target = "x"
	TargetFacebook  Target = "facebook"
	TargetLinkedIn  Target = "linkedin"
	TargetInstagram Target = "instagram"
	TargetOther     Target = "other"
)

// TargetInfo pairs a target with its menu label.
type TargetInfo struct {
	Target Target `json:"target"`
	Label  string `json:"label"`
}

// Targets lists every target in menu order.
var Targets = []TargetInfo{
	{TargetCopy, "Copy"},
	{TargetEmail, "Email"},
	{TargetSMS, "SMS"},
	{TargetWhatsApp, "WhatsApp"},
	{TargetTelegram, "Telegram"},
	{TargetX, "X"},
	{TargetFacebook, "Facebook"},
	{TargetLinkedIn, "LinkedIn"},
	{TargetInstagram, "Instagram"},
	{TargetOther, "More"},
}

func (t Target) String() string {
	return string(t)
}

// Label returns the menu label.
func (t Target) Label() string {
	info, ok := lo.Find(Targets, func(i TargetInfo) bool { return i.Target == t })
	if !ok {
		return string(t)
	}
	return info.Label
}

// ParseTarget accepts a target id or label, case-insensitively.
func ParseTarget(name string) (Target, error) {
	name = strings.TrimSpace(name)
	for _, info := range Targets {
		if strings.EqualFold(name, string(info.Target)) || strings.EqualFold(name, info.Label) {
			return info.Target, nil
		}
	}

	ids := lo.Map(Targets, func(i TargetInfo, _ int) string { return string(i.Target) })
	return "", fmt.Errorf("unknown share target %q, expected one of %s", name, strings.Join(ids, ", "))
}

// Message is the text shared alongside the link.
func Message(title, link string) string {
	if title == "" {
		return link
	}
	return title + "\n" + link
}

// encodeComponent escapes s for use inside a query value, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// IntentURL returns the URL handing the link to the target's app or site.
// Copy, Instagram and Other have none.
func IntentURL(target Target, title, link string) (string, bool) {
	message := encodeComponent(Message(title, link))
	encodedLink := encodeComponent(link)

	switch target {
	case TargetEmail:
		subject := title
		if subject == "" {
			subject = "CreaTV"
		}
		return fmt.Sprintf("mailto:?subject=%s&body=%s", encodeComponent(subject), message), true
	case TargetSMS:
		return "sms:&body=" + message, true
	case TargetWhatsApp:
		return "https://wa.me/?text=" + message, true
	case TargetTelegram:
		return fmt.Sprintf("https://t.me/share/url?url=%s&text=%s", encodedLink, message), true
	case TargetX:
		return "https://twitter.com/intent/tweet?text=" + message, true
	case TargetFacebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + encodedLink, true
	case TargetLinkedIn:
		return "https://www.linkedin.com/feed/?shareActive&text=" + message, true
	default:
		return "", false
	}
}
