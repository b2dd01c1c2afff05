package dashboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rileyhilliard/healthdash/internal/health"
)

// hostItem adapts a host to the bubbles list.
type hostItem struct {
	host    health.Host
	failing int
}

func (i hostItem) Title() string { return i.host.Title() }

func (i hostItem) Description() string {
	url := i.host.PublicURL()
	if url == "" {
		url = "no public address"
	}
	if i.failing > 0 {
		return fmt.Sprintf("%s  ·  %d failing", url, i.failing)
	}
	return url
}

func (i hostItem) FilterValue() string {
	return i.host.Title() + " " + i.host.ID + " " + i.host.PublicIP + " " + i.host.InternalIP
}

func hostItems(hosts []health.Host) []list.Item {
	items := make([]list.Item, 0, len(hosts))
	for _, h := range hosts {
		items = append(items, hostItem{host: h, failing: health.Aggregate(h).Failing()})
	}
	return items
}

func newPicker(width, height int) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorAccent).
		BorderForeground(ColorAccent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorAccentDim).
		BorderForeground(ColorAccent)

	l := list.New(nil, delegate, width, height)
	l.Title = "Hosts"
	l.Styles.Title = TitleStyle
	l.SetShowHelp(false)
	l.SetStatusBarItemName("host", "hosts")
	l.DisableQuitKeybindings()
	return l
}

func newGotoInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "goto "
	ti.Placeholder = "/hosts/{id}"
	ti.CharLimit = 256
	ti.PromptStyle = TitleStyle
	return ti
}
