// Command encore is the terminal remote for an encored daemon.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/mlevasseur/encore/internal/client"
	"github.com/mlevasseur/encore/internal/config"
	"github.com/mlevasseur/encore/internal/errmsg"
	"github.com/mlevasseur/encore/internal/mpris"
	"github.com/mlevasseur/encore/internal/notify"
)

func main() {
	var (
		addr     = pflag.String("addr", "", "daemon address (overrides config)")
		user     = pflag.StringP("user", "u", "", "log in as this user on startup")
		playlist = pflag.StringP("playlist", "p", "", "start the player over this playlist")
	)
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Client.Addr = *addr
	}

	c, err := client.Dial(cfg.Client.Addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.FormatWith(errmsg.OpConnect, cfg.Client.Addr, err))
		os.Exit(1)
	}
	defer func() {
		if err := c.Close(); err != nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpDisconnect, err))
		}
	}()

	var notifier notify.Notifier
	if cfg.Client.NotificationsEnabled() {
		notifier, _ = notify.New()
	}

	if cfg.Client.MprisEnabled() {
		if adapter, err := mpris.New(c); err == nil {
			defer adapter.Close()
		}
	}

	m := initialModel(c, notifier, *user, *playlist)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
