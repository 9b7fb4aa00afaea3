package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danprtma/watchparty/internal/client"
	"github.com/danprtma/watchparty/internal/tui"
)

var (
	flagServer string
	flagName   string
)

var joinCmd = &cobra.Command{
	Use:     "join <room>",
	Aliases: []string{"j"},
	Short:   "Join a room and start watching together",
	Long: `Join a room on the relay. Everyone in the same room shares the chat
and the playback clock.

Examples:
  watchparty join movie-night
  watchparty join movie-night --name alice
  watchparty join movie-night --server wss://relay.example.com/ws`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return joinRoom(args[0])
	},
}

func joinRoom(roomID string) error {
	wsURL, err := serverURL(flagServer)
	if err != nil {
		return err
	}

	session := client.NewSession(wsURL)
	defer session.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := session.Connect(ctx); err != nil {
		return fmt.Errorf("connect to %s: %w", wsURL, err)
	}

	username := strings.TrimSpace(flagName)
	if username != "" {
		if err := session.UpdateUsername(username); err != nil {
			return err
		}
	}
	if err := session.JoinRoom(roomID); err != nil {
		return err
	}

	model := tui.NewModel(session, roomID, username)
	defer model.Close()

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// serverURL normalizes the --server value into a websocket URL
func serverURL(server string) (string, error) {
	if server == "" {
		server = "ws://localhost:8080/ws"
	}

	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", server, err)
	}

	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid server URL scheme %q", u.Scheme)
	}

	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}

func init() {
	rootCmd.AddCommand(joinCmd)

	joinCmd.Flags().StringVarP(&flagServer, "server", "s", "", "relay server URL (env: WATCHPARTY_SERVER)")
	joinCmd.Flags().StringVarP(&flagName, "name", "n", "", "display name shown on chat messages (env: WATCHPARTY_NAME)")
}
