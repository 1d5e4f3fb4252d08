// Terminal dashboard for following a running exercise over websocket
package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"floodex/internal/logging"
	"floodex/internal/protocol"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// Run dials the exercise server at wsURL and renders its snapshots until
// the user quits or the context is cancelled.
func Run(ctx context.Context, wsURL string) error {
	log := logging.FromContext(ctx)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	p := tea.NewProgram(newModel(wsURL), tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go readLoop(conn, p, log)

	_, err = p.Run()
	return err
}

// readLoop feeds decoded server messages into the TUI until the connection
// drops.
func readLoop(conn *websocket.Conn, p teaProgram, log *slog.Logger) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			p.Send(disconnectedMsg{})
			return
		}
		base, err := protocol.DecodeBase(raw)
		if err != nil {
			log.Warn("undecodable message from server", "error", err)
			continue
		}
		switch base.Type {
		case protocol.TypeState:
			var m protocol.StateMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				continue
			}
			p.Send(stateMsg{snap: m.State})
		case protocol.TypeToast:
			var m protocol.ToastMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				continue
			}
			p.Send(toastMsg{level: m.Level, message: m.Message})
		}
	}
}
