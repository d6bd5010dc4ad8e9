package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/ssrgoods/internal/errors"
	"github.com/vango-dev/ssrgoods/pkg/component"
	"github.com/vango-dev/ssrgoods/pkg/loader"
)

const (
	liveWriteWait = 10 * time.Second
	liveCloseWait = time.Second
	liveReadLimit = 512
)

// handleLive runs the mount-time refresh for one client: a fresh component
// is mounted (one Load) and the result is sent as a single replace or error
// message before the connection is closed normally.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("live upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(liveReadLimit)

	// The client sends nothing; reading only notices it going away.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	state, err := component.Mount(ctx, component.NewState(nil), loader.LoaderFunc(s.load))

	var msg any
	if err != nil {
		se := errors.FromError(err, errors.CodeSourceUnreachable)
		s.logger.Warn().
			Err(err).
			Str("code", se.Code).
			Str("category", string(se.Category)).
			Msg("live refresh failed")
		msg = component.ErrorMsg{Type: component.MsgTypeError, Code: se.Code, Message: se.Message}
	} else {
		msg = component.Replace{Goods: state.Goods}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Debug().Err(err).Msg("live write failed")
		return
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(liveWriteWait)); err != nil {
		return
	}

	// Give the client a moment to answer the close frame.
	select {
	case <-ctx.Done():
	case <-time.After(liveCloseWait):
	}
}
