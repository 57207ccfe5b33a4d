package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// bridgeServer runs a relay bridge answering each text frame through respond.
func bridgeServer(t *testing.T, respond func(command string) string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if msgType != websocket.TextMessage {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(respond(string(data)))); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestQueryExchange(t *testing.T) {
	var got string
	srv := bridgeServer(t, func(command string) string {
		got = command
		return "R-200"
	})

	ch, err := Dial(context.Background(), wsURL(srv))
	require.NoError(t, err)
	defer ch.Close()

	resp, err := ch.Query(context.Background(), "DoPlaySound(3)")
	require.NoError(t, err)
	assert.Equal(t, "R-200", resp)
	assert.Equal(t, "DoPlaySound(3)", got)
}

func TestQuerySequentialExchanges(t *testing.T) {
	srv := bridgeServer(t, func(command string) string {
		switch command {
		case "GetVolume()":
			return "100"
		case "GetPlayStatus()":
			return "PLAYING"
		default:
			return "R-200"
		}
	})

	ch, err := Dial(context.Background(), wsURL(srv))
	require.NoError(t, err)
	defer ch.Close()
	ctx := context.Background()

	resp, err := ch.Query(ctx, "GetVolume()")
	require.NoError(t, err)
	assert.Equal(t, "100", resp)

	resp, err = ch.Query(ctx, "GetPlayStatus()")
	require.NoError(t, err)
	assert.Equal(t, "PLAYING", resp)

	resp, err = ch.Query(ctx, "DoStopSound()")
	require.NoError(t, err)
	assert.Equal(t, "R-200", resp)
}

func TestQuerySkipsBinaryFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		conn.WriteMessage(websocket.BinaryMessage, []byte{0x01})
		conn.WriteMessage(websocket.TextMessage, []byte("R-200"))
		conn.ReadMessage()
	}))
	t.Cleanup(srv.Close)

	ch, err := Dial(context.Background(), wsURL(srv))
	require.NoError(t, err)
	defer ch.Close()

	resp, err := ch.Query(context.Background(), "IsAlive()")
	require.NoError(t, err)
	assert.Equal(t, "R-200", resp)
}

func TestQueryContextCancellation(t *testing.T) {
	silent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		// Swallow commands without replying.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(silent.Close)

	ch, err := Dial(context.Background(), wsURL(silent))
	require.NoError(t, err)
	defer ch.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = ch.Query(ctx, "GetVolume()")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The abandoned exchange poisons the stream; the channel must be closed.
	_, err = ch.Query(context.Background(), "GetVolume()")
	assert.ErrorIs(t, err, ErrChannelClosed)
}

func TestQueryAfterClose(t *testing.T) {
	srv := bridgeServer(t, func(string) string { return "R-200" })

	ch, err := Dial(context.Background(), wsURL(srv))
	require.NoError(t, err)
	require.NoError(t, ch.Close())

	_, err = ch.Query(context.Background(), "IsAlive()")
	assert.ErrorIs(t, err, ErrChannelClosed)
}

func TestCloseIdempotent(t *testing.T) {
	srv := bridgeServer(t, func(string) string { return "R-200" })

	ch, err := Dial(context.Background(), wsURL(srv))
	require.NoError(t, err)
	assert.NoError(t, ch.Close())
	assert.NoError(t, ch.Close())
}

func TestDialFailure(t *testing.T) {
	srv := bridgeServer(t, func(string) string { return "R-200" })
	url := wsURL(srv)
	srv.Close()

	_, err := Dial(context.Background(), url)
	assert.Error(t, err)
}
