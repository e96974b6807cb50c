package gateway

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	natspkg "github.com/piresc/hopon/internal/pkg/nats"
)

var testNatsURL = "nats://127.0.0.1:8372"

func TestMain(m *testing.M) {
	opts := natsserver.DefaultTestOptions
	opts.Port = 8372
	testNatsServer := natsserver.RunServer(&opts)
	code := m.Run()
	testNatsServer.Shutdown()
	os.Exit(code)
}

func TestMessageGW_PublishMessageCreated(t *testing.T) {
	nc, err := natspkg.NewClient(testNatsURL)
	require.NoError(t, err, "Failed to connect to NATS server")
	defer nc.Close()

	msgCh := make(chan *nats.Msg, 1)
	sub, err := nc.Subscribe(constants.SubjectMessageCreated, func(msg *nats.Msg) {
		msgCh <- msg
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	gw := NewMessageGW(nc)
	err = gw.PublishMessageCreated(context.Background(), &models.MessageEvent{
		Message: models.Message{ID: "m1", TripID: "t1", UserID: "alice", Text: "hello", Timestamp: 1751617800000},
	})
	require.NoError(t, err)

	select {
	case msg := <-msgCh:
		var event models.MessageEvent
		require.NoError(t, json.Unmarshal(msg.Data, &event))
		assert.Equal(t, "m1", event.Message.ID)
		assert.Equal(t, int64(1751617800000), event.Message.Timestamp)
	case <-time.After(2 * time.Second):
		t.Fatal("Did not receive published message")
	}
}

func TestMessageGW_NilClientIsNoop(t *testing.T) {
	assert.NoError(t, NewMessageGW(nil).PublishMessageCreated(context.Background(), &models.MessageEvent{}))
}
