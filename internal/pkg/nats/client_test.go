package nats

import (
	"os"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNatsURL = "nats://127.0.0.1:8370"

func TestMain(m *testing.M) {
	opts := natsserver.DefaultTestOptions
	opts.Port = 8370
	testNatsServer := natsserver.RunServer(&opts)
	code := m.Run()
	testNatsServer.Shutdown()
	os.Exit(code)
}

func TestNewClient_InvalidAddress(t *testing.T) {
	client, err := NewClient("nats://127.0.0.1:1")
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to NATS server")
}

func TestClient_PublishJSON(t *testing.T) {
	client, err := NewClient(testNatsURL)
	require.NoError(t, err)
	defer client.Close()
	assert.True(t, client.IsConnected())

	msgCh := make(chan *nats.Msg, 1)
	sub, err := client.Subscribe("test.subject", func(msg *nats.Msg) {
		msgCh <- msg
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, client.PublishJSON("test.subject", map[string]string{"tripId": "t1"}))

	select {
	case msg := <-msgCh:
		assert.JSONEq(t, `{"tripId":"t1"}`, string(msg.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("Did not receive published message")
	}
}

func TestClient_PublishJSON_Unencodable(t *testing.T) {
	client, err := NewClient(testNatsURL)
	require.NoError(t, err)
	defer client.Close()

	err = client.PublishJSON("test.subject", make(chan int))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal message")
}

func TestClient_IsConnectedNil(t *testing.T) {
	var client *Client
	assert.False(t, client.IsConnected())
}
