package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haulmatch/loadboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves just enough of the messaging surface for the view:
// per-counterpart histories and the send endpoint.
type fakeAPI struct {
	mu       sync.Mutex
	messages map[uint][]models.Message
	nextID   uint
	failGets bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{messages: make(map[uint][]models.Message), nextID: 1}
}

func (f *fakeAPI) add(otherID uint, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[otherID] = append(f.messages[otherID], models.Message{
		Model:      models.Model{ID: f.nextID, CreatedAt: time.Now()},
		SenderID:   otherID,
		ReceiverID: 1,
		Content:    content,
	})
	f.nextID++
}

func (f *fakeAPI) setFailGets(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGets = fail
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/messages/send", func(w http.ResponseWriter, r *http.Request) {
		var req models.SendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		if strings.TrimSpace(req.Content) == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"message": "", "data": nil, "errors": "message content cannot be empty",
			})
			return
		}

		f.mu.Lock()
		msg := models.Message{
			Model:      models.Model{ID: f.nextID, CreatedAt: time.Now()},
			SenderID:   1,
			ReceiverID: req.ReceiverID,
			Content:    req.Content,
		}
		f.nextID++
		f.messages[req.ReceiverID] = append(f.messages[req.ReceiverID], msg)
		f.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "message sent", "data": msg, "errors": "",
		})
	})
	mux.HandleFunc("/api/v1/messages/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		fail := f.failGets
		f.mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		id, err := strconv.ParseUint(strings.TrimPrefix(r.URL.Path, "/api/v1/messages/"), 10, 32)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		history := append([]models.Message(nil), f.messages[uint(id)]...)
		f.mu.Unlock()

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "", "data": history, "errors": "",
		})
	})
	return mux
}

func newTestView(t *testing.T, api *fakeAPI) *ConversationView {
	t.Helper()
	ts := httptest.NewServer(api.handler())
	t.Cleanup(ts.Close)
	v := NewConversationView(ts.URL, "test-token")
	v.SetPollInterval(time.Hour)
	t.Cleanup(v.Close)
	return v
}

func TestSelectFetchesImmediately(t *testing.T) {
	api := newFakeAPI()
	api.add(2, "Hello")
	v := newTestView(t, api)

	v.Select(2)

	msgs := v.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Hello", msgs[0].Content)
}

func TestPollPicksUpNewMessages(t *testing.T) {
	api := newFakeAPI()
	v := newTestView(t, api)
	v.SetPollInterval(10 * time.Millisecond)

	v.Select(2)
	assert.Empty(t, v.Messages())

	api.add(2, "Hello")
	require.Eventually(t, func() bool {
		return len(v.Messages()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSendRefreshesWithoutWaitingForTick(t *testing.T) {
	api := newFakeAPI()
	v := newTestView(t, api)

	v.Select(2)
	msg, err := v.Send("Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", msg.Content)

	msgs := v.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Hello", msgs[0].Content)
}

func TestSendWithoutSelection(t *testing.T) {
	api := newFakeAPI()
	v := newTestView(t, api)

	_, err := v.Send("Hello")
	assert.Error(t, err)
}

func TestSendSurfacesServerError(t *testing.T) {
	api := newFakeAPI()
	v := newTestView(t, api)

	v.Select(2)
	_, err := v.Send("   ")
	require.Error(t, err)
	assert.Equal(t, "message content cannot be empty", err.Error())
}

func TestStaleResponseDiscarded(t *testing.T) {
	api := newFakeAPI()
	api.add(2, "old conversation")
	api.add(3, "new conversation")
	v := newTestView(t, api)

	v.Select(2)
	v.mu.Lock()
	staleGen := v.gen
	v.mu.Unlock()
	v.Select(3)

	// A response from the previous selection resolving late must not
	// replace the current snapshot.
	v.refresh(context.Background(), staleGen, 2)

	msgs := v.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "new conversation", msgs[0].Content)
}

func TestPollErrorsKeepLastSnapshot(t *testing.T) {
	api := newFakeAPI()
	api.add(2, "Hello")
	v := newTestView(t, api)
	v.SetPollInterval(10 * time.Millisecond)

	v.Select(2)
	require.Len(t, v.Messages(), 1)

	api.setFailGets(true)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, v.Messages(), 1)

	api.setFailGets(false)
	api.add(2, "back online")
	require.Eventually(t, func() bool {
		return len(v.Messages()) == 2
	}, time.Second, 5*time.Millisecond)
}
