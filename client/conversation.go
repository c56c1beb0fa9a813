// Package client implements the conversation view used by polling
// consumers of the messaging API. It is the fallback delivery path:
// even with the realtime channel down, a selected conversation
// converges on the server's state within one poll interval.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/haulmatch/loadboard/models"
)

// DefaultPollInterval matches the browser client's refresh cadence.
const DefaultPollInterval = 3 * time.Second

type apiEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  string          `json:"errors"`
}

// ConversationView holds the in-memory snapshot of one selected
// conversation. Every applied fetch replaces the whole snapshot; there
// is no incremental merge, so no de-duplication is needed.
type ConversationView struct {
	baseURL    string
	token      string
	httpClient *http.Client
	interval   time.Duration

	mu       sync.Mutex
	otherID  uint
	gen      uint64
	cancel   context.CancelFunc
	messages []models.Message
}

func NewConversationView(baseURL, accessToken string) *ConversationView {
	return &ConversationView{
		baseURL:    baseURL,
		token:      accessToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		interval:   DefaultPollInterval,
	}
}

// SetPollInterval overrides the refresh cadence. Only affects
// subsequent selections.
func (v *ConversationView) SetPollInterval(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.interval = d
}

// Select switches the view to the conversation with otherID: the
// previous poll loop is cancelled, history is fetched immediately and
// then re-fetched on the interval until the selection changes.
func (v *ConversationView) Select(otherID uint) {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.gen++
	gen := v.gen
	v.otherID = otherID
	v.messages = nil
	interval := v.interval
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.mu.Unlock()

	v.refresh(ctx, gen, otherID)
	go v.pollLoop(ctx, gen, otherID, interval)
}

// Close stops polling and clears the selection.
func (v *ConversationView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.gen++
	v.otherID = 0
	v.messages = nil
}

// Messages returns the current snapshot, oldest first.
func (v *ConversationView) Messages() []models.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Message, len(v.messages))
	copy(out, v.messages)
	return out
}

// Send posts a message to the selected counterpart and refreshes the
// snapshot as soon as the send resolves, without waiting for the next
// tick or the push channel.
func (v *ConversationView) Send(content string) (*models.Message, error) {
	v.mu.Lock()
	otherID := v.otherID
	gen := v.gen
	v.mu.Unlock()
	if otherID == 0 {
		return nil, fmt.Errorf("no conversation selected")
	}

	body, err := json.Marshal(models.SendMessageRequest{ReceiverID: otherID, Content: content})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, v.baseURL+"/api/v1/messages/send", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.token)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		// Surface the server-provided message verbatim.
		return nil, fmt.Errorf("%s", envelope.Errors)
	}

	var msg models.Message
	if err := json.Unmarshal(envelope.Data, &msg); err != nil {
		return nil, err
	}

	v.refresh(context.Background(), gen, otherID)
	return &msg, nil
}

func (v *ConversationView) pollLoop(ctx context.Context, gen uint64, otherID uint, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v.refresh(ctx, gen, otherID)
		}
	}
}

// refresh fetches the current history and replaces the snapshot, but
// only if the selection that issued the fetch is still current. Fetch
// failures are swallowed; the next tick tries again.
func (v *ConversationView) refresh(ctx context.Context, gen uint64, otherID uint) {
	msgs, err := v.fetchHistory(ctx, otherID)
	if err != nil {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		// Selection changed while the request was in flight.
		return
	}
	v.messages = msgs
}

func (v *ConversationView) fetchHistory(ctx context.Context, otherID uint) ([]models.Message, error) {
	url := fmt.Sprintf("%s/api/v1/messages/%d", v.baseURL, otherID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+v.token)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history fetch failed: %s", resp.Status)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	msgs := make([]models.Message, 0)
	if err := json.Unmarshal(envelope.Data, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
