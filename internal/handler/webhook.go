package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cvan-em/artsnetwork/internal/content"
	"github.com/cvan-em/artsnetwork/internal/domain"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

// statusWebhookPayload is the flow body the CMS sends on item updates. Flows
// deliver either a single key or a batch of keys depending on how the update
// was made in the admin app.
type statusWebhookPayload struct {
	Collection string          `json:"collection"`
	Key        json.Number     `json:"key,omitempty"`
	Keys       []json.Number   `json:"keys,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}

func (p *statusWebhookPayload) keys() []string {
	var out []string
	if p.Key != "" {
		out = append(out, p.Key.String())
	}
	for _, k := range p.Keys {
		out = append(out, k.String())
	}
	return out
}

// StatusWebhook handles the CMS flow that fires when a record's status
// changes. Publish transitions trigger the "your submission is live" email;
// everything else is acknowledged and ignored so the flow never retries.
func (h *Handler) StatusWebhook(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeWebhook(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body statusWebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var change struct {
		Status string `json:"status"`
	}
	if len(body.Payload) > 0 {
		if err := json.Unmarshal(body.Payload, &change); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
	}

	if change.Status != domain.StatusPublished {
		writeJSON(w, map[string]string{"result": "ignored"})
		return
	}

	var failed int
	for _, key := range body.keys() {
		if err := h.notifyPublished(r, body.Collection, key); err != nil {
			logger.Log.Error("published notification failed", "collection", body.Collection, "key", key, "error", err)
			failed++
		}
	}

	if failed > 0 {
		http.Error(w, "Failed to send notification", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"result": "ok"})
}

func (h *Handler) notifyPublished(r *http.Request, collection, key string) error {
	ctx := r.Context()
	switch collection {
	case content.CollectionEvents:
		ev, err := h.content.EventById(ctx, key)
		if err != nil {
			return err
		}
		return h.publisher.SendEventPublished(ctx, ev)
	case content.CollectionOpportunities:
		op, err := h.content.OpportunityById(ctx, key)
		if err != nil {
			return err
		}
		return h.publisher.SendOpportunityPublished(ctx, op)
	default:
		logger.Log.Debug("webhook for unhandled collection, ignoring", "collection", collection)
		return nil
	}
}

func (h *Handler) authorizeWebhook(r *http.Request) bool {
	secret := h.cfg.WebhookSecret()
	if secret == "" {
		return false
	}
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
