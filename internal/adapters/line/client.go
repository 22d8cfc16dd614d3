package line

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-notifier/internal/domain/messages"
	"pet-care-notifier/internal/platform/httpclient"
	"pet-care-notifier/internal/ports/identity"
)

var (
	ErrLineNotConfigured = errors.New("line client not configured")
	ErrLineUpstream      = errors.New("line upstream error")
	ErrEmptyRecipients   = errors.New("line multicast: no recipients")
)

const (
	DefaultBaseURL = "https://api.line.me"

	// MaxMulticastRecipients es el tope de "to" por llamada de multicast.
	MaxMulticastRecipients = 500

	multicastPath = "/v2/bot/message/multicast"
	profilePath   = "/v2/bot/profile/"

	retryKeyHeader = "X-Line-Retry-Key"
)

// Config del cliente de la Messaging API.
type Config struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration

	// RatePerSec limita las llamadas salientes; 0 => sin límite.
	RatePerSec int

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// Client implementa delivery.Pusher e identity.ProfileLookup contra LINE.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	token := strings.TrimSpace(cfg.AccessToken)
	if token == "" {
		return nil, ErrLineNotConfigured
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:    base,
		Token:      token,
		Timeout:    cfg.Timeout,
		RatePerSec: cfg.RatePerSec,
		Transport:  cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("line client: %w", err)
	}
	return &Client{http: hc}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.Token != ""
}

func (c *Client) MaxRecipients() int { return MaxMulticastRecipients }

type multicastRequest struct {
	To       []string      `json:"to"`
	Messages []wireMessage `json:"messages"`
}

type wireMessage struct {
	Type               string `json:"type"`
	Text               string `json:"text,omitempty"`
	OriginalContentURL string `json:"originalContentUrl,omitempty"`
	PreviewImageURL    string `json:"previewImageUrl,omitempty"`
}

func toWire(msg messages.Message) []wireMessage {
	out := make([]wireMessage, 0, len(msg.Parts))
	for _, p := range msg.Parts {
		switch p.Kind {
		case messages.PartText:
			out = append(out, wireMessage{Type: "text", Text: p.Text})
		case messages.PartImage:
			preview := p.PreviewURL
			if preview == "" {
				preview = p.OriginalURL
			}
			out = append(out, wireMessage{Type: "image", OriginalContentURL: p.OriginalURL, PreviewImageURL: preview})
		}
	}
	return out
}

// Multicast manda el mismo mensaje a todos los ids de "to" en una sola llamada.
// Cada llamada lleva su propio X-Line-Retry-Key.
func (c *Client) Multicast(ctx context.Context, to []string, msg messages.Message) error {
	if !c.IsConfigured() {
		return ErrLineNotConfigured
	}
	if len(to) == 0 {
		return ErrEmptyRecipients
	}
	if len(to) > MaxMulticastRecipients {
		return fmt.Errorf("line multicast: %d recipients exceeds %d", len(to), MaxMulticastRecipients)
	}

	body := multicastRequest{To: to, Messages: toWire(msg)}
	headers := map[string]string{retryKeyHeader: uuid.NewString()}

	if err := c.http.DoJSON(ctx, http.MethodPost, multicastPath, headers, body, nil); err != nil {
		return fmt.Errorf("%w: multicast: %w", ErrLineUpstream, err)
	}
	return nil
}

// GetProfile trae el displayName del usuario.
func (c *Client) GetProfile(ctx context.Context, userID string) (identity.Profile, error) {
	if !c.IsConfigured() {
		return identity.Profile{}, ErrLineNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return identity.Profile{}, errors.New("line profile: empty user id")
	}

	var out struct {
		UserID      string `json:"userId"`
		DisplayName string `json:"displayName"`
	}
	if err := c.http.DoJSON(ctx, http.MethodGet, profilePath+url.PathEscape(userID), nil, nil, &out); err != nil {
		return identity.Profile{}, fmt.Errorf("%w: profile: %w", ErrLineUpstream, err)
	}

	return identity.Profile{
		UserID:      userID,
		DisplayName: strings.TrimSpace(out.DisplayName),
	}, nil
}
