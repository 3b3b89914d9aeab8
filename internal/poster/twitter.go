package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

const (
	statusUpdateURL = "https://api.twitter.com/1.1/statuses/update.json"
	mediaUploadURL  = "https://upload.twitter.com/1.1/media/upload.json"
)

// TwitterCredentials holds the OAuth 1.0a keys for a posting account
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// Valid reports whether all four credentials are set
func (c TwitterCredentials) Valid() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// TwitterPoster posts threads through the Twitter v1.1 API
type TwitterPoster struct {
	httpClient *http.Client
	statusURL  string
	uploadURL  string
}

// NewTwitterPoster creates a poster signing requests with OAuth 1.0a
func NewTwitterPoster(creds TwitterCredentials) *TwitterPoster {
	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)

	client := config.Client(oauth1.NoContext, token)
	client.Timeout = 30 * time.Second

	return &TwitterPoster{
		httpClient: client,
		statusURL:  statusUpdateURL,
		uploadURL:  mediaUploadURL,
	}
}

// Name identifies the poster in logs
func (p *TwitterPoster) Name() string {
	return "twitter"
}

// UploadMedia uploads a PNG and returns its media ID string
func (p *TwitterPoster) UploadMedia(ctx context.Context, image []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("media", "chart.png")
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := p.do(req, &resp); err != nil {
		return "", fmt.Errorf("uploading media: %w", err)
	}
	if resp.MediaIDString == "" {
		return "", fmt.Errorf("uploading media: empty media id in response")
	}

	return resp.MediaIDString, nil
}

// statusLimit is the API's hard character cap
const statusLimit = 280

// Post publishes one status, chained under inReplyTo when set. Text
// over the API limit is cut at a rune boundary rather than rejected.
func (p *TwitterPoster) Post(ctx context.Context, text string, mediaIDs []string, inReplyTo string) (string, error) {
	if runes := []rune(text); len(runes) > statusLimit {
		text = string(runes[:statusLimit])
	}

	form := url.Values{}
	form.Set("status", text)
	if len(mediaIDs) > 0 {
		form.Set("media_ids", strings.Join(mediaIDs, ","))
	}
	if inReplyTo != "" {
		form.Set("in_reply_to_status_id", inReplyTo)
		form.Set("auto_populate_reply_metadata", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.statusURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp struct {
		IDString string `json:"id_str"`
	}
	if err := p.do(req, &resp); err != nil {
		return "", fmt.Errorf("posting status: %w", err)
	}
	if resp.IDString == "" {
		return "", fmt.Errorf("posting status: empty id in response")
	}

	return resp.IDString, nil
}

// do executes a signed request and decodes the JSON response into out
func (p *TwitterPoster) do(req *http.Request, out interface{}) error {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
