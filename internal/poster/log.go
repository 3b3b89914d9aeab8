package poster

import (
	"context"
	"fmt"
	"log"
)

// LogPoster writes segments to the log instead of posting them.
// Used for dry runs.
type LogPoster struct {
	nextID int
}

// NewLogPoster creates a dry-run poster
func NewLogPoster() *LogPoster {
	return &LogPoster{}
}

// Name identifies the poster in logs
func (p *LogPoster) Name() string {
	return "log"
}

// UploadMedia logs the image size and returns a fake media ID
func (p *LogPoster) UploadMedia(ctx context.Context, image []byte) (string, error) {
	p.nextID++
	id := fmt.Sprintf("dry-media-%d", p.nextID)
	log.Printf("[dry-run] would upload %d bytes of media as %s", len(image), id)
	return id, nil
}

// Post logs the segment and returns a fake post ID
func (p *LogPoster) Post(ctx context.Context, text string, mediaIDs []string, inReplyTo string) (string, error) {
	p.nextID++
	id := fmt.Sprintf("dry-post-%d", p.nextID)
	log.Printf("[dry-run] would post %s (reply to %q, media %v):\n%s", id, inReplyTo, mediaIDs, text)
	return id, nil
}
