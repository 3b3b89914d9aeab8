// Package poster publishes narrative threads to an external feed.
package poster

import "context"

// Poster posts text segments, optionally with media, as a reply chain.
type Poster interface {
	// Name identifies the poster in logs
	Name() string

	// UploadMedia uploads an image and returns its media ID
	UploadMedia(ctx context.Context, image []byte) (string, error)

	// Post publishes one segment. A non-empty inReplyTo chains the post
	// under an earlier one. Returns the ID of the created post.
	Post(ctx context.Context, text string, mediaIDs []string, inReplyTo string) (string, error)
}
