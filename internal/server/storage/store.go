// Package storage implements the object store adapter for audio blobs.
// Every call takes the bucket explicitly; no configuration is closed
// over beyond client credentials.
package storage

import (
	"context"
	"strings"
)

// AudioExtensions lists the blob extensions recognized as audio. The
// filter must be applied consistently wherever a selection list is
// shown to a user.
var AudioExtensions = []string{".mp3", ".mp4", ".mpeg", ".mpga", ".m4a", ".wav", ".webm"}

// ObjectStore is the narrow contract the workflow consumes.
type ObjectStore interface {
	// List returns all keys in the bucket.
	List(ctx context.Context, bucket string) ([]string, error)

	// Download fetches a blob into the local path dest.
	Download(ctx context.Context, bucket, key, dest string) error

	// Upload stores the local file under key and returns the final key
	// used. When key is empty one is composed per the recordings key
	// rule.
	Upload(ctx context.Context, bucket, localPath, key string) (string, error)
}

// IsAudioKey reports whether key has a recognized audio extension.
func IsAudioKey(key string) bool {
	lower := strings.ToLower(key)
	for _, ext := range AudioExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// FilterAudioKeys keeps only the keys with recognized audio extensions.
func FilterAudioKeys(keys []string) []string {
	filtered := make([]string, 0, len(keys))
	for _, k := range keys {
		if IsAudioKey(k) {
			filtered = append(filtered, k)
		}
	}
	return filtered
}
