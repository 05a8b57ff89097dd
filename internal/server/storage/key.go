package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Category partitions stored artifacts by how they were produced.
type Category string

const (
	CategoryRecordings    Category = "recordings"
	CategoryCustomUploads Category = "custom_uploads"
)

// timestampLayout gives second precision, which together with the user
// folder makes keys unique per upload.
const timestampLayout = "20060102_150405"

// UserFolder derives the storage path segment from the local part of
// the user's email. An empty email maps to a shared fallback folder.
func UserFolder(email string) string {
	if email == "" {
		return "unknown_user"
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

// MakeKey composes a storage key as
// <category>/<user-folder>/<timestamp>_<filename>.
func MakeKey(category Category, email, localPath string, at time.Time) string {
	filename := filepath.Base(localPath)
	return fmt.Sprintf("%s/%s/%s_%s", category, UserFolder(email), at.Format(timestampLayout), filename)
}
