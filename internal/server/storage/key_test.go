package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserFolder(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"krishnat@example.com", "krishnat"},
		{"a@x.com", "a"},
		{"noatsign", "noatsign"},
		{"", "unknown_user"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UserFolder(tt.email), "email %q", tt.email)
	}
}

func TestMakeKey(t *testing.T) {
	at := time.Date(2025, 7, 4, 15, 4, 5, 0, time.UTC)

	key := MakeKey(CategoryRecordings, "a@x.com", "/tmp/recording_1.wav", at)
	assert.Equal(t, "recordings/a/20250704_150405_recording_1.wav", key)

	key = MakeKey(CategoryCustomUploads, "", "song.mp3", at)
	assert.Equal(t, "custom_uploads/unknown_user/20250704_150405_song.mp3", key)
}

func TestMakeKey_DistinctForDifferentTimestamps(t *testing.T) {
	a := MakeKey(CategoryRecordings, "a@x.com", "r.wav", time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC))
	b := MakeKey(CategoryRecordings, "a@x.com", "r.wav", time.Date(2025, 1, 1, 0, 0, 2, 0, time.UTC))
	assert.NotEqual(t, a, b)
}

func TestFilterAudioKeys(t *testing.T) {
	keys := []string{
		"recordings/a/meeting1.wav",
		"recordings/a/notes.txt",
		"custom_uploads/a/song.MP3",
		"recordings/a/talk.webm",
		"recordings/a/archive.zip",
	}

	got := FilterAudioKeys(keys)
	assert.Equal(t, []string{
		"recordings/a/meeting1.wav",
		"custom_uploads/a/song.MP3",
		"recordings/a/talk.webm",
	}, got)
}

func TestIsAudioKey(t *testing.T) {
	assert.True(t, IsAudioKey("x.m4a"))
	assert.True(t, IsAudioKey("x.MPGA"))
	assert.False(t, IsAudioKey("x.flac"))
	assert.False(t, IsAudioKey(""))
}
