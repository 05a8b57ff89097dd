package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kri-sh27/s3transcribe/internal/logging"
	"github.com/kri-sh27/s3transcribe/internal/server/speech"
	"github.com/kri-sh27/s3transcribe/internal/shared"
)

// --- fakes ---

type fakeStore struct {
	objects map[string][]byte

	downloadErr error
	uploadErr   error
	listErr     error

	uploadCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) List(ctx context.Context, bucket string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	return keys, nil
}

func (f *fakeStore) Download(ctx context.Context, bucket, key, dest string) error {
	if f.downloadErr != nil {
		return f.downloadErr
	}
	data, ok := f.objects[key]
	if !ok {
		return shared.ErrNotFound
	}
	return os.WriteFile(dest, data, 0o600)
}

func (f *fakeStore) Upload(ctx context.Context, bucket, localPath, key string) (string, error) {
	f.uploadCalls++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", err
	}
	f.objects[key] = data
	return key, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	return f.text, f.err
}

type fakeTranslator struct {
	text string
	err  error

	gotText   string
	gotTarget speech.Target
	calls     int
}

func (f *fakeTranslator) Translate(ctx context.Context, text string, target speech.Target) (string, error) {
	f.calls++
	f.gotText = text
	f.gotTarget = target
	return f.text, f.err
}

type blockingTranscriber struct{}

func (blockingTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// --- helpers ---

func testTimeouts() Timeouts {
	return Timeouts{Transfer: time.Second, Transcribe: time.Second, Translate: time.Second}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newOrchestrator(t *testing.T, store *fakeStore, tr speech.Transcriber, tl speech.Translator) (*Orchestrator, string) {
	t.Helper()
	tempDir := filepath.Join(t.TempDir(), "work")
	o, err := NewOrchestrator(store, tr, tl, "audio", tempDir, testTimeouts(), testLogger())
	require.NoError(t, err)
	return o, tempDir
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "temp dir must hold no leftover files")
}

// --- TranscribeStored ---

func TestTranscribeStored_NoTranslation(t *testing.T) {
	store := newFakeStore()
	store.objects["meeting1.wav"] = []byte("audio-bytes")
	translator := &fakeTranslator{}

	o, tempDir := newOrchestrator(t, store, &fakeTranscriber{text: "hello world"}, translator)

	res, err := o.TranscribeStored(context.Background(), "meeting1.wav", speech.NoTranslation)
	require.NoError(t, err)

	assert.Equal(t, "hello world", res.Transcript)
	assert.Empty(t, res.Translation)
	assert.Equal(t, 0, translator.calls, "translator must not run without a target")
	assert.Equal(t, "meeting1.wav_transcript.txt", res.TranscriptFileName())
	requireEmptyDir(t, tempDir)
}

func TestTranscribeStored_WithTranslation(t *testing.T) {
	store := newFakeStore()
	store.objects["meeting1.wav"] = []byte("audio-bytes")
	translator := &fakeTranslator{text: "bonjour le monde"}

	o, tempDir := newOrchestrator(t, store, &fakeTranscriber{text: "hello world"}, translator)

	french, err := speech.ParseTarget("French")
	require.NoError(t, err)

	res, err := o.TranscribeStored(context.Background(), "meeting1.wav", french)
	require.NoError(t, err)

	assert.Equal(t, "hello world", res.Transcript)
	assert.Equal(t, "bonjour le monde", res.Translation)
	assert.Equal(t, "hello world", translator.gotText, "translator must receive the transcript")
	assert.Equal(t, "French", translator.gotTarget.Label())
	assert.Equal(t, "meeting1.wav_original.txt", res.TranscriptFileName())
	assert.Equal(t, "meeting1.wav_French.txt", res.TranslationFileName())
	requireEmptyDir(t, tempDir)
}

func TestTranscribeStored_NotFound_LeavesNoTempFile(t *testing.T) {
	store := newFakeStore()

	o, tempDir := newOrchestrator(t, store, &fakeTranscriber{}, &fakeTranslator{})

	_, err := o.TranscribeStored(context.Background(), "missing.wav", speech.NoTranslation)
	require.ErrorIs(t, err, shared.ErrNotFound)
	requireEmptyDir(t, tempDir)
}

func TestTranscribeStored_TransferError_LeavesNoTempFile(t *testing.T) {
	store := newFakeStore()
	store.downloadErr = errors.Join(shared.ErrTransfer, errors.New("connection reset"))

	o, tempDir := newOrchestrator(t, store, &fakeTranscriber{}, &fakeTranslator{})

	_, err := o.TranscribeStored(context.Background(), "meeting1.wav", speech.NoTranslation)
	require.ErrorIs(t, err, shared.ErrTransfer)
	requireEmptyDir(t, tempDir)
}

func TestTranscribeStored_UpstreamErrorAbortsSequence(t *testing.T) {
	store := newFakeStore()
	store.objects["meeting1.wav"] = []byte("audio-bytes")
	translator := &fakeTranslator{}

	o, tempDir := newOrchestrator(t, store, &fakeTranscriber{err: shared.ErrUpstream}, translator)

	french, err := speech.ParseTarget("French")
	require.NoError(t, err)

	_, err = o.TranscribeStored(context.Background(), "meeting1.wav", french)
	require.ErrorIs(t, err, shared.ErrUpstream)
	assert.Equal(t, 0, translator.calls, "translation must not run after a failed transcription")
	requireEmptyDir(t, tempDir)
}

func TestTranscribeStored_TranscribeTimeout(t *testing.T) {
	store := newFakeStore()
	store.objects["meeting1.wav"] = []byte("audio-bytes")

	tempDir := filepath.Join(t.TempDir(), "work")
	timeouts := testTimeouts()
	timeouts.Transcribe = 10 * time.Millisecond

	o, err := NewOrchestrator(store, blockingTranscriber{}, &fakeTranslator{}, "audio", tempDir, timeouts, testLogger())
	require.NoError(t, err)

	_, err = o.TranscribeStored(context.Background(), "meeting1.wav", speech.NoTranslation)
	require.ErrorIs(t, err, shared.ErrTimeout)
	requireEmptyDir(t, tempDir)
}

// --- fresh capture ---

func TestSaveCapture_WritesTimestampedWav(t *testing.T) {
	o, tempDir := newOrchestrator(t, newFakeStore(), &fakeTranscriber{}, &fakeTranslator{})

	path, err := o.SaveCapture(strings.NewReader("wav-bytes"))
	require.NoError(t, err)

	assert.Equal(t, tempDir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "recording_"))
	assert.True(t, strings.HasSuffix(path, ".wav"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "wav-bytes", string(data))
}

func TestPersistRecording_Success(t *testing.T) {
	store := newFakeStore()
	o, _ := newOrchestrator(t, store, &fakeTranscriber{}, &fakeTranslator{})

	path, err := o.SaveCapture(strings.NewReader("wav-bytes"))
	require.NoError(t, err)

	key, err := o.PersistRecording(context.Background(), "a@x.com", path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "recordings/a/"), "key %q", key)
	assert.Contains(t, store.objects, key)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "local recording must be removed after a successful upload")
}

func TestPersistRecording_EmptyFile_NoUploadCall(t *testing.T) {
	store := newFakeStore()
	o, tempDir := newOrchestrator(t, store, &fakeTranscriber{}, &fakeTranslator{})

	path := filepath.Join(tempDir, "recording_empty.wav")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := o.PersistRecording(context.Background(), "a@x.com", path)
	require.ErrorIs(t, err, shared.ErrEmptyRecording)
	assert.Equal(t, 0, store.uploadCalls, "empty recording must never reach the store")
}

func TestPersistRecording_MissingFile(t *testing.T) {
	o, tempDir := newOrchestrator(t, newFakeStore(), &fakeTranscriber{}, &fakeTranslator{})

	_, err := o.PersistRecording(context.Background(), "a@x.com", filepath.Join(tempDir, "gone.wav"))
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPersistRecording_UploadFailureKeepsLocalFile(t *testing.T) {
	store := newFakeStore()
	store.uploadErr = errors.Join(shared.ErrTransfer, errors.New("503"))
	o, tempDir := newOrchestrator(t, store, &fakeTranscriber{}, &fakeTranslator{})

	path := filepath.Join(tempDir, "recording_keep.wav")
	require.NoError(t, os.WriteFile(path, []byte("wav-bytes"), 0o600))

	_, err := o.PersistRecording(context.Background(), "a@x.com", path)
	require.ErrorIs(t, err, shared.ErrTransfer)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "failed upload must leave the recording in place for retry")
}

// --- custom upload ---

func TestUploadCustom_Success(t *testing.T) {
	store := newFakeStore()
	o, tempDir := newOrchestrator(t, store, &fakeTranscriber{}, &fakeTranslator{})

	key, err := o.UploadCustom(context.Background(), "a@x.com", "song.mp3", strings.NewReader("mp3-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "custom_uploads/a/"), "key %q", key)
	assert.Contains(t, store.objects, key)
	requireEmptyDir(t, tempDir)
}

func TestUploadCustom_UnsupportedExtension(t *testing.T) {
	store := newFakeStore()
	o, _ := newOrchestrator(t, store, &fakeTranscriber{}, &fakeTranslator{})

	_, err := o.UploadCustom(context.Background(), "a@x.com", "notes.txt", strings.NewReader("text"))
	require.ErrorIs(t, err, shared.ErrUnsupportedFormat)
	assert.Equal(t, 0, store.uploadCalls)
}

func TestUploadCustom_TransferError_LeavesNoTempFile(t *testing.T) {
	store := newFakeStore()
	store.uploadErr = errors.Join(shared.ErrTransfer, errors.New("503"))
	o, tempDir := newOrchestrator(t, store, &fakeTranscriber{}, &fakeTranslator{})

	_, err := o.UploadCustom(context.Background(), "a@x.com", "song.mp3", strings.NewReader("mp3-bytes"))
	require.ErrorIs(t, err, shared.ErrTransfer)
	requireEmptyDir(t, tempDir)
}

// --- listing / round trip ---

func TestUploadThenList_RoundTrip(t *testing.T) {
	store := newFakeStore()
	o, _ := newOrchestrator(t, store, &fakeTranscriber{}, &fakeTranslator{})
	ctx := context.Background()

	key, err := o.UploadCustom(ctx, "a@x.com", "song.mp3", strings.NewReader("mp3-bytes"))
	require.NoError(t, err)

	keys, err := o.ListAudioFiles(ctx)
	require.NoError(t, err)

	count := 0
	for _, k := range keys {
		if k == key {
			count++
		}
	}
	assert.Equal(t, 1, count, "uploaded key must appear exactly once in the listing")
}

func TestListAudioFiles_FiltersNonAudio(t *testing.T) {
	store := newFakeStore()
	store.objects["a.wav"] = []byte("x")
	store.objects["b.txt"] = []byte("x")

	o, _ := newOrchestrator(t, store, &fakeTranscriber{}, &fakeTranslator{})

	keys, err := o.ListAudioFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wav"}, keys)
}
