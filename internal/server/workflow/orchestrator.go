// Package workflow sequences the object store, transcription and
// translation adapters into the three user-facing modes: transcribing a
// stored file, persisting a fresh capture, and uploading a custom file.
// Each invocation is synchronous; local temp artifacts are per-invocation
// and removed on every exit path.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kri-sh27/s3transcribe/internal/filex"
	"github.com/kri-sh27/s3transcribe/internal/logging"
	"github.com/kri-sh27/s3transcribe/internal/server/speech"
	"github.com/kri-sh27/s3transcribe/internal/server/storage"
	"github.com/kri-sh27/s3transcribe/internal/shared"
)

// Timeouts bounds each adapter call. A hung upstream fails the
// invocation with shared.ErrTimeout instead of blocking the session.
type Timeouts struct {
	Transfer   time.Duration
	Transcribe time.Duration
	Translate  time.Duration
}

type Orchestrator struct {
	store       storage.ObjectStore
	transcriber speech.Transcriber
	translator  speech.Translator
	bucket      string
	tempDir     string
	timeouts    Timeouts
	logger      logging.Logger
}

func NewOrchestrator(store storage.ObjectStore, transcriber speech.Transcriber, translator speech.Translator,
	bucket, tempDir string, timeouts Timeouts, logger logging.Logger) (*Orchestrator, error) {

	if err := filex.EnsureDir(tempDir); err != nil {
		return nil, err
	}

	return &Orchestrator{
		store:       store,
		transcriber: transcriber,
		translator:  translator,
		bucket:      bucket,
		tempDir:     tempDir,
		timeouts:    timeouts,
		logger:      logger.With("module", "workflow"),
	}, nil
}

// ListAudioFiles returns the bucket keys with recognized audio
// extensions, ready for a selection list.
func (o *Orchestrator) ListAudioFiles(ctx context.Context) ([]string, error) {
	keys, err := o.store.List(ctx, o.bucket)
	if err != nil {
		return nil, err
	}
	return storage.FilterAudioKeys(keys), nil
}

// TranscribeStored downloads the stored blob at key, transcribes it and,
// when a target language is selected, translates the transcript. The
// temporary local copy is removed whether or not the invocation
// succeeds.
func (o *Orchestrator) TranscribeStored(ctx context.Context, key string, target speech.Target) (_ *Result, err error) {

	tempPath := filepath.Join(o.tempDir, fmt.Sprintf("temp_%s%s", uuid.NewString(), filepath.Ext(key)))
	defer func() {
		if rmErr := filex.RemoveIfExists(tempPath); rmErr != nil {
			o.logger.Warn(ctx, "temp file cleanup failed", "path", tempPath, "error", rmErr.Error())
		}
	}()

	if err := o.download(ctx, key, tempPath); err != nil {
		o.logger.Error(ctx, "download failed", "key", key, "error", err.Error())
		return nil, err
	}

	// guard against a partial transfer leaving nothing behind
	exists, err := filex.Exists(tempPath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	transcript, err := o.transcribe(ctx, tempPath)
	if err != nil {
		o.logger.Error(ctx, "transcription failed", "key", key, "error", err.Error())
		return nil, err
	}

	result := &Result{SourceKey: key, Transcript: transcript, Target: target}

	if target.Translate() {
		translated, err := o.translate(ctx, transcript, target)
		if err != nil {
			o.logger.Error(ctx, "translation failed", "key", key, "language", target.Label(), "error", err.Error())
			return nil, err
		}
		result.Translation = translated
	}

	o.logger.Info(ctx, "transcription complete", "key", key, "language", target.Label())

	return result, nil
}

// SaveCapture materializes a fresh microphone capture as
// recording_<timestamp>.wav in the temp dir and returns its path so the
// caller can offer a preview before persisting.
func (o *Orchestrator) SaveCapture(r io.Reader) (string, error) {

	name := fmt.Sprintf("recording_%s.wav", time.Now().Format("20060102_150405"))
	path := filepath.Join(o.tempDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create recording: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = filex.RemoveIfExists(path)
		return "", fmt.Errorf("write recording: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = filex.RemoveIfExists(path)
		return "", fmt.Errorf("close recording: %w", err)
	}

	return path, nil
}

// PersistRecording uploads a previously captured recording under the
// user's recordings namespace. The local file is removed only after a
// successful upload; on failure it stays in place so the user can retry.
func (o *Orchestrator) PersistRecording(ctx context.Context, email, localPath string) (string, error) {

	exists, err := filex.Exists(localPath)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", shared.ErrNotFound
	}

	size, err := filex.Size(localPath)
	if err != nil {
		return "", err
	}
	if size == 0 {
		return "", shared.ErrEmptyRecording
	}

	key := storage.MakeKey(storage.CategoryRecordings, email, localPath, time.Now())

	key, err = o.upload(ctx, localPath, key)
	if err != nil {
		o.logger.Error(ctx, "recording upload failed", "key", key, "error", err.Error())
		return "", err
	}

	if err := filex.RemoveIfExists(localPath); err != nil {
		o.logger.Warn(ctx, "recording cleanup failed", "path", localPath, "error", err.Error())
	}

	o.logger.Info(ctx, "recording persisted", "key", key)

	return key, nil
}

// UploadCustom stores a user-supplied audio file under the custom
// uploads namespace. The temporary local copy is removed on every exit
// path.
func (o *Orchestrator) UploadCustom(ctx context.Context, email, filename string, r io.Reader) (_ string, err error) {

	if !storage.IsAudioKey(filename) {
		return "", shared.ErrUnsupportedFormat
	}

	tempPath := filepath.Join(o.tempDir, fmt.Sprintf("upload_%s_%s", uuid.NewString(), filepath.Base(filename)))
	defer func() {
		if rmErr := filex.RemoveIfExists(tempPath); rmErr != nil {
			o.logger.Warn(ctx, "temp file cleanup failed", "path", tempPath, "error", rmErr.Error())
		}
	}()

	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("create temp upload: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp upload: %w", err)
	}

	key := storage.MakeKey(storage.CategoryCustomUploads, email, filename, time.Now())

	key, err = o.upload(ctx, tempPath, key)
	if err != nil {
		o.logger.Error(ctx, "custom upload failed", "key", key, "error", err.Error())
		return "", err
	}

	o.logger.Info(ctx, "custom upload stored", "key", key)

	return key, nil
}

func (o *Orchestrator) download(ctx context.Context, key, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, o.timeouts.Transfer)
	defer cancel()

	err := o.store.Download(ctx, o.bucket, key, dest)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(shared.ErrTimeout, err)
	}
	return err
}

func (o *Orchestrator) upload(ctx context.Context, localPath, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeouts.Transfer)
	defer cancel()

	key, err := o.store.Upload(ctx, o.bucket, localPath, key)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", errors.Join(shared.ErrTimeout, err)
	}
	return key, err
}

func (o *Orchestrator) transcribe(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeouts.Transcribe)
	defer cancel()

	text, err := o.transcriber.Transcribe(ctx, path)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", errors.Join(shared.ErrTimeout, err)
	}
	return text, err
}

func (o *Orchestrator) translate(ctx context.Context, text string, target speech.Target) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeouts.Translate)
	defer cancel()

	translated, err := o.translator.Translate(ctx, text, target)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", errors.Join(shared.ErrTimeout, err)
	}
	return translated, err
}
