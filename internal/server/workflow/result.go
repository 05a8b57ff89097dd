package workflow

import (
	"path"

	"github.com/kri-sh27/s3transcribe/internal/server/speech"
)

// Result is the outcome of one transcription invocation. Nothing in it
// is persisted; downloads are generated from it on demand.
type Result struct {
	SourceKey   string
	Transcript  string
	Translation string
	Target      speech.Target
}

// sourceName is the storage key without its namespace prefix, used to
// label downloads.
func (r *Result) sourceName() string {
	return path.Base(r.SourceKey)
}

// TranscriptFileName names the transcript download. The suffix follows
// whether a translation accompanies it.
func (r *Result) TranscriptFileName() string {
	if r.Target.Translate() {
		return r.sourceName() + "_original.txt"
	}
	return r.sourceName() + "_transcript.txt"
}

// TranslationFileName names the translation download.
func (r *Result) TranslationFileName() string {
	return r.sourceName() + "_" + r.Target.Label() + ".txt"
}
