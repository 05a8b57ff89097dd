package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kri-sh27/s3transcribe/internal/filex"
	"github.com/kri-sh27/s3transcribe/internal/server/session"
	"github.com/kri-sh27/s3transcribe/internal/server/speech"
	"github.com/kri-sh27/s3transcribe/internal/server/workflow"
	"github.com/kri-sh27/s3transcribe/internal/shared"
)

// maxUploadBytes caps multipart bodies. Whisper rejects files over
// 25 MB anyway, so there is no point accepting more.
const maxUploadBytes = 32 << 20

type pageData struct {
	Email     string
	Error     string
	Notice    string
	Files     []string
	Languages []string
	Recording string
	Result    *workflow.Result
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, sess *session.Session, data pageData) {
	data.Email = sess.Email
	data.Recording = sess.Recording
	if data.Result == nil {
		data.Result = sess.Result
	}

	name := string(sess.View) + ".html"
	if sess.View == session.ViewHome {
		data.Languages = speech.SupportedLanguages
		if data.Files == nil {
			files, err := s.orchestrator.ListAudioFiles(r.Context())
			if err != nil {
				s.logger.Error(r.Context(), "file listing failed", "error", err.Error())
				if data.Error == "" {
					data.Error = userMessage(err)
				}
			}
			data.Files = files
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error(r.Context(), "template error", "template", name, "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sess := sessionFromContext(r)
	s.render(w, r, sess, pageData{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := sessionFromContext(r)

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm")

	if err := s.controller.SubmitRegister(r.Context(), sess, email, password, confirm); err != nil {
		s.render(w, r, sess, pageData{Error: userMessage(err)})
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", email)
	s.render(w, r, sess, pageData{Notice: "Registration successful. Please log in."})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := sessionFromContext(r)

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if err := s.controller.SubmitLogin(r.Context(), sess, email, password); err != nil {
		s.render(w, r, sess, pageData{Error: userMessage(err)})
		return
	}

	s.logger.Info(r.Context(), "user logged in", "email", email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := sessionFromContext(r)

	view := session.View(r.PostFormValue("view"))
	if err := s.controller.Navigate(sess, view); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		// unauthenticated home attempt lands back on the entry page
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := sessionFromContext(r)

	email := sess.Email
	s.controller.Logout(sess)
	s.sessions.Destroy(sess.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.logger.Info(r.Context(), "user logged out", "email", email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := sessionFromContext(r)

	key := r.PostFormValue("key")
	if key == "" {
		s.render(w, r, sess, pageData{Error: "Select a file first"})
		return
	}

	target, err := speech.ParseTarget(r.PostFormValue("language"))
	if err != nil {
		s.render(w, r, sess, pageData{Error: "Unsupported language"})
		return
	}

	result, err := s.orchestrator.TranscribeStored(r.Context(), key, target)
	if err != nil {
		s.render(w, r, sess, pageData{Error: userMessage(err)})
		return
	}

	sess.Result = result
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := sessionFromContext(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("audio")
	if err != nil {
		s.render(w, r, sess, pageData{Error: "No recording received"})
		return
	}
	defer file.Close()

	path, err := s.orchestrator.SaveCapture(file)
	if err != nil {
		s.logger.Error(r.Context(), "capture save failed", "error", err.Error())
		s.render(w, r, sess, pageData{Error: userMessage(err)})
		return
	}

	sess.Recording = path
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRecordPersist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := sessionFromContext(r)

	if sess.Recording == "" {
		s.render(w, r, sess, pageData{Error: "No recording to save"})
		return
	}

	key, err := s.orchestrator.PersistRecording(r.Context(), sess.Email, sess.Recording)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			sess.Recording = ""
		}
		s.render(w, r, sess, pageData{Error: userMessage(err)})
		return
	}

	sess.Recording = ""
	s.logger.Info(r.Context(), "recording persisted", "key", key)
	s.render(w, r, sess, pageData{Notice: "Recording saved as " + key})
}

func (s *Server) handleRecordDiscard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := sessionFromContext(r)

	if sess.Recording != "" {
		if err := filex.RemoveIfExists(sess.Recording); err != nil {
			s.logger.Warn(r.Context(), "recording discard failed", "path", sess.Recording, "error", err.Error())
		}
		sess.Recording = ""
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := sessionFromContext(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.render(w, r, sess, pageData{Error: "No file received"})
		return
	}
	defer file.Close()

	key, err := s.orchestrator.UploadCustom(r.Context(), sess.Email, header.Filename, file)
	if err != nil {
		s.render(w, r, sess, pageData{Error: userMessage(err)})
		return
	}

	s.logger.Info(r.Context(), "file uploaded", "key", key)
	s.render(w, r, sess, pageData{Notice: "Uploaded as " + key})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	result := sess.Result
	if result == nil {
		http.NotFound(w, r)
		return
	}

	var name, content string
	switch r.URL.Query().Get("kind") {
	case "transcript", "original":
		name, content = result.TranscriptFileName(), result.Transcript
	case "translated":
		if result.Translation == "" {
			http.NotFound(w, r)
			return
		}
		name, content = result.TranslationFileName(), result.Translation
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := w.Write([]byte(content)); err != nil {
		s.logger.Warn(r.Context(), "download write failed", "name", name, "error", err.Error())
	}
}

// userMessage maps the error taxonomy onto what the page shows. The
// underlying error stays in the logs only.
func userMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, shared.ErrPasswordTooShort):
		return "Password must be at least 6 characters long"
	case errors.Is(err, shared.ErrDuplicateEmail):
		return "This email is already registered"
	case errors.Is(err, shared.ErrStoreUnavailable):
		return "Service temporarily unavailable. Please try again."
	case errors.Is(err, shared.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, shared.ErrUnsupportedFormat):
		return "Unsupported file format. Please upload an audio file."
	case errors.Is(err, shared.ErrEmptyRecording):
		return "Recording is empty. Please record again."
	case errors.Is(err, shared.ErrNotFound):
		return "File not found"
	case errors.Is(err, shared.ErrTimeout):
		return "The operation timed out. Please try again."
	case errors.Is(err, shared.ErrUpstream):
		return "Transcription service error. Please try again."
	case errors.Is(err, shared.ErrTransfer):
		return "File transfer failed. Please try again."
	default:
		return "Internal error"
	}
}
