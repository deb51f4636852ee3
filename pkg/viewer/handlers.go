package viewer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pyhub-apps/classschedule-golang/pkg/render"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleTimetable(w http.ResponseWriter, r *http.Request) {
	s.renderTimetable(w, http.StatusOK, "")
}

func (s *Server) renderTimetable(w http.ResponseWriter, status int, message string) {
	sched, grid := s.Current()
	s.respond(w, status, func(buf io.Writer) error {
		return render.HTML(buf, render.Page{Schedule: sched, Grid: grid, Error: message})
	})
}

// handleOpen loads a PDF sent as the "pdf" file field or named by the
// "path" form field
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	path, upload, err := s.requestedPDF(r)
	if err != nil {
		s.logger.Warn("No PDF in request", "error", err)
		s.renderTimetable(w, http.StatusBadRequest, "Please choose a schedule PDF file.")
		return
	}

	if upload != nil {
		err = s.loadUpload(r.Context(), upload)
	} else {
		err = s.Load(r.Context(), path)
	}
	if err != nil {
		s.renderTimetable(w, http.StatusUnprocessableEntity, ExtractFailedMessage)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// requestedPDF returns either a staged upload or a path typed into the form
func (s *Server) requestedPDF(r *http.Request) (string, *stagedUpload, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return "", nil, fmt.Errorf("parse form: %w", err)
	}

	file, header, err := r.FormFile("pdf")
	if err == nil {
		defer file.Close()
		upload, err := s.saveUpload(file, header.Filename)
		return "", upload, err
	}
	if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}

	path := strings.TrimSpace(r.FormValue("path"))
	if path == "" {
		return "", nil, errors.New("no file or path given")
	}
	return path, nil, nil
}

// stagedUpload is an uploaded PDF written next to its final name
type stagedUpload struct {
	temp  string
	final string
}

// saveUpload copies an uploaded PDF into a temporary file in the upload
// directory. The file only takes its own name once it has been extracted.
func (s *Server) saveUpload(src io.Reader, name string) (*stagedUpload, error) {
	dir := s.uploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "schedule.pdf"
	}

	dst, err := os.CreateTemp(dir, "upload-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create upload: %w", err)
	}
	upload := &stagedUpload{temp: dst.Name(), final: filepath.Join(dir, name)}

	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(upload.temp)
		return nil, fmt.Errorf("save upload: %w", err)
	}
	return upload, nil
}

func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	sched, _ := s.Current()
	if sched == nil {
		http.NotFound(w, r)
		return
	}
	course, ok := sched.Course(index)
	if !ok {
		s.logger.Error("Course index out of range", "index", index, "courses", len(sched.Courses))
		http.NotFound(w, r)
		return
	}

	s.respond(w, http.StatusOK, func(buf io.Writer) error {
		return render.DetailsHTML(buf, course)
	})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, render.AboutHTML)
}

func (s *Server) handleFavicon(w http.ResponseWriter, r *http.Request) {
	if s.icon == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.icon)
}

// respond renders into a buffer first so a template error still yields a
// clean 500
func (s *Server) respond(w http.ResponseWriter, status int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.logger.Error("Render failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
