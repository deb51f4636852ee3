package viewer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/classschedule-golang/pkg/config"
	"github.com/pyhub-apps/classschedule-golang/pkg/pdf"
	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
)

type fakePage struct {
	pdf.Page
	text   string
	tables []pdf.Table
}

func (p *fakePage) Number() int                                            { return 1 }
func (p *fakePage) ExtractText(...pdf.TextExtractionOption) string         { return p.text }
func (p *fakePage) ExtractTables(...pdf.TableExtractionOption) []pdf.Table { return p.tables }

type fakeDocument struct {
	pdf.Document
	pages []pdf.Page
}

func (d *fakeDocument) Metadata() pdf.Metadata { return pdf.Metadata{} }
func (d *fakeDocument) Pages() []pdf.Page      { return d.pages }
func (d *fakeDocument) PageCount() int         { return len(d.pages) }
func (d *fakeDocument) Close() error           { return nil }

var scheduleTable = pdf.Table{Rows: [][]string{
	{"Course Code", "Course Name", "Cr", "CT", "Sec", "Seq", "Activity", "Sun", "Mon", "Tue", "Wed", "Thu", "Building", "Room", "Staff"},
	{"CS 101", "Intro", "3", "3", "1", "1", "Lecture", "1,2", "", "3", "", "", "B1", "10", "Dr. A"},
	{"MA 201", "Calculus", "4", "4", "1", "1", "Lab", "", "4", "", "5", "", "B2", "20", "Dr. B"},
}}

// fakeOpen treats files starting with %PDF as a two-course schedule and
// everything else as unreadable
func fakeOpen(path string) (pdf.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, errors.New("not a PDF")
	}
	return &fakeDocument{pages: []pdf.Page{&fakePage{
		text:   "Ahmed Ali Department : CS Classification : Senior\n441105 Major : SE Stream : General\nSemester : Fall",
		tables: []pdf.Table{scheduleTable},
	}}}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *config.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := config.NewStore(t.TempDir(), logger)
	extractor := schedule.NewExtractor(schedule.WithOpener(fakeOpen), schedule.WithLogger(logger))
	opts = append([]Option{WithLogger(logger), WithUploadDir(t.TempDir())}, opts...)
	return New(extractor, store, opts...), store
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestTimetableEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="empty"`)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestOpenByPath(t *testing.T) {
	s, store := newTestServer(t)
	path := writeFile(t, t.TempDir(), "schedule.pdf", "%PDF-1.4")

	form := url.Values{"path": {path}}
	req := httptest.NewRequest(http.MethodPost, "/open", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, path, store.LoadLastPDFPath())

	body := get(t, s.Handler(), "/").Body.String()
	assert.Contains(t, body, `id="timetable"`)
	assert.Contains(t, body, "Ahmed Ali")
	assert.Contains(t, body, "Calculus")
	assert.Contains(t, body, `href="/courses/1"`)
}

func postUpload(t *testing.T, h http.Handler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("pdf", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/open", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOpenUpload(t *testing.T) {
	s, store := newTestServer(t)

	rec := postUpload(t, s.Handler(), "../../my schedule.pdf", "%PDF-1.4 uploaded")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	saved := store.LoadLastPDFPath()
	assert.Equal(t, "my schedule.pdf", filepath.Base(saved))

	sched, grid := s.Current()
	require.NotNil(t, sched)
	assert.Equal(t, saved, sched.Source)
	assert.Len(t, sched.Courses, 2)
	assert.False(t, grid.Empty())
}

func TestFailedUploadKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	s, store := newTestServer(t, WithUploadDir(dir))

	rec := postUpload(t, s.Handler(), "schedule.pdf", "%PDF-1.4 first")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	saved := store.LoadLastPDFPath()
	assert.Equal(t, filepath.Join(dir, "schedule.pdf"), saved)

	rec = postUpload(t, s.Handler(), "schedule.pdf", "not a schedule")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 first", string(data))
	assert.Equal(t, saved, store.LoadLastPDFPath())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "the rejected upload is removed")
	assert.Equal(t, "schedule.pdf", entries[0].Name())

	assert.True(t, s.LoadLast(context.Background()))
}

func TestOpenFailureKeepsSchedule(t *testing.T) {
	s, _ := newTestServer(t)
	dir := t.TempDir()
	good := writeFile(t, dir, "good.pdf", "%PDF-1.4")
	bad := writeFile(t, dir, "bad.pdf", "hello")
	require.NoError(t, s.Load(context.Background(), good))

	form := url.Values{"path": {bad}}
	req := httptest.NewRequest(http.MethodPost, "/open", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not extract data from this PDF file.")
	assert.Contains(t, rec.Body.String(), "Calculus")

	sched, _ := s.Current()
	require.NotNil(t, sched)
	assert.Equal(t, good, sched.Source)
}

func TestOpenWithoutFile(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/open", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="error"`)
}

func TestCourseDetails(t *testing.T) {
	s, _ := newTestServer(t)
	require.NoError(t, s.Load(context.Background(), writeFile(t, t.TempDir(), "s.pdf", "%PDF")))

	rec := get(t, s.Handler(), "/courses/0")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CS 101")
	assert.Contains(t, rec.Body.String(), "Dr. A")

	for _, target := range []string{"/courses/2", "/courses/-1", "/courses/abc"} {
		assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), target).Code, target)
	}
}

func TestCourseDetailsWithoutSchedule(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/courses/0").Code)
}

func TestAbout(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/about")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), config.AppName)
	assert.Contains(t, rec.Body.String(), config.Version)
}

func TestFavicon(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/favicon.ico").Code)

	icon := writeFile(t, t.TempDir(), "calendar_icon.png", "\x89PNG\r\n\x1a\n")
	s, _ = newTestServer(t, WithIcon(icon))
	rec := get(t, s.Handler(), "/favicon.ico")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "\x89PNG\r\n\x1a\n", rec.Body.String())
}

func TestLoadLast(t *testing.T) {
	s, store := newTestServer(t)
	assert.False(t, s.LoadLast(context.Background()))

	path := writeFile(t, t.TempDir(), "last.pdf", "%PDF")
	require.NoError(t, store.SaveLastPDFPath(path))

	assert.True(t, s.LoadLast(context.Background()))
	sched, _ := s.Current()
	require.NotNil(t, sched)
	assert.Equal(t, "Ahmed Ali", sched.Student.Name)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-done)
}
