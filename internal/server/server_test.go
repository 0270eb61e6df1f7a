package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/minutes-flow/internal/document"
	"github.com/nguyentantai21042004/minutes-flow/internal/intake"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/pipeline"
	"github.com/nguyentantai21042004/minutes-flow/internal/storage"
)

type fakePipeline struct {
	got intake.Media
	err error
}

func (f *fakePipeline) Run(_ context.Context, media intake.Media) (*pipeline.Result, error) {
	f.got = media
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Result{
		RunID:      "run-1",
		Object:     storage.ObjectReference{URI: "gs://b/20240101-120000-" + media.Filename},
		Transcript: "全文",
		Minutes:    "# 議事録\n- 決定事項1",
		Document: document.Rendered{
			Filename: document.Filename("議事録", media.Filename),
			MIMEType: document.MIMEType,
			Data:     []byte("PK-docx"),
		},
	}, nil
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestServer(p pipeline.Pipeline) *Server {
	return New(p, intake.NewValidator([]string{".mp3", ".wav"}), logger.Discard(), 10)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&fakePipeline{})

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMinutesDownload(t *testing.T) {
	fp := &fakePipeline{}
	s := newTestServer(fp)

	resp, err := s.App().Test(uploadRequest(t, "/api/minutes", "meeting.wav", []byte("RIFF")), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if got := resp.Header.Get("Content-Type"); got != document.MIMEType {
		t.Errorf("Content-Type = %v", got)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment;") || !strings.Contains(cd, "_meeting.docx") {
		t.Errorf("Content-Disposition = %v", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "PK-docx" {
		t.Errorf("body = %q", body)
	}
	if fp.got.Filename != "meeting.wav" || string(fp.got.Data) != "RIFF" {
		t.Errorf("pipeline got %+v", fp.got)
	}
}

func TestMinutesJSON(t *testing.T) {
	s := newTestServer(&fakePipeline{})

	resp, err := s.App().Test(uploadRequest(t, "/api/minutes?format=json", "recording.mp3", []byte("id3")), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got minutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Filename != "議事録_recording.docx" {
		t.Errorf("Filename = %v", got.Filename)
	}
	if !strings.Contains(got.MinutesHTML, "<h1>議事録</h1>") || !strings.Contains(got.MinutesHTML, "<li>決定事項1</li>") {
		t.Errorf("MinutesHTML = %q", got.MinutesHTML)
	}
	if doc, _ := base64.StdEncoding.DecodeString(got.Document); string(doc) != "PK-docx" {
		t.Errorf("Document = %q", got.Document)
	}
}

func TestMinutesRejectsUnsupportedType(t *testing.T) {
	fp := &fakePipeline{}
	s := newTestServer(fp)

	resp, err := s.App().Test(uploadRequest(t, "/api/minutes", "notes.txt", []byte("hello")), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if fp.got.Filename != "" {
		t.Error("pipeline should not run for a rejected upload")
	}
}

func TestMinutesMissingFile(t *testing.T) {
	s := newTestServer(&fakePipeline{})

	req := httptest.NewRequest(http.MethodPost, "/api/minutes", strings.NewReader(""))
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMinutesStageFailure(t *testing.T) {
	s := newTestServer(&fakePipeline{err: &pipeline.StageError{Stage: pipeline.StageSynthesize, Err: errors.New("quota")}})

	resp, err := s.App().Test(uploadRequest(t, "/api/minutes", "meeting.wav", []byte("RIFF")), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got["stage"] != "synthesize" {
		t.Errorf("stage = %v, want synthesize", got["stage"])
	}
}
