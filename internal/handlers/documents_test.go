package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpagent/adgm-compliance-api/internal/exporter"
	"github.com/corpagent/adgm-compliance-api/internal/models"
	"github.com/corpagent/adgm-compliance-api/internal/utils"
)

type stubService struct {
	uploadResp  *models.UploadResponse
	analysis    *models.AnalysisResult
	doc         *models.Document
	artifact    *exporter.Artifact
	answer      *models.AnswerResponse
	err         error
	gotQuestion *models.QuestionRequest
}

func (s *stubService) UploadDocument(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	return s.uploadResp, s.err
}

func (s *stubService) AnalyzeDocument(ctx context.Context, id string) (*models.AnalysisResult, error) {
	return s.analysis, s.err
}

func (s *stubService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.doc, s.err
}

func (s *stubService) ExportReport(ctx context.Context, id, format string) (*exporter.Artifact, error) {
	return s.artifact, s.err
}

func (s *stubService) Ask(ctx context.Context, req *models.QuestionRequest) (*models.AnswerResponse, error) {
	s.gotQuestion = req
	return s.answer, s.err
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func testHandler(svc *stubService) *DocumentHandler {
	return NewDocumentHandler(svc, utils.NewLoggerWithWriter("error", nopWriter{}))
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	h := testHandler(&stubService{uploadResp: &models.UploadResponse{ID: "abc", Filename: "a.txt"}})

	body, contentType := multipartBody(t, "a.txt", []byte("some text"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.UploadDocument(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp models.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc", resp.ID)
}

func TestUploadDocumentRejectsUnsupportedExtension(t *testing.T) {
	h := testHandler(&stubService{})

	body, contentType := multipartBody(t, "a.doc", []byte("some text"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.UploadDocument(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadDocumentRejectsEmptyFile(t *testing.T) {
	h := testHandler(&stubService{})

	body, contentType := multipartBody(t, "a.txt", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.UploadDocument(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadDocumentRejectsOversizedRequest(t *testing.T) {
	h := testHandler(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", strings.NewReader("x"))
	req.ContentLength = MaxFileSize + 1
	rec := httptest.NewRecorder()

	h.UploadDocument(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeDocumentPropagatesAppError(t *testing.T) {
	h := testHandler(&stubService{err: utils.NewNotFoundError("Document not found")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/xyz/analyze", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "xyz"})
	rec := httptest.NewRecorder()

	h.AnalyzeDocument(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Document not found")
}

func TestExportReportSetsDownloadHeaders(t *testing.T) {
	h := testHandler(&stubService{artifact: &exporter.Artifact{
		Data:        []byte(`{"score":100}`),
		ContentType: "application/json",
		Filename:    "compliance-report-xyz.json",
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/xyz/report?format=json", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "xyz"})
	rec := httptest.NewRecorder()

	h.ExportReport(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "compliance-report-xyz.json")
}

func TestAskQuestion(t *testing.T) {
	svc := &stubService{answer: &models.AnswerResponse{Answer: "ok", Source: "knowledge_base"}}
	h := testHandler(svc)

	body := strings.NewReader(`{"question":"What documents are required?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/questions", body)
	rec := httptest.NewRecorder()

	h.AskQuestion(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotQuestion)
	assert.Equal(t, "What documents are required?", svc.gotQuestion.Question)
}

func TestAskQuestionRejectsBadBody(t *testing.T) {
	h := testHandler(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/questions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.AskQuestion(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetermineContentType(t *testing.T) {
	cases := []struct {
		filename string
		header   string
		want     string
	}{
		{"a.pdf", "application/octet-stream", "application/pdf"},
		{"a.docx", "", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"a.txt", "", "text/plain"},
		{"noext", "application/pdf", "application/pdf"},
		{"noext", "application/octet-stream", "application/octet-stream"},
	}

	for _, tc := range cases {
		got := determineContentType(tc.filename, tc.header)
		assert.Equal(t, tc.want, got, tc.filename)
	}
}
