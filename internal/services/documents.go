package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corpagent/adgm-compliance-api/internal/advisor"
	"github.com/corpagent/adgm-compliance-api/internal/classifier"
	"github.com/corpagent/adgm-compliance-api/internal/compliance"
	"github.com/corpagent/adgm-compliance-api/internal/exporter"
	"github.com/corpagent/adgm-compliance-api/internal/extractor"
	"github.com/corpagent/adgm-compliance-api/internal/models"
	"github.com/corpagent/adgm-compliance-api/internal/redflags"
	"github.com/corpagent/adgm-compliance-api/internal/repository"
	"github.com/corpagent/adgm-compliance-api/internal/rules"
	"github.com/corpagent/adgm-compliance-api/internal/storage"
	"github.com/corpagent/adgm-compliance-api/internal/utils"
)

// maxDocContext bounds how much document text is handed to the
// advisory LLM as context.
const maxDocContext = 4000

type DocumentService interface {
	UploadDocument(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
	AnalyzeDocument(ctx context.Context, id string) (*models.AnalysisResult, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	ExportReport(ctx context.Context, id, format string) (*exporter.Artifact, error)
	Ask(ctx context.Context, req *models.QuestionRequest) (*models.AnswerResponse, error)
}

type documentService struct {
	repo       repository.Repository
	storage    storage.Storage
	classifier *classifier.Classifier
	checker    *compliance.Checker
	detector   *redflags.Detector
	advisor    *advisor.Advisor
	logger     *utils.Logger
}

func NewService(repo repository.Repository, store storage.Storage, table *rules.Table, adv *advisor.Advisor, logger *utils.Logger) DocumentService {
	return &documentService{
		repo:       repo,
		storage:    store,
		classifier: classifier.New(table),
		checker:    compliance.New(table),
		detector:   redflags.New(table),
		advisor:    adv,
		logger:     logger,
	}
}

// UploadDocument extracts text and sections, stores the original bytes
// and the document row. Extraction failure is not fatal: the document
// is stored with empty text and analysis later reports it as a finding.
func (s *documentService) UploadDocument(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	docID := utils.GenerateID()

	extractedText, err := extractor.Extract(req.File, req.ContentType)
	if err != nil {
		if errors.Is(err, extractor.ErrUnsupported) {
			s.logger.Warn("Unsupported content type", "content_type", req.ContentType, "filename", req.Filename)
			return nil, utils.NewBadRequestError(fmt.Sprintf("Unsupported file type '%s'. Only PDF, DOCX and TXT are allowed", req.ContentType))
		}
		s.logger.Warn("Text extraction failed; storing document without text",
			"error", err, "content_type", req.ContentType, "filename", req.Filename)
		extractedText = ""
	}

	sections := extractor.Sections(extractedText)

	s3Key := fmt.Sprintf("documents/%s/%s", docID, req.Filename)
	if err := s.storage.Upload(ctx, s3Key, req.File, req.ContentType); err != nil {
		s.logger.Error("Failed to upload to S3", "error", err, "s3_key", s3Key)
		return nil, utils.NewInternalError("Failed to store document")
	}

	now := time.Now()
	doc := &models.Document{
		ID:            docID,
		Filename:      req.Filename,
		FileSize:      int64(len(req.File)),
		ContentType:   req.ContentType,
		S3Key:         s3Key,
		ExtractedText: extractedText,
		Sections:      sections,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.logger.Error("Failed to save document to database", "error", err, "doc_id", docID)
		_ = s.storage.Delete(ctx, s3Key)
		return nil, utils.NewInternalError("Failed to save document metadata")
	}

	s.logger.Info("Document uploaded",
		"id", docID,
		"filename", req.Filename,
		"content_type", req.ContentType,
		"text_length", len(extractedText),
		"sections", len(sections))

	return &models.UploadResponse{
		ID:          docID,
		Filename:    req.Filename,
		FileSize:    doc.FileSize,
		ContentType: doc.ContentType,
		Sections:    len(sections),
		CreatedAt:   now,
		Message:     "Document uploaded. Use /documents/{id}/analyze to run the compliance check.",
	}, nil
}

// AnalyzeDocument runs the full pipeline: classify, check rules, scan
// for red flags, persist the result. Re-analyzing an already analyzed
// document returns the stored result unchanged.
func (s *documentService) AnalyzeDocument(ctx context.Context, id string) (*models.AnalysisResult, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get document", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve document")
	}
	if doc == nil {
		return nil, utils.NewNotFoundError("Document not found")
	}

	if doc.AnalyzedAt != nil {
		stored, err := s.repo.GetAnalysis(ctx, id)
		if err != nil {
			s.logger.Error("Failed to load stored analysis", "error", err, "id", id)
			return nil, utils.NewInternalError("Failed to retrieve analysis")
		}
		if stored != nil {
			s.logger.Info("Document already analyzed, returning stored result", "id", id)
			return stored, nil
		}
	}

	docType, confidence := s.classifier.Classify(doc.ExtractedText, doc.Filename)
	doc.DocumentType = docType

	result := s.checker.Check(doc)
	result.Confidence = confidence

	if strings.TrimSpace(doc.ExtractedText) != "" {
		result.Findings = append(result.Findings, s.detector.Detect(doc.ExtractedText, doc.Sections)...)
	}

	if err := s.repo.SaveAnalysis(ctx, id, result); err != nil {
		s.logger.Error("Failed to save analysis", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to save analysis results")
	}

	s.logger.Info("Document analyzed",
		"id", id,
		"type", result.DocumentType,
		"score", result.Score,
		"findings", len(result.Findings),
		"critical", result.CriticalCount())

	return result, nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get document", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve document")
	}
	if doc == nil {
		return nil, utils.NewNotFoundError("Document not found")
	}

	return doc, nil
}

// ExportReport serializes a stored analysis. Serialization only; the
// stored result is never recomputed here.
func (s *documentService) ExportReport(ctx context.Context, id, format string) (*exporter.Artifact, error) {
	result, err := s.repo.GetAnalysis(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load analysis for export", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve analysis")
	}
	if result == nil {
		return nil, utils.NewNotFoundError("Document has not been analyzed yet")
	}

	artifact, err := exporter.Export(result, format)
	if err != nil {
		return nil, utils.NewBadRequestError(err.Error())
	}
	return artifact, nil
}

// Ask answers a free-text question, optionally with document context.
// Advisory failures never surface: the advisor owns the fallback.
func (s *documentService) Ask(ctx context.Context, req *models.QuestionRequest) (*models.AnswerResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, utils.NewBadRequestError("Question is required")
	}

	docContext := ""
	if req.DocumentID != "" {
		doc, err := s.repo.GetByID(ctx, req.DocumentID)
		if err != nil || doc == nil {
			s.logger.Warn("Question references unknown document; answering without context", "document_id", req.DocumentID)
		} else {
			docContext = doc.ExtractedText
			if len(docContext) > maxDocContext {
				docContext = docContext[:maxDocContext]
			}
		}
	}

	return s.advisor.Ask(ctx, question, docContext), nil
}
