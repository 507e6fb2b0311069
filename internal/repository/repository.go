package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/corpagent/adgm-compliance-api/internal/models"
)

type Repository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id string) (*models.Document, error)
	SaveAnalysis(ctx context.Context, id string, result *models.AnalysisResult) error
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisResult, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, doc *models.Document) error {
	sectionsJSON, err := json.Marshal(doc.Sections)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (id, filename, file_size, content_type, s3_key, extracted_text, sections, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.ExecContext(ctx, query,
		doc.ID,
		doc.Filename,
		doc.FileSize,
		doc.ContentType,
		doc.S3Key,
		doc.ExtractedText,
		string(sectionsJSON),
		doc.CreatedAt,
		doc.UpdatedAt,
	)

	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	var sectionsJSON sql.NullString
	var docType sql.NullString

	query := `
		SELECT id, filename, file_size, content_type, s3_key, extracted_text,
		       sections, document_type, created_at, updated_at, analyzed_at
		FROM documents
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Filename,
		&doc.FileSize,
		&doc.ContentType,
		&doc.S3Key,
		&doc.ExtractedText,
		&sectionsJSON,
		&docType,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&doc.AnalyzedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if sectionsJSON.Valid && sectionsJSON.String != "" {
		if err := json.Unmarshal([]byte(sectionsJSON.String), &doc.Sections); err != nil {
			return nil, err
		}
	}
	if docType.Valid {
		doc.DocumentType = models.DocumentType(docType.String)
	}

	return &doc, nil
}

func (r *repository) SaveAnalysis(ctx context.Context, id string, result *models.AnalysisResult) error {
	analysisJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}

	query := `
		UPDATE documents
		SET document_type = $2, analysis = $3, analyzed_at = $4, updated_at = $5
		WHERE id = $1
	`

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query, id, string(result.DocumentType), string(analysisJSON), result.AnalyzedAt, now)

	return err
}

func (r *repository) GetAnalysis(ctx context.Context, id string) (*models.AnalysisResult, error) {
	var analysisJSON sql.NullString

	query := `SELECT analysis FROM documents WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&analysisJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !analysisJSON.Valid || analysisJSON.String == "" {
		return nil, nil
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(analysisJSON.String), &result); err != nil {
		return nil, err
	}

	return &result, nil
}
