package models

import (
	"time"
)

// DocumentType is the closed set of corporate document categories the
// classifier can assign. Unknown is a valid terminal classification.
type DocumentType string

const (
	TypeArticlesOfAssociation    DocumentType = "Articles of Association"
	TypeMemorandumOfAssociation  DocumentType = "Memorandum of Association"
	TypeUBODeclaration           DocumentType = "UBO Declaration"
	TypeEmploymentContract       DocumentType = "Employment Contract"
	TypeBoardResolution          DocumentType = "Board Resolution"
	TypeIncorporationApplication DocumentType = "Incorporation Application"
	TypeRegisterOfMembers        DocumentType = "Register of Members"
	TypeRegisterOfDirectors      DocumentType = "Register of Directors"
	TypeShareholderResolution    DocumentType = "Shareholder Resolution"
	TypeUnknown                  DocumentType = "Unknown"
)

// Section is a detected structural part of a document, in source order.
type Section struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type Document struct {
	ID            string       `json:"id" db:"id"`
	Filename      string       `json:"filename" db:"filename"`
	FileSize      int64        `json:"file_size" db:"file_size"`
	ContentType   string       `json:"content_type" db:"content_type"`
	S3Key         string       `json:"s3_key" db:"s3_key"`
	ExtractedText string       `json:"extracted_text,omitempty" db:"extracted_text"`
	Sections      []Section    `json:"sections,omitempty"`
	DocumentType  DocumentType `json:"document_type,omitempty" db:"document_type"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
	AnalyzedAt    *time.Time   `json:"analyzed_at,omitempty" db:"analyzed_at"`
}

type UploadRequest struct {
	File        []byte
	Filename    string
	ContentType string
}

type UploadResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	Sections    int       `json:"sections"`
	CreatedAt   time.Time `json:"created_at"`
	Message     string    `json:"message"`
}

type QuestionRequest struct {
	Question   string `json:"question"`
	DocumentID string `json:"document_id,omitempty"`
}

type AnswerResponse struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Source     string   `json:"source"`
	References []string `json:"references,omitempty"`
}
