package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProcessedFile is a source document from which infraction records were ingested.
type ProcessedFile struct {
	Path            string    `json:"path"`
	Name            string    `json:"name"`
	AutosCount      int64     `json:"autosCount"`
	ProcessedAt     time.Time `json:"processedAt"`
	ExistsInStorage bool      `json:"existsInStorage"`
	Offenders       []string  `json:"infratores"`
}

// FileDeletion is the outcome of deleting one processed file and its records.
type FileDeletion struct {
	File              string               `json:"file"`
	Success           bool                 `json:"success"`
	DeletedAutosCount int64                `json:"deletedAutosCount"`
	AutosIDs          []primitive.ObjectID `json:"autosIds,omitempty"`
	StorageDeleted    bool                 `json:"storageDeleted"`
	ResolvedPath      string               `json:"resolvedPath,omitempty"`
	Error             string               `json:"error,omitempty"`
}

// BatchDeletion summarizes a batch of file deletions.
type BatchDeletion struct {
	Results      []FileDeletion `json:"results"`
	TotalFiles   int            `json:"totalFiles"`
	SuccessCount int            `json:"successCount"`
	FailureCount int            `json:"failureCount"`
}

// DeletionAudit is one row of the processed-file deletion log.
type DeletionAudit struct {
	ID             string    `json:"id"`
	FilePath       string    `json:"filePath"`
	ResolvedPath   string    `json:"resolvedPath"`
	DeletedAutos   int64     `json:"deletedAutos"`
	StorageDeleted bool      `json:"storageDeleted"`
	Outcome        string    `json:"outcome"`
	ErrorMessage   string    `json:"errorMessage,omitempty"`
	RequestID      string    `json:"requestId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)
