package domain

import (
	"context"
	"io"
)

// DatasetRepository stores uploaded datasets between requests
type DatasetRepository interface {
	Save(ctx context.Context, dataset *Dataset) error
	Get(ctx context.Context, id string) (*Dataset, error)
	Delete(ctx context.Context, id string) error
}

// WorkbookLoader parses the uploaded workbooks into tables
type WorkbookLoader interface {
	Load(ctx context.Context, sources WorkbookSources) (*Tables, error)
}

// ReportExporter serialises a report for download
type ReportExporter interface {
	Export(report *Report, w io.Writer) error
}
