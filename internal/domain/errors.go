package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDatasetNotFound is returned when an uploaded dataset id is unknown or expired
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
	// ErrUnsupportedFile is returned when an upload is not an .xlsx workbook
	ErrUnsupportedFile = errors.New("unsupported file type, expected .xlsx")
	// ErrInvalidWorkbook is returned when a workbook cannot be opened or read
	ErrInvalidWorkbook = errors.New("workbook could not be read")
	// ErrMissingSheet is returned when a required sheet is absent from a workbook
	ErrMissingSheet = errors.New("required sheet not found")
	// ErrMissingColumn is returned when a required column is absent from a sheet
	ErrMissingColumn = errors.New("required column not found")
	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)

// SheetError reports a workbook that lacks one of the expected sheets.
type SheetError struct {
	Table string
	Sheet string
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s: sheet %q not found in %s workbook", ErrMissingSheet, e.Sheet, e.Table)
}

func (e *SheetError) Unwrap() error { return ErrMissingSheet }

// ColumnError reports a table whose header row lacks a required column.
type ColumnError struct {
	Table  string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: '%s' column not found in %s table", ErrMissingColumn, e.Column, e.Table)
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }
