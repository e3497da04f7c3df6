package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vocadrill/practice-service/internal/models"
	"github.com/vocadrill/practice-service/internal/repositories"
	"github.com/vocadrill/practice-service/internal/utils"
)

// ImportExportService moves vocabulary sets in and out as spreadsheet
// files. The expected sheet layout is two columns, term then definition,
// with an optional header row.
type ImportExportService interface {
	ImportSetFromFile(ctx context.Context, reader io.Reader, filename string, req *ImportSetRequest, ownerID string) (*ImportResult, error)
	ExportSetToExcel(ctx context.Context, setID uint, userID string) ([]byte, error)
}

type ImportSetRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Language string `json:"language" validate:"required,language_code"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Set          *models.VocabularySet `json:"set"`
	TotalRows    int                   `json:"total_rows"`
	SuccessCount int                   `json:"success_count"`
	SkippedCount int                   `json:"skipped_count"`
	Errors       []ImportRowError      `json:"errors,omitempty"`
}

type importExportService struct {
	repo      repositories.Repository
	validator *utils.Validator
	logger    utils.Logger
}

func NewImportExportService(repo repositories.Repository, validator *utils.Validator, logger utils.Logger) ImportExportService {
	return &importExportService{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

func (s *importExportService) ImportSetFromFile(ctx context.Context, reader io.Reader, filename string, req *ImportSetRequest, ownerID string) (*ImportResult, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileFormat, ext)
	}

	s.logger.InfoContext(ctx, "Starting vocabulary import", "filename", filename, "owner_id", ownerID)

	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	result := &ImportResult{TotalRows: len(rows)}
	seen := make(map[string]struct{})
	var terms []models.VocabularyTerm

	for i, row := range rows {
		rowNum := i + 1
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" || strings.TrimSpace(row[1]) == "" {
			result.SkippedCount++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "missing term or definition"})
			continue
		}

		term := strings.TrimSpace(row[0])
		definition := strings.TrimSpace(row[1])

		// Skip a header row like "term,definition".
		if i == 0 && strings.EqualFold(term, "term") && strings.EqualFold(definition, "definition") {
			result.SkippedCount++
			continue
		}
		if _, dup := seen[term]; dup {
			result.SkippedCount++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: fmt.Sprintf("duplicate term %q", term)})
			continue
		}

		seen[term] = struct{}{}
		terms = append(terms, models.VocabularyTerm{Term: term, Definition: definition})
		result.SuccessCount++
	}

	if len(terms) == 0 {
		return nil, ErrImportNoRows
	}

	set := &models.VocabularySet{
		Title:    req.Title,
		Language: req.Language,
		OwnerID:  ownerID,
		Terms:    terms,
	}
	if err := s.repo.VocabularySet().Create(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to create imported set: %w", err)
	}

	set.TermCount = len(terms)
	result.Set = set

	s.logger.InfoContext(ctx, "Vocabulary import finished",
		"set_id", set.ID,
		"imported", result.SuccessCount,
		"skipped", result.SkippedCount)
	return result, nil
}

func (s *importExportService) ExportSetToExcel(ctx context.Context, setID uint, userID string) ([]byte, error) {
	set, err := s.repo.VocabularySet().GetByIDWithTerms(ctx, setID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("failed to get vocabulary set: %w", err)
	}
	if set.OwnerID != userID {
		return nil, ErrSetAccessDenied
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "term"); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellValue(sheet, "B1", "definition"); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, term := range set.Terms {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), term.Term); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), term.Definition); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
