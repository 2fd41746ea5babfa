package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared"
	"library-backend/internal/shared/query"
)

const exportSheet = "Books"

type bulkService struct {
	catalog ServiceInterface
	maxRows int
}

func NewBulkService(catalog ServiceInterface, maxRows int) BulkServiceInterface {
	return &bulkService{
		catalog: catalog,
		maxRows: maxRows,
	}
}

// ========================================
// IMPORT
// ========================================

// Import creates one book per data row through the catalog. Rows failing
// validation or uniqueness are reported and skipped; an infrastructure
// error stops the import and returns what was created so far.
func (s *bulkService) Import(ctx context.Context, filename string, r io.Reader) (*model.ImportResult, error) {
	format, ok := model.ImportFormat(filename)
	if !ok {
		return nil, model.ErrImportFormat
	}

	var (
		records [][]string
		err     error
	)
	switch format {
	case model.ImportFormatXLSX:
		records, err = readXLSX(r)
	default:
		records, err = readCSV(r)
	}
	if err != nil {
		return nil, model.ErrImportUnreadable.Wrap(err)
	}

	rows, err := parseRecords(records, s.maxRows)
	if err != nil {
		return nil, err
	}

	result := &model.ImportResult{
		TotalRows: len(rows),
		Created:   make([]model.BookResponse, 0, len(rows)),
		Failed:    make([]model.ImportRowError, 0),
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		book, err := s.catalog.Create(ctx, row.ToEntity())
		if err != nil {
			var de *shared.DomainError
			if !errors.As(err, &de) {
				return result, fmt.Errorf("import line %d: %w", row.Line, err)
			}
			result.Failed = append(result.Failed, model.ImportRowError{
				Line:    row.Line,
				ISBN:    strings.TrimSpace(row.ISBN),
				Code:    de.Code,
				Message: err.Error(),
			})
			continue
		}

		result.Created = append(result.Created, model.ToResponse(*book))
	}

	log.Info().
		Str("file_name", filename).
		Int("total_rows", result.TotalRows).
		Int("created", result.SuccessCount()).
		Int("failed", len(result.Failed)).
		Msg("[BulkService] Import finished")

	return result, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return records, nil
}

// parseRecords maps the header to column positions and turns the remaining
// non-blank records into rows.
func parseRecords(records [][]string, maxRows int) ([]model.ImportRow, error) {
	if len(records) == 0 {
		return nil, model.ErrImportEmpty
	}

	colMap := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		colMap[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range model.ImportHeader {
		if _, ok := colMap[required]; !ok {
			return nil, model.ErrImportHeader
		}
	}

	getCol := func(record []string, name string) string {
		if idx := colMap[name]; idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	rows := make([]model.ImportRow, 0, len(records)-1)
	for i, record := range records[1:] {
		row := model.ImportRow{
			Line:   i + 2,
			Title:  getCol(record, "title"),
			Author: getCol(record, "author"),
			ISBN:   getCol(record, "isbn"),
		}
		if row.Title == "" && row.Author == "" && row.ISBN == "" {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, model.ErrImportEmpty
	}
	if len(rows) > maxRows {
		return nil, model.ErrImportTooManyRows
	}
	return rows, nil
}

// ========================================
// EXPORT
// ========================================

// Export writes every book matching filter to a single-sheet workbook.
func (s *bulkService) Export(ctx context.Context, filter model.Filter) (*excelize.File, error) {
	var books []model.Book
	for number := 0; ; number++ {
		page, err := s.catalog.Find(ctx, filter, query.NewPageRequest(number, query.MaxPageSize))
		if err != nil {
			return nil, fmt.Errorf("load books for export: %w", err)
		}
		books = append(books, page.Content...)
		if len(page.Content) == 0 || number+1 >= page.TotalPages() {
			break
		}
	}

	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, fmt.Errorf("build excel file: %w", err)
	}
	return f, nil
}

func buildBooksExcelFile(books []model.Book) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Title", "Author", "ISBN", "Created At"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", "E1", headerStyle)
	}

	for i, b := range books {
		rowNum := i + 2
		values := []interface{}{
			b.ID.String(),
			b.Title,
			b.Author,
			b.ISBN,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
