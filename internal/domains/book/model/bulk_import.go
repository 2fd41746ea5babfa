package model

import "strings"

const (
	ImportMaxFileSize = 5 * 1024 * 1024
	ImportFormatCSV   = "csv"
	ImportFormatXLSX  = "xlsx"
)

// ImportHeader is the required first row of an import file.
var ImportHeader = []string{"title", "author", "isbn"}

// ImportRow is one parsed data row. Line is 1-based and counts the header.
type ImportRow struct {
	Line   int
	Title  string
	Author string
	ISBN   string
}

func (r ImportRow) ToEntity() *Book {
	b := &Book{Title: r.Title, Author: r.Author, ISBN: r.ISBN}
	b.Normalize()
	return b
}

type ImportRowError struct {
	Line    int    `json:"line"`
	ISBN    string `json:"isbn,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResult reports a best-effort import: created rows are kept even when
// other rows fail.
type ImportResult struct {
	TotalRows int              `json:"total_rows"`
	Created   []BookResponse   `json:"created"`
	Failed    []ImportRowError `json:"failed"`
}

func (r *ImportResult) SuccessCount() int {
	return len(r.Created)
}

// ImportFormat derives the parser from the file extension.
func ImportFormat(filename string) (string, bool) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return ImportFormatCSV, true
	case strings.HasSuffix(lower, ".xlsx"):
		return ImportFormatXLSX, true
	default:
		return "", false
	}
}
