package export

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ContentType é o tipo MIME das planilhas geradas
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetSpec descreve uma aba: título, cabeçalho e linhas já formatadas
type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Workbook é uma planilha pronta para ser enviada
type Workbook struct {
	File *excelize.File
}

// NewWorkbook monta uma planilha com uma aba por SheetSpec
func NewWorkbook(sheets []SheetSpec) (*Workbook, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("planilha sem abas")
	}

	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("estilo do cabeçalho: %w", err)
	}

	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("renomear aba: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("nova aba: %w", err)
		}

		if err := f.SetSheetRow(name, "A1", &s.Header); err != nil {
			return nil, fmt.Errorf("cabeçalho de %s: %w", name, err)
		}
		if len(s.Header) > 0 {
			end, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
			_ = f.SetCellStyle(name, "A1", end, bold)
			_ = f.AutoFilter(name, "A1:"+end, nil)
		}

		for r, row := range s.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			values := make([]interface{}, len(row))
			for c, v := range row {
				values[c] = v
			}
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return nil, fmt.Errorf("linha %d de %s: %w", r+2, name, err)
			}
		}

		setWidths(f, name, s)
	}

	return &Workbook{File: f}, nil
}

// largura aproximada pelo conteúdo das primeiras linhas
func setWidths(f *excelize.File, sheet string, s SheetSpec) {
	for c := range s.Header {
		width := utf8.RuneCountInString(s.Header[c]) + 2
		for r := 0; r < len(s.Rows) && r < 50; r++ {
			if c < len(s.Rows[r]) {
				if l := utf8.RuneCountInString(s.Rows[r][c]); l > width {
					width = l
				}
			}
		}
		w := float64(width)
		if w < 12 {
			w = 12
		}
		if w > 40 {
			w = 40
		}
		col, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}
}

// Bytes serializa a planilha em xlsx
func (w *Workbook) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.File.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close libera os recursos temporários do excelize
func (w *Workbook) Close() error {
	return w.File.Close()
}
