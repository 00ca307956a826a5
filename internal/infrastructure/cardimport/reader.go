// Package cardimport lee tarjetas de stock desde hojas Excel o CSV heredados.
// Columnas esperadas (con encabezado): product_name, barcode, unit, status.
package cardimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
)

const minColumns = 3

// Row fila leída del archivo. Line es el número de fila en el archivo (el encabezado es 1).
// Err se llena cuando la fila no se pudo interpretar; Request queda vacío.
type Row struct {
	Line    int
	Request dto.StockCardRequest
	Err     error
}

// ReadXLSX lee la primera hoja del libro.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("leer excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el libro no tiene hojas")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer filas: %w", err)
	}
	return parseRecords(records)
}

// ReadCSV lee un CSV separado por comas o punto y coma.
// charset admite utf-8 (vacío), latin1/iso-8859-1, windows-1252,
// latin5/iso-8859-9 y windows-1254.
func ReadCSV(r io.Reader, charset string) ([]Row, error) {
	dec, err := decoder(charset)
	if err != nil {
		return nil, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec.NewDecoder())
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectComma(text)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	return parseRecords(records)
}

func decoder(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "latin5", "iso-8859-9", "iso8859-9":
		return charmap.ISO8859_9, nil
	case "windows-1254", "cp1254":
		return charmap.Windows1254, nil
	}
	return nil, fmt.Errorf("charset no soportado: %q", charset)
}

func detectComma(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func parseRecords(records [][]string) ([]Row, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("el archivo debe tener encabezado y al menos una fila de datos")
	}
	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if blank(rec) {
			continue
		}
		if len(rec) < minColumns {
			rows = append(rows, Row{Line: line, Err: fmt.Errorf("columnas insuficientes (se esperan al menos %d)", minColumns)})
			continue
		}
		status := true
		if len(rec) > 3 {
			s, err := parseStatus(rec[3])
			if err != nil {
				rows = append(rows, Row{Line: line, Err: err})
				continue
			}
			status = s
		}
		rows = append(rows, Row{
			Line: line,
			Request: dto.StockCardRequest{
				ProductName: strings.TrimSpace(rec[0]),
				Barcode:     strings.TrimSpace(rec[1]),
				Unit:        strings.ToLower(strings.TrimSpace(rec[2])),
				Status:      &status,
			},
		})
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseStatus interpreta la columna de estado; vacío = activa.
func parseStatus(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "1", "true", "si", "sí", "activo", "activa":
		return true, nil
	case "0", "false", "no", "inactivo", "inactiva":
		return false, nil
	}
	return false, fmt.Errorf("estado inválido: %q", v)
}
