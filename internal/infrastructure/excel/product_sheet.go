// Package excel lee hojas de cálculo de productos para la importación masiva.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-api/internal/application/bulkimport"
)

// Columnas esperadas en la primera hoja, en orden:
// Nombre | SKU | Precio | Cantidad | Descripción | Categoría (ID).
// La primera fila es encabezado y se omite.

// ReadProductSheet parsea la primera hoja del archivo y devuelve las filas de
// datos con su número de línea (base 1, contando el encabezado).
func ReadProductSheet(r io.Reader) ([]bulkimport.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el archivo no contiene hojas")
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}

	var out []bulkimport.Row
	for i, cols := range cells {
		if i == 0 {
			continue // encabezado
		}
		if isEmptyRow(cols) {
			continue
		}
		out = append(out, bulkimport.Row{
			Line:          i + 1,
			Name:          cell(cols, 0),
			SKU:           cell(cols, 1),
			Price:         cell(cols, 2),
			StockQuantity: cell(cols, 3),
			Description:   cell(cols, 4),
			CategoryID:    cell(cols, 5),
		})
	}
	return out, nil
}

func cell(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[i])
}

func isEmptyRow(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
