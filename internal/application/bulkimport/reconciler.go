package bulkimport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Row es una fila de datos del archivo, con todas las celdas como texto.
// Line es 1-based contando la fila de encabezado, para que los errores
// apunten a la línea real del archivo.
type Row struct {
	Line          int
	Name          string
	SKU           string
	Price         string
	StockQuantity string
	Description   string
	CategoryID    string
}

// LineError error de validación de una fila.
type LineError struct {
	Line    int
	Message string
}

// Result resultado de la reconciliación: productos listos para persistir en
// un solo lote, errores por línea y conteo de filas procesadas con éxito.
type Result struct {
	Products  []*entity.Product
	Errors    []LineError
	Processed int
}

// Lookups funciones de consulta que necesita la reconciliación. Se pasan como
// funciones para que Reconcile sea una función pura sobre las filas ya
// parseadas, trivial de probar sin base de datos.
type Lookups struct {
	CategoryByID func(id string) (*entity.Category, error)
	ProductBySKU func(sku string) (*entity.Product, error)
}

// Reconcile valida cada fila de forma independiente y acumula el resultado:
// una fila inválida se registra como error de línea y el procesamiento
// continúa con la siguiente. Las filas válidas se reconcilian contra el
// catálogo por SKU: si el producto existe, nombre/precio/descripción/categoría
// se sobreescriben y el stock se INCREMENTA (semántica de reposición, no un
// reemplazo destructivo); si no existe, se crea. Filas repetidas del mismo SKU
// dentro del archivo se fusionan sobre el producto ya acumulado.
func Reconcile(rows []Row, lk Lookups) (*Result, error) {
	result := &Result{}
	accumulated := make(map[string]*entity.Product)
	now := time.Now()

	for _, row := range rows {
		product, err := reconcileRow(row, lk, accumulated, now)
		if err != nil {
			result.Errors = append(result.Errors, LineError{Line: row.Line, Message: err.Error()})
			continue
		}
		if _, seen := accumulated[product.SKU]; !seen {
			result.Products = append(result.Products, product)
			accumulated[product.SKU] = product
		}
		result.Processed++
	}
	return result, nil
}

func reconcileRow(row Row, lk Lookups, accumulated map[string]*entity.Product, now time.Time) (*entity.Product, error) {
	name := strings.TrimSpace(row.Name)
	sku := strings.TrimSpace(row.SKU)
	if name == "" {
		return nil, fmt.Errorf("el nombre es requerido")
	}
	if sku == "" {
		return nil, fmt.Errorf("el SKU es requerido")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("precio inválido: %q", row.Price)
	}
	quantity, err := parseQuantity(row.StockQuantity)
	if err != nil {
		return nil, fmt.Errorf("cantidad inválida: %q", row.StockQuantity)
	}

	categoryID := strings.TrimSpace(row.CategoryID)
	if categoryID == "" {
		return nil, fmt.Errorf("la categoría es requerida")
	}
	category, err := lk.CategoryByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("categoría no encontrada para el producto: %s", name)
	}

	// SKU repetido dentro del mismo archivo: fusionar sobre lo ya acumulado.
	if prev, ok := accumulated[sku]; ok {
		prev.Name = name
		prev.Price = price
		prev.StockQuantity += quantity
		prev.Description = row.Description
		prev.CategoryID = category.ID
		prev.UpdatedAt = now
		return prev, nil
	}

	existing, err := lk.ProductBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Name = name
		existing.Price = price
		existing.StockQuantity += quantity
		existing.Description = row.Description
		existing.CategoryID = category.ID
		existing.UpdatedAt = now
		return existing, nil
	}

	return &entity.Product{
		ID:            uuid.New().String(),
		SKU:           sku,
		Name:          name,
		Description:   row.Description,
		Price:         price,
		StockQuantity: quantity,
		CategoryID:    category.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// parseQuantity acepta enteros y la forma "3.0" con la que las hojas de
// cálculo exportan celdas numéricas.
func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
