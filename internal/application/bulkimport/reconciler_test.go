package bulkimport_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/bulkimport"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const categoryID = "00000000-0000-0000-0000-0000000000c1"

func lookupsWith(existing ...*entity.Product) bulkimport.Lookups {
	bySKU := make(map[string]*entity.Product)
	for _, p := range existing {
		bySKU[p.SKU] = p
	}
	return bulkimport.Lookups{
		CategoryByID: func(id string) (*entity.Category, error) {
			if id == categoryID {
				return &entity.Category{ID: categoryID, Name: "Herramientas"}, nil
			}
			return nil, nil
		},
		ProductBySKU: func(sku string) (*entity.Product, error) {
			if p, ok := bySKU[sku]; ok {
				cp := *p
				return &cp, nil
			}
			return nil, nil
		},
	}
}

func validRow(line int, sku string) bulkimport.Row {
	return bulkimport.Row{
		Line:          line,
		Name:          "Producto " + sku,
		SKU:           sku,
		Price:         "19.90",
		StockQuantity: "5",
		Description:   "desc",
		CategoryID:    categoryID,
	}
}

func TestReconcile_FilasValidasCreanProductos(t *testing.T) {
	rows := []bulkimport.Row{validRow(2, "A-1"), validRow(3, "A-2")}

	result, err := bulkimport.Reconcile(rows, lookupsWith())
	require.NoError(t, err)

	assert.Len(t, result.Products, 2)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.Processed)

	p := result.Products[0]
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "A-1", p.SKU)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("19.90")))
	assert.Equal(t, 5, p.StockQuantity)
	assert.Equal(t, categoryID, p.CategoryID)
}

func TestReconcile_FilaInvalidaNoAbortaElArchivo(t *testing.T) {
	rows := []bulkimport.Row{
		validRow(2, "A-1"),
		{Line: 3, Name: "", SKU: "A-2", Price: "10", StockQuantity: "1", CategoryID: categoryID},
		{Line: 4, Name: "Sin SKU", SKU: "", Price: "10", StockQuantity: "1", CategoryID: categoryID},
		validRow(5, "A-3"),
	}

	result, err := bulkimport.Reconcile(rows, lookupsWith())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Len(t, result.Products, 2)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Line)
	assert.Contains(t, result.Errors[0].Message, "nombre")
	assert.Equal(t, 4, result.Errors[1].Line)
	assert.Contains(t, result.Errors[1].Message, "SKU")
}

func TestReconcile_PrecioYCantidadInvalidos(t *testing.T) {
	rows := []bulkimport.Row{
		{Line: 2, Name: "P", SKU: "A-1", Price: "abc", StockQuantity: "1", CategoryID: categoryID},
		{Line: 3, Name: "P", SKU: "A-2", Price: "-5", StockQuantity: "1", CategoryID: categoryID},
		{Line: 4, Name: "P", SKU: "A-3", Price: "10", StockQuantity: "muchos", CategoryID: categoryID},
	}

	result, err := bulkimport.Reconcile(rows, lookupsWith())
	require.NoError(t, err)

	assert.Empty(t, result.Products)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0].Message, "precio inválido")
	assert.Contains(t, result.Errors[1].Message, "precio inválido")
	assert.Contains(t, result.Errors[2].Message, "cantidad inválida")
}

func TestReconcile_CantidadEnFormaDecimalSeAcepta(t *testing.T) {
	row := validRow(2, "A-1")
	row.StockQuantity = "3.0"

	result, err := bulkimport.Reconcile([]bulkimport.Row{row}, lookupsWith())
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, 3, result.Products[0].StockQuantity)
}

func TestReconcile_CategoriaFaltanteODesconocida(t *testing.T) {
	rows := []bulkimport.Row{
		{Line: 2, Name: "P", SKU: "A-1", Price: "10", StockQuantity: "1", CategoryID: ""},
		{Line: 3, Name: "Taladro", SKU: "A-2", Price: "10", StockQuantity: "1", CategoryID: "otra"},
	}

	result, err := bulkimport.Reconcile(rows, lookupsWith())
	require.NoError(t, err)

	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0].Message, "la categoría es requerida")
	assert.Contains(t, result.Errors[1].Message, "categoría no encontrada para el producto: Taladro")
}

func TestReconcile_SKUExistente_IncrementaStockYSobreescribeDatos(t *testing.T) {
	now := time.Now().Add(-24 * time.Hour)
	existing := &entity.Product{
		ID:            "prod-1",
		SKU:           "A-1",
		Name:          "Nombre viejo",
		Price:         decimal.NewFromInt(5),
		StockQuantity: 7,
		CategoryID:    categoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := bulkimport.Reconcile([]bulkimport.Row{validRow(2, "A-1")}, lookupsWith(existing))
	require.NoError(t, err)

	require.Len(t, result.Products, 1)
	p := result.Products[0]
	assert.Equal(t, "prod-1", p.ID, "debe reutilizarse el producto existente")
	assert.Equal(t, "Producto A-1", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("19.90")))
	assert.Equal(t, 12, p.StockQuantity, "el stock se incrementa, no se reemplaza")
}

func TestReconcile_ReEjecucionDuplicaElStock(t *testing.T) {
	// Importar dos veces el mismo archivo contra el catálogo resultante de la
	// primera pasada vuelve a sumar el stock: la semántica es de reposición.
	rows := []bulkimport.Row{validRow(2, "A-1")}

	first, err := bulkimport.Reconcile(rows, lookupsWith())
	require.NoError(t, err)
	require.Len(t, first.Products, 1)
	require.Equal(t, 5, first.Products[0].StockQuantity)

	second, err := bulkimport.Reconcile(rows, lookupsWith(first.Products[0]))
	require.NoError(t, err)
	require.Len(t, second.Products, 1)
	assert.Equal(t, 10, second.Products[0].StockQuantity)
}

func TestReconcile_SKURepetidoEnElArchivo_SeFusiona(t *testing.T) {
	rowA := validRow(2, "A-1")
	rowB := validRow(3, "A-1")
	rowB.Name = "Nombre final"

	result, err := bulkimport.Reconcile([]bulkimport.Row{rowA, rowB}, lookupsWith())
	require.NoError(t, err)

	require.Len(t, result.Products, 1, "un solo producto por SKU")
	assert.Equal(t, 2, result.Processed, "ambas filas cuentan como procesadas")
	assert.Equal(t, 10, result.Products[0].StockQuantity, "las cantidades se suman")
	assert.Equal(t, "Nombre final", result.Products[0].Name, "la última fila gana los datos")
}

func TestReconcile_ArchivoVacio(t *testing.T) {
	result, err := bulkimport.Reconcile(nil, lookupsWith())
	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 0, result.Processed)
}
