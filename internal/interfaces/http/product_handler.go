package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/bulkimport"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/excel"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	importUC *bulkimport.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, importUC *bulkimport.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc, importUC: importUC}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name           formData  string  true   "Nombre"
// @Param        sku            formData  string  true   "SKU"
// @Param        price          formData  number  true   "Precio"
// @Param        stockQuantity  formData  int     true   "Stock inicial"
// @Param        categoryId     formData  string  true   "ID de categoría"
// @Param        description    formData  string  false  "Descripción"
// @Param        imageFile      formData  file    false  "Imagen del producto"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/products/add [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "cuerpo inválido"))
	}

	var filename, contentType string
	var data []byte
	if fh, err := c.FormFile("imageFile"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "no se pudo leer la imagen"))
		}
		data, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "no se pudo leer la imagen"))
		}
		filename = fh.Filename
		contentType = fh.Header.Get("Content-Type")
	}

	out, err := h.uc.Create(in, filename, contentType, data)
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Producto creado exitosamente")
	resp.Product = out
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar producto (patch disperso)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/products/update [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "cuerpo inválido"))
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "productId es requerido"))
	}
	out, err := h.uc.Update(in)
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Producto actualizado exitosamente")
	resp.Product = out
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/products/all [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Productos obtenidos")
	resp.Products = out
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Producto obtenido")
	resp.Product = out
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/products/delete/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return failWith(c, err)
	}
	return c.JSON(dto.OK("Producto eliminado exitosamente"))
}

// Summary godoc
// @Summary      Resumen de inventario
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/products/summary [get]
func (h *ProductHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary()
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Resumen de inventario")
	resp.Summary = out
	return c.JSON(resp)
}

// BulkImport godoc
// @Summary      Importar productos desde Excel
// @Description  Upsert por SKU: filas nuevas crean producto, filas existentes
// @Description  actualizan datos e incrementan stock. Las filas inválidas se
// @Description  reportan por línea sin abortar el archivo.
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .xlsx"
// @Success      200   {object}  dto.Response
// @Success      207   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/products/bulk-excel [post]
func (h *ProductHandler) BulkImport(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "archivo requerido en el campo file"))
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "no se pudo abrir el archivo"))
	}
	defer f.Close()

	rows, err := excel.ReadProductSheet(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "archivo excel inválido"))
	}

	result, err := h.importUC.Import(c.Context(), rows)
	if err != nil {
		return failWith(c, err)
	}

	status := fiber.StatusOK
	message := fmt.Sprintf("%d productos procesados exitosamente", result.Processed)
	if len(result.Errors) > 0 {
		status = fiber.StatusMultiStatus
		message += ". Algunos productos fallaron."
	}
	resp := dto.Response{
		Status:  status,
		Message: message,
	}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, dto.ImportLineError{Line: e.Line, Message: e.Message})
	}
	return c.Status(status).JSON(resp)
}
