package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionHandler maneja las operaciones del ledger de stock (protegido).
type TransactionHandler struct {
	uc *ledger.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *ledger.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Purchase godoc
// @Summary      Registrar compra a proveedor
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "Producto, cantidad y proveedor"
// @Success      200   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/transactions/purchase [post]
func (h *TransactionHandler) Purchase(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "cuerpo inválido"))
	}
	tx, err := h.uc.Restock(c.Context(), GetUserID(c), in)
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Compra registrada exitosamente")
	resp.Transaction = usecase.ToTransactionResponse(tx)
	return c.JSON(resp)
}

// Sell godoc
// @Summary      Registrar venta
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/transactions/sell [post]
func (h *TransactionHandler) Sell(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "cuerpo inválido"))
	}
	tx, err := h.uc.Sell(c.Context(), GetUserID(c), in)
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Venta registrada exitosamente")
	resp.Transaction = usecase.ToTransactionResponse(tx)
	return c.JSON(resp)
}

// ReturnToSupplier godoc
// @Summary      Registrar devolución a proveedor
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "Producto, cantidad y proveedor"
// @Success      200   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/transactions/return [post]
func (h *TransactionHandler) ReturnToSupplier(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "cuerpo inválido"))
	}
	tx, err := h.uc.ReturnToSupplier(c.Context(), GetUserID(c), in)
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Devolución a proveedor registrada exitosamente")
	resp.Transaction = usecase.ToTransactionResponse(tx)
	return c.JSON(resp)
}

// ReturnSale godoc
// @Summary      Revertir una venta
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        saleId  path  string                  true   "ID de la venta original"
// @Param        body    body  dto.TransactionRequest  false  "Descripción opcional"
// @Success      200     {object}  dto.Response
// @Failure      400     {object}  dto.Response
// @Failure      404     {object}  dto.Response
// @Router       /api/transactions/return-sale/{saleId} [post]
func (h *TransactionHandler) ReturnSale(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "cuerpo inválido"))
		}
	}
	tx, err := h.uc.ReturnSale(c.Context(), GetUserID(c), c.Params("saleId"), in)
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Devolución de venta registrada exitosamente")
	resp.Transaction = usecase.ToTransactionResponse(tx)
	return c.JSON(resp)
}

// Search godoc
// @Summary      Listar transacciones (paginado con búsqueda de texto)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página (base 0)"
// @Param        size        query  int     false  "Tamaño de página"  default(1000)
// @Param        searchText  query  string  false  "Texto a buscar"
// @Success      200  {object}  dto.Response
// @Router       /api/transactions/all [get]
func (h *TransactionHandler) Search(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 1000)
	searchText := c.Query("searchText")
	list, total, err := h.uc.Search(c.Context(), searchText, page, size)
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Transacciones obtenidas")
	resp.Transactions = toTransactionResponses(list)
	resp.TotalElements = total
	return c.JSON(resp)
}

// ByMonthAndYear godoc
// @Summary      Listar transacciones por mes y año
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  true  "Mes (1-12)"
// @Param        year   query  int  true  "Año"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /api/transactions/by-month-year [get]
func (h *TransactionHandler) ByMonthAndYear(c *fiber.Ctx) error {
	month := c.QueryInt("month")
	year := c.QueryInt("year")
	list, err := h.uc.ListByMonthAndYear(c.Context(), month, year)
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Transacciones obtenidas")
	resp.Transactions = toTransactionResponses(list)
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener transacción por ID (con producto, usuario y proveedor)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	detail, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return failWith(c, err)
	}
	out := usecase.ToTransactionResponse(detail.Transaction)
	out.Product = usecase.ToProductResponse(detail.Product)
	out.Supplier = usecase.ToSupplierResponse(detail.Supplier)
	out.User = usecase.ToUserResponse(detail.User)
	resp := dto.OK("Transacción obtenida")
	resp.Transaction = out
	return c.JSON(resp)
}

// UpdateStatus godoc
// @Summary      Cambiar el estado de una transacción
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                             true  "ID de la transacción"
// @Param        body  body  dto.UpdateTransactionStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/transactions/update/{id} [put]
func (h *TransactionHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateTransactionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "cuerpo inválido"))
	}
	if err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return failWith(c, err)
	}
	return c.JSON(dto.OK("Estado actualizado exitosamente"))
}

func toTransactionResponses(list []*entity.Transaction) []dto.TransactionResponse {
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *usecase.ToTransactionResponse(t))
	}
	return items
}
