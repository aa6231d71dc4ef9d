package dto

// Response es el sobre uniforme de todas las respuestas de la API:
// status + message siempre presentes, más un campo de payload opcional
// según el endpoint. Los campos ausentes no se serializan.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`

	Product      *ProductResponse      `json:"product,omitempty"`
	Products     []ProductResponse     `json:"products,omitempty"`
	Category     *CategoryResponse     `json:"category,omitempty"`
	Categories   []CategoryResponse    `json:"categories,omitempty"`
	Supplier     *SupplierResponse     `json:"supplier,omitempty"`
	Suppliers    []SupplierResponse    `json:"suppliers,omitempty"`
	Transaction  *TransactionResponse  `json:"transaction,omitempty"`
	Transactions []TransactionResponse `json:"transactions,omitempty"`
	User         *UserResponse         `json:"user,omitempty"`
	Users        []UserResponse        `json:"users,omitempty"`

	Summary *ProductSummaryResponse `json:"summary,omitempty"`

	// Login
	Token          string `json:"token,omitempty"`
	Role           string `json:"role,omitempty"`
	ExpirationTime string `json:"expirationTime,omitempty"`

	// Import masivo
	Errors []ImportLineError `json:"errors,omitempty"`

	// Listados paginados
	TotalElements int64 `json:"totalElements,omitempty"`
}

// OK construye un sobre de éxito sin payload.
func OK(message string) Response {
	return Response{Status: 200, Message: message}
}

// Error construye un sobre de error con el status HTTP dado.
func Error(status int, message string) Response {
	return Response{Status: status, Message: message}
}
