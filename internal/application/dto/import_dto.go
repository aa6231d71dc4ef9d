package dto

// ImportLineError error de una fila del import masivo. Line es 1-based
// contando la fila de encabezado del archivo.
type ImportLineError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}
