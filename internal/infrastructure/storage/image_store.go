// Package storage guarda imágenes de producto en disco local.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// ImageStore guarda imágenes bajo un directorio base. El nombre final lleva
// un prefijo UUID para evitar colisiones entre archivos con el mismo nombre.
type ImageStore struct {
	baseDir string
}

// NewImageStore crea el almacén sobre baseDir, creándolo si no existe.
func NewImageStore(baseDir string) (*ImageStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de imágenes: %w", err)
	}
	return &ImageStore{baseDir: baseDir}, nil
}

// Save valida el content type y escribe el archivo. Devuelve la ruta
// persistida, que es la que se guarda en el producto.
func (s *ImageStore) Save(filename, contentType string, data []byte) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.ErrInvalidInput
	}
	name := uuid.NewString() + "_" + filepath.Base(filename)
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	return path, nil
}
