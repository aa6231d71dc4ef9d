package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ImageStore puerto mínimo para guardar la imagen opcional de un producto.
// Lo implementa infrastructure/storage; la interfaz evita acoplar el caso de
// uso al disco.
type ImageStore interface {
	Save(filename, contentType string, data []byte) (string, error)
}

// ProductUseCase casos de uso CRUD para productos. El stock solo se modifica
// vía el ledger o el import masivo; aquí solo en el alta y en el patch explícito.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	images       ImageStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, images ImageStore) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, images: images}
}

// Create crea un producto; la categoría debe existir. La imagen es opcional
// (filename vacío = sin imagen) y debe tener content type image/*.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest, imageFilename, imageContentType string, imageData []byte) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	imagePath := ""
	if imageFilename != "" {
		imagePath, err = uc.images.Save(imageFilename, imageContentType, imageData)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		ImagePath:     imagePath,
		CategoryID:    category.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Update aplica un patch disperso: solo sobreescribe un campo si viene
// presente y no vacío (strings) o no negativo (números). Los campos ausentes
// quedan intactos.
func (uc *ProductUseCase) Update(in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = category.ID
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.SKU != "" {
		product.SKU = in.SKU
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Price != nil && !in.Price.IsNegative() {
		product.Price = *in.Price
	}
	if in.StockQuantity != nil && *in.StockQuantity >= 0 {
		product.StockQuantity = *in.StockQuantity
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista todos los productos, más reciente primero.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// Delete elimina un producto; falla con ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Summary conteo de productos por categoría y stock total disponible.
func (uc *ProductUseCase) Summary() (*dto.ProductSummaryResponse, error) {
	byCategory, totalStock, err := uc.repo.Summary()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(byCategory))
	for _, c := range byCategory {
		counts[c.CategoryName] = c.Count
	}
	return &dto.ProductSummaryResponse{
		TotalProductsByCategory: counts,
		TotalAvailableStock:     totalStock,
	}, nil
}

func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImagePath:     p.ImagePath,
		CategoryID:    p.CategoryID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
