package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (el registro y el login viven en
// application/auth). Las transacciones de un usuario se consultan por FK,
// nunca como colección anidada en el usuario.
type UserUseCase struct {
	repo            repository.UserRepository
	transactionRepo repository.TransactionRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, transactionRepo repository.TransactionRepository) *UserUseCase {
	return &UserUseCase{repo: repo, transactionRepo: transactionRepo}
}

// List lista todos los usuarios, más reciente primero. Nunca incluye hashes.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return items, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// Update aplica un patch disperso; si viene password se vuelve a hashear.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.Role != "" {
		if !entity.ValidRole(in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = in.Role
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Delete elimina un usuario; falla con ErrUserNotFound si no existe.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(id)
}

// GetWithTransactions devuelve el usuario con sus transacciones (filas planas,
// sin usuario ni proveedor anidados).
func (uc *UserUseCase) GetWithTransactions(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	transactions, err := uc.transactionRepo.ListByUser(id)
	if err != nil {
		return nil, err
	}
	out := ToUserResponse(user)
	out.Transactions = make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out.Transactions = append(out.Transactions, *ToTransactionResponse(tx))
	}
	return out, nil
}

// ToUserResponse mapea un usuario al DTO de salida, sin el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToTransactionResponse mapea una transacción a su DTO plano (sin relaciones).
func ToTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	if t == nil {
		return nil
	}
	out := &dto.TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Status:        t.Status,
		TotalProducts: t.TotalProducts,
		TotalPrice:    t.TotalPrice,
		Description:   t.Description,
		ProductID:     t.ProductID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.OriginalSaleID != nil {
		out.OriginalSaleID = *t.OriginalSaleID
	}
	return out
}
