package itemservice

import (
	"context"
	"fmt"
	"strings"

	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/validation"
)

// ItemRepository define o contrato de persistência do catálogo.
type ItemRepository interface {
	Create(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error)
	FindByID(ctx context.Context, id int64, includeDeleted bool) (domain.InventoryItem, error)
	Exists(ctx context.Context, id int64, includeDeleted bool) (bool, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.InventoryItem, int, error)
	Update(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (domain.InventoryItem, error)
	ListLowStock(ctx context.Context) ([]domain.LowStockItem, error)
}

// VendorChecker verifica o fornecedor principal do item.
type VendorChecker interface {
	Exists(ctx context.Context, id int64, includeDeleted bool) (bool, error)
}

// Service implementa o catálogo de itens.
type Service struct {
	repo    ItemRepository
	vendors VendorChecker
	logger  logger.Logger
}

// NewService cria o serviço do catálogo.
func NewService(repo ItemRepository, vendors VendorChecker, logger logger.Logger) *Service {
	return &Service{repo: repo, vendors: vendors, logger: logger}
}

// CreateItem valida o item e exige um fornecedor ativo.
func (s *Service) CreateItem(ctx context.Context, principal domain.Principal, item domain.InventoryItem) (domain.InventoryItem, error) {
	if err := authorize(principal); err != nil {
		return domain.InventoryItem{}, err
	}
	if err := s.validate(ctx, &item); err != nil {
		return domain.InventoryItem{}, err
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	s.logger.Info("Item criado no catálogo.", map[string]interface{}{"item_id": created.ID, "name": created.Name})
	return created, nil
}

// GetItem busca um item do catálogo.
func (s *Service) GetItem(ctx context.Context, id int64, includeDeleted bool) (domain.InventoryItem, error) {
	if id <= 0 {
		return domain.InventoryItem{}, apperror.NewValidationError("ID de item inválido.")
	}
	return s.repo.FindByID(ctx, id, includeDeleted)
}

// ListItems lista o catálogo.
func (s *Service) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.InventoryItem, int, error) {
	return s.repo.List(ctx, filter)
}

// UpdateItem altera um item ativo.
func (s *Service) UpdateItem(ctx context.Context, principal domain.Principal, id int64, item domain.InventoryItem) (domain.InventoryItem, error) {
	if err := authorize(principal); err != nil {
		return domain.InventoryItem{}, err
	}
	if id <= 0 {
		return domain.InventoryItem{}, apperror.NewValidationError("ID de item inválido.")
	}
	item.ID = id
	if err := s.validate(ctx, &item); err != nil {
		return domain.InventoryItem{}, err
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	s.logger.Info("Item atualizado.", map[string]interface{}{"item_id": id})
	return updated, nil
}

// SoftDeleteItem exclui logicamente o item.
func (s *Service) SoftDeleteItem(ctx context.Context, principal domain.Principal, id int64) error {
	if err := authorize(principal); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Item excluído.", map[string]interface{}{"item_id": id})
	return nil
}

// RestoreItem reativa o item.
func (s *Service) RestoreItem(ctx context.Context, principal domain.Principal, id int64) (domain.InventoryItem, error) {
	if err := authorize(principal); err != nil {
		return domain.InventoryItem{}, err
	}
	return s.repo.Restore(ctx, id)
}

// ItemExists informa se o item existe.
func (s *Service) ItemExists(ctx context.Context, id int64, includeDeleted bool) (bool, error) {
	return s.repo.Exists(ctx, id, includeDeleted)
}

// ListLowStockItems lista itens no nível de reposição ou abaixo.
func (s *Service) ListLowStockItems(ctx context.Context) ([]domain.LowStockItem, error) {
	return s.repo.ListLowStock(ctx)
}

func authorize(principal domain.Principal) error {
	if !principal.HasAnyRole(domain.CatalogManagerRoles...) {
		return apperror.NewForbiddenError("Alterar o catálogo exige papel admin ou pharmacist.")
	}
	return nil
}

func (s *Service) validate(ctx context.Context, item *domain.InventoryItem) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	item.IsDeleted = false

	if err := validation.Struct(*item); err != nil {
		return err
	}
	if item.PurchasePrice.IsNegative() || item.SellingPrice.IsNegative() {
		return apperror.NewValidationErrorWithFields("Preço inválido.", map[string]string{
			"purchasePrice": "preços não podem ser negativos",
		})
	}

	ok, err := s.vendors.Exists(ctx, item.VendorID, false)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidationErrorWithFields("Fornecedor inválido.", map[string]string{
			"vendorId": fmt.Sprintf("fornecedor %d não existe ou foi excluído", item.VendorID),
		})
	}
	return nil
}
