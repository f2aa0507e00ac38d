package vendorservice

import (
	"context"
	"strings"

	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/validation"
)

// VendorRepository define o contrato que o Serviço de Fornecedores espera da camada de Persistência.
type VendorRepository interface {
	Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error)
	FindByID(ctx context.Context, id int64, includeDeleted bool) (domain.Vendor, error)
	Exists(ctx context.Context, id int64, includeDeleted bool) (bool, error)
	List(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, int, error)
	Update(ctx context.Context, v domain.Vendor) (domain.Vendor, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (domain.Vendor, error)
}

// Service implementa o registro de fornecedores.
type Service struct {
	repo   VendorRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Fornecedores.
func NewService(repo VendorRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateVendor valida e cria um fornecedor.
func (s *Service) CreateVendor(ctx context.Context, principal domain.Principal, v domain.Vendor) (domain.Vendor, error) {
	if err := authorize(principal); err != nil {
		return domain.Vendor{}, err
	}
	normalize(&v)
	if err := validation.Struct(v); err != nil {
		s.logger.Debug("Fornecedor rejeitado na validação.", map[string]interface{}{"name": v.Name})
		return domain.Vendor{}, err
	}
	return s.repo.Create(ctx, v)
}

// GetVendor busca um fornecedor.
func (s *Service) GetVendor(ctx context.Context, id int64, includeDeleted bool) (domain.Vendor, error) {
	if id <= 0 {
		return domain.Vendor{}, apperror.NewValidationError("ID de fornecedor inválido.")
	}
	return s.repo.FindByID(ctx, id, includeDeleted)
}

// ListVendors lista fornecedores com filtro por nome.
func (s *Service) ListVendors(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, int, error) {
	return s.repo.List(ctx, filter)
}

// UpdateVendor altera um fornecedor ativo.
func (s *Service) UpdateVendor(ctx context.Context, principal domain.Principal, id int64, v domain.Vendor) (domain.Vendor, error) {
	if err := authorize(principal); err != nil {
		return domain.Vendor{}, err
	}
	if id <= 0 {
		return domain.Vendor{}, apperror.NewValidationError("ID de fornecedor inválido.")
	}
	v.ID = id
	normalize(&v)
	if err := validation.Struct(v); err != nil {
		return domain.Vendor{}, err
	}

	updated, err := s.repo.Update(ctx, v)
	if err != nil {
		return domain.Vendor{}, err
	}
	s.logger.Info("Fornecedor atualizado.", map[string]interface{}{"vendor_id": id})
	return updated, nil
}

// SoftDeleteVendor exclui logicamente o fornecedor. Itens e lotes que o referenciam permanecem.
func (s *Service) SoftDeleteVendor(ctx context.Context, principal domain.Principal, id int64) error {
	if err := authorize(principal); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Fornecedor excluído.", map[string]interface{}{"vendor_id": id})
	return nil
}

// RestoreVendor reativa o fornecedor.
func (s *Service) RestoreVendor(ctx context.Context, principal domain.Principal, id int64) (domain.Vendor, error) {
	if err := authorize(principal); err != nil {
		return domain.Vendor{}, err
	}
	return s.repo.Restore(ctx, id)
}

// VendorExists informa se o fornecedor existe.
func (s *Service) VendorExists(ctx context.Context, id int64, includeDeleted bool) (bool, error) {
	return s.repo.Exists(ctx, id, includeDeleted)
}

// authorize restringe alterações no cadastro de fornecedores a admin e pharmacist.
func authorize(principal domain.Principal) error {
	if !principal.HasAnyRole(domain.CatalogManagerRoles...) {
		return apperror.NewForbiddenError("Alterar fornecedores exige papel admin ou pharmacist.")
	}
	return nil
}

func normalize(v *domain.Vendor) {
	v.Name = strings.TrimSpace(v.Name)
	v.Email = strings.TrimSpace(strings.ToLower(v.Email))
	v.IsDeleted = false
}
