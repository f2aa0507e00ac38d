package batchservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/validation"
)

// DefaultExpiringDays é a janela padrão da consulta de lotes a vencer.
const DefaultExpiringDays = 30

// BatchRepository define o contrato de persistência de lotes.
type BatchRepository interface {
	Create(ctx context.Context, b domain.ItemBatch, staffID *int64) (domain.ItemBatch, error)
	FindView(ctx context.Context, id int64) (domain.BatchView, error)
	ListByItem(ctx context.Context, itemID int64) ([]domain.BatchView, error)
	ListExpiring(ctx context.Context, until time.Time) ([]domain.BatchView, error)
	Update(ctx context.Context, id int64, req domain.BatchUpdateRequest) (domain.ItemBatch, error)
	Delete(ctx context.Context, id int64) error
}

// ExistenceChecker verifica item ou fornecedor referenciado.
type ExistenceChecker interface {
	Exists(ctx context.Context, id int64, includeDeleted bool) (bool, error)
}

// StaffChecker verifica o funcionário que recebeu o lote.
type StaffChecker interface {
	StaffExists(ctx context.Context, id int64, includeDeleted bool) (bool, error)
}

// Service implementa o cadastro de lotes.
type Service struct {
	repo    BatchRepository
	items   ExistenceChecker
	vendors ExistenceChecker
	staff   StaffChecker
	logger  logger.Logger
	now     func() time.Time
}

// NewService cria o serviço de lotes.
func NewService(repo BatchRepository, items, vendors ExistenceChecker, staff StaffChecker, logger logger.Logger) *Service {
	return &Service{repo: repo, items: items, vendors: vendors, staff: staff, logger: logger, now: time.Now}
}

// CreateBatch registra um lote recebido. Quantidade inicial positiva gera a
// transação IN correspondente na mesma transação do banco.
func (s *Service) CreateBatch(ctx context.Context, principal domain.Principal, req domain.BatchCreateRequest) (domain.ItemBatch, error) {
	if !principal.HasAnyRole(domain.CatalogManagerRoles...) {
		return domain.ItemBatch{}, apperror.NewForbiddenError("Cadastro de lotes exige papel admin ou pharmacist.")
	}

	req.BatchNumber = strings.TrimSpace(req.BatchNumber)
	if err := validation.Struct(req); err != nil {
		return domain.ItemBatch{}, err
	}

	received := s.now().UTC()
	if req.ReceivedDate != nil {
		received = *req.ReceivedDate
	}
	if err := checkDatesAndCost(req.ExpirationDate, received, req.CostPerUnit.IsNegative()); err != nil {
		return domain.ItemBatch{}, err
	}

	if err := s.mustExist(ctx, s.items, req.ItemID, "itemId", "item"); err != nil {
		return domain.ItemBatch{}, err
	}
	if req.VendorID != nil {
		if err := s.mustExist(ctx, s.vendors, *req.VendorID, "vendorId", "fornecedor"); err != nil {
			return domain.ItemBatch{}, err
		}
	}

	staffID := req.StaffID
	if staffID == nil {
		staffID = principal.StaffID
	}
	if staffID != nil && req.InitialQuantity > 0 {
		ok, err := s.staff.StaffExists(ctx, *staffID, false)
		if err != nil {
			return domain.ItemBatch{}, err
		}
		if !ok {
			return domain.ItemBatch{}, apperror.NewValidationErrorWithFields("Funcionário inválido.",
				map[string]string{"staffId": fmt.Sprintf("funcionário %d não existe ou foi excluído", *staffID)})
		}
	}

	itemID := req.ItemID
	batch := domain.ItemBatch{
		ItemID:         &itemID,
		BatchNumber:    req.BatchNumber,
		Quantity:       req.InitialQuantity,
		ExpirationDate: req.ExpirationDate,
		ReceivedDate:   received,
		CostPerUnit:    req.CostPerUnit,
		VendorID:       req.VendorID,
	}

	created, err := s.repo.Create(ctx, batch, staffID)
	if err != nil {
		return domain.ItemBatch{}, err
	}
	s.logger.Info("Lote registrado.", map[string]interface{}{
		"batch_id": created.ID,
		"item_id":  req.ItemID,
		"quantity": created.Quantity,
		"user_id":  principal.UserID,
	})
	return created, nil
}

// GetBatch busca o lote. Item e fornecedor excluídos são ocultados salvo includeDeleted.
func (s *Service) GetBatch(ctx context.Context, id int64, includeDeleted bool) (domain.BatchView, error) {
	if id <= 0 {
		return domain.BatchView{}, apperror.NewValidationError("ID de lote inválido.")
	}
	view, err := s.repo.FindView(ctx, id)
	if err != nil {
		return domain.BatchView{}, err
	}
	if !includeDeleted {
		view.HideDeletedRelations()
	}
	return view, nil
}

// ListBatchesByItem lista os lotes do item.
func (s *Service) ListBatchesByItem(ctx context.Context, itemID int64, includeDeleted bool) ([]domain.BatchView, error) {
	ok, err := s.items.Exists(ctx, itemID, includeDeleted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Item com ID %d não existe.", itemID))
	}

	views, err := s.repo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !includeDeleted {
		for i := range views {
			views[i].HideDeletedRelations()
		}
	}
	return views, nil
}

// UpdateBatch altera os campos descritivos do lote; o saldo não é tocado.
func (s *Service) UpdateBatch(ctx context.Context, principal domain.Principal, id int64, req domain.BatchUpdateRequest) (domain.ItemBatch, error) {
	if !principal.HasAnyRole(domain.CatalogManagerRoles...) {
		return domain.ItemBatch{}, apperror.NewForbiddenError("Alteração de lotes exige papel admin ou pharmacist.")
	}

	req.BatchNumber = strings.TrimSpace(req.BatchNumber)
	if err := validation.Struct(req); err != nil {
		return domain.ItemBatch{}, err
	}
	if err := checkDatesAndCost(req.ExpirationDate, req.ReceivedDate, req.CostPerUnit.IsNegative()); err != nil {
		return domain.ItemBatch{}, err
	}
	if req.VendorID != nil {
		if err := s.mustExist(ctx, s.vendors, *req.VendorID, "vendorId", "fornecedor"); err != nil {
			return domain.ItemBatch{}, err
		}
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return domain.ItemBatch{}, err
	}
	s.logger.Info("Lote atualizado.", map[string]interface{}{"batch_id": id, "user_id": principal.UserID})
	return updated, nil
}

// DeleteBatch remove um lote sem histórico.
func (s *Service) DeleteBatch(ctx context.Context, principal domain.Principal, id int64) error {
	if !principal.HasAnyRole(domain.BatchRemoverRoles...) {
		return apperror.NewForbiddenError("Exclusão de lotes exige papel admin.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Lote excluído.", map[string]interface{}{"batch_id": id, "user_id": principal.UserID})
	return nil
}

// ListExpiringBatches lista lotes com saldo que vencem nos próximos days dias.
func (s *Service) ListExpiringBatches(ctx context.Context, days int) ([]domain.BatchView, error) {
	if days <= 0 {
		days = DefaultExpiringDays
	}
	if days > 3650 {
		return nil, apperror.NewValidationError("O parâmetro days deve ser no máximo 3650.")
	}

	views, err := s.repo.ListExpiring(ctx, s.now().AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].HideDeletedRelations()
	}
	return views, nil
}

func (s *Service) mustExist(ctx context.Context, checker ExistenceChecker, id int64, field, label string) error {
	ok, err := checker.Exists(ctx, id, false)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidationErrorWithFields(fmt.Sprintf("Referência inválida: %s.", label),
			map[string]string{field: fmt.Sprintf("%s %d não existe ou foi excluído", label, id)})
	}
	return nil
}

func checkDatesAndCost(expiration *time.Time, received time.Time, negativeCost bool) error {
	fields := map[string]string{}
	if expiration != nil && expiration.Before(received) {
		fields["expirationDate"] = "não pode ser anterior à data de recebimento"
	}
	if negativeCost {
		fields["costPerUnit"] = "não pode ser negativo"
	}
	if len(fields) > 0 {
		return apperror.NewValidationErrorWithFields("Payload inválido.", fields)
	}
	return nil
}
