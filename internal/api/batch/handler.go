package batch

import (
	"context"
	"net/http"

	"clinicstock/internal/api/params"
	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/middleware"
	"clinicstock/internal/pkg/response"
)

// BatchService define o contrato que o Handler espera da camada de Serviço.
type BatchService interface {
	CreateBatch(ctx context.Context, principal domain.Principal, req domain.BatchCreateRequest) (domain.ItemBatch, error)
	GetBatch(ctx context.Context, id int64, includeDeleted bool) (domain.BatchView, error)
	ListBatchesByItem(ctx context.Context, itemID int64, includeDeleted bool) ([]domain.BatchView, error)
	UpdateBatch(ctx context.Context, principal domain.Principal, id int64, req domain.BatchUpdateRequest) (domain.ItemBatch, error)
	DeleteBatch(ctx context.Context, principal domain.Principal, id int64) error
	ListExpiringBatches(ctx context.Context, days int) ([]domain.BatchView, error)
}

type Handler struct {
	Service BatchService
	Logger  logger.Logger
}

func NewHandler(svc BatchService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Autorização necessária."))
	}
	return p, ok
}

// CreateBatchHandler godoc
// @Summary      Registra um lote recebido
// @Description  Quantidade inicial positiva gera uma transação IN com a nota "Estoque inicial".
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        batch  body      domain.BatchCreateRequest  true  "Lote"
// @Success      201    {object}  domain.ItemBatch
// @Failure      400    {object}  domain.ErrorResponse
// @Failure      409    {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/batches [post]
func (h *Handler) CreateBatchHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req domain.BatchCreateRequest
	if err := params.DecodeJSON(r, &req, false); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	created, err := h.Service.CreateBatch(r.Context(), principal, req)
	response.Handle(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetBatchHandler godoc
// @Summary      Busca um lote
// @Tags         batches
// @Produce      json
// @Param        id              path      int   true   "ID do lote"
// @Param        includeDeleted  query     bool  false  "Exibe item e fornecedor excluídos"
// @Success      200             {object}  domain.BatchView
// @Failure      404             {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/batches/{id} [get]
func (h *Handler) GetBatchHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	view, err := h.Service.GetBatch(r.Context(), id, params.Bool(r, "includeDeleted"))
	response.Handle(w, r, h.Logger, view, err, http.StatusOK)
}

// ListByItemHandler godoc
// @Summary      Lista os lotes de um item
// @Tags         batches
// @Produce      json
// @Param        id              path      int   true   "ID do item"
// @Param        includeDeleted  query     bool  false  "Inclui relações excluídas"
// @Success      200             {array}   domain.BatchView
// @Failure      404             {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/items/{id}/batches [get]
func (h *Handler) ListByItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	views, err := h.Service.ListBatchesByItem(r.Context(), id, params.Bool(r, "includeDeleted"))
	response.Handle(w, r, h.Logger, views, err, http.StatusOK)
}

// UpdateBatchHandler godoc
// @Summary      Atualiza os metadados de um lote
// @Description  A quantidade só muda através de movimentações; o campo é rejeitado aqui.
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        id     path      int                        true  "ID do lote"
// @Param        batch  body      domain.BatchUpdateRequest  true  "Metadados"
// @Success      200    {object}  domain.ItemBatch
// @Failure      400    {object}  domain.ErrorResponse
// @Failure      404    {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/batches/{id} [put]
func (h *Handler) UpdateBatchHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, err := params.ID(r, "id")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	var req domain.BatchUpdateRequest
	if err := params.DecodeJSON(r, &req, true); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	updated, err := h.Service.UpdateBatch(r.Context(), principal, id, req)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteBatchHandler godoc
// @Summary      Remove um lote sem histórico
// @Tags         batches
// @Param        id   path  int  true  "ID do lote"
// @Success      204
// @Failure      409  {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/batches/{id} [delete]
func (h *Handler) DeleteBatchHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, err := params.ID(r, "id")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	if err := h.Service.DeleteBatch(r.Context(), principal, id); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListExpiringHandler godoc
// @Summary      Lista lotes com estoque que vencem nos próximos dias
// @Tags         batches
// @Produce      json
// @Param        days  query     int  false  "Janela em dias (padrão 30)"
// @Success      200   {array}   domain.BatchView
// @Failure      400   {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/batches/expiring [get]
func (h *Handler) ListExpiringHandler(w http.ResponseWriter, r *http.Request) {
	days, err := params.Int(r, "days", 0)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	views, err := h.Service.ListExpiringBatches(r.Context(), days)
	response.Handle(w, r, h.Logger, views, err, http.StatusOK)
}
