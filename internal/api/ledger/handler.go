package ledger

import (
	"context"
	"net/http"

	"clinicstock/internal/api/params"
	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/middleware"
	"clinicstock/internal/pkg/response"
	"clinicstock/internal/pkg/validation"
)

// LedgerService define o contrato que o Handler espera da camada de Serviço.
type LedgerService interface {
	RecordMovement(ctx context.Context, principal domain.Principal, req domain.MovementRequest) (domain.MovementResult, error)
	GetTransaction(ctx context.Context, id int64) (domain.TransactionView, error)
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionView, int, error)
	ReconcileBatch(ctx context.Context, batchID int64) (domain.BatchReconciliation, error)
}

// Handler agrupa os handlers do ledger.
type Handler struct {
	Service LedgerService
	Logger  logger.Logger
}

// NewHandler cria o handler do ledger.
func NewHandler(svc LedgerService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// RecordMovementHandler godoc
// @Summary      Registra uma movimentação de estoque
// @Description  IN soma, OUT subtrai e ADJUSTMENT aplica um delta com sinal. O lote nunca fica negativo.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        movement  body      domain.MovementRequest  true  "Movimentação"
// @Success      201       {object}  domain.MovementResult
// @Failure      400       {object}  domain.ErrorResponse
// @Failure      403       {object}  domain.ErrorResponse
// @Failure      404       {object}  domain.ErrorResponse
// @Failure      409       {object}  domain.ErrorResponse
// @Failure      422       {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/movements [post]
func (h *Handler) RecordMovementHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Autorização necessária."))
		return
	}

	var req domain.MovementRequest
	if err := params.DecodeJSON(r, &req, true); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	h.Logger.Debug("Movimentação recebida.", map[string]interface{}{
		"batch_id":         req.BatchID,
		"transaction_type": req.TransactionType,
		"user_id":          principal.UserID,
		"request_id":       middleware.RequestIDFromContext(r.Context()),
	})

	result, err := h.Service.RecordMovement(r.Context(), principal, req)
	response.Handle(w, r, h.Logger, result, err, http.StatusCreated)
}

// GetTransactionHandler godoc
// @Summary      Busca uma transação do ledger
// @Tags         ledger
// @Produce      json
// @Param        id   path      int  true  "ID da transação"
// @Success      200  {object}  domain.TransactionView
// @Failure      404  {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/transactions/{id} [get]
func (h *Handler) GetTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	view, err := h.Service.GetTransaction(r.Context(), id)
	response.Handle(w, r, h.Logger, view, err, http.StatusOK)
}

// ListTransactionsHandler godoc
// @Summary      Lista transações do ledger
// @Description  Aceita no máximo um escopo: batchId, staffId ou patientId.
// @Tags         ledger
// @Produce      json
// @Param        batchId    query     int  false  "Lote"
// @Param        staffId    query     int  false  "Funcionário"
// @Param        patientId  query     int  false  "Paciente"
// @Param        page       query     int  false  "Página"
// @Param        limit      query     int  false  "Itens por página"
// @Success      200        {object}  params.ListResponse
// @Failure      400        {object}  domain.ErrorResponse
// @Failure      404        {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/transactions [get]
func (h *Handler) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	views, total, err := h.Service.ListTransactions(r.Context(), filter)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	page, limit := domain.Pagination(filter.Page, filter.Limit)
	response.JSON(w, h.Logger, http.StatusOK, params.ListResponse{
		Data:       views,
		Pagination: params.Page{Page: page, Limit: limit, Total: total},
	})
}

// ReconcileBatchHandler godoc
// @Summary      Reconcilia o saldo do lote com o ledger
// @Tags         ledger
// @Produce      json
// @Param        id   path      int  true  "ID do lote"
// @Success      200  {object}  domain.BatchReconciliation
// @Failure      404  {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/batches/{id}/reconcile [get]
func (h *Handler) ReconcileBatchHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	rec, err := h.Service.ReconcileBatch(r.Context(), id)
	response.Handle(w, r, h.Logger, rec, err, http.StatusOK)
}

func parseFilter(r *http.Request) (domain.TransactionFilter, error) {
	var (
		filter domain.TransactionFilter
		err    error
	)
	if filter.BatchID, err = params.OptionalID(r, "batchId"); err != nil {
		return filter, err
	}
	if filter.StaffID, err = params.OptionalID(r, "staffId"); err != nil {
		return filter, err
	}
	if filter.PatientID, err = params.OptionalID(r, "patientId"); err != nil {
		return filter, err
	}
	if filter.Page, filter.Limit, err = params.Paging(r); err != nil {
		return filter, err
	}
	return filter, nil
}
