package item

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

// ItemService define o contrato que o Handler espera da camada de Serviço.
type ItemService interface {
	CreateItem(ctx context.Context, principal domain.Principal, item domain.InventoryItem) (domain.InventoryItem, error)
	GetItem(ctx context.Context, id int64, includeDeleted bool) (domain.InventoryItem, error)
	ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.InventoryItem, int, error)
	UpdateItem(ctx context.Context, principal domain.Principal, id int64, item domain.InventoryItem) (domain.InventoryItem, error)
	SoftDeleteItem(ctx context.Context, principal domain.Principal, id int64) error
	RestoreItem(ctx context.Context, principal domain.Principal, id int64) (domain.InventoryItem, error)
	ListLowStockItems(ctx context.Context) ([]domain.LowStockItem, error)
}

// Handler agrupa os handlers do catálogo de itens.
type Handler struct {
	Service ItemService
	Logger  logger.Logger
}

// NewHandler cria o handler de itens.
func NewHandler(svc ItemService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Autorização necessária."))
	}
	return p, ok
}

// CreateItemHandler godoc
// @Summary      Cria um item no catálogo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        item  body      domain.InventoryItem  true  "Item"
// @Success      201   {object}  domain.InventoryItem
// @Failure      400   {object}  domain.ErrorResponse
// @Failure      403   {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/items [post]
func (h *Handler) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var item domain.InventoryItem
	if err := params.DecodeJSON(r, &item, false); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	created, err := h.Service.CreateItem(r.Context(), principal, item)
	response.Handle(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetItemHandler godoc
// @Summary      Busca um item
// @Tags         items
// @Produce      json
// @Param        id              path      int   true   "ID do item"
// @Param        includeDeleted  query     bool  false  "Inclui itens excluídos"
// @Success      200             {object}  domain.InventoryItem
// @Failure      404             {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/items/{id} [get]
func (h *Handler) GetItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	item, err := h.Service.GetItem(r.Context(), id, params.Bool(r, "includeDeleted"))
	response.Handle(w, r, h.Logger, item, err, http.StatusOK)
}

// ListItemsHandler godoc
// @Summary      Lista o catálogo
// @Tags         items
// @Produce      json
// @Param        name            query     string  false  "Filtro por nome"
// @Param        category        query     string  false  "Filtro por categoria"
// @Param        vendorId        query     int     false  "Filtro por fornecedor"
// @Param        includeDeleted  query     bool    false  "Inclui itens excluídos"
// @Param        page            query     int     false  "Página"
// @Param        limit           query     int     false  "Itens por página"
// @Success      200             {object}  params.ListResponse
// @Security     BearerAuth
// @Router       /v1/items [get]
func (h *Handler) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ItemFilter{
		Name:           q.Get("name"),
		Category:       q.Get("category"),
		IncludeDeleted: params.Bool(r, "includeDeleted"),
	}
	var err error
	if filter.VendorID, err = params.OptionalID(r, "vendorId"); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	if filter.Page, filter.Limit, err = params.Paging(r); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	items, total, err := h.Service.ListItems(r.Context(), filter)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	page, limit := domain.Pagination(filter.Page, filter.Limit)
	response.JSON(w, h.Logger, http.StatusOK, params.ListResponse{
		Data:       items,
		Pagination: params.Page{Page: page, Limit: limit, Total: total},
	})
}

// UpdateItemHandler godoc
// @Summary      Atualiza um item ativo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "ID do item"
// @Param        item  body      domain.InventoryItem  true  "Item"
// @Success      200   {object}  domain.InventoryItem
// @Failure      400   {object}  domain.ErrorResponse
// @Failure      404   {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/items/{id} [put]
func (h *Handler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, err := params.ID(r, "id")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	var item domain.InventoryItem
	if err := params.DecodeJSON(r, &item, false); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	updated, err := h.Service.UpdateItem(r.Context(), principal, id, item)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteItemHandler godoc
// @Summary      Exclui logicamente um item
// @Tags         items
// @Param        id   path  int  true  "ID do item"
// @Success      204
// @Failure      404  {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/items/{id} [delete]
func (h *Handler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, err := params.ID(r, "id")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	if err := h.Service.SoftDeleteItem(r.Context(), principal, id); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RestoreItemHandler godoc
// @Summary      Reativa um item excluído
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "ID do item"
// @Success      200  {object}  domain.InventoryItem
// @Failure      404  {object}  domain.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/items/{id}/restore [post]
func (h *Handler) RestoreItemHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, err := params.ID(r, "id")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	item, err := h.Service.RestoreItem(r.Context(), principal, id)
	response.Handle(w, r, h.Logger, item, err, http.StatusOK)
}

// LowStockHandler godoc
// @Summary      Itens no nível de reposição ou abaixo
// @Tags         items
// @Produce      json
// @Success      200  {array}  domain.LowStockItem
// @Security     BearerAuth
// @Router       /v1/items/low-stock [get]
func (h *Handler) LowStockHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListLowStockItems(r.Context())
	response.Handle(w, r, h.Logger, items, err, http.StatusOK)
}
