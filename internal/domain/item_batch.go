package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemBatch representa um lote recebido de um item do catálogo.
// Quantity é o saldo derivado do ledger; só é gravado na criação do lote
// (junto com a transação inicial) e por CommitMovement.
type ItemBatch struct {
	ID             int64           `json:"id" db:"id"`
	ItemID         *int64          `json:"itemId,omitempty" db:"item_id"`
	BatchNumber    string          `json:"batchNumber" db:"batch_number"`
	Quantity       int             `json:"quantity" db:"quantity"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty" db:"expiration_date"`
	ReceivedDate   time.Time       `json:"receivedDate" db:"received_date"`
	CostPerUnit    decimal.Decimal `json:"costPerUnit" db:"cost_per_unit"`
	VendorID       *int64          `json:"vendorId,omitempty" db:"vendor_id"`
	Version        int             `json:"version" db:"version"` // Para Controle de Concorrência Otimista (OCC)
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// BatchView é o lote com os dados de item e fornecedor para exibição.
type BatchView struct {
	ItemBatch
	ItemName      *string `json:"itemName,omitempty" db:"item_name"`
	ItemDeleted   *bool   `json:"itemDeleted,omitempty" db:"item_is_deleted"`
	VendorName    *string `json:"vendorName,omitempty" db:"vendor_name"`
	VendorDeleted *bool   `json:"vendorDeleted,omitempty" db:"vendor_is_deleted"`
}

// HideDeletedRelations remove da visão o item e o fornecedor excluídos logicamente.
func (v *BatchView) HideDeletedRelations() {
	if v.ItemDeleted != nil && *v.ItemDeleted {
		v.ItemID, v.ItemName, v.ItemDeleted = nil, nil, nil
	}
	if v.VendorDeleted != nil && *v.VendorDeleted {
		v.VendorID, v.VendorName, v.VendorDeleted = nil, nil, nil
	}
}

// BatchCreateRequest é o payload de registro de um lote recebido.
type BatchCreateRequest struct {
	ItemID          int64           `json:"itemId" validate:"required,gt=0"`
	BatchNumber     string          `json:"batchNumber" validate:"required,max=64"`
	InitialQuantity int             `json:"quantity" validate:"gte=0,max=2147483647"`
	ExpirationDate  *time.Time      `json:"expirationDate,omitempty"`
	ReceivedDate    *time.Time      `json:"receivedDate,omitempty"`
	CostPerUnit     decimal.Decimal `json:"costPerUnit"`
	VendorID        *int64          `json:"vendorId,omitempty" validate:"omitempty,gt=0"`
	StaffID         *int64          `json:"staffId,omitempty" validate:"omitempty,gt=0"`
}

// BatchUpdateRequest carrega apenas campos descritivos. Não existe campo de
// quantidade: o saldo muda somente por movimentações.
type BatchUpdateRequest struct {
	BatchNumber    string          `json:"batchNumber" validate:"required,max=64"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	ReceivedDate   time.Time       `json:"receivedDate" validate:"required"`
	CostPerUnit    decimal.Decimal `json:"costPerUnit"`
	VendorID       *int64          `json:"vendorId,omitempty" validate:"omitempty,gt=0"`
}
