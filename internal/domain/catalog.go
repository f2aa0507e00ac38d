package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor representa um fornecedor (exclusão lógica via IsDeleted).
type Vendor struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" validate:"required,min=2,max=150"`
	ContactPerson string    `json:"contactPerson" db:"contact_person" validate:"max=150"`
	Phone         string    `json:"phone" db:"phone" validate:"max=40"`
	Email         string    `json:"email" db:"email" validate:"omitempty,email,max=150"`
	Address       string    `json:"address" db:"address" validate:"max=300"`
	Notes         string    `json:"notes" db:"notes"`
	IsDeleted     bool      `json:"isDeleted" db:"is_deleted"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// VendorFilter define os parâmetros de busca e paginação de fornecedores.
type VendorFilter struct {
	Name           string
	IncludeDeleted bool
	Page           int
	Limit          int
}

// InventoryItem é o registro mestre do catálogo ao qual os lotes se referem.
type InventoryItem struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name" validate:"required,min=2,max=150"`
	Category      string          `json:"category" db:"category" validate:"max=80"`
	UnitOfMeasure string          `json:"unitOfMeasure" db:"unit_of_measure" validate:"max=30"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" db:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" db:"selling_price"`
	ReorderLevel  int             `json:"reorderLevel" db:"reorder_level" validate:"gte=0"`
	LeadTimeDays  int             `json:"leadTimeDays" db:"lead_time_days" validate:"gte=0"`
	Description   string          `json:"description" db:"description"`
	VendorID      int64           `json:"vendorId" db:"vendor_id" validate:"required,gt=0"`
	IsDeleted     bool            `json:"isDeleted" db:"is_deleted"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// ItemFilter define os parâmetros de busca e paginação do catálogo.
type ItemFilter struct {
	Name           string
	Category       string
	VendorID       *int64
	IncludeDeleted bool
	Page           int
	Limit          int
}

// LowStockItem é um item cujo saldo somado nos lotes está no nível de reposição ou abaixo.
type LowStockItem struct {
	ItemID       int64  `json:"itemId" db:"item_id"`
	Name         string `json:"name" db:"name"`
	ReorderLevel int    `json:"reorderLevel" db:"reorder_level"`
	OnHand       int    `json:"onHand" db:"on_hand"`
	LeadTimeDays int    `json:"leadTimeDays" db:"lead_time_days"`
}

// MaxPage limita a página aceita para que o OFFSET calculado caiba em BIGINT.
const MaxPage = 1_000_000

// Pagination normaliza página e limite (limite máximo 100, padrão 20, página até MaxPage).
func Pagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
