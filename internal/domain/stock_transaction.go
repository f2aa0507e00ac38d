package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

// TransactionType identifica o tipo de movimentação de estoque.
type TransactionType string

const (
	TransactionIn         TransactionType = "IN"         // entrada: soma ao lote
	TransactionOut        TransactionType = "OUT"        // saída/dispensação: subtrai do lote
	TransactionAdjustment TransactionType = "ADJUSTMENT" // ajuste: delta com sinal, como enviado
)

// MaxQuantity é o maior saldo (e a maior movimentação) que cabe nas colunas INTEGER.
const MaxQuantity = math.MaxInt32

// Erros de domínio do ledger. O serviço os traduz para apperror.
var (
	ErrInvalidQuantity        = errors.New("quantidade da movimentação inválida")
	ErrUnknownTransactionType = errors.New("tipo de movimentação desconhecido")
	ErrInsufficientQuantity   = errors.New("quantidade insuficiente no lote")
	ErrNegativeBalance        = errors.New("ajuste resultaria em quantidade negativa")
	ErrQuantityOverflow       = errors.New("quantidade resultante excede o limite do lote")

	// ErrVersionConflict é devolvido pelo repositório quando a versão do lote mudou
	// entre a leitura e a escrita (controle de concorrência otimista).
	ErrVersionConflict = errors.New("versão do lote desatualizada")
)

// ParseTransactionType normaliza o tipo sem diferenciar maiúsculas/minúsculas.
func ParseTransactionType(raw string) (TransactionType, bool) {
	switch t := TransactionType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case TransactionIn, TransactionOut, TransactionAdjustment:
		return t, true
	default:
		return "", false
	}
}

// SignedEffect devolve o efeito de uma transação gravada sobre a quantidade do lote.
func (t TransactionType) SignedEffect(quantity int) int {
	if t == TransactionOut {
		return -quantity
	}
	return quantity
}

// Movement é uma movimentação já validada: In(q), Out(q) ou Adjustment(delta).
// Os campos são privados; o único construtor é ParseMovement, portanto um valor
// de Movement nunca carrega um tipo inválido.
type Movement struct {
	kind   TransactionType
	amount int
}

// ParseMovement valida a quantidade e o tipo enviados pelo chamador, nesta ordem.
// IN e OUT exigem quantidade positiva; ADJUSTMENT aceita qualquer delta diferente de zero.
func ParseMovement(rawType string, quantity int) (Movement, error) {
	kind, known := ParseTransactionType(rawType)

	if quantity == 0 || quantity > MaxQuantity || quantity < -MaxQuantity ||
		(quantity < 0 && kind != TransactionAdjustment) {
		return Movement{}, ErrInvalidQuantity
	}
	if !known {
		return Movement{}, ErrUnknownTransactionType
	}
	return Movement{kind: kind, amount: quantity}, nil
}

// Type devolve o tipo normalizado.
func (m Movement) Type() TransactionType { return m.kind }

// Quantity devolve a quantidade como será gravada no ledger.
func (m Movement) Quantity() int { return m.amount }

// Delta devolve o efeito com sinal sobre a quantidade do lote.
func (m Movement) Delta() int { return m.kind.SignedEffect(m.amount) }

// Apply calcula a nova quantidade do lote. O resultado nunca é negativo:
// OUT acima do saldo devolve ErrInsufficientQuantity e um ADJUSTMENT que deixaria
// o saldo negativo devolve ErrNegativeBalance. Saldo acima de MaxQuantity devolve
// ErrQuantityOverflow.
func (m Movement) Apply(current int) (int, error) {
	next := current + m.Delta()
	if next > MaxQuantity {
		return current, ErrQuantityOverflow
	}
	if next >= 0 {
		return next, nil
	}
	if m.kind == TransactionOut {
		return current, ErrInsufficientQuantity
	}
	return current, ErrNegativeBalance
}

// StockTransaction é uma linha imutável do ledger.
type StockTransaction struct {
	ID              int64           `json:"id" db:"id"`
	BatchID         int64           `json:"batchId" db:"batch_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	TransactionType TransactionType `json:"transactionType" db:"transaction_type"`
	Notes           string          `json:"notes" db:"notes"`
	TransactionDate time.Time       `json:"transactionDate" db:"transaction_date"`
	StaffID         *int64          `json:"staffId,omitempty" db:"staff_id"`
	PatientID       *int64          `json:"patientId,omitempty" db:"patient_id"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// SignedEffect devolve o efeito desta transação sobre o saldo do lote.
func (t StockTransaction) SignedEffect() int {
	return t.TransactionType.SignedEffect(t.Quantity)
}

// TransactionView é a projeção de leitura do ledger com os nomes relacionados.
type TransactionView struct {
	StockTransaction
	BatchNumber string  `json:"batchNumber" db:"batch_number"`
	ItemID      *int64  `json:"itemId,omitempty" db:"item_id"`
	ItemName    *string `json:"itemName,omitempty" db:"item_name"`
	StaffName   *string `json:"staffName,omitempty" db:"staff_name"`
	PatientName *string `json:"patientName,omitempty" db:"patient_name"`
}

// MovementRequest é o payload de POST /v1/movements.
type MovementRequest struct {
	BatchID         int64  `json:"batchId" validate:"required,gt=0"`
	Quantity        int    `json:"quantity"`
	TransactionType string `json:"transactionType"`
	Notes           string `json:"notes" validate:"max=500"`
	StaffID         *int64 `json:"staffId,omitempty" validate:"omitempty,gt=0"`
	PatientID       *int64 `json:"patientId,omitempty" validate:"omitempty,gt=0"`
}

// MovementResult é a resposta de uma movimentação efetivada.
type MovementResult struct {
	Transaction       StockTransaction `json:"transaction"`
	ResultingQuantity int              `json:"resultingQuantity"`
	BatchVersion      int              `json:"batchVersion"`
}

// TransactionFilter define o escopo das consultas ao ledger. No máximo um dos
// escopos (lote, funcionário, paciente) deve ser informado.
type TransactionFilter struct {
	BatchID   *int64
	StaffID   *int64
	PatientID *int64
	Page      int
	Limit     int
}

// BatchReconciliation compara a quantidade materializada com a soma do ledger.
type BatchReconciliation struct {
	BatchID          int64 `json:"batchId" db:"batch_id"`
	Quantity         int   `json:"quantity" db:"quantity"`
	LedgerSum        int   `json:"ledgerSum" db:"ledger_sum"`
	TransactionCount int   `json:"transactionCount" db:"transaction_count"`
	Consistent       bool  `json:"consistent"`
}
