package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"clinicstock/internal/domain"
)

func TestBatchView_HideDeletedRelations(t *testing.T) {
	itemID, vendorID := int64(3), int64(8)
	itemName, vendorName := "Dipirona 500mg", "Distribuidora Sul"
	deleted, active := true, false

	view := domain.BatchView{
		ItemBatch:     domain.ItemBatch{ID: 1, ItemID: &itemID, VendorID: &vendorID},
		ItemName:      &itemName,
		ItemDeleted:   &active,
		VendorName:    &vendorName,
		VendorDeleted: &deleted,
	}

	view.HideDeletedRelations()

	assert.Equal(t, &itemID, view.ItemID)
	assert.Equal(t, &itemName, view.ItemName)
	assert.Nil(t, view.VendorID)
	assert.Nil(t, view.VendorName)
}

func TestPagination(t *testing.T) {
	page, limit := domain.Pagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = domain.Pagination(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)

	page, limit = domain.Pagination(math.MaxInt, 100)
	assert.Equal(t, domain.MaxPage, page)
	assert.Equal(t, 100, limit)
}
