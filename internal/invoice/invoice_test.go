package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhsinkalodi/qmexai-ecom/internal/model"
)

func TestRender(t *testing.T) {
	order := &model.Order{
		ID:          42,
		TotalAmount: 2100,
		Status:      model.StatusProcessing,
		CreatedAt:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Items: []model.OrderItem{
			{ProductID: 1, Quantity: 2, Price: 800, Product: &model.Product{Name: "Jacket"}},
			{ProductID: 2, Quantity: 1, Price: 500},
		},
	}
	customer := &model.User{Email: "buyer@example.com"}

	pdf, err := Render(order, customer)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderWithoutCustomer(t *testing.T) {
	order := &model.Order{ID: 7, Status: model.StatusPending, CreatedAt: time.Now()}

	pdf, err := Render(order, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
