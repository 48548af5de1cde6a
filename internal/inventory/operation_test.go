package inventory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Jalpan25/sweetshop-management-system/internal/session"
	"github.com/Jalpan25/sweetshop-management-system/internal/stock"
)

func TestOperation_Validate(t *testing.T) {
	tests := []struct {
		name            string
		op              Operation
		currentQuantity int
		role            session.Role
		expectedErr     error
	}{
		{
			name:            "purchase within ceiling succeeds",
			op:              Operation{Mode: ModePurchase, SweetID: "1", Quantity: 2},
			currentQuantity: 3,
			role:            session.RoleCustomer,
			expectedErr:     nil,
		},
		{
			name:            "purchase at exact ceiling succeeds",
			op:              Operation{Mode: ModePurchase, SweetID: "1", Quantity: 10},
			currentQuantity: 50,
			role:            session.RoleCustomer,
			expectedErr:     nil,
		},
		{
			name:            "zero quantity fails",
			op:              Operation{Mode: ModePurchase, SweetID: "1", Quantity: 0},
			currentQuantity: 5,
			role:            session.RoleCustomer,
			expectedErr:     ErrInvalidQuantity,
		},
		{
			name:            "negative quantity fails",
			op:              Operation{Mode: ModeRestock, SweetID: "1", Quantity: -4},
			currentQuantity: 5,
			role:            session.RoleManager,
			expectedErr:     ErrInvalidQuantity,
		},
		{
			name:            "purchase of out-of-stock sweet fails regardless of amount",
			op:              Operation{Mode: ModePurchase, SweetID: "1", Quantity: 1},
			currentQuantity: 0,
			role:            session.RoleCustomer,
			expectedErr:     ErrOutOfStock,
		},
		{
			name:            "purchase above stock fails",
			op:              Operation{Mode: ModePurchase, SweetID: "1", Quantity: 4},
			currentQuantity: 3,
			role:            session.RoleCustomer,
			expectedErr:     ErrInvalidQuantity,
		},
		{
			name:            "purchase above cap fails even with large stock",
			op:              Operation{Mode: ModePurchase, SweetID: "1", Quantity: 11},
			currentQuantity: 100,
			role:            session.RoleCustomer,
			expectedErr:     ErrInvalidQuantity,
		},
		{
			name:            "restock by customer fails",
			op:              Operation{Mode: ModeRestock, SweetID: "1", Quantity: 5},
			currentQuantity: 3,
			role:            session.RoleCustomer,
			expectedErr:     ErrUnauthorized,
		},
		{
			name:            "restock by manager succeeds",
			op:              Operation{Mode: ModeRestock, SweetID: "1", Quantity: 5},
			currentQuantity: 3,
			role:            session.RoleManager,
			expectedErr:     nil,
		},
		{
			name:            "restock has no local upper bound",
			op:              Operation{Mode: ModeRestock, SweetID: "1", Quantity: 100000},
			currentQuantity: 0,
			role:            session.RoleManager,
			expectedErr:     nil,
		},
		{
			name:            "quantity check precedes role check",
			op:              Operation{Mode: ModeRestock, SweetID: "1", Quantity: 0},
			currentQuantity: 3,
			role:            session.RoleCustomer,
			expectedErr:     ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate(tt.currentQuantity, tt.role, stock.Default)
			if tt.expectedErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.expectedErr)
			}
		})
	}
}

func TestOperation_Validate_PurchaseBounds(t *testing.T) {
	// Для любого остатка > 0 запрос в пределах [1, ceiling] проходит,
	// всё что выше - падает
	for q := 1; q <= 20; q++ {
		ceiling := stock.Default.PurchaseCeiling(q)
		for requested := 1; requested <= ceiling; requested++ {
			op := Operation{Mode: ModePurchase, SweetID: "1", Quantity: requested}
			require.NoError(t, op.Validate(q, session.RoleCustomer, stock.Default),
				"q=%d requested=%d", q, requested)
		}
		op := Operation{Mode: ModePurchase, SweetID: "1", Quantity: ceiling + 1}
		require.Error(t, op.Validate(q, session.RoleCustomer, stock.Default),
			"q=%d requested=%d", q, ceiling+1)
	}
}

func TestSweetInput_Validate(t *testing.T) {
	tests := []struct {
		name        string
		input       SweetInput
		expectedErr bool
	}{
		{
			name:        "valid input",
			input:       SweetInput{Name: "Kaju Katli", Category: "Nut", Price: 50, Quantity: 20},
			expectedErr: false,
		},
		{
			name:        "empty name",
			input:       SweetInput{Category: "Nut", Price: 50, Quantity: 20},
			expectedErr: true,
		},
		{
			name:        "empty category",
			input:       SweetInput{Name: "Kaju Katli", Price: 50, Quantity: 20},
			expectedErr: true,
		},
		{
			name:        "negative price",
			input:       SweetInput{Name: "Kaju Katli", Category: "Nut", Price: -1, Quantity: 20},
			expectedErr: true,
		},
		{
			name:        "zero price and quantity allowed",
			input:       SweetInput{Name: "Sample", Category: "Promo", Price: 0, Quantity: 0},
			expectedErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.expectedErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
