package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Quantity
		wantErr bool
	}{
		{"number", `2`, 2, false},
		{"numeric string", `"3"`, 3, false},
		{"whole float", `4.0`, 4, false},
		{"null", `null`, 0, false},
		{"fraction", `"2.7"`, 0, true},
		{"not a number", `"two"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			err := json.Unmarshal([]byte(tt.raw), &q)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestOrderStatus_IsFinal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsFinal())
	assert.False(t, OrderStatusShipped.IsFinal())
	assert.True(t, OrderStatusDelivered.IsFinal())
	assert.True(t, OrderStatusCancelled.IsFinal())
}
