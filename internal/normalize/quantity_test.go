package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineQuantity(t *testing.T) {
	tests := []struct {
		items any
		name  string
		want  int
	}{
		{name: "nil", items: nil, want: 0},
		{name: "not a list", items: "3", want: 0},
		{name: "empty list", items: []any{}, want: 0},
		{
			name: "key priority",
			items: []any{
				map[string]any{"Qty": float64(2), "qty": float64(100)},
				map[string]any{"qty": float64(3)},
				map[string]any{"UomQtyOrdered": float64(4), "uomQtyOrdered": float64(100)},
				map[string]any{"uomQtyOrdered": float64(5)},
			},
			want: 14,
		},
		{
			name: "string quantities coerce",
			items: []any{
				map[string]any{"Qty": "2.5"},
				map[string]any{"Qty": "1.75"},
			},
			want: 4,
		},
		{
			name: "non numeric values contribute zero",
			items: []any{
				map[string]any{"Qty": "lots"},
				map[string]any{"Qty": []any{1}},
				map[string]any{"Qty": float64(6)},
				"garbage",
				map[string]any{"Description": "no quantity"},
			},
			want: 6,
		},
		{
			name: "truncated not rounded",
			items: []any{
				map[string]any{"Qty": float64(2.9)},
			},
			want: 2,
		},
		{
			name: "negative totals clamp to zero",
			items: []any{
				map[string]any{"Qty": float64(-4)},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineQuantity(tt.items))
		})
	}
}
