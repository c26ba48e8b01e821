package cart_test

import (
	"reflect"
	"testing"

	"arabianx/cart"
	"arabianx/models"
)

func line(id string, qty int) models.CartLine {
	return models.CartLine{ProductID: id, Name: "Perfume " + id, Price: 100, Quantity: qty}
}

func TestMergeLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []models.CartLine
		line  models.CartLine
		want  []models.CartLine
	}{
		{
			name:  "add to empty cart",
			lines: []models.CartLine{},
			line:  line("p1", 2),
			want:  []models.CartLine{line("p1", 2)},
		},
		{
			name:  "add new product",
			lines: []models.CartLine{line("p1", 1)},
			line:  line("p2", 3),
			want:  []models.CartLine{line("p1", 1), line("p2", 3)},
		},
		{
			name:  "replace quantity, not accumulate",
			lines: []models.CartLine{line("p1", 1)},
			line:  line("p1", 5),
			want:  []models.CartLine{line("p1", 5)},
		},
		{
			name:  "zero quantity removes",
			lines: []models.CartLine{line("p1", 2), line("p2", 1)},
			line:  line("p1", 0),
			want:  []models.CartLine{line("p2", 1)},
		},
		{
			name:  "negative quantity removes",
			lines: []models.CartLine{line("p1", 2)},
			line:  line("p1", -3),
			want:  []models.CartLine{},
		},
		{
			name:  "zero quantity for absent product is a no-op",
			lines: []models.CartLine{line("p1", 2)},
			line:  line("p9", 0),
			want:  []models.CartLine{line("p1", 2)},
		},
		{
			name:  "other lines untouched",
			lines: []models.CartLine{line("p1", 1), line("p2", 2), line("p3", 3)},
			line:  line("p2", 7),
			want:  []models.CartLine{line("p1", 1), line("p2", 7), line("p3", 3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cart.MergeLine(tt.lines, tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeLine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
