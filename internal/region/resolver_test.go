package region

import (
	"testing"

	"amalkitchen-be/internal/cart"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		items    []cart.Item
		fallback string
		want     Resolution
	}{
		{
			name: "Single region resolves branch",
			items: []cart.Item{
				{ID: "samoosa", Region: "durban"},
				{ID: "roti", Region: "durban"},
			},
			want: Resolution{Branch: "Durban", Region: "durban"},
		},
		{
			name: "Mixed regions block resolution",
			items: []cart.Item{
				{ID: "samoosa", Region: "durban"},
				{ID: "roti", Region: "joburg"},
			},
			want: Resolution{Mixed: true},
		},
		{
			name: "Tags are lower-cased before comparison",
			items: []cart.Item{
				{ID: "samoosa", Region: "Durban"},
				{ID: "roti", Region: "durban"},
			},
			want: Resolution{Branch: "Durban", Region: "durban"},
		},
		{
			name:     "Empty cart falls back to browsed region",
			fallback: "capetown",
			want:     Resolution{Branch: "Cape Town", Region: "capetown"},
		},
		{
			name: "Untagged items use fallback",
			items: []cart.Item{
				{ID: "samoosa"},
			},
			fallback: "joburg",
			want:     Resolution{Branch: "Joburg", Region: "joburg"},
		},
		{
			name: "Unknown tag leaves branch unset",
			items: []cart.Item{
				{ID: "samoosa", Region: "pmb"},
			},
			want: Resolution{Region: "pmb"},
		},
		{
			name: "Nothing to resolve",
			want: Resolution{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.items, tt.fallback))
		})
	}
}

func TestBranchFor(t *testing.T) {
	assert.Equal(t, "Durban", BranchFor("durban"))
	assert.Equal(t, "Joburg", BranchFor(" Joburg "))
	assert.Equal(t, "Cape Town", BranchFor("capetown"))
	assert.Equal(t, "", BranchFor("pmb"))
}

func TestKnownBranches(t *testing.T) {
	assert.ElementsMatch(t, []string{"Durban", "Joburg", "Cape Town"}, KnownBranches())
}
