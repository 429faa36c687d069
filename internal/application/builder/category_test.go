package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
)

func categoryChain(names ...string) *checkout.Category {
	// names are root-to-leaf; returns the leaf
	var parent *checkout.Category
	for _, name := range names {
		parent = &checkout.Category{DisplayName: name, Online: true, Parent: parent}
	}
	return parent
}

func TestCategoryPath(t *testing.T) {
	tests := []struct {
		name    string
		product *checkout.Product
		want    string
	}{
		{
			name:    "nil product",
			product: nil,
			want:    "",
		},
		{
			name:    "no category",
			product: &checkout.Product{ID: "P1"},
			want:    "",
		},
		{
			name:    "root excluded",
			product: &checkout.Product{PrimaryCategory: categoryChain("root", "Womens", "Clothing", "Jumpers")},
			want:    "Womens > Clothing > Jumpers",
		},
		{
			name:    "single level directly under root",
			product: &checkout.Product{PrimaryCategory: categoryChain("root", "Sale")},
			want:    "Sale",
		},
		{
			name: "offline nodes skipped",
			product: &checkout.Product{
				PrimaryCategory: &checkout.Category{
					DisplayName: "Jumpers",
					Online:      true,
					Parent: &checkout.Category{
						DisplayName: "Hidden",
						Online:      false,
						Parent:      categoryChain("root", "Womens"),
					},
				},
			},
			want: "Womens > Jumpers",
		},
		{
			name: "variation master fallback",
			product: &checkout.Product{
				ID:     "P1-VAR",
				Master: &checkout.Product{PrimaryCategory: categoryChain("root", "Shoes")},
			},
			want: "Shoes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryPath(tt.product))
		})
	}
}

func TestCategoryPath_Truncated(t *testing.T) {
	long := strings.Repeat("x", 400)
	product := &checkout.Product{PrimaryCategory: categoryChain("root", long, long, long)}

	path := CategoryPath(product)
	assert.Len(t, path, maxCategoryPathLen)
	assert.True(t, strings.HasPrefix(path, long+" > "))
}
