package builder

import "github.com/commercekit/klarna-payments/internal/domain/checkout"

// maxCategoryPathLen is Klarna's documented limit of 750 characters per
// category path; the engine truncates one short of it.
const maxCategoryPathLen = 749

// CategoryPath derives the breadcrumb for a product: starting from its
// primary category (or its variation master's when the product has none),
// the display names of all online ancestors below the root, root-to-leaf,
// joined with " > ". Returns "" when the product has no category; callers
// omit the field then.
func CategoryPath(product *checkout.Product) string {
	if product == nil {
		return ""
	}

	category := product.PrimaryCategory
	if category == nil && product.Master != nil {
		category = product.Master.PrimaryCategory
	}
	if category == nil {
		return ""
	}

	// The walk stops at the node whose parent is nil, so the root category
	// itself never appears in the path.
	var path string
	for node := category; node.Parent != nil; node = node.Parent {
		if !node.Online {
			continue
		}
		if path == "" {
			path = node.DisplayName
		} else {
			path = node.DisplayName + " > " + path
		}
	}

	return truncateRunes(path, maxCategoryPathLen)
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
