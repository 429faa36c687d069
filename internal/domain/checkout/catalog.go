package checkout

// Product carries the catalog data the engine reads for a line: brand,
// category placement, and the storefront URLs resolved by the platform.
type Product struct {
	ID    string
	Brand string

	// PrimaryCategory is nil when the product is not categorized. For a
	// variant without its own placement, Master points at the variation
	// master whose primary category is used as fallback.
	PrimaryCategory *Category
	Master          *Product

	URL      string
	ImageURL string
}

// Category is a node of the catalog category tree. Parent is nil at the root.
type Category struct {
	ID          string
	DisplayName string
	Online      bool
	Parent      *Category
}
