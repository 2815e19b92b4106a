package domain

// Category groups products. The server owns the id and the product list;
// deleting a category cascade-deletes its products server-side.
type Category struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products,omitempty"`
}

// ProductCount returns the number of products nested in the category payload.
func (c Category) ProductCount() int {
	return len(c.Products)
}
