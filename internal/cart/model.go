package cart

// Item is one cart line. Keyed by product ID; quantities merge when the
// same product is added again.
type Item struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Region   string  `json:"region,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// Snapshot is the durable form of a cart, persisted on every mutation.
type Snapshot struct {
	Items          []Item `json:"items"`
	SelectedRegion string `json:"selected_region,omitempty"`
}
