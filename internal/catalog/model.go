package catalog

// Product is a read-only record from the headless catalog store. Prices are
// keyed by region tag (durban, joburg, capetown).
type Product struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Prices   map[string]float64 `json:"price_by_region"`
	Unit     string             `json:"unit"`
	Image    string             `json:"image"`
	Category string             `json:"category"`
	Regions  []string           `json:"regions"`
	Active   bool               `json:"active"`
}

// PriceFor returns the product price in the given region, falling back to
// any single configured price when the region has no explicit entry.
func (p *Product) PriceFor(region string) (float64, bool) {
	if price, ok := p.Prices[region]; ok {
		return price, true
	}
	if len(p.Prices) == 1 {
		for _, price := range p.Prices {
			return price, true
		}
	}
	return 0, false
}
