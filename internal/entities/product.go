package entities

// Product is a catalog item. Weight and Price are plain floats, matching
// the wire format; order totals are computed by summing them.
type Product struct {
	ID     string
	Name   string
	Weight float64
	Price  float64
}
