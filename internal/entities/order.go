package entities

import (
	"bytes"
	"encoding/gob"
	"time"
)

// Shipping status labels. The Portuguese values are part of the wire
// format and are stored verbatim in the status history.
const (
	StatusPreparing = "Em Preparação"
	StatusInTransit = "Em Trânsito"
	StatusDelivered = "Entregue"
)

// StatusEntry is one record in an order's append-only status history.
type StatusEntry struct {
	RecordedAt time.Time
	Label      string
}

// Order links a buyer and a seller to a set of products. TotalPrice and
// TotalWeight are derived from the linked products and recomputed in full
// on every create and update.
type Order struct {
	ID                 string
	CreatedAt          time.Time
	OriginAddress      string
	DestinationAddress string
	BuyerID            string
	SellerID           string
	TotalPrice         float64
	TotalWeight        float64
	ProductIDs         []string
	Statuses           []StatusEntry
}

// HasStatus reports whether label appears in the status history.
func (o Order) HasStatus(label string) bool {
	for _, s := range o.Statuses {
		if s.Label == label {
			return true
		}
	}
	return false
}

// NextStatus returns the label a status advance would append, or false
// once the order is delivered.
func (o Order) NextStatus() (string, bool) {
	switch {
	case o.HasStatus(StatusDelivered):
		return "", false
	case o.HasStatus(StatusInTransit):
		return StatusDelivered, true
	default:
		return StatusInTransit, true
	}
}

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(o)
}

func init() {
	gob.Register(Order{})
	gob.Register(StatusEntry{})
}
