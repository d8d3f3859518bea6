package handler

import (
	"time"

	"github.com/encomendas/tracking-service/internal/entities"
)

// Wire models keep the original Portuguese field names. Passwords are
// accepted on input and never serialized back.

type UserIn struct {
	Nome  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type UserOut struct {
	IDUsuario string `json:"id_usuario"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
}

type ProductIn struct {
	Nome  string  `json:"nome" validate:"required"`
	Peso  float64 `json:"peso" validate:"gte=0"`
	Preco float64 `json:"preco" validate:"gte=0"`
}

type ProductOut struct {
	IDProduto string  `json:"id_produto"`
	Nome      string  `json:"nome"`
	Peso      float64 `json:"peso"`
	Preco     float64 `json:"preco"`
}

// OrderIn may carry a caller-chosen id; an empty id_encomenda asks the
// service to generate one.
type OrderIn struct {
	IDEncomenda        string   `json:"id_encomenda,omitempty"`
	EnderecoOrigem     string   `json:"endereco_origem" validate:"required"`
	EnderecoDestino    string   `json:"endereco_destino" validate:"required"`
	ItemIDs            []string `json:"item_ids" validate:"required"`
	IDUsuarioComprador string   `json:"id_usuario_comprador" validate:"required"`
	IDUsuarioVendedor  string   `json:"id_usuario_vendedor" validate:"required"`
}

type OrderOut struct {
	IDEncomenda        string            `json:"id_encomenda"`
	ValorTotal         float64           `json:"valor_total"`
	DataPostagem       time.Time         `json:"data_postagem"`
	EnderecoOrigem     string            `json:"endereco_origem"`
	EnderecoDestino    string            `json:"endereco_destino"`
	PesoTotal          float64           `json:"peso_total"`
	Status             map[string]string `json:"status"`
	ItemIDs            []string          `json:"item_ids"`
	IDUsuarioComprador string            `json:"id_usuario_comprador"`
	IDUsuarioVendedor  string            `json:"id_usuario_vendedor"`
}

type LocationIn struct {
	Endereco    string `json:"endereco" validate:"required"`
	IDEncomenda string `json:"id_encomenda" validate:"required"`
}

type LocationOut struct {
	IDLocalizacao string    `json:"id_localizacao"`
	Data          time.Time `json:"data"`
	Endereco      string    `json:"endereco"`
	IDEncomenda   string    `json:"id_encomenda"`
}

func UserEntityToJSON(u entities.User) UserOut {
	return UserOut{
		IDUsuario: u.ID,
		Nome:      u.Name,
		Email:     u.Email,
	}
}

func ProductEntityToJSON(p entities.Product) ProductOut {
	return ProductOut{
		IDProduto: p.ID,
		Nome:      p.Name,
		Peso:      p.Weight,
		Preco:     p.Price,
	}
}

func OrderJSONToEntity(o OrderIn) entities.Order {
	return entities.Order{
		OriginAddress:      o.EnderecoOrigem,
		DestinationAddress: o.EnderecoDestino,
		ProductIDs:         o.ItemIDs,
		BuyerID:            o.IDUsuarioComprador,
		SellerID:           o.IDUsuarioVendedor,
	}
}

func OrderEntityToJSON(o entities.Order) OrderOut {
	itemIDs := o.ProductIDs
	if itemIDs == nil {
		itemIDs = []string{}
	}

	return OrderOut{
		IDEncomenda:        o.ID,
		ValorTotal:         o.TotalPrice,
		DataPostagem:       o.CreatedAt,
		EnderecoOrigem:     o.OriginAddress,
		EnderecoDestino:    o.DestinationAddress,
		PesoTotal:          o.TotalWeight,
		Status:             StatusHistoryToJSON(o.Statuses),
		ItemIDs:            itemIDs,
		IDUsuarioComprador: o.BuyerID,
		IDUsuarioVendedor:  o.SellerID,
	}
}

// StatusHistoryToJSON renders the history in the original wire shape, a
// timestamp-keyed mapping.
func StatusHistoryToJSON(statuses []entities.StatusEntry) map[string]string {
	result := make(map[string]string, len(statuses))
	for _, s := range statuses {
		result[s.RecordedAt.Format(time.RFC3339Nano)] = s.Label
	}
	return result
}

func LocationEntityToJSON(l entities.Location) LocationOut {
	return LocationOut{
		IDLocalizacao: l.ID,
		Data:          l.RecordedAt,
		Endereco:      l.Address,
		IDEncomenda:   l.OrderID,
	}
}
