package types

import "time"

const ScheduleStatusNovo = "novo"

// PickupOrigin records how the pickup address was captured: a typed
// address, GPS coordinates, or free text.
type PickupOrigin struct {
	Type   string     `json:"type"`
	Coords *GeoCoords `json:"coords,omitempty"`
	Text   string     `json:"text,omitempty"`
}

type GeoCoords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PickupItem struct {
	Nome       string `json:"nome"`
	Quantidade int    `json:"quantidade"`
}

type PickupSchedule struct {
	ID               string        `db:"id" json:"id"`
	UsuarioID        *string       `db:"usuario_id" json:"usuarioId"`
	Nome             string        `db:"nome" json:"nome"`
	Telefone         string        `db:"telefone" json:"telefone"`
	Email            *string       `db:"email" json:"email"`
	Endereco         string        `db:"endereco" json:"endereco"`
	Complemento      *string       `db:"complemento" json:"complemento"`
	Cidade           *string       `db:"cidade" json:"cidade"`
	Estado           *string       `db:"estado" json:"estado"`
	CEP              *string       `db:"cep" json:"cep"`
	Origem           *PickupOrigin `db:"origem" json:"origem"` // jsonb
	Disponibilidade  string        `db:"disponibilidade" json:"disponibilidade"`
	Itens            []PickupItem  `db:"itens" json:"itens"` // jsonb array
	Observacoes      *string       `db:"observacoes" json:"observacoes"`
	UnidadePreferida *string       `db:"unidade_preferida" json:"unidadePreferida"`
	Status           string        `db:"status" json:"status"`
	CreatedAt        time.Time     `db:"created_at" json:"createdAt"`
}
