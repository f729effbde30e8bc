package types

import "time"

type NecessidadeStatus string

const (
	NecessidadeStatusPendente  NecessidadeStatus = "pendente"
	NecessidadeStatusEmAnalise NecessidadeStatus = "em_analise"
	NecessidadeStatusParcial   NecessidadeStatus = "parcial"
	NecessidadeStatusAtendida  NecessidadeStatus = "atendida"
)

// EnderecoEntrega is the delivery target for a requested item: a street
// address or raw GPS coordinates.
type EnderecoEntrega struct {
	Endereco string     `json:"endereco,omitempty"`
	Cidade   string     `json:"cidade,omitempty"`
	Estado   string     `json:"estado,omitempty"`
	CEP      string     `json:"cep,omitempty"`
	Coords   *GeoCoords `json:"coords,omitempty"`
}

// Necessidade is one row per requested item within a submitted
// need-request. The requester contact fields are a snapshot taken at
// submission time; user_id is the only informal link back to the
// beneficiary record.
type Necessidade struct {
	ID                string            `db:"id" json:"id"`
	UserID            *string           `db:"user_id" json:"userId"`
	Nome              string            `db:"nome" json:"nome"`
	Email             string            `db:"email" json:"email"`
	Telefone          string            `db:"telefone" json:"telefone"`
	Item              string            `db:"item" json:"item"`
	Categoria         string            `db:"categoria" json:"categoria"`
	Quantidade        int               `db:"quantidade" json:"quantidade"`
	Unidade           string            `db:"unidade" json:"unidade"`
	Prioridade        string            `db:"prioridade" json:"prioridade"`
	EnderecoEntrega   *EnderecoEntrega  `db:"endereco_entrega" json:"enderecoEntrega"` // jsonb
	Status            NecessidadeStatus `db:"status" json:"status"`
	ObservacaoInterna string            `db:"observacao_interna" json:"observacaoInterna"`
	CriadoEm          time.Time         `db:"criado_em" json:"criadoEm"`
	AtualizadoEm      time.Time         `db:"atualizado_em" json:"atualizadoEm"`
}
