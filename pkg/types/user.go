package types

import "time"

// User is an end-user account (donor or applicant) authenticated with a
// bearer token, separate from the admin session.
type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Senha     string    `db:"senha" json:"-"` // bcrypt hash, never serialized
	Telefone  string    `db:"telefone" json:"telefone"`
	Endereco  string    `db:"endereco" json:"endereco"`
	Cidade    string    `db:"cidade" json:"cidade"`
	Estado    string    `db:"estado" json:"estado"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
