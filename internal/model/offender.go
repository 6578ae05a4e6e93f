package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Offender is a registered "Infrator" in the infratores collection.
// It is linked to infraction records only by name or tax ID.
type Offender struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"nome" json:"nome"`
	CNPJ      string             `bson:"cnpj,omitempty" json:"cnpj,omitempty"`
	CPF       string             `bson:"cpf,omitempty" json:"cpf,omitempty"`
	Address   *Address           `bson:"endereco,omitempty" json:"endereco,omitempty"`
	Contact   *Contact           `bson:"contato,omitempty" json:"contato,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

type Address struct {
	Street       string `bson:"logradouro,omitempty" json:"logradouro,omitempty"`
	Number       string `bson:"numero,omitempty" json:"numero,omitempty"`
	Complement   string `bson:"complemento,omitempty" json:"complemento,omitempty"`
	Neighborhood string `bson:"bairro,omitempty" json:"bairro,omitempty"`
	City         string `bson:"cidade,omitempty" json:"cidade,omitempty"`
	State        string `bson:"estado,omitempty" json:"estado,omitempty"`
	PostalCode   string `bson:"cep,omitempty" json:"cep,omitempty"`
}

type Contact struct {
	Phone string `bson:"telefone,omitempty" json:"telefone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// OffenderSummary is a distinct (name, tax ID) pair found in infraction records.
type OffenderSummary struct {
	Name  string `bson:"nome" json:"nome"`
	TaxID string `bson:"cnpj" json:"cnpj"`
}
