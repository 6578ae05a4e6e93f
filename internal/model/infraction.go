package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Situation is the payment state of an infraction notice.
type Situation string

const (
	SituationPending   Situation = "Pendente"
	SituationPaid      Situation = "Pago"
	SituationCancelled Situation = "Cancelado"
)

// InfractionRecord is an "Auto de Infração" as stored in the autos_infracao collection.
// Field keys follow the documents written by the ingestion process.
type InfractionRecord struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`

	InfractionNumber string    `bson:"numero_auto_infracao" json:"numero_auto_infracao"`
	Situation        Situation `bson:"situacao,omitempty" json:"situacao,omitempty"`

	OffenderName           string `bson:"infrator_nome" json:"infrator_nome"`
	OffenderTaxID          string `bson:"infrator_cpf_cnpj,omitempty" json:"infrator_cpf_cnpj,omitempty"`
	OffenderClassification string `bson:"infrator_classificacao,omitempty" json:"infrator_classificacao,omitempty"`

	VehiclePlate        string `bson:"veiculo_placa,omitempty" json:"veiculo_placa,omitempty"`
	VehicleState        string `bson:"veiculo_uf,omitempty" json:"veiculo_uf,omitempty"`
	VehicleCity         string `bson:"veiculo_municipio,omitempty" json:"veiculo_municipio,omitempty"`
	VehicleMake         string `bson:"veiculo_marca,omitempty" json:"veiculo_marca,omitempty"`
	VehicleModel        string `bson:"veiculo_modelo,omitempty" json:"veiculo_modelo,omitempty"`
	VehicleKind         string `bson:"veiculo_especie,omitempty" json:"veiculo_especie,omitempty"`
	VehicleRegistration string `bson:"veiculo_renavam,omitempty" json:"veiculo_renavam,omitempty"`

	CarrierName  string `bson:"transportador_nome,omitempty" json:"transportador_nome,omitempty"`
	CarrierTaxID string `bson:"transportador_cpf_cnpj,omitempty" json:"transportador_cpf_cnpj,omitempty"`

	DocType        string `bson:"doc_tipo,omitempty" json:"doc_tipo,omitempty"`
	DocNumber      string `bson:"doc_numero,omitempty" json:"doc_numero,omitempty"`
	DocKey         string `bson:"doc_chave,omitempty" json:"doc_chave,omitempty"`
	DocIssuerTaxID string `bson:"doc_emissor_cpf_cnpj,omitempty" json:"doc_emissor_cpf_cnpj,omitempty"`
	DocIssuedAt    *Date  `bson:"doc_data_emissao,omitempty" json:"doc_data_emissao,omitempty"`

	Location         string `bson:"local_infracao,omitempty" json:"local_infracao,omitempty"`
	OccurredAt       *Date  `bson:"local_data,omitempty" json:"local_data,omitempty"`
	OccurredTime     string `bson:"local_hora,omitempty" json:"local_hora,omitempty"`
	LocationState    string `bson:"local_uf,omitempty" json:"local_uf,omitempty"`
	LocationCity     string `bson:"local_municipio,omitempty" json:"local_municipio,omitempty"`
	OriginState      string `bson:"origem_uf,omitempty" json:"origem_uf,omitempty"`
	OriginCity       string `bson:"origem_municipio,omitempty" json:"origem_municipio,omitempty"`
	DestinationState string `bson:"destino_uf,omitempty" json:"destino_uf,omitempty"`
	DestinationCity  string `bson:"destino_municipio,omitempty" json:"destino_municipio,omitempty"`

	Resolution         string `bson:"resolucao,omitempty" json:"resolucao,omitempty"`
	InfractionCode     string `bson:"codigo_infracao,omitempty" json:"codigo_infracao,omitempty"`
	Article            string `bson:"artigo,omitempty" json:"artigo,omitempty"`
	Clause             string `bson:"inciso,omitempty" json:"inciso,omitempty"`
	Item               string `bson:"alinea,omitempty" json:"alinea,omitempty"`
	Description        string `bson:"descricao_infracao,omitempty" json:"descricao_infracao,omitempty"`
	LegalBasis         string `bson:"amparo_legal,omitempty" json:"amparo_legal,omitempty"`
	AgentNotes         string `bson:"observacoes_agente,omitempty" json:"observacoes_agente,omitempty"`
	DefenseDeadlineDay *int   `bson:"prazo_defesa_dias,omitempty" json:"prazo_defesa_dias,omitempty"`
	CeaseOrder         string `bson:"ordem_cessacao_pratica,omitempty" json:"ordem_cessacao_pratica,omitempty"`
	AgentID            string `bson:"agente_matricula,omitempty" json:"agente_matricula,omitempty"`
	AgentDate          *Date  `bson:"agente_data,omitempty" json:"agente_data,omitempty"`

	OriginDistance            string   `bson:"distancia_origem,omitempty" json:"distancia_origem,omitempty"`
	DestinationDistance       string   `bson:"distancia_destino,omitempty" json:"distancia_destino,omitempty"`
	OriginDestinationDistance *float64 `bson:"distancia_origem_destino_km,omitempty" json:"distancia_origem_destino_km,omitempty"`

	FreightFloor `bson:",inline"`

	Meta InfractionMeta `bson:"meta,omitempty" json:"meta"`

	CreatedAt Date `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt Date `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// FreightFloor groups the minimum freight ("piso mínimo") fields.
// It is embedded so both BSON and JSON keep the flat document shape.
type FreightFloor struct {
	CargoType        string   `bson:"piso_minimo_tipo_carga,omitempty" json:"piso_minimo_tipo_carga,omitempty"`
	ContractType     string   `bson:"piso_minimo_tipo_contratacao,omitempty" json:"piso_minimo_tipo_contratacao,omitempty"`
	CCD              *float64 `bson:"piso_minimo_ccd,omitempty" json:"piso_minimo_ccd,omitempty"`
	CC               *float64 `bson:"piso_minimo_cc,omitempty" json:"piso_minimo_cc,omitempty"`
	OutboundKm       *float64 `bson:"piso_minimo_distancia_ida_km,omitempty" json:"piso_minimo_distancia_ida_km,omitempty"`
	ReturnKm         *float64 `bson:"piso_minimo_distancia_retorno_km,omitempty" json:"piso_minimo_distancia_retorno_km,omitempty"`
	TotalAxles       *float64 `bson:"piso_minimo_quantidade_total_eixos,omitempty" json:"piso_minimo_quantidade_total_eixos,omitempty"`
	FreightReais     *float64 `bson:"piso_minimo_frete_reais,omitempty" json:"piso_minimo_frete_reais,omitempty"`
	FreightPaidReais *float64 `bson:"piso_minimo_frete_pago_reais,omitempty" json:"piso_minimo_frete_pago_reais,omitempty"`
}

// InfractionMeta carries ingestion metadata. Document dates are YYYY-MM-DD days.
type InfractionMeta struct {
	DocumentIssuedOn  Day    `bson:"data_emissao_documento,omitempty" json:"data_emissao_documento,omitempty"`
	DocumentShippedOn Day    `bson:"data_expedicao_documento,omitempty" json:"data_expedicao_documento,omitempty"`
	Source            string `bson:"fonte,omitempty" json:"fonte,omitempty"`
	SourceFile        string `bson:"arquivo_origem,omitempty" json:"arquivo_origem,omitempty"`
}
