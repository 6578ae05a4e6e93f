package service

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"multasapi/internal/model"
)

const utf8BOM = "\ufeff"

var exportColumns = []string{
	"numero_auto_infracao",
	"infrator_nome",
	"infrator_cpf_cnpj",
	"infrator_classificacao",
	"veiculo_placa",
	"veiculo_uf",
	"veiculo_municipio",
	"veiculo_marca",
	"veiculo_modelo",
	"veiculo_especie",
	"veiculo_renavam",
	"transportador_nome",
	"transportador_cpf_cnpj",
	"doc_tipo",
	"doc_numero",
	"doc_chave",
	"doc_emissor_cpf_cnpj",
	"doc_data_emissao",
	"local_infracao",
	"local_data",
	"local_hora",
	"local_uf",
	"local_municipio",
	"origem_uf",
	"origem_municipio",
	"destino_uf",
	"destino_municipio",
	"resolucao",
	"codigo_infracao",
	"artigo",
	"inciso",
	"alinea",
	"descricao_infracao",
	"amparo_legal",
	"observacoes_agente",
	"prazo_defesa_dias",
	"ordem_cessacao_pratica",
	"agente_matricula",
	"agente_data",
	"situacao",
	"data_emissao_documento",
	"data_expedicao_documento",
	"fonte",
	"createdAt",
	"updatedAt",
}

// writeCSV renders records with a BOM so spreadsheet tools detect UTF-8.
func writeCSV(w io.Writer, records []model.InfractionRecord, loc *time.Location) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return err
	}
	for i := range records {
		if err := cw.Write(exportRow(&records[i], loc)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(r *model.InfractionRecord, loc *time.Location) []string {
	return []string{
		r.InfractionNumber,
		r.OffenderName,
		r.OffenderTaxID,
		r.OffenderClassification,
		r.VehiclePlate,
		r.VehicleState,
		r.VehicleCity,
		r.VehicleMake,
		r.VehicleModel,
		r.VehicleKind,
		r.VehicleRegistration,
		r.CarrierName,
		r.CarrierTaxID,
		r.DocType,
		r.DocNumber,
		r.DocKey,
		r.DocIssuerTaxID,
		brDate(r.DocIssuedAt, loc),
		r.Location,
		brDate(r.OccurredAt, loc),
		r.OccurredTime,
		r.LocationState,
		r.LocationCity,
		r.OriginState,
		r.OriginCity,
		r.DestinationState,
		r.DestinationCity,
		r.Resolution,
		r.InfractionCode,
		r.Article,
		r.Clause,
		r.Item,
		r.Description,
		r.LegalBasis,
		r.AgentNotes,
		intString(r.DefenseDeadlineDay),
		r.CeaseOrder,
		r.AgentID,
		brDate(r.AgentDate, loc),
		string(r.Situation),
		brDayString(string(r.Meta.DocumentIssuedOn)),
		brDayString(string(r.Meta.DocumentShippedOn)),
		r.Meta.Source,
		brTime(r.CreatedAt.Time, loc),
		brTime(r.UpdatedAt.Time, loc),
	}
}

func brDate(d *model.Date, loc *time.Location) string {
	if d == nil {
		return ""
	}
	return brTime(d.Time, loc)
}

func brTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("02/01/2006")
}

// brDayString reformats a stored YYYY-MM-DD day. It is a calendar day, not an instant,
// so no zone conversion applies. Unparseable values pass through unchanged.
func brDayString(s string) string {
	if s == "" {
		return ""
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}
	return d.Format("02/01/2006")
}

func intString(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
