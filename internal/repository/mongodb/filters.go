package mongodb

import (
	"path"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"multasapi/internal/repository"
)

// containsPattern builds a case-insensitive "contains" regex from user input.
// The term is escaped so it always matches literally.
func containsPattern(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func infractionFilter(f repository.InfractionFilter) bson.M {
	filter := bson.M{}
	if offender := strings.TrimSpace(f.Offender); offender != "" {
		filter["infrator_nome"] = containsPattern(offender)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		p := containsPattern(search)
		filter["$or"] = bson.A{
			bson.M{"numero_auto_infracao": p},
			bson.M{"descricao_infracao": p},
			bson.M{"infrator_nome": p},
		}
	}
	return filter
}

func processedFileMatch(f repository.ProcessedFileFilter) bson.M {
	match := bson.M{}
	if name := strings.TrimSpace(f.FileName); name != "" {
		p := containsPattern(name)
		match["$or"] = bson.A{
			bson.M{"meta.arquivo_origem": p},
			bson.M{"numero_auto_infracao": p},
		}
	}
	if offender := strings.TrimSpace(f.Offender); offender != "" {
		match["infrator_nome"] = containsPattern(offender)
	}
	if r := stringRange(f.ShippedFrom, f.ShippedTo); r != nil {
		match["meta.data_expedicao_documento"] = r
	}
	if r := stringRange(f.IssuedFrom, f.IssuedTo); r != nil {
		match["meta.data_emissao_documento"] = r
	}
	return match
}

// stringRange compares YYYY-MM-DD strings, which order lexicographically.
func stringRange(from, to string) bson.M {
	if from == "" && to == "" {
		return nil
	}
	r := bson.M{}
	if from != "" {
		r["$gte"] = from
	}
	if to != "" {
		r["$lte"] = to
	}
	return r
}

// sourceFileFilter matches records linked to a bucket key either explicitly
// through meta.arquivo_origem or by an infraction number equal to the file stem.
func sourceFileFilter(filePath string) bson.M {
	base := path.Base(filePath)
	stem := strings.TrimSuffix(base, path.Ext(base))
	return bson.M{"$or": bson.A{
		bson.M{"meta.arquivo_origem": filePath},
		bson.M{"numero_auto_infracao": stem},
	}}
}

func sourceFilePipeline(f repository.ProcessedFileFilter) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if match := processedFileMatch(f); len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	inferredPath := bson.D{{Key: "$ifNull", Value: bson.A{
		"$meta.arquivo_origem",
		bson.D{{Key: "$concat", Value: bson.A{"$numero_auto_infracao", ".pdf"}}},
	}}}

	return append(pipeline,
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: inferredPath},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "firstProcessedAt", Value: bson.D{{Key: "$min", Value: "$createdAt"}}},
			{Key: "infratores", Value: bson.D{{Key: "$addToSet", Value: "$infrator_nome"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "firstProcessedAt", Value: -1}}}},
	)
}

func distinctOffendersPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "nome", Value: "$infrator_nome"},
				{Key: "cnpj", Value: "$infrator_cpf_cnpj"},
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "nome", Value: "$_id.nome"},
			{Key: "cnpj", Value: "$_id.cnpj"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "nome", Value: 1}, {Key: "cnpj", Value: 1}}}},
	}
}

func offenderFilter(search string) bson.M {
	search = strings.TrimSpace(search)
	if search == "" {
		return bson.M{}
	}
	p := containsPattern(search)
	return bson.M{"$or": bson.A{
		bson.M{"nome": p},
		bson.M{"cnpj": p},
		bson.M{"cpf": p},
	}}
}
