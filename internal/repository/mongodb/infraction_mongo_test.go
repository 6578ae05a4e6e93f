package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"multasapi/internal/model"
	"multasapi/internal/repository"
)

func infractionsNS(mt *mtest.T) string {
	return mt.DB.Name() + "." + InfractionsCollection
}

func TestInfractionMongo_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewInfractionMongo(mt.DB)
		ns := infractionsNS(mt)
		id := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(11)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "numero_auto_infracao", Value: "AI0001"},
				{Key: "infrator_nome", Value: "Transportes Silva"},
				{Key: "situacao", Value: "Pendente"},
				{Key: "meta", Value: bson.D{{Key: "arquivo_origem", Value: "lote/AI0001.pdf"}}},
			}),
		)

		res, err := repo.List(context.Background(), repository.InfractionFilter{Search: "AI"}, repository.PageQuery{Limit: 10, Offset: 10})
		require.NoError(t, err)
		assert.Equal(t, 11, res.Total)
		require.Len(t, res.Items, 1)
		assert.Equal(t, id, res.Items[0].ID)
		assert.Equal(t, "AI0001", res.Items[0].InfractionNumber)
		assert.Equal(t, model.SituationPending, res.Items[0].Situation)
		assert.Equal(t, "lote/AI0001.pdf", res.Items[0].Meta.SourceFile)
	})

	mt.Run("dates stored as datetimes or strings", func(mt *mtest.T) {
		repo := NewInfractionMongo(mt.DB)
		ns := infractionsNS(mt)
		occurred := time.Date(2024, 3, 1, 13, 30, 0, 0, time.UTC)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{
					{Key: "numero_auto_infracao", Value: "AI0001"},
					{Key: "local_data", Value: occurred},
					{Key: "createdAt", Value: occurred},
					{Key: "meta", Value: bson.D{
						{Key: "data_emissao_documento", Value: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)},
						{Key: "data_expedicao_documento", Value: "2024-02-21"},
					}},
				},
				bson.D{
					{Key: "numero_auto_infracao", Value: "AI0002"},
					{Key: "local_data", Value: "2024-03-01"},
					{Key: "createdAt", Value: "2024-03-01T13:30:00Z"},
					{Key: "meta", Value: bson.D{
						{Key: "data_emissao_documento", Value: "2024-02-20T00:00:00.000Z"},
						{Key: "data_expedicao_documento", Value: time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC)},
					}},
				},
			),
		)

		res, err := repo.List(context.Background(), repository.InfractionFilter{}, repository.PageQuery{Limit: 10})
		require.NoError(t, err)
		require.Len(t, res.Items, 2)

		for _, rec := range res.Items {
			require.NotNil(t, rec.OccurredAt, rec.InfractionNumber)
			assert.Equal(t, "2024-03-01", rec.OccurredAt.Format(time.DateOnly))
			assert.Equal(t, model.Day("2024-02-20"), rec.Meta.DocumentIssuedOn)
			assert.Equal(t, model.Day("2024-02-21"), rec.Meta.DocumentShippedOn)
			assert.Nil(t, rec.AgentDate)
		}
		assert.True(t, occurred.Equal(res.Items[0].CreatedAt.Time))
		assert.True(t, occurred.Equal(res.Items[1].CreatedAt.Time))
	})

	mt.Run("count error", func(mt *mtest.T) {
		repo := NewInfractionMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad filter",
		}))

		res, err := repo.List(context.Background(), repository.InfractionFilter{}, repository.PageQuery{Limit: 10})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "count infractions")
		assert.Nil(t, res)
	})
}

func TestInfractionMongo_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewInfractionMongo(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, infractionsNS(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "numero_auto_infracao", Value: "AI0002"},
			{Key: "infrator_nome", Value: "Acme"},
		}))

		rec, err := repo.FindByID(context.Background(), id.Hex())
		require.NoError(t, err)
		assert.Equal(t, "AI0002", rec.InfractionNumber)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewInfractionMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, infractionsNS(mt), mtest.FirstBatch))

		rec, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, rec)
	})

	mt.Run("invalid id", func(mt *mtest.T) {
		repo := NewInfractionMongo(mt.DB)

		rec, err := repo.FindByID(context.Background(), "not-an-object-id")
		assert.Error(t, err)
		assert.Nil(t, rec)
	})
}

func TestInfractionMongo_DistinctOffenders(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewInfractionMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, infractionsNS(mt), mtest.FirstBatch,
			bson.D{{Key: "nome", Value: "Acme"}, {Key: "cnpj", Value: "00.000.000/0001-00"}},
			bson.D{{Key: "nome", Value: "Beta"}},
		))

		got, err := repo.DistinctOffenders(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []model.OffenderSummary{
			{Name: "Acme", TaxID: "00.000.000/0001-00"},
			{Name: "Beta"},
		}, got)
	})
}

func TestInfractionMongo_GroupBySourceFile(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewInfractionMongo(mt.DB)
		processed := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, infractionsNS(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "lote/AI0001.pdf"},
			{Key: "count", Value: int32(3)},
			{Key: "firstProcessedAt", Value: processed},
			{Key: "infratores", Value: bson.A{"Acme", "Beta"}},
		}))

		got, err := repo.GroupBySourceFile(context.Background(), repository.ProcessedFileFilter{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "lote/AI0001.pdf", got[0].Path)
		assert.Equal(t, int64(3), got[0].Count)
		assert.True(t, processed.Equal(got[0].FirstProcessedAt.Time))
		assert.ElementsMatch(t, []string{"Acme", "Beta"}, got[0].Offenders)
	})
}

func TestInfractionMongo_DeleteBySourceFile(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewInfractionMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(2)}))

		n, err := repo.DeleteBySourceFile(context.Background(), "lote/AI0001.pdf")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	mt.Run("error", func(mt *mtest.T) {
		repo := NewInfractionMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))

		n, err := repo.DeleteBySourceFile(context.Background(), "lote/AI0001.pdf")
		assert.Error(t, err)
		assert.Zero(t, n)
	})
}
