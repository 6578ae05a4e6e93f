package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDay_UnmarshalBSONValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Day
	}{
		{name: "plain day", value: "2024-03-01", want: "2024-03-01"},
		{name: "timestamp string", value: "2024-03-01T00:00:00.000Z", want: "2024-03-01"},
		{name: "datetime", value: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), want: "2024-03-01"},
		{name: "datetime late in the day", value: time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC), want: "2024-03-01"},
		{name: "free text kept", value: "março/2024", want: "março/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := bson.Marshal(bson.D{{Key: "data_emissao_documento", Value: tt.value}})
			require.NoError(t, err)

			var meta InfractionMeta
			require.NoError(t, bson.Unmarshal(doc, &meta))
			assert.Equal(t, tt.want, meta.DocumentIssuedOn)
		})
	}

	t.Run("unsupported type", func(t *testing.T) {
		doc, err := bson.Marshal(bson.D{{Key: "data_emissao_documento", Value: int32(20240301)}})
		require.NoError(t, err)

		var meta InfractionMeta
		assert.Error(t, bson.Unmarshal(doc, &meta))
	})
}

func TestDate_UnmarshalBSONValue(t *testing.T) {
	want := time.Date(2024, 3, 1, 13, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{name: "datetime", value: want, want: want},
		{name: "rfc3339", value: "2024-03-01T10:30:00-03:00", want: want},
		{name: "no zone", value: "2024-03-01T13:30:00", want: want},
		{name: "day only", value: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "unparseable", value: "ontem", want: time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := bson.Marshal(bson.D{{Key: "local_data", Value: tt.value}, {Key: "createdAt", Value: tt.value}})
			require.NoError(t, err)

			var rec InfractionRecord
			require.NoError(t, bson.Unmarshal(doc, &rec))
			require.NotNil(t, rec.OccurredAt)
			assert.True(t, tt.want.Equal(rec.OccurredAt.Time), "got %s", rec.OccurredAt.Time)
			assert.True(t, tt.want.Equal(rec.CreatedAt.Time), "got %s", rec.CreatedAt.Time)
		})
	}
}

func TestDate_RoundTrip(t *testing.T) {
	occurred := time.Date(2024, 3, 1, 13, 30, 0, 0, time.UTC)
	rec := InfractionRecord{InfractionNumber: "AI-1", OccurredAt: NewDate(occurred)}

	doc, err := bson.Marshal(rec)
	require.NoError(t, err)

	raw := bson.Raw(doc)
	assert.Equal(t, bson.TypeDateTime, raw.Lookup("local_data").Type)
	_, err = raw.LookupErr("agente_data")
	assert.Error(t, err, "nil dates are omitted")

	body, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"local_data":"2024-03-01T13:30:00Z"`)
}
