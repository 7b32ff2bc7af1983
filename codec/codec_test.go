package codec

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/fleetrank/core"
)

func TestDecodeRecords(t *testing.T) {
	records, err := DecodeRecords([]byte(`[
		{"trainset_id": "KMRL-01", "fitness_rs_days": 12, "job_card_status": "closed", "depot_code": 900719925474099312},
		{"trainset_id": "KMRL-02", "mileage_km": 1.5e5}
	]`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	id, ok := records[0].String("trainset_id")
	assert.True(t, ok)
	assert.Equal(t, "KMRL-01", id)
	assert.Equal(t, json.Number("900719925474099312"), records[0].Fields["depot_code"])
	assert.Equal(t, json.Number("1.5e5"), records[1].Fields["mileage_km"])
}

func TestDecodeRecords_Empty(t *testing.T) {
	records, err := DecodeRecords([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDecodeRecords_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `[{"a":`},
		{name: "empty document", doc: ``},
		{name: "object", doc: `{"fitness_rs_days": 1}`},
		{name: "array of strings", doc: `["a"]`},
		{name: "string feature", doc: `[{"fitness_rs_days": "10"}]`},
		{name: "numeric job card status", doc: `[{"job_card_status": 1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, core.IsMalformedInput(err), "got %v", err)
		})
	}
}

func TestReadRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(`[{"job_card_status":"open"}]`))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestEncodeScored_SentinelRoundTrip(t *testing.T) {
	in := []core.ScoredRecord{
		{
			Train:          core.NewTrainRecord(map[string]any{"trainset_id": "A", "mileage_km": json.Number("100")}),
			PredictedScore: 0.75,
			Decision:       core.DecisionRevenue,
		},
		{
			Train:          core.NewTrainRecord(map[string]any{"trainset_id": "B"}),
			PredictedScore: core.Score(math.Inf(-1)),
			Decision:       core.DecisionMaintenance,
		},
	}

	data, err := EncodeScored(in, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"predicted_score":"-Infinity"`)
	assert.Contains(t, string(data), `"predicted_score":0.75`)
	assert.Contains(t, string(data), `"mileage_km":100`)

	out, err := DecodeScored(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, core.Score(0.75), out[0].PredictedScore)
	assert.True(t, out[1].PredictedScore.IsMaintenance())
	assert.Equal(t, core.DecisionMaintenance, out[1].Decision)
	assert.NotContains(t, out[1].Train.Fields, core.FieldPredictedScore)
	assert.NotContains(t, out[1].Train.Fields, core.FieldDecision)
}

func TestEncodeScored_EmptyIsArray(t *testing.T) {
	data, err := EncodeScored(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteScored_NaNWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	err := WriteScored(&buf, []core.ScoredRecord{{PredictedScore: core.Score(math.NaN())}}, true)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
