package rank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/filter"
	"github.com/rushteam/fleetrank/model"
)

// firstColumnModel 以 fitness_rs_days 作为分数，方便在测试里直接控制排序。
func firstColumnModel(calls *int) model.Model {
	return model.Func{ModelName: "stub", Fn: func(_ context.Context, rows [][]float64) ([]float64, error) {
		if calls != nil {
			*calls++
		}
		out := make([]float64, len(rows))
		for i, row := range rows {
			out[i] = row[0]
		}
		return out, nil
	}}
}

func train(id string, score float64, jobCard string) core.TrainRecord {
	return core.NewTrainRecord(map[string]any{
		"trainset_id":      id,
		"fitness_rs_days":  json.Number(fmt.Sprint(score)),
		"fitness_sig_days": json.Number("30"),
		"fitness_tel_days": json.Number("30"),
		"branding_hours":   json.Number("0"),
		"mileage_km":       json.Number("50000"),
		"cleaning_slots":   json.Number("1"),
		"stabling_score":   json.Number("50"),
		"job_card_status":  jobCard,
	})
}

func ids(records []core.ScoredRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i], _ = r.Train.String("trainset_id")
	}
	return out
}

func rank(t *testing.T, e *Engine, records []core.TrainRecord) []core.ScoredRecord {
	t.Helper()
	out, err := e.Rank(context.Background(), core.NewRankContext("test"), records)
	require.NoError(t, err)
	return out
}

func TestEngine_ScenarioA_OpenJobCards(t *testing.T) {
	records := make([]core.TrainRecord, 0, 20)
	for i := 0; i < 20; i++ {
		status := core.JobCardClosed
		if i%4 == 0 {
			status = core.JobCardOpen
		}
		records = append(records, train(fmt.Sprintf("T%02d", i), float64(100-i), status))
	}

	out := rank(t, NewEngine(firstColumnModel(nil)), records)
	s := core.Summarize(out)
	assert.Equal(t, core.Summary{Revenue: 15, Standby: 0, Maintenance: 5}, s)
	assert.Equal(t, []string{"T00", "T04", "T08", "T12", "T16"}, ids(out[15:]))
	for _, r := range out[15:] {
		assert.True(t, r.PredictedScore.IsMaintenance())
	}
}

func TestEngine_ScenarioB_ScoreOrder(t *testing.T) {
	records := []core.TrainRecord{
		train("record1", 5, core.JobCardClosed),
		train("record2", 2, core.JobCardClosed),
		train("record3", 8, core.JobCardClosed),
	}

	out := rank(t, NewEngine(firstColumnModel(nil)), records)
	assert.Equal(t, []string{"record3", "record1", "record2"}, ids(out))
	assert.Equal(t, []core.Score{8, 5, 2}, []core.Score{out[0].PredictedScore, out[1].PredictedScore, out[2].PredictedScore})
	for _, r := range out {
		assert.Equal(t, core.DecisionRevenue, r.Decision)
	}
}

func TestEngine_ScenarioC_Empty(t *testing.T) {
	calls := 0
	out := rank(t, NewEngine(firstColumnModel(&calls)), []core.TrainRecord{})
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Zero(t, calls, "model must not be called for an empty batch")
}

func TestEngine_ScenarioD_InvalidCategory(t *testing.T) {
	calls := 0
	records := []core.TrainRecord{
		train("ok", 1, core.JobCardClosed),
		train("bad", 2, "unknown"),
	}
	out, err := NewEngine(firstColumnModel(&calls)).Rank(context.Background(), nil, records)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, core.IsInvalidCategory(err))
	assert.Zero(t, calls)
}

func TestEngine_StandbyAfterCutoff(t *testing.T) {
	records := make([]core.TrainRecord, 0, 25)
	for i := 0; i < 25; i++ {
		records = append(records, train(fmt.Sprintf("T%02d", i), float64(i), core.JobCardClosed))
	}

	out := rank(t, NewEngine(firstColumnModel(nil)), records)
	assert.Equal(t, core.Summary{Revenue: 15, Standby: 10}, core.Summarize(out))
	assert.Equal(t, "T24", ids(out)[0])
	assert.Equal(t, core.DecisionStandby, out[15].Decision)
	assert.Equal(t, "T09", ids(out)[15])
}

func TestEngine_RevenueSlotsOption(t *testing.T) {
	records := []core.TrainRecord{
		train("a", 1, core.JobCardClosed),
		train("b", 3, core.JobCardClosed),
		train("c", 2, core.JobCardClosed),
	}
	out := rank(t, NewEngine(firstColumnModel(nil), WithRevenueSlots(1)), records)
	assert.Equal(t, []string{"b", "c", "a"}, ids(out))
	assert.Equal(t, core.Summary{Revenue: 1, Standby: 2}, core.Summarize(out))
}

func TestEngine_OverrideRulesOption(t *testing.T) {
	rules, err := filter.NewExprRules([]string{"train.mileage_km > 100000"})
	require.NoError(t, err)

	high := train("high", 9, core.JobCardClosed)
	high.Fields["mileage_km"] = json.Number("150000")
	records := []core.TrainRecord{high, train("low", 1, core.JobCardClosed)}

	out := rank(t, NewEngine(firstColumnModel(nil), WithOverrideRules(rules...)), records)
	assert.Equal(t, []string{"low", "high"}, ids(out))
	assert.Equal(t, core.DecisionMaintenance, out[1].Decision)
}

func TestEngine_ModelNegativeInfinityIsMaintenance(t *testing.T) {
	m := model.Func{Fn: func(_ context.Context, rows [][]float64) ([]float64, error) {
		return []float64{math.Inf(-1), 1}, nil
	}}
	out := rank(t, NewEngine(m), []core.TrainRecord{
		train("a", 0, core.JobCardClosed),
		train("b", 0, core.JobCardClosed),
	})
	assert.Equal(t, []string{"b", "a"}, ids(out))
	assert.Equal(t, core.DecisionMaintenance, out[1].Decision)
}

func TestEngine_ScoringErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func(context.Context, [][]float64) ([]float64, error)
	}{
		{
			name: "predict fails",
			fn: func(context.Context, [][]float64) ([]float64, error) {
				return nil, errors.New("model crashed")
			},
		},
		{
			name: "length mismatch",
			fn: func(context.Context, [][]float64) ([]float64, error) {
				return []float64{1}, nil
			},
		},
		{
			name: "nan score",
			fn: func(_ context.Context, rows [][]float64) ([]float64, error) {
				return []float64{1, math.NaN()}, nil
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(model.Func{Fn: tt.fn})
			out, err := e.Rank(context.Background(), nil, []core.TrainRecord{
				train("a", 1, core.JobCardClosed),
				train("b", 2, core.JobCardClosed),
			})
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, core.IsScoringError(err), "got %v", err)
		})
	}
}

func TestEngine_NilModel(t *testing.T) {
	_, err := NewEngine(nil).Rank(context.Background(), nil, []core.TrainRecord{train("a", 1, core.JobCardClosed)})
	assert.True(t, core.IsScoringError(err))
}

// TestEngine_Properties 在随机批次上检查分桶的各项不变量。
func TestEngine_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := NewEngine(firstColumnModel(nil))

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		records := make([]core.TrainRecord, n)
		openIDs := map[string]bool{}
		for i := range records {
			id := fmt.Sprintf("T%02d", i)
			status := core.JobCardClosed
			if rng.Intn(4) == 0 {
				status = core.JobCardOpen
				openIDs[id] = true
			}
			// 分数取小整数，制造大量并列
			records[i] = train(id, float64(rng.Intn(5)), status)
		}

		out := rank(t, e, records)
		again := rank(t, e, records)
		assert.Equal(t, out, again, "ranking must be deterministic")

		// 完整性：每条输入恰好出现一次
		require.Len(t, out, n)
		seen := map[string]bool{}
		for _, id := range ids(out) {
			assert.False(t, seen[id])
			seen[id] = true
		}

		eligible := n - len(openIDs)
		s := core.Summarize(out)
		assert.Equal(t, n, s.Total())
		assert.Equal(t, min(core.DefaultRevenueSlotCount, eligible), s.Revenue)
		assert.Equal(t, len(openIDs), s.Maintenance)

		position := map[string]int{}
		for i := range records {
			id, _ := records[i].String("trainset_id")
			position[id] = i
		}
		for i, r := range out {
			id, _ := r.Train.String("trainset_id")
			if openIDs[id] {
				assert.Equal(t, core.DecisionMaintenance, r.Decision)
			}
			if i == 0 {
				continue
			}
			prev := out[i-1]
			prevID, _ := prev.Train.String("trainset_id")
			if prev.Decision == core.DecisionMaintenance {
				assert.Equal(t, core.DecisionMaintenance, r.Decision)
				assert.Less(t, position[prevID], position[id])
				continue
			}
			if r.Decision == core.DecisionMaintenance {
				continue
			}
			assert.GreaterOrEqual(t, float64(prev.PredictedScore), float64(r.PredictedScore))
			if prev.PredictedScore == r.PredictedScore {
				assert.Less(t, position[prevID], position[id], "ties keep input order")
			}
		}
	}
}

func TestEngine_DoesNotMutateInput(t *testing.T) {
	records := []core.TrainRecord{train("a", 1, core.JobCardOpen), train("b", 2, core.JobCardClosed)}
	_ = rank(t, NewEngine(firstColumnModel(nil)), records)

	assert.Equal(t, core.JobCardOpen, records[0].Fields["job_card_status"])
	assert.NotContains(t, records[0].Fields, core.FieldPredictedScore)
	assert.NotContains(t, records[1].Fields, core.FieldDecision)
}
