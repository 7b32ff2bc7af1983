package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeLabel(t *testing.T) {
	merged := MergeLabel(Label{Value: "job_card_open", Source: "override"}, Label{Value: "mileage", Source: "rule"})
	assert.Equal(t, Label{Value: "job_card_open|mileage", Source: "override,rule"}, merged)

	assert.Equal(t, Label{Value: "a", Source: "x"}, MergeLabel(Label{}, Label{Value: "a", Source: "x"}))
	assert.Equal(t, Label{Value: "a", Source: "x"}, MergeLabel(Label{Value: "a", Source: "x"}, Label{}))
}

func TestLabelValues(t *testing.T) {
	assert.Equal(t,
		map[string]string{"override": "job_card_open", "rank_model": "linear"},
		LabelValues(map[string]Label{
			"override":   {Value: "job_card_open", Source: "override"},
			"rank_model": {Value: "linear", Source: "rank"},
		}))
	assert.Empty(t, LabelValues(nil))
}
