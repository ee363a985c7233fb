package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testWeights = WeightTable{
		{Name: "trend", Weight: 0.5},
		{Name: "margin", Weight: 0.5},
	}
	testThresholds = GradeThresholds{
		{Min: 90, Label: "A"},
		{Min: 70, Label: "B"},
		{Min: 0, Label: "C"},
	}
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name       string
		weights    WeightTable
		thresholds GradeThresholds
		wantErr    bool
	}{
		{"valid", testWeights, testThresholds, false},
		{"empty weights", WeightTable{}, testThresholds, true},
		{"nil weights", nil, testThresholds, true},
		{"negative weight", WeightTable{{Name: "a", Weight: -0.1}}, testThresholds, true},
		{"unnamed factor", WeightTable{{Name: "", Weight: 0.5}}, testThresholds, true},
		{"duplicate factor", WeightTable{{Name: "a", Weight: 0.5}, {Name: "a", Weight: 0.5}}, testThresholds, true},
		{"empty thresholds", testWeights, GradeThresholds{}, true},
		{"unordered thresholds", testWeights, GradeThresholds{{Min: 50, Label: "B"}, {Min: 90, Label: "A"}}, true},
		{"equal thresholds", testWeights, GradeThresholds{{Min: 50, Label: "B"}, {Min: 50, Label: "A"}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.weights, tc.thresholds)
			if tc.wantErr {
				require.Error(t, err)
				var cfgErr *ConfigurationError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestMust_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		Must(WeightTable{}, testThresholds)
	})
	assert.NotPanics(t, func() {
		Must(testWeights, testThresholds)
	})
}

func TestScore_WorkedExample(t *testing.T) {
	s := Must(testWeights, testThresholds)

	r := s.Score(FactorSet{"trend": 80, "margin": 100})
	assert.InDelta(t, 90.0, r.Total, 1e-9)
	assert.Equal(t, "A", r.Grade)
	// stddev([80,100]) = 10, so confidence = 90
	assert.InDelta(t, 90.0, r.Confidence, 1e-9)
}

func TestScore_MissingFactorScoresZero(t *testing.T) {
	s := Must(testWeights, testThresholds)

	r := s.Score(FactorSet{"trend": 50})
	assert.InDelta(t, 25.0, r.Total, 1e-9)
	assert.Equal(t, "C", r.Grade)
	assert.Equal(t, 0.0, r.Factors["margin"])

	// Omitting a factor is equivalent to supplying it as zero.
	explicit := s.Score(FactorSet{"trend": 50, "margin": 0})
	assert.Equal(t, explicit, r)
}

func TestScore_Deterministic(t *testing.T) {
	s := Must(testWeights, testThresholds)
	in := FactorSet{"trend": 73.2, "margin": 41.7}

	first := s.Score(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Score(in))
	}
}

func TestScore_ZeroFloorAndMaxCeiling(t *testing.T) {
	s := Must(testWeights, testThresholds)

	floor := s.Score(FactorSet{"trend": 0, "margin": 0})
	assert.Equal(t, 0.0, floor.Total)
	assert.Equal(t, "C", floor.Grade)
	assert.Equal(t, 100.0, floor.Confidence)

	ceiling := s.Score(FactorSet{"trend": 100, "margin": 100})
	assert.InDelta(t, 100.0, ceiling.Total, 1e-9)
	assert.Equal(t, "A", ceiling.Grade)
}

func TestScore_ConfidenceMonotonicity(t *testing.T) {
	s := Must(testWeights, testThresholds)

	// Same mean (50), increasing spread.
	agree := s.Score(FactorSet{"trend": 50, "margin": 50})
	mild := s.Score(FactorSet{"trend": 40, "margin": 60})
	wild := s.Score(FactorSet{"trend": 0, "margin": 100})

	assert.GreaterOrEqual(t, agree.Confidence, mild.Confidence)
	assert.GreaterOrEqual(t, mild.Confidence, wild.Confidence)
	assert.Equal(t, 0.0, wild.Confidence) // stddev 50 > 100-100
}

func TestScore_GradeBoundaryExact(t *testing.T) {
	s := Must(testWeights, testThresholds)

	// Total lands exactly on the 70 boundary.
	r := s.Score(FactorSet{"trend": 70, "margin": 70})
	assert.InDelta(t, 70.0, r.Total, 1e-9)
	assert.Equal(t, "B", r.Grade)
}

func TestScore_IgnoresUnknownFactors(t *testing.T) {
	s := Must(testWeights, testThresholds)

	r := s.Score(FactorSet{"trend": 50, "margin": 50, "bogus": 9000})
	assert.InDelta(t, 50.0, r.Total, 1e-9)
	assert.NotContains(t, r.Factors, "bogus")
}

func TestScore_UnclampedInputs(t *testing.T) {
	s := Must(testWeights, testThresholds)

	// Out-of-range values propagate as given.
	r := s.Score(FactorSet{"trend": 150, "margin": 150})
	assert.InDelta(t, 150.0, r.Total, 1e-9)
	assert.Equal(t, "A", r.Grade)
}

func TestScore_BelowEveryThreshold(t *testing.T) {
	s := Must(testWeights, GradeThresholds{
		{Min: 90, Label: "A"},
		{Min: 50, Label: "B"},
	})

	// No catch-all floor configured; lowest label still wins.
	r := s.Score(FactorSet{"trend": 10, "margin": 10})
	assert.Equal(t, "B", r.Grade)
}

func TestScore_DoesNotMutateInput(t *testing.T) {
	s := Must(testWeights, testThresholds)
	in := FactorSet{"trend": 50}

	r := s.Score(in)
	r.Factors["trend"] = 999

	assert.Equal(t, 50.0, in["trend"])
	assert.NotContains(t, in, "margin")
}

func TestWeights_ReturnsCopy(t *testing.T) {
	s := Must(testWeights, testThresholds)

	w := s.Weights()
	require.Len(t, w, 2)
	w[0].Weight = 99

	assert.Equal(t, 0.5, s.Weights()[0].Weight)
}
