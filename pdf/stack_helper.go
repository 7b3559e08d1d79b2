package pdf

import (
	"context"

	"github.com/sombrek/pdfstack/common"
	"github.com/sombrek/pdfstack/model"
	"github.com/sombrek/pdfstack/utils"
	"go.uber.org/zap"
)

// StackEnsemble stacks a batch of observations onto the dictionary grid and
// returns the density paired with its grid positions. Observations with a
// non-positive sigma are dropped, zero weights default to 1.
func StackEnsemble(ctx context.Context, dict *PDFDict,
	observations []model.Observation, policy SelectPolicy) ([]model.Density, error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("StackEnsemble recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()),
				zap.Int("observation cnt", len(observations)))
		}
	}()

	if dict == nil || len(observations) == 0 {
		logger.Error("no dictionary or observations to stack")
		return nil, common.ErrorMissingInput
	}

	values := make([]float64, 0, len(observations))
	sigmas := make([]float64, 0, len(observations))
	weights := make([]float64, 0, len(observations))
	for _, obs := range observations {
		if obs.Sigma <= 0 {
			logger.Error("skip observation with non-positive sigma",
				zap.Float64("value", obs.Value), zap.Float64("sigma", obs.Sigma))
			continue
		}
		weight := obs.Weight
		if weight == 0 {
			weight = 1.0
		}
		values = append(values, obs.Value)
		sigmas = append(sigmas, obs.Sigma)
		weights = append(weights, weight)
	}

	if len(values) == 0 {
		logger.Error("no valid observations left to stack",
			zap.Int("observation cnt", len(observations)))
		return nil, common.ErrorInvalidValue
	}

	out, err := StackDictValues(dict, values, sigmas, weights, policy)
	if err != nil {
		logger.Error("StackDictValues failed", zap.Error(err))
		return nil, err
	}

	grid := dict.Grid()
	res := make([]model.Density, 0, len(out))
	for i, v := range out {
		res = append(res, model.Density{X: grid[i], Value: v})
	}
	return res, nil
}

// StackEnsembleQuantized is the pre-quantized variant of StackEnsemble for
// callers that already ran Fit and cached the index pairs.
func StackEnsembleQuantized(ctx context.Context, dict *PDFDict,
	observations []model.QuantizedObservation, policy SelectPolicy) ([]model.Density, error) {
	logger := utils.GetLogger(ctx)

	if dict == nil || len(observations) == 0 {
		logger.Error("no dictionary or quantized observations to stack")
		return nil, common.ErrorMissingInput
	}

	gridIdx := make([]int, 0, len(observations))
	dictIdx := make([]int, 0, len(observations))
	weights := make([]float64, 0, len(observations))
	for _, obs := range observations {
		weight := obs.Weight
		if weight == 0 {
			weight = 1.0
		}
		gridIdx = append(gridIdx, obs.GridIndex)
		dictIdx = append(dictIdx, obs.DictIndex)
		weights = append(weights, weight)
	}

	out, err := StackDict(dict, gridIdx, dictIdx, weights, policy)
	if err != nil {
		logger.Error("StackDict failed", zap.Error(err))
		return nil, err
	}

	grid := dict.Grid()
	res := make([]model.Density, 0, len(out))
	for i, v := range out {
		res = append(res, model.Density{X: grid[i], Value: v})
	}
	return res, nil
}
