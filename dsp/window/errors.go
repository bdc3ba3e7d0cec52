package window

import (
	"errors"
	"fmt"
	"math"
)

var (
	errEmptyCoeffs      = errors.New("window: coefficients must not be empty")
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
	errMismatchedLength = errors.New("window: samples and coefficients must have same length")
)

func validateKaiser(beta float64) error {
	if !(beta >= 0) || math.IsInf(beta, 0) {
		return fmt.Errorf("window: kaiser beta must be >= 0: %v", beta)
	}
	return nil
}

func validateTukey(alpha float64) error {
	if !(alpha >= 0 && alpha <= 1) {
		return fmt.Errorf("window: tukey alpha must be in [0,1]: %v", alpha)
	}
	return nil
}
