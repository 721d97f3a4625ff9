package calc

import (
	"errors"
	"fmt"
	"math"
)

// MaxProjectionYears bounds the explicit high-growth stage.
const MaxProjectionYears = 50

// ErrInvalidInput is wrapped by every valuation input error.
var ErrInvalidInput = errors.New("invalid valuation input")

// ProjectedFlow is one explicit-stage year.
type ProjectedFlow struct {
	Year         int     `json:"year"`
	Value        float64 `json:"value"`
	PresentValue float64 `json:"presentValue"`
}

// TwoStage is the result of a two-stage discounting model.
type TwoStage struct {
	Projections     []ProjectedFlow
	SumPresentValue float64
	TerminalValue   float64
	PVTerminal      float64
	Total           float64
}

// TwoStageInput parameterizes the growth-then-perpetuity model shared by DDM and DCF.
type TwoStageInput struct {
	Base         float64 // current dividend or free cash flow
	GrowthRate   float64 // explicit-stage growth
	Years        int     // explicit-stage length
	StableGrowth float64 // perpetuity growth
	WACC         float64 // discount rate
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (in TwoStageInput) validate() error {
	switch {
	case !finite(in.Base, in.GrowthRate, in.StableGrowth, in.WACC):
		return fmt.Errorf("%w: inputs must be finite numbers", ErrInvalidInput)
	case in.Years < 0 || in.Years > MaxProjectionYears:
		return fmt.Errorf("%w: years must be between 0 and %d", ErrInvalidInput, MaxProjectionYears)
	case in.WACC <= -1:
		return fmt.Errorf("%w: wacc must be greater than -1", ErrInvalidInput)
	case in.GrowthRate <= -1 || in.StableGrowth <= -1:
		return fmt.Errorf("%w: growth rates must be greater than -1", ErrInvalidInput)
	}
	return nil
}

// DiscountTwoStage projects Base for Years at GrowthRate, discounts each year
// at (1+WACC)^-t and adds a Gordon terminal value
// lastFlow × (1+StableGrowth) / (WACC - StableGrowth) discounted at year Years.
//
// When WACC <= StableGrowth the terminal value is 0.
func DiscountTwoStage(in TwoStageInput) (TwoStage, error) {
	if err := in.validate(); err != nil {
		return TwoStage{}, err
	}

	var out TwoStage
	flow := in.Base
	discount := 1.0
	for t := 1; t <= in.Years; t++ {
		flow *= 1 + in.GrowthRate
		discount /= 1 + in.WACC
		pv := flow * discount
		out.Projections = append(out.Projections, ProjectedFlow{Year: t, Value: flow, PresentValue: pv})
		out.SumPresentValue += pv
	}

	if in.WACC > in.StableGrowth {
		out.TerminalValue = flow * (1 + in.StableGrowth) / (in.WACC - in.StableGrowth)
	}
	out.PVTerminal = out.TerminalValue * discount
	out.Total = out.SumPresentValue + out.PVTerminal

	if !finite(flow, discount, out.SumPresentValue, out.TerminalValue, out.PVTerminal, out.Total) {
		return TwoStage{}, fmt.Errorf("%w: inputs overflow the model", ErrInvalidInput)
	}
	return out, nil
}

// DDM values a share as the present value of its dividends.
func DDM(currentDividend, highGrowthRate float64, highGrowthYears int, stableGrowth, wacc float64) (TwoStage, error) {
	if currentDividend <= 0 {
		return TwoStage{}, fmt.Errorf("%w: current dividend must be positive", ErrInvalidInput)
	}
	return DiscountTwoStage(TwoStageInput{
		Base:         currentDividend,
		GrowthRate:   highGrowthRate,
		Years:        highGrowthYears,
		StableGrowth: stableGrowth,
		WACC:         wacc,
	})
}

// DCFResult extends the two-stage result with the equity bridge.
type DCFResult struct {
	TwoStage
	EnterpriseValue float64
	EquityValue     float64
	PerShare        *float64
}

// DCF discounts free cash flow and bridges enterprise value to a per-share
// value. A nil netDebt is not applied; perShare is nil unless shares > 0.
func DCF(in TwoStageInput, netDebt, shares *float64) (DCFResult, error) {
	ts, err := DiscountTwoStage(in)
	if err != nil {
		return DCFResult{}, err
	}
	res := DCFResult{TwoStage: ts, EnterpriseValue: ts.Total, EquityValue: ts.Total}
	if netDebt != nil {
		res.EquityValue -= *netDebt
	}
	if shares != nil && *shares > 0 {
		ps := res.EquityValue / *shares
		if !math.IsNaN(ps) && !math.IsInf(ps, 0) {
			res.PerShare = &ps
		}
	}
	return res, nil
}

// Upside is intrinsic / price - 1; requires price > 0.
func Upside(intrinsic float64, price *float64) *float64 {
	if price == nil || *price <= 0 {
		return nil
	}
	u := intrinsic / *price - 1
	return &u
}
