package formulas

// DrawdownMetrics describes the worst decline of a cumulative P&L curve.
type DrawdownMetrics struct {
	MaxDrawdown float64 `json:"max_drawdown"` // absolute peak-to-trough decline, >= 0
	PeakIndex   int     `json:"peak_index"`
	TroughIndex int     `json:"trough_index"`
}

// CalculateMaxDrawdown calculates the largest peak-to-trough decline of a
// cumulative series in absolute units.
//
// Drawdown Formula:
//
//	Drawdown[i] = max(series[0..i]) - series[i]
//	Max Drawdown = max over i of Drawdown[i]
//
// The curve starts flat at zero, so a series that only falls measures its
// decline from zero. Percent drawdown is not used here because a P&L curve
// can cross zero.
//
// Returns nil for an empty series.
func CalculateMaxDrawdown(series []float64) *DrawdownMetrics {
	if len(series) == 0 {
		return nil
	}

	m := &DrawdownMetrics{PeakIndex: -1, TroughIndex: -1}
	peak, peakIdx := 0.0, -1

	for i, v := range series {
		if v > peak {
			peak, peakIdx = v, i
		}
		if dd := peak - v; dd > m.MaxDrawdown {
			m.MaxDrawdown = dd
			m.PeakIndex = peakIdx
			m.TroughIndex = i
		}
	}

	return m
}
