package core

// ProgressRatio returns current/target clamped to [0, 1]. A zero target is
// treated as ratio 0, never a division fault.
func ProgressRatio(current, target Money) float64 {
	if target.Cents <= 0 {
		return 0
	}
	ratio := float64(current.Cents) / float64(target.Cents)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Remaining returns target - current, floored at zero.
func Remaining(target, current Money) Money {
	return target.Sub(current).ClampZero()
}

// ReturnPercent derives an investment's return from cost basis vs current
// value. The stored ReturnRate field is informational only and never used
// here. The second result is false when the cost basis is zero, in which case
// the figure is undefined and must be excluded from display.
func ReturnPercent(inv Investment) (float64, bool) {
	if inv.Amount.Cents == 0 {
		return 0, false
	}
	return float64(inv.CurrentValue.Cents-inv.Amount.Cents) / float64(inv.Amount.Cents) * 100, true
}

// EmergencyFund finds the single Reserva goal, if present.
func EmergencyFund(goals []Goal) (Goal, bool) {
	for _, g := range goals {
		if g.Type == GoalReserve {
			return g, true
		}
	}
	return Goal{}, false
}

// OtherGoals returns every goal except the Reserva one, preserving order.
func OtherGoals(goals []Goal) []Goal {
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if g.Type != GoalReserve {
			out = append(out, g)
		}
	}
	return out
}
