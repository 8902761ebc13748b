package domain

import "time"

// PlanCode is the plan price in rupees.
type PlanCode string

var planDurationDays = map[PlanCode]int{
	"99":  15,
	"149": 30,
	"299": 90,
	"599": 180,
}

func (p PlanCode) Valid() bool {
	_, ok := planDurationDays[p]
	return ok
}

func (p PlanCode) DurationDays() (int, error) {
	days, ok := planDurationDays[p]
	if !ok {
		return 0, ErrInvalidPlan
	}
	return days, nil
}

// PriceMinorUnits returns the plan price in paise.
func (p PlanCode) PriceMinorUnits() (int64, error) {
	if !p.Valid() {
		return 0, ErrInvalidPlan
	}
	var rupees int64
	for _, c := range p {
		rupees = rupees*10 + int64(c-'0')
	}
	return rupees * 100, nil
}

// SubscriptionEnd is computed from now, never from the previous end date.
func SubscriptionEnd(now time.Time, plan PlanCode) (time.Time, error) {
	days, err := plan.DurationDays()
	if err != nil {
		return time.Time{}, err
	}
	return now.AddDate(0, 0, days), nil
}
