package logsheet

import (
	"math"

	"driver_logsheet/internal/models"
)

// TotalsCheck reports whether the day adds up to 24 hours. It is advisory: the sheet
// is drawn either way.
type TotalsCheck struct {
	PerStatus models.StatusTotals `json:"perStatus"`
	Sum       float64             `json:"sum"`
	IsValid   bool                `json:"isValid"`
	// Derived is set when the log carried no reported totals.
	Derived bool `json:"derived"`
	// FromSegments sums the valid segment durations per row.
	FromSegments  models.StatusTotals `json:"fromSegments"`
	Discrepancies []Discrepancy       `json:"discrepancies"`
}

// Discrepancy is a row whose reported total disagrees with its segments.
type Discrepancy struct {
	Status       models.DutyStatus `json:"status"`
	Reported     float64           `json:"reported"`
	FromSegments float64           `json:"fromSegments"`
}

// CheckTotals validates reported (or derived) totals. valid holds the accepted
// segments per row as returned by the projector.
func CheckTotals(log *models.DayLog, valid [rowCount][]models.Segment, tolerance float64) TotalsCheck {
	var fromSegments models.StatusTotals
	for status, segs := range valid {
		for _, s := range segs {
			fromSegments.Add(models.DutyStatus(status), s.Duration())
		}
	}

	check := TotalsCheck{
		FromSegments:  fromSegments,
		Discrepancies: []Discrepancy{},
	}
	if log != nil && log.Totals != nil {
		check.PerStatus = *log.Totals
	} else {
		check.PerStatus = fromSegments
		check.Derived = true
	}

	check.Sum = check.PerStatus.Sum()
	check.IsValid = math.Abs(check.Sum-HoursPerDay) <= tolerance+floatSlack

	if !check.Derived {
		for _, info := range models.DutyStatuses() {
			reported, actual := check.PerStatus.Get(info.Status), fromSegments.Get(info.Status)
			if math.Abs(reported-actual) > tolerance+floatSlack {
				check.Discrepancies = append(check.Discrepancies, Discrepancy{
					Status: info.Status, Reported: reported, FromSegments: actual,
				})
			}
		}
	}
	return check
}
