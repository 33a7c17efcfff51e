// Package pricing is the pure premium lookup collaborator: fixed tables plus
// multiplier arithmetic. Identical inputs always yield identical output; the
// package owns no state.
package pricing

import "strconv"

// Product identifies the insurance line being priced.
type Product string

const (
	Health Product = "health"
	Motor  Product = "motor"
	Life   Product = "life"
)

// Factors are the premium inputs collected along the buy flow.
type Factors struct {
	Product    Product
	Age        int
	SumInsured int
	CityTier   int // 1 = metro, 2 = tier-2, 3 = rest
	VehicleAge int // years since registration, motor only
	TermYears  int // life only
	Smoker     bool
}

// Base rates per product. Health and life scale per lakh of sum insured,
// motor starts from a flat slab discounted by vehicle age.
var (
	healthRatePerLakh = 950
	lifeRatePerLakh   = 55
	motorBaseSlab     = 6200

	ageMultiplierPct = []struct {
		maxAge int
		pct    int
	}{
		{25, 85},
		{35, 100},
		{45, 130},
		{55, 180},
		{200, 250},
	}

	cityTierPct = map[int]int{1: 115, 2: 100, 3: 90}
)

const smokerPct = 125

// CalculatePremium computes the annual base premium for the given factors.
func CalculatePremium(f Factors) int {
	var base int
	switch f.Product {
	case Health:
		base = healthRatePerLakh * (f.SumInsured / 100000)
		base = applyPct(base, agePct(f.Age))
		if pct, ok := cityTierPct[f.CityTier]; ok {
			base = applyPct(base, pct)
		}
	case Motor:
		base = motorBaseSlab
		depreciation := f.VehicleAge * 7
		if depreciation > 50 {
			depreciation = 50
		}
		base = applyPct(base, 100-depreciation)
	case Life:
		base = lifeRatePerLakh * (f.SumInsured / 100000)
		base = applyPct(base, agePct(f.Age))
		if f.Smoker {
			base = applyPct(base, smokerPct)
		}
		if f.TermYears > 20 {
			base = applyPct(base, 110)
		}
	}
	if base < 0 {
		base = 0
	}
	return base
}

// Rider premium tables, keyed by rider id then coverage amount.
var riderTable = map[string]map[int]int{
	"accidental_death": {
		500000:  240,
		1000000: 456,
		2000000: 880,
	},
	"accidental_disability": {
		500000:  180,
		1000000: 340,
		2000000: 650,
	},
	"critical_illness": {
		500000:  1450,
		1000000: 2800,
		2000000: 5400,
	},
	"hospital_cash": {
		500000:  360,
		1000000: 690,
		2000000: 1320,
	},
}

// Riders whose combined premium counts against the accidental cap.
var accidentalRiders = map[string]bool{
	"accidental_death":      true,
	"accidental_disability": true,
}

// IsAccidental reports whether a rider counts against the accidental cap.
func IsAccidental(riderID string) bool { return accidentalRiders[riderID] }

// CalculateRiderPremium prices one rider at a coverage amount. Age and
// smoking only load the critical-illness rider; accidental riders price off
// the table alone.
func CalculateRiderPremium(riderID string, coverage, age int, smoker bool) int {
	table, ok := riderTable[riderID]
	if !ok {
		return 0
	}
	premium, ok := table[coverage]
	if !ok {
		return 0
	}
	if riderID == "critical_illness" {
		if age >= 45 {
			premium = applyPct(premium, 150)
		}
		if smoker {
			premium = applyPct(premium, smokerPct)
		}
	}
	return premium
}

// AccidentalCap is the accidental-rider budget: 30% of the base premium.
func AccidentalCap(base int) int { return base * 30 / 100 }

// CriticalCap is the critical-illness budget: 100% of the base premium.
func CriticalCap(base int) int { return base }

// CapUsage expresses spent premium as a percentage of a cap.
func CapUsage(spent, cap int) float64 {
	if cap <= 0 {
		return 0
	}
	return float64(spent) / float64(cap) * 100
}

// Quote is the derived premium artifact. It is recomputed from scratch
// whenever its inputs change, never incrementally patched.
type Quote struct {
	Base   int            `json:"base"`
	Riders map[string]int `json:"riders,omitempty"`
	Total  int            `json:"total"`
}

// BuildQuote prices the base factors and the selected riders into a quote.
func BuildQuote(f Factors, riderIDs []string, riderCoverage int) Quote {
	q := Quote{Base: CalculatePremium(f)}
	if len(riderIDs) > 0 {
		q.Riders = make(map[string]int, len(riderIDs))
		for _, id := range riderIDs {
			q.Riders[id] = CalculateRiderPremium(id, riderCoverage, f.Age, f.Smoker)
		}
	}
	q.Total = q.Base
	for _, p := range q.Riders {
		q.Total += p
	}
	return q
}

func agePct(age int) int {
	for _, band := range ageMultiplierPct {
		if age <= band.maxAge {
			return band.pct
		}
	}
	return 100
}

func applyPct(amount, pct int) int { return amount * pct / 100 }

// FormatINR renders an amount with Indian digit grouping, e.g. 1000000 →
// "₹10,00,000".
func FormatINR(amount int) string {
	s := strconv.Itoa(amount)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		s = ""
		for _, p := range parts {
			s += p + ","
		}
		s += tail
	}
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}
