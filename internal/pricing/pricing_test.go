package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePremiumHealth(t *testing.T) {
	f := Factors{Product: Health, Age: 30, SumInsured: 1000000, CityTier: 2}
	// 950/lakh * 10 lakh, age band 26-35 at 100%, tier-2 at 100%.
	assert.Equal(t, 9500, CalculatePremium(f))

	f.CityTier = 1
	assert.Equal(t, 10925, CalculatePremium(f)) // metro loading 115%

	f.Age = 50
	f.CityTier = 2
	assert.Equal(t, 17100, CalculatePremium(f)) // 46-55 band at 180%
}

func TestCalculatePremiumMotorDepreciation(t *testing.T) {
	assert.Equal(t, 6200, CalculatePremium(Factors{Product: Motor, VehicleAge: 0}))
	assert.Equal(t, 4898, CalculatePremium(Factors{Product: Motor, VehicleAge: 3})) // 21% off
	// Depreciation caps at 50% however old the vehicle is.
	assert.Equal(t, 3100, CalculatePremium(Factors{Product: Motor, VehicleAge: 12}))
}

func TestCalculatePremiumLife(t *testing.T) {
	f := Factors{Product: Life, Age: 30, SumInsured: 1000000, TermYears: 15}
	assert.Equal(t, 550, CalculatePremium(f))

	f.Smoker = true
	assert.Equal(t, 687, CalculatePremium(f)) // 125% smoker loading

	f.Smoker = false
	f.TermYears = 30
	assert.Equal(t, 605, CalculatePremium(f)) // long-term loading 110%
}

func TestCalculateRiderPremium(t *testing.T) {
	assert.Equal(t, 456, CalculateRiderPremium("accidental_death", 1000000, 30, false))
	// Accidental riders ignore age and smoking.
	assert.Equal(t, 456, CalculateRiderPremium("accidental_death", 1000000, 60, true))

	assert.Equal(t, 2800, CalculateRiderPremium("critical_illness", 1000000, 30, false))
	assert.Equal(t, 4200, CalculateRiderPremium("critical_illness", 1000000, 50, false))
	assert.Equal(t, 5250, CalculateRiderPremium("critical_illness", 1000000, 50, true))

	assert.Equal(t, 0, CalculateRiderPremium("unknown", 1000000, 30, false))
	assert.Equal(t, 0, CalculateRiderPremium("hospital_cash", 123, 30, false))
}

func TestCaps(t *testing.T) {
	assert.Equal(t, 3000, AccidentalCap(10000))
	assert.Equal(t, 10000, CriticalCap(10000))

	assert.InDelta(t, 15.2, CapUsage(456, 3000), 0.001)
	assert.Equal(t, float64(0), CapUsage(456, 0))
}

func TestBuildQuote(t *testing.T) {
	f := Factors{Product: Health, Age: 30, SumInsured: 1000000, CityTier: 2}
	q := BuildQuote(f, []string{"accidental_death", "hospital_cash"}, 1000000)

	assert.Equal(t, 9500, q.Base)
	assert.Equal(t, 456, q.Riders["accidental_death"])
	assert.Equal(t, 690, q.Riders["hospital_cash"])
	assert.Equal(t, 10646, q.Total)

	empty := BuildQuote(f, nil, 1000000)
	assert.Nil(t, empty.Riders)
	assert.Equal(t, empty.Base, empty.Total)
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹456", FormatINR(456))
	assert.Equal(t, "₹9,500", FormatINR(9500))
	assert.Equal(t, "₹12,345", FormatINR(12345))
	assert.Equal(t, "₹10,00,000", FormatINR(1000000))
	assert.Equal(t, "₹1,23,45,678", FormatINR(12345678))
	assert.Equal(t, "-₹9,500", FormatINR(-9500))
}
