package cash_flows

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
	testingpkg "github.com/joshinitinofficial/algotest-trade-visualizer/internal/testing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate_CumulativeSeries(t *testing.T) {
	trades := []domain.Trade{
		testingpkg.CashTrade("INFY", domain.SideOpen, "10", "1500", testingpkg.Day(0)),
		testingpkg.CashTrade("INFY", domain.SideClose, "10", "1550", testingpkg.Day(3)),
		testingpkg.CashTrade("TCS", domain.SideOpen, "2", "3600.5", testingpkg.Day(4)),
	}

	result := Calculate(trades)
	require.Len(t, result.Equity, 3)

	expectedCashflows := []string{"-15000", "15500", "-7201"}
	expectedCumulative := []string{"-15000", "500", "-6701"}
	for i, point := range result.Equity {
		assert.True(t, dec(expectedCashflows[i]).Equal(point.Cashflow), "cashflow %d: %s", i, point.Cashflow)
		assert.True(t, dec(expectedCumulative[i]).Equal(point.Cumulative), "cumulative %d: %s", i, point.Cumulative)
		assert.Equal(t, trades[i].TradedTime, point.Time)
		assert.Equal(t, trades[i].Instrument, point.Instrument)
	}
	assert.True(t, dec("-6701").Equal(result.TotalPnL))
}

func TestCalculate_TotalEqualsSumOfCashflows(t *testing.T) {
	expiry := testingpkg.Day(24)
	trades := []domain.Trade{
		testingpkg.OptionTrade("NIFTY", "21500", expiry, domain.SideClose, "50", "120", testingpkg.Day(0)),
		testingpkg.CashTrade("NIFTYBEES", domain.SideOpen, "100", "240", testingpkg.Day(1)),
		testingpkg.OptionTrade("NIFTY", "21500", expiry, domain.SideOpen, "50", "20", testingpkg.Day(10)),
		testingpkg.CashTrade("NIFTYBEES", domain.SideClose, "100", "250.25", testingpkg.Day(12)),
	}

	result := Calculate(trades)

	sum := decimal.Zero
	for _, t := range trades {
		sum = sum.Add(t.Cashflow())
	}
	assert.True(t, sum.Equal(result.TotalPnL))
	assert.True(t, result.Equity[len(result.Equity)-1].Cumulative.Equal(result.TotalPnL))
	// 6000 - 24000 - 1000 + 25025
	assert.True(t, dec("6025").Equal(result.TotalPnL), "got %s", result.TotalPnL)
}

func TestCalculate_Empty(t *testing.T) {
	result := Calculate(nil)

	assert.NotNil(t, result.Equity)
	assert.Empty(t, result.Equity)
	assert.True(t, result.TotalPnL.IsZero())
}

func TestReturnPercentage(t *testing.T) {
	testCases := []struct {
		name     string
		total    string
		capital  string
		expected string
	}{
		{"profit", "50000", "1000000", "5"},
		{"loss", "-25000", "500000", "-5"},
		{"fractional", "1", "3", "33.3333333333333333"},
		{"zero capital", "125000", "0", "0"},
		{"negative capital", "125000", "-10", "0"},
		{"zero pnl", "0", "100", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReturnPercentage(dec(tc.total), dec(tc.capital))
			assert.True(t, dec(tc.expected).Equal(got), "got %s", got)
		})
	}
}

func TestReturnPercentage_ZeroCapitalIsExactlyZero(t *testing.T) {
	got := ReturnPercentage(dec("-987654.321"), decimal.Zero)
	assert.True(t, got.Equal(decimal.Zero))
	assert.Equal(t, "0", got.String())
}

func TestTradingDuration(t *testing.T) {
	trades := []domain.Trade{
		testingpkg.CashTrade("A", domain.SideOpen, "1", "1", testingpkg.Day(0)),
		testingpkg.CashTrade("A", domain.SideClose, "1", "1", testingpkg.Day(100).Add(5*time.Hour)),
		testingpkg.CashTrade("B", domain.SideOpen, "1", "1", testingpkg.Day(365)),
	}

	d := TradingDuration(trades)

	assert.Equal(t, testingpkg.Day(0), d.Start)
	assert.Equal(t, testingpkg.Day(365), d.End)
	assert.Equal(t, 365, d.Days)
	assert.Equal(t, 11.99, d.Months)
	assert.Equal(t, 1.0, d.Years)
}

func TestTradingDuration_UnorderedInput(t *testing.T) {
	trades := []domain.Trade{
		testingpkg.CashTrade("A", domain.SideOpen, "1", "1", testingpkg.Day(40)),
		testingpkg.CashTrade("A", domain.SideClose, "1", "1", testingpkg.Day(10)),
	}

	d := TradingDuration(trades)
	assert.Equal(t, 30, d.Days)
	assert.Equal(t, 0.99, d.Months)
	assert.Equal(t, 0.08, d.Years)
}

func TestTradingDuration_Empty(t *testing.T) {
	assert.Equal(t, Duration{}, TradingDuration(nil))
}
