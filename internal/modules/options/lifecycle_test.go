package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
	testingpkg "github.com/joshinitinofficial/algotest-trade-visualizer/internal/testing"
)

var jan25 = time.Date(2024, 1, 25, 0, 0, 0, 0, testingpkg.IST)

func TestLifecycles_SingleContract(t *testing.T) {
	trades := []domain.Trade{
		testingpkg.OptionTrade("Y", "100", jan25, domain.SideClose, "1", "5", testingpkg.Day(0)),
		testingpkg.OptionTrade("Y", "100", jan25, domain.SideOpen, "1", "2", testingpkg.Day(10)),
	}

	holdings := Lifecycles(trades)
	require.Len(t, holdings, 1)

	h := holdings[0]
	assert.Equal(t, "Y", h.Instrument)
	assert.Equal(t, "100", h.Strike)
	assert.Equal(t, "2024-01-25", h.Expiry)
	assert.Equal(t, testingpkg.Day(0), h.EntryTime)
	assert.Equal(t, testingpkg.Day(10), h.ExitTime)
	assert.Equal(t, 10, h.HoldingDays)
	assert.Equal(t, 0.33, h.HoldingMonths)
	assert.Equal(t, 2, h.Trades)
}

func TestLifecycles_GroupsByFullContractKey(t *testing.T) {
	feb29 := time.Date(2024, 2, 29, 0, 0, 0, 0, testingpkg.IST)
	trades := []domain.Trade{
		testingpkg.OptionTrade("NIFTY", "21500", jan25, domain.SideClose, "50", "120", testingpkg.Day(0)),
		testingpkg.OptionTrade("NIFTY", "21000", jan25, domain.SideClose, "50", "80", testingpkg.Day(1)),
		testingpkg.OptionTrade("NIFTY", "21500", feb29, domain.SideClose, "50", "200", testingpkg.Day(2)),
		testingpkg.OptionTrade("BANKNIFTY", "47000", jan25, domain.SideClose, "15", "300", testingpkg.Day(3)),
		testingpkg.OptionTrade("NIFTY", "21500", jan25, domain.SideOpen, "50", "10", testingpkg.Day(20)),
		testingpkg.CashTrade("NIFTY", domain.SideOpen, "1", "21400", testingpkg.Day(30)),
	}

	holdings := Lifecycles(trades)
	require.Len(t, holdings, 4)

	keys := make([]string, len(holdings))
	for i, h := range holdings {
		keys[i] = h.Instrument + "/" + h.Strike + "/" + h.Expiry
	}
	assert.Equal(t, []string{
		"BANKNIFTY/47000/2024-01-25",
		"NIFTY/21000/2024-01-25",
		"NIFTY/21500/2024-01-25",
		"NIFTY/21500/2024-02-29",
	}, keys)

	assert.Equal(t, 20, holdings[2].HoldingDays)
	assert.Equal(t, 2, holdings[2].Trades)
	assert.Equal(t, 0, holdings[3].HoldingDays, "single trade contract has zero span")
}

func TestLifecycles_UsesMinAndMaxTime(t *testing.T) {
	trades := []domain.Trade{
		testingpkg.OptionTrade("Y", "100", jan25, domain.SideClose, "1", "5", testingpkg.Day(4)),
		testingpkg.OptionTrade("Y", "100", jan25, domain.SideOpen, "1", "2", testingpkg.Day(1)),
		testingpkg.OptionTrade("Y", "100", jan25, domain.SideOpen, "1", "2", testingpkg.Day(7)),
	}

	holdings := Lifecycles(trades)
	require.Len(t, holdings, 1)
	assert.Equal(t, testingpkg.Day(1), holdings[0].EntryTime)
	assert.Equal(t, testingpkg.Day(7), holdings[0].ExitTime)
	assert.Equal(t, 6, holdings[0].HoldingDays)
}

func TestLifecycles_NoOptions(t *testing.T) {
	holdings := Lifecycles([]domain.Trade{
		testingpkg.CashTrade("X", domain.SideOpen, "1", "1", testingpkg.Day(0)),
	})

	assert.NotNil(t, holdings)
	assert.Empty(t, holdings)
}
