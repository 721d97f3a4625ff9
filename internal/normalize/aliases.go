// Package normalize maps heterogeneous provider payloads onto the canonical
// domain records.
//
// Field resolution is table driven: every canonical field has an ordered list
// of key aliases (provider field names and XBRL concepts), tried first to
// last, and an optional label rule consulted only when no key matched. The
// first alias present with a numeric value wins; when nothing matches the
// field stays nil.
package normalize

// Field names a canonical numeric field of a FinancialPeriodRecord.
type Field string

const (
	FieldEPS                Field = "eps"
	FieldRevenue            Field = "revenue"
	FieldCostOfRevenue      Field = "costOfRevenue"
	FieldGrossProfit        Field = "grossProfit"
	FieldNetIncome          Field = "netIncome"
	FieldOperatingIncome    Field = "operatingIncome"
	FieldOperatingCashFlow  Field = "operatingCashFlow"
	FieldCapitalExpenditure Field = "capitalExpenditure"
	FieldFreeCashFlow       Field = "freeCashFlow"
	FieldSharesOutstanding  Field = "sharesOutstanding"
)

// Aliases is the resolution rule for one canonical field.
type Aliases struct {
	// Keys are tried in order against the record's field names.
	Keys []string
	// Labels match case-insensitively as substrings of human-readable labels
	// (reported financials); a label containing any Exclude entry is skipped.
	Labels  []string
	Exclude []string
}

// FieldAliases is the priority table consulted by Period.
var FieldAliases = map[Field]Aliases{
	FieldEPS: {
		Keys: []string{
			"eps", "epsDiluted", "epsdiluted", "dilutedEPS", "reportedEPS",
			"us-gaap_EarningsPerShareDiluted", "us-gaap_EarningsPerShareBasic",
		},
		Labels:  []string{"per share"},
		Exclude: []string{"dividend", "declared"},
	},
	FieldRevenue: {
		Keys: []string{
			"revenues", "revenue", "totalRevenue",
			"us-gaap_Revenues",
			"us-gaap_RevenueFromContractWithCustomerExcludingAssessedTax",
			"us-gaap_SalesRevenueNet",
		},
		Labels:  []string{"revenue", "net sales"},
		Exclude: []string{"cost", "deferred"},
	},
	FieldCostOfRevenue: {
		Keys: []string{
			"costOfRevenue", "costOfGoodsAndServicesSold", "costofGoodsAndServicesSold",
			"us-gaap_CostOfRevenue", "us-gaap_CostOfGoodsAndServicesSold", "us-gaap_CostOfGoodsSold",
		},
		Labels: []string{"cost of revenue", "cost of sales", "cost of goods"},
	},
	FieldGrossProfit: {
		Keys:   []string{"grossProfit", "us-gaap_GrossProfit"},
		Labels: []string{"gross profit", "gross margin"},
	},
	FieldNetIncome: {
		Keys:    []string{"netIncome", "us-gaap_NetIncomeLoss", "us-gaap_ProfitLoss"},
		Labels:  []string{"net income"},
		Exclude: []string{"per share", "comprehensive"},
	},
	FieldOperatingIncome: {
		Keys:   []string{"operatingIncome", "us-gaap_OperatingIncomeLoss"},
		Labels: []string{"operating income"},
	},
	FieldOperatingCashFlow: {
		Keys: []string{
			"operatingCashFlow", "operatingCashflow", "netCashProvidedByOperatingActivities",
			"us-gaap_NetCashProvidedByUsedInOperatingActivities",
		},
		Labels: []string{"operating activities"},
	},
	FieldCapitalExpenditure: {
		Keys: []string{
			"capitalExpenditure", "capitalExpenditures",
			"us-gaap_PaymentsToAcquirePropertyPlantAndEquipment",
		},
	},
	FieldFreeCashFlow: {
		Keys: []string{"freeCashFlow"},
	},
	FieldSharesOutstanding: {
		Keys: []string{
			"weightedAverageShsOutDil", "weightedAverageShsOut", "sharesOutstanding", "SharesOutstanding",
			"us-gaap_WeightedAverageNumberOfDilutedSharesOutstanding",
		},
	},
}

// Date aliases, most specific first.
var (
	PeriodDateAliases   = []string{"date", "fiscalDateEnding", "endDate"}
	ExDateAliases       = []string{"exDate", "ex_dividend_date", "date"}
	EstimateDateAliases = []string{"date", "fiscalDateEnding"}
)

// DividendAmountAliases prefers split-adjusted amounts.
var DividendAmountAliases = []string{"adjDividend", "adjustedAmount", "dividend", "amount"}

// Analyst estimate aliases cover the stable and legacy FMP shapes.
var (
	EstimateEPSAvgAliases   = []string{"epsAvg", "estimatedEpsAvg"}
	EstimateEPSHighAliases  = []string{"epsHigh", "estimatedEpsHigh"}
	EstimateEPSLowAliases   = []string{"epsLow", "estimatedEpsLow"}
	EstimateRevenueAliases  = []string{"revenueAvg", "estimatedRevenueAvg"}
	EstimateAnalystsAliases = []string{"numAnalystsEps", "numberAnalystEstimatedEps", "numAnalystsRevenue"}
)
