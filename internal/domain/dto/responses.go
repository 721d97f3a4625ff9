package dto

// Response bodies. Every optional figure is a pointer without omitempty so an
// unavailable value is serialized as an explicit null.

// DividendPoint is one historical dividend payment.
type DividendPoint struct {
	ExDate string  `json:"exDate"`
	Amount float64 `json:"amount"`
}

// AnnualDividend is the per-year total; Projected marks an estimated current year.
type AnnualDividend struct {
	Year      int     `json:"year"`
	Total     float64 `json:"total"`
	Projected bool    `json:"projected"`
}

// DividendsResponse is the body of GET /dividends.
type DividendsResponse struct {
	Symbol               string           `json:"symbol"`
	Source               string           `json:"source"`
	HistoricalDividends  []DividendPoint  `json:"historicalDividends"`
	AnnualDividends      []AnnualDividend `json:"annualDividends"`
	DividendGrowthRate   *float64         `json:"dividendGrowthRate"`
	GrowthBasisYears     *int             `json:"growthBasisYears"`
	LatestAnnualDividend *float64         `json:"latestAnnualDividend"`
	CurrentYearProjected *float64         `json:"currentYearProjected"`
	CurrentYearPartial   *float64         `json:"currentYearPartial"`
}

// EPSPoint is one annual EPS figure.
type EPSPoint struct {
	Year int      `json:"year"`
	Date string   `json:"date"`
	EPS  *float64 `json:"eps"`
}

// AnalystPoint is one fiscal-year consensus row.
type AnalystPoint struct {
	Year           int      `json:"year"`
	Date           string   `json:"date"`
	EPSAvg         *float64 `json:"epsAvg"`
	EPSHigh        *float64 `json:"epsHigh"`
	EPSLow         *float64 `json:"epsLow"`
	RevenueAvg     *float64 `json:"revenueAvg"`
	NumberAnalysts *float64 `json:"numberAnalysts"`
}

// EPSGrowthResponse is the body of GET /eps-growth.
type EPSGrowthResponse struct {
	Symbol               string         `json:"symbol"`
	Source               string         `json:"source"`
	EPSData              []EPSPoint     `json:"epsData"`
	HistoricalGrowthRate *float64       `json:"historicalGrowthRate"`
	HistoricalBasisYears *int           `json:"historicalBasisYears"`
	AnalystGrowthRate    *float64       `json:"analystGrowthRate"`
	AnalystBasisYears    *int           `json:"analystBasisYears"`
	AnalystData          []AnalystPoint `json:"analystData"`
}

// MetricsResponse is the flat DerivedMetricsResult of GET /metrics.
type MetricsResponse struct {
	Symbol          string   `json:"symbol"`
	Price           *float64 `json:"price"`
	PriceSource     *string  `json:"priceSource"`
	FiscalYear      *int     `json:"fiscalYear"`
	Revenue         *float64 `json:"revenue"`
	EPS             *float64 `json:"eps"`
	GrossMargin     *float64 `json:"grossMargin"`
	OperatingMargin *float64 `json:"operatingMargin"`
	NetMargin       *float64 `json:"netMargin"`
	RevenueGrowth   *float64 `json:"revenueGrowth"`
	EPSGrowth       *float64 `json:"epsGrowth"`
	PERatio         *float64 `json:"peRatio"`
	ForwardPE       *float64 `json:"forwardPE"`
	ForwardPESource *string  `json:"forwardPESource"`
	MarketCap       *float64 `json:"marketCap"`
	Beta            *float64 `json:"beta"`
	DividendYield   *float64 `json:"dividendYield"`
}

// FinancialRecord is one normalized period with its margins.
type FinancialRecord struct {
	PeriodEndDate      string   `json:"periodEndDate"`
	PeriodType         string   `json:"periodType"`
	Year               int      `json:"year"`
	EPS                *float64 `json:"eps"`
	Revenue            *float64 `json:"revenue"`
	CostOfRevenue      *float64 `json:"costOfRevenue"`
	GrossProfit        *float64 `json:"grossProfit"`
	NetIncome          *float64 `json:"netIncome"`
	OperatingIncome    *float64 `json:"operatingIncome"`
	OperatingCashFlow  *float64 `json:"operatingCashFlow"`
	CapitalExpenditure *float64 `json:"capitalExpenditure"`
	FreeCashFlow       *float64 `json:"freeCashFlow"`
	GrossMargin        *float64 `json:"grossMargin"`
	OperatingMargin    *float64 `json:"operatingMargin"`
	NetMargin          *float64 `json:"netMargin"`
}

// FinancialsResponse is the body of GET /financials.
type FinancialsResponse struct {
	Symbol     string            `json:"symbol"`
	Source     string            `json:"source"`
	PeriodType string            `json:"periodType"`
	Records    []FinancialRecord `json:"records"`
}

// ProjectionPoint is one explicit-stage year of a discounting model.
type ProjectionPoint struct {
	Year         int     `json:"year"`
	Value        float64 `json:"value"`
	PresentValue float64 `json:"presentValue"`
}

// DDMResponse is the body of GET /ddm.
type DDMResponse struct {
	Symbol          string            `json:"symbol"`
	CurrentDividend float64           `json:"currentDividend"`
	WACC            float64           `json:"wacc"`
	StableGrowth    float64           `json:"stableGrowth"`
	HighGrowthRate  float64           `json:"highGrowthRate"`
	HighGrowthYears int               `json:"highGrowthYears"`
	Projections     []ProjectionPoint `json:"projections"`
	TerminalValue   float64           `json:"terminalValue"`
	PVTerminalValue float64           `json:"pvTerminalValue"`
	SumPVDividends  float64           `json:"sumPvDividends"`
	IntrinsicValue  float64           `json:"intrinsicValue"`
	Price           *float64          `json:"price"`
	Upside          *float64          `json:"upside"`
}

// DCFResponse is the body of GET /dcf.
type DCFResponse struct {
	Symbol          string            `json:"symbol"`
	Source          string            `json:"source"`
	BaseFreeCash    float64           `json:"baseFreeCashFlow"`
	WACC            float64           `json:"wacc"`
	TerminalGrowth  float64           `json:"terminalGrowth"`
	GrowthRate      float64           `json:"growthRate"`
	Years           int               `json:"years"`
	Projections     []ProjectionPoint `json:"projections"`
	TerminalValue   float64           `json:"terminalValue"`
	PVTerminalValue float64           `json:"pvTerminalValue"`
	EnterpriseValue float64           `json:"enterpriseValue"`
	NetDebt         *float64          `json:"netDebt"`
	EquityValue     float64           `json:"equityValue"`
	Shares          *float64          `json:"sharesOutstanding"`
	PerShare        *float64          `json:"intrinsicValuePerShare"`
	Price           *float64          `json:"price"`
	Upside          *float64          `json:"upside"`
}

// FearGreedResponse is the body of GET /fear-greed.
type FearGreedResponse struct {
	Score         *float64 `json:"score"`
	Rating        *string  `json:"rating"`
	Timestamp     *string  `json:"timestamp"`
	PreviousClose *float64 `json:"previousClose"`
	PreviousWeek  *float64 `json:"previousWeek"`
	PreviousMonth *float64 `json:"previousMonth"`
	PreviousYear  *float64 `json:"previousYear"`
}

// WatchlistItem is one persisted watchlist entry.
type WatchlistItem struct {
	Symbol  string `json:"symbol"`
	Notes   string `json:"notes"`
	AddedAt string `json:"addedAt"`
}

// WatchlistRequest is the body of POST /watchlist.
type WatchlistRequest struct {
	Symbol string `json:"symbol" binding:"required,max=12"`
	Notes  string `json:"notes" binding:"max=500"`
}
