package contracts

import "time"

// MetalSymbols 지원 금속 심볼 → 표시 이름
var MetalSymbols = map[string]string{
	"XAU":      "Gold",
	"XAG":      "Silver",
	"XPT":      "Platinum",
	"XPD":      "Palladium",
	"COPPER":   "Copper",
	"ALUMINUM": "Aluminum",
	"ZINC":     "Zinc",
	"NICKEL":   "Nickel",
	"LEAD":     "Lead",
}

// IsSupportedMetal reports whether symbol is a known metal symbol
func IsSupportedMetal(symbol string) bool {
	_, ok := MetalSymbols[symbol]
	return ok
}

// MetalName returns the display name for a symbol (미지원 심볼은 그대로 반환)
func MetalName(symbol string) string {
	if name, ok := MetalSymbols[symbol]; ok {
		return name
	}
	return symbol
}

// CurrentAnalysis 현재 시세 스냅샷
type CurrentAnalysis struct {
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Unit        string    `json:"unit"`
	LastUpdated time.Time `json:"last_updated"`
}

// RiskLevel 리스크 등급
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskAssessment 리스크 평가
type RiskAssessment struct {
	RiskLevel           RiskLevel   `json:"risk_level"`
	Confidence          float64     `json:"confidence"`
	VolatilityFactors   int         `json:"volatility_factors"`
	HistoricalDataBoost bool        `json:"historical_data_boost"`
	KeyRisks            []FactorTag `json:"key_risks"`
}

// ReportMetadata 리포트 생성 메타데이터
type ReportMetadata struct {
	HistoricalDataPoints int       `json:"historical_data_points"`
	HistoricalAdjustment float64   `json:"confidence_boost_from_history"`
	NextScheduledRun     time.Time `json:"next_scheduled_run"`
}

// Report 일일 분석 리포트 전체
type Report struct {
	ID              int64            `json:"id,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
	ReportVersion   string           `json:"report_version"`
	Metal           string           `json:"metal"`
	MetalName       string           `json:"metal_name"`
	CurrentAnalysis CurrentAnalysis  `json:"current_analysis"`
	NewsSentiment   NewsAggregate    `json:"news_sentiment"`
	Prediction      PredictionResult `json:"ml_prediction"`
	MarketSummary   string           `json:"market_summary"`
	RiskAssessment  RiskAssessment   `json:"risk_assessment"`
	Recommendations []string         `json:"recommendations"`
	Metadata        ReportMetadata   `json:"automation_metadata"`
}

// AsHistoricalRecord 리포트를 추세 분석용 최소 레코드로 변환
func (r *Report) AsHistoricalRecord() HistoricalRecord {
	return HistoricalRecord{
		Trend:      r.Prediction.Trend,
		Confidence: r.Prediction.Confidence,
	}
}
