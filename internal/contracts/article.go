package contracts

// FactorTag 시장 동인 태그 (closed enum)
// 직렬화 문자열은 기존 소비자와의 호환을 위해 고정
type FactorTag string

const (
	FactorFederalReserve FactorTag = "Federal Reserve"
	FactorInflation      FactorTag = "Inflation"
	FactorUSDStrength    FactorTag = "USD Strength"
	FactorGeopolitical   FactorTag = "Geopolitical"
	FactorEconomicData   FactorTag = "Economic Data"
	FactorCentralBanks   FactorTag = "Central Banks"
	FactorSupplyDemand   FactorTag = "Supply/Demand"
)

// AllFactorTags 고정 그룹 순서 (추출기의 발견 순서 = 이 순서)
var AllFactorTags = []FactorTag{
	FactorFederalReserve,
	FactorInflation,
	FactorUSDStrength,
	FactorGeopolitical,
	FactorEconomicData,
	FactorCentralBanks,
	FactorSupplyDemand,
}

// MaxKeyFactors 기사당 최대 factor 수
// 현재 태그가 7개뿐이라 잘림은 그룹이 추가될 때만 발생하지만, 계약으로 유지
const MaxKeyFactors = 5

// Article 필터/스코어링을 통과한 뉴스 기사
// 스코어러/추출기가 생성한 뒤에는 불변
type Article struct {
	Title          string      `json:"title"`
	URL            string      `json:"url"`
	Summary        string      `json:"summary"` // 500자로 잘림
	PublishedDate  string      `json:"published_date"`
	SentimentScore float64     `json:"sentiment_score"` // [-1, 1]
	KeyFactors     []FactorTag `json:"key_factors"`     // ≤5, 그룹 순서
}

// NewsAggregate 기사 집합의 축약 결과
type NewsAggregate struct {
	SentimentScore   float64     `json:"sentiment_score"`  // 평균, 기사 없으면 0.0
	KeyFactors       []FactorTag `json:"key_factors"`      // 빈도순 상위 5개
	ArticlesAnalyzed int         `json:"articles_analyzed"`
	RecentHeadlines  []string    `json:"recent_headlines,omitempty"` // 상위 5개 제목 (100자)
}

// HasFactor reports whether tag is present in the list
func HasFactor(factors []FactorTag, tag FactorTag) bool {
	for _, f := range factors {
		if f == tag {
			return true
		}
	}
	return false
}
