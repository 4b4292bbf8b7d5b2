package news

import (
	"strings"

	"github.com/rs/zerolog"
)

// 키워드 테이블은 프로세스 시작 시 1회 로드되는 정적 설정 데이터
// 호출마다 재할당하지 않음

// excludeKeywords 명백히 비금융 컨텐츠 (스포츠/엔터테인먼트/라이프스타일)
var excludeKeywords = []string{
	// Sports and competitions
	"championship", "championships", "olympics", "medal ceremony", "athlete", "sport team",
	"game match", "tournament", "coach", "stadium", "league", "competition", "compete",
	"gold medal", "gold medalist", "win gold", "winning gold", "clinch gold", "clinching",
	"galway", "national senior", "golf", "football", "soccer", "basketball", "tennis",
	"swimming", "racing", "marathon", "triathlon", "world cup", "premier league",
	// Entertainment and media
	"film review", "movie", "actor", "actress", "director", "cinema", "naked gun",
	"music album", "song", "concert", "band", "artist", "entertainment",
	"fashion", "style", "celebrity", "red carpet", "award show", "golden globe",
	"whisky", "whiskey", "spirits", "alcohol", "beverage", "drink", "distillery",
	"kavalan", "tokyo whisky", "spirits competition", "best of the best",
	// Food and lifestyle
	"recipe", "cooking", "chef", "restaurant", "cuisine", "culinary",
	// Personal stories and lifestyle
	"wedding", "marriage", "jewelry", "engagement ring", "personal story",
}

// basicMarketIndicators exclude 키워드가 1개일 때 요구되는 시장 맥락
var basicMarketIndicators = []string{
	"price", "market", "trading", "investment", "economic", "financial",
	"gold", "precious metals", "bullion", "commodity",
	"federal reserve", "inflation", "central bank", "monetary policy",
}

// financialKeywords 금융/시장 맥락
var financialKeywords = []string{
	"price", "market", "trading", "investment", "commodity", "futures",
	"economic", "federal", "central bank", "inflation", "currency",
	"dollar", "usd", "financial", "economy", "monetary", "policy",
	"bullion", "etf", "fund", "portfolio", "hedge", "safe haven",
	"geopolitical", "war", "conflict", "sanctions", "trade", "mining",
	"supply", "demand", "reserves", "production", "tariff", "tariffs",
	"trade war", "customs", "import", "export", "duties", "protectionism",
	"wto", "nafta", "usmca", "china trade", "trade deficit", "trade surplus",
	"trade negotiations", "trade deal", "trade agreement", "brexit",
	"eu trade", "commercial", "international trade", "bilateral trade",
}

// metalTerms 귀금속 용어
var metalTerms = []string{
	"gold", "precious metal", "bullion", "silver", "platinum",
}

// economicTerms 거시경제 용어
var economicTerms = []string{
	"economic", "economy", "fed", "federal", "inflation", "interest", "dollar",
}

// RelevanceFilter 기사 관련성 필터
// 정밀도 우선 휴리스틱: 관련 기사 누락(false negative)은 허용,
// 무관 기사 유입(false positive)은 맥락 증거가 있을 때만 허용
type RelevanceFilter struct {
	log zerolog.Logger
}

// NewRelevanceFilter 새 관련성 필터 생성
func NewRelevanceFilter(log zerolog.Logger) *RelevanceFilter {
	return &RelevanceFilter{
		log: log.With().Str("component", "news.relevance").Logger(),
	}
}

// IsRelevant 소문자로 변환된 제목+본문이 금속 시장 기사인지 판정
func (f *RelevanceFilter) IsRelevant(content string) bool {
	if content == "" {
		return false
	}

	// exclude 키워드 카운트: 2개 이상이면 즉시 제외
	excludeCount := 0
	for _, keyword := range excludeKeywords {
		if strings.Contains(content, keyword) {
			excludeCount++
		}
	}
	if excludeCount >= 2 {
		return false
	}

	// 정확히 1개면 기본 시장 맥락 요구
	if excludeCount == 1 && !containsAny(content, basicMarketIndicators) {
		return false
	}

	// 금융/금속/경제 맥락 중 하나라도 있으면 통과
	return containsAny(content, financialKeywords) ||
		containsAny(content, metalTerms) ||
		containsAny(content, economicTerms)
}

// containsAny reports whether content contains any of the terms
func containsAny(content string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(content, term) {
			return true
		}
	}
	return false
}
