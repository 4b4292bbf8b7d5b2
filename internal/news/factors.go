package news

import (
	"strings"

	"github.com/wonny/midas/internal/contracts"
)

// factorGroup 태그와 탐지 키워드
type factorGroup struct {
	tag      contracts.FactorTag
	keywords []string
}

// factorGroups 고정 그룹 순서: 추출 결과의 순서가 이 순서를 따름
var factorGroups = []factorGroup{
	{contracts.FactorFederalReserve, []string{"fed", "federal reserve", "interest rate", "monetary policy"}},
	{contracts.FactorInflation, []string{"inflation", "cpi", "consumer price"}},
	{contracts.FactorUSDStrength, []string{"dollar", "usd", "currency"}},
	{contracts.FactorGeopolitical, []string{"war", "conflict", "geopolitical", "tensions"}},
	{contracts.FactorEconomicData, []string{"gdp", "employment", "jobs", "economic"}},
	{contracts.FactorCentralBanks, []string{"central bank", "bank of", "ecb", "boe"}},
	{contracts.FactorSupplyDemand, []string{"supply", "demand", "production", "mining"}},
}

// ExtractFactors 소문자 텍스트에서 시장 동인 태그 추출
// 각 태그는 해당 키워드 중 하나라도 존재하면 포함되며,
// 그룹 순서 기준 앞 MaxKeyFactors개로 잘림
func ExtractFactors(text string) []contracts.FactorTag {
	if text == "" {
		return nil
	}

	var factors []contracts.FactorTag
	for _, group := range factorGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(text, keyword) {
				factors = append(factors, group.tag)
				break
			}
		}
		if len(factors) == contracts.MaxKeyFactors {
			break
		}
	}

	return factors
}
