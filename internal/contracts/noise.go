package contracts

import (
	"math/rand"
	"sync"
	"time"
)

// NoiseSource 주입 가능한 난수 소스
// 감성 지터와 시장 노이즈는 의도된 비결정성이므로, 테스트에서
// 결정적 출력을 얻으려면 시드 고정 소스를 주입한다
type NoiseSource interface {
	// Uniform returns a random value in [min, max)
	Uniform(min, max float64) float64
}

// randNoise rand.Rand 기반 소스
type randNoise struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (n *randNoise) Uniform(min, max float64) float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return min + n.rng.Float64()*(max-min)
}

// NewSystemNoise 프로세스 레벨 난수 소스 (프로덕션 기본값)
func NewSystemNoise() NoiseSource {
	return &randNoise{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededNoise 시드 고정 난수 소스 (테스트용 재현 가능)
func NewSeededNoise(seed int64) NoiseSource {
	return &randNoise{rng: rand.New(rand.NewSource(seed))}
}

// zeroNoise 항상 0을 반환하는 소스
type zeroNoise struct{}

func (zeroNoise) Uniform(min, max float64) float64 { return 0 }

// NoNoise 지터를 완전히 제거하는 소스 (정확한 값 단언용)
func NoNoise() NoiseSource {
	return zeroNoise{}
}
