package app

import (
	"fmt"
	"math"

	"IdleConquest/internal/conquest/domain"
)

const (
	// 难度因子的全局夹取区间。
	MinDifficultyFactor = 1.0
	MaxDifficultyFactor = 10.0

	// 成功率的全局夹取区间。
	MinSuccessProbability = 0.1
	MaxSuccessProbability = 0.9

	// 平衡控制器：目标胜率与比例反馈参数。
	// 刻意做成简单比例环而不是完整 PID，手感优先。
	TargetWinRate      = 0.75
	winRateTolerance   = 0.1
	balanceGain        = 0.3

	// 连胜超过 5 场每场 +0.1，连败超过 3 场每场 -0.15（下限 0.5）。
	streakWinThreshold   = 5
	streakWinStep        = 0.1
	streakLossThreshold  = 3
	streakLossStep       = 0.15
	streakModifierFloor  = 0.5

	battlesPerScalingStep = 10.0
	cityExpansionWeight   = 0.1
)

// DifficultyService 难度缩放 + 胜率平衡控制。
// 纯状态函数：输入当前统计与城数，输出缩放因子，不落任何副作用。
type DifficultyService struct {
	scalingFactor float64 // 每 10 场战斗的指数底数
}

func NewDifficultyService(scalingFactor float64) *DifficultyService {
	if scalingFactor < 1.0 {
		scalingFactor = 1.0
	}
	return &DifficultyService{scalingFactor: scalingFactor}
}

// Factor 当前难度因子，夹取到 [1.0, 10.0]。
// reason 描述本次缩放的主导原因，供 difficultyScalingApplied 事件展示。
func (d *DifficultyService) Factor(stats *domain.Statistics, ownedCities int) (float64, string) {
	base := math.Pow(d.scalingFactor, float64(stats.TotalBattles())/battlesPerScalingStep)
	expansion := 1.0 + float64(ownedCities)*cityExpansionWeight

	streak := 1.0
	reason := "progression"
	if ws := stats.WinStreak(); ws > streakWinThreshold {
		streak += streakWinStep * float64(ws-streakWinThreshold)
		reason = fmt.Sprintf("win streak %d", ws)
	}
	if ls := stats.LossStreak(); ls > streakLossThreshold {
		streak -= streakLossStep * float64(ls-streakLossThreshold)
		if streak < streakModifierFloor {
			streak = streakModifierFloor
		}
		reason = fmt.Sprintf("loss streak %d", ls)
	}

	factor := clampFloat(base*expansion*streak, MinDifficultyFactor, MaxDifficultyFactor)
	return factor, reason
}

// AdjustProbability 平衡控制：滚动胜率偏离目标超过容差时，
// 对刚算出的成功率做 -deviation*0.3 的比例修正，再夹回区间。
func (d *DifficultyService) AdjustProbability(p float64, stats *domain.Statistics) float64 {
	deviation := stats.WinRate() - TargetWinRate
	if math.Abs(deviation) > winRateTolerance {
		p -= deviation * balanceGain
	}
	return clampFloat(p, MinSuccessProbability, MaxSuccessProbability)
}

// RewardScaling 战利品缩放 = clamp(√difficulty, 1.0, 3.0)。
func RewardScaling(difficultyFactor float64) float64 {
	return clampFloat(math.Sqrt(difficultyFactor), 1.0, 3.0)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
