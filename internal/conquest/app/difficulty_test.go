package app

import (
	"math"
	"testing"

	"IdleConquest/internal/conquest/domain"
)

func TestFactor_无历史时为基准值(t *testing.T) {
	diff := NewDifficultyService(1.1)
	stats := domain.NewStatistics()

	factor, reason := diff.Factor(stats, 0)
	if factor != 1.0 {
		t.Fatalf("期望无历史时难度因子为 1.0, got=%v", factor)
	}
	if reason != "progression" {
		t.Fatalf("期望缩放原因为 progression, got=%q", reason)
	}
}

func TestFactor_城池扩张推高难度(t *testing.T) {
	diff := NewDifficultyService(1.0)
	stats := domain.NewStatistics()

	factor, _ := diff.Factor(stats, 5)
	if math.Abs(factor-1.5) > 1e-9 {
		t.Fatalf("期望 5 城时因子 = 1×(1+5×0.1) = 1.5, got=%v", factor)
	}
}

func TestFactor_连胜加压连败减压(t *testing.T) {
	diff := NewDifficultyService(1.0)

	winStats := domain.NewStatistics()
	winN(winStats, 8) // 连胜 8：超阈值 3 场，每场 +0.1
	factor, reason := diff.Factor(winStats, 0)
	if math.Abs(factor-1.3) > 1e-9 {
		t.Fatalf("期望连胜 8 时因子 1.3, got=%v", factor)
	}
	if reason != "win streak 8" {
		t.Fatalf("期望缩放原因标注连胜, got=%q", reason)
	}

	lossStats := domain.NewStatistics()
	loseN(lossStats, 5) // 连败 5：超阈值 2 场，每场 -0.15
	factor, reason = diff.Factor(lossStats, 0)
	if math.Abs(factor-1.0) > 1e-9 {
		t.Fatalf("期望连败修正被下限 1.0 夹住, got=%v", factor)
	}
	if reason != "loss streak 5" {
		t.Fatalf("期望缩放原因标注连败, got=%q", reason)
	}
}

func TestFactor_夹取到上限(t *testing.T) {
	diff := NewDifficultyService(1.5)
	stats := domain.NewStatistics()
	winN(stats, 100)

	factor, _ := diff.Factor(stats, 30)
	if factor != MaxDifficultyFactor {
		t.Fatalf("期望因子被夹到 %v, got=%v", MaxDifficultyFactor, factor)
	}
}

func TestAdjustProbability_高胜率下调(t *testing.T) {
	diff := NewDifficultyService(1.0)
	stats := domain.NewStatistics()
	winN(stats, 10) // 胜率 1.0，偏差 0.25 > 容差 0.1

	got := diff.AdjustProbability(0.662, stats)
	want := 0.662 - 0.25*0.3
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("期望下调到 %v, got=%v", want, got)
	}
}

func TestAdjustProbability_容差内不修正(t *testing.T) {
	diff := NewDifficultyService(1.0)
	stats := domain.NewStatistics()
	winN(stats, 8)
	loseN(stats, 2) // 胜率 0.8，偏差 0.05 在容差内

	if got := diff.AdjustProbability(0.5, stats); got != 0.5 {
		t.Fatalf("期望容差内成功率保持 0.5, got=%v", got)
	}
}

func TestAdjustProbability_修正后仍在区间内(t *testing.T) {
	diff := NewDifficultyService(1.0)

	lowStats := domain.NewStatistics()
	loseN(lowStats, 10) // 胜率 0：上调后依旧不得超过 0.9
	if got := diff.AdjustProbability(0.89, lowStats); got != MaxSuccessProbability {
		t.Fatalf("期望上调后夹回 %v, got=%v", MaxSuccessProbability, got)
	}

	highStats := domain.NewStatistics()
	winN(highStats, 10)
	if got := diff.AdjustProbability(0.12, highStats); got != MinSuccessProbability {
		t.Fatalf("期望下调后夹回 %v, got=%v", MinSuccessProbability, got)
	}
}

func TestRewardScaling_随难度开方并夹取(t *testing.T) {
	cases := []struct{ factor, want float64 }{
		{1.0, 1.0},
		{4.0, 2.0},
		{9.0, 3.0},
		{10.0, 3.0}, // √10 ≈ 3.16，夹到 3.0
	}
	for _, c := range cases {
		if got := RewardScaling(c.factor); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("factor=%v 期望缩放 %v, got=%v", c.factor, c.want, got)
		}
	}
}

// 比例环不会完全消除偏差，但长期胜率必须被压到比裸成功率更接近目标：
// 裸 0.9 的平衡点 ≈ 0.75 + 0.15/1.3 ≈ 0.865。
func TestAdjustProbability_长期胜率被拉向目标(t *testing.T) {
	diff := NewDifficultyService(1.0)
	stats := domain.NewStatistics()

	const raw = 0.9
	acc := 0.0 // 误差扩散代替随机抽样，胜率严格等于平均成功率
	for i := 0; i < 2000; i++ {
		acc += diff.AdjustProbability(raw, stats)
		victory := acc >= 1.0
		if victory {
			acc -= 1.0
		}
		stats.ApplyBattleResult(&domain.BattleOutcome{Victory: victory})
	}
	rate := stats.WinRate()
	if math.Abs(rate-TargetWinRate) >= math.Abs(raw-TargetWinRate) {
		t.Fatalf("期望修正后的长期胜率比裸成功率更接近目标, got=%v", rate)
	}
	if math.Abs(rate-0.865) > 0.02 {
		t.Fatalf("期望长期胜率落在平衡点 0.865 附近, got=%v", rate)
	}
}
