package app

import (
	"testing"
	"time"

	"IdleConquest/internal/conquest/domain"
)

func testOffline(seed int64) *OfflineSimulator {
	diff, _, selector, _ := testServices(seed)
	return NewOfflineSimulator(diff, selector)
}

func TestSimulate_基准算例十小时41场(t *testing.T) {
	sim := testOffline(1)
	empire := testEmpire(domain.ResourceBag{Gold: 10000, Troops: 5000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 0), testCity(2, 100, 0), testCity(3, 100, 0), testCity(4, 100, 0))

	report := sim.Simulate(empire, registry.ConquerableCities(), registry.TotalCities(), 10*time.Hour)
	// efficiencyHours = 8 + 2×0.9 = 9.8 → floor(9.8×6×0.7) = 41
	if report.BattlesFought != 41 {
		t.Fatalf("期望 10 小时打 41 场, got=%d", report.BattlesFought)
	}
	// 无历史时胜率取 0.75 → round(41×0.75) = 31
	if report.Victories != 31 || report.Defeats != 10 {
		t.Fatalf("期望 31 胜 10 负, got=%d/%d", report.Victories, report.Defeats)
	}
	// 每城需 10 胜（0 城起步）→ 31/10 = 3 城
	if len(report.CitiesConquered) != 3 {
		t.Fatalf("期望攻克 3 城, got=%v", report.CitiesConquered)
	}
	if report.ResourcesGained.Gold <= 0 || report.TroopsLost <= 0 {
		t.Fatalf("期望有战利品与战损, got=%+v", report)
	}
}

func TestSimulate_超过24小时封顶(t *testing.T) {
	sim := testOffline(1)
	empire := testEmpire(domain.ResourceBag{Gold: 10000, Troops: 5000}, openSettings())

	capped := sim.Simulate(empire, nil, 0, 24*time.Hour)
	beyond := sim.Simulate(empire, nil, 0, 72*time.Hour)
	if beyond.ElapsedHours != 24 || beyond.BattlesFought != capped.BattlesFought {
		t.Fatalf("期望超过 24 小时不再增加收益, capped=%d beyond=%d", capped.BattlesFought, beyond.BattlesFought)
	}
}

func TestSimulate_战斗数随时长单调不减(t *testing.T) {
	sim := testOffline(1)
	empire := testEmpire(domain.ResourceBag{Gold: 10000, Troops: 5000}, openSettings())

	prev := -1
	for _, h := range []int{1, 4, 8, 12, 20, 24} {
		r := sim.Simulate(empire, nil, 0, time.Duration(h)*time.Hour)
		if r.BattlesFought < prev {
			t.Fatalf("期望战斗数随时长单调不减, %d 小时=%d, 上一档=%d", h, r.BattlesFought, prev)
		}
		prev = r.BattlesFought
	}
}

func TestSimulate_征服数不超过注册表剩余(t *testing.T) {
	sim := testOffline(1)
	empire := testEmpire(domain.ResourceBag{Gold: 10000, Troops: 5000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 0), testCity(2, 100, 0))

	report := sim.Simulate(empire, registry.ConquerableCities(), registry.TotalCities(), 24*time.Hour)
	if len(report.CitiesConquered) > 2 {
		t.Fatalf("期望征服数被注册表规模截断, got=%v", report.CitiesConquered)
	}
}

func TestApply_一次落账并推进活跃锚点(t *testing.T) {
	sim := testOffline(1)
	empire := testEmpire(domain.ResourceBag{Gold: 1000, Troops: 5000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 0), testCity(2, 100, 0), testCity(3, 100, 0), testCity(4, 100, 0))

	report := sim.Simulate(empire, registry.ConquerableCities(), registry.TotalCities(), 10*time.Hour)
	now := time.Now().Add(10 * time.Hour)
	if err := sim.Apply(empire, registry, report, now); err != nil {
		t.Fatalf("期望落账成功, got=%v", err)
	}

	if empire.Resources().Gold != 1000+report.ResourcesGained.Gold {
		t.Fatalf("期望金币入账, got=%d", empire.Resources().Gold)
	}
	if empire.Resources().Troops != 5000-report.TroopsLost {
		t.Fatalf("期望战损扣兵, got=%d", empire.Resources().Troops)
	}
	if empire.OwnedCount() != len(report.CitiesConquered) {
		t.Fatalf("期望城池归属落账, got=%d", empire.OwnedCount())
	}
	for _, id := range report.CitiesConquered {
		c, _ := registry.CityByID(id)
		if c.Owner() != domain.OwnerPlayer {
			t.Fatalf("期望注册表同步易主, city=%d owner=%v", id, c.Owner())
		}
	}
	stats := empire.Statistics()
	if stats.TotalBattles() != report.BattlesFought || stats.CitiesConquered() != len(report.CitiesConquered) {
		t.Fatalf("期望统计聚合入账, battles=%d cities=%d", stats.TotalBattles(), stats.CitiesConquered())
	}
	if stats.WinStreak() != 0 || stats.LossStreak() != 0 {
		t.Fatalf("期望离线入账不影响连胜连败, win=%d loss=%d", stats.WinStreak(), stats.LossStreak())
	}
	if !empire.LastActiveAt().Equal(now) {
		t.Fatalf("期望活跃锚点推进到 %v, got=%v", now, empire.LastActiveAt())
	}
}
