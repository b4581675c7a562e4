package app

import (
	"testing"
	"time"

	"IdleConquest/internal/conquest/domain"
)

func collectEvents(emitter *Emitter) *[]string {
	names := &[]string{}
	emitter.Subscribe(func(e Event) {
		*names = append(*names, e.EventName())
	})
	return names
}

func containsEvent(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func TestTick_完整周期_承诺到结算(t *testing.T) {
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 10), testCity(2, 200, 20))
	s, emitter := testScheduler(empire, registry, 1)
	names := collectEvents(emitter)

	t0 := time.Unix(1000, 0)
	results := s.Tick(t0)
	if len(results) != 1 || !results[0].Success || results[0].Plan == nil {
		t.Fatalf("期望首个 tick 承诺一份计划, got=%+v", results)
	}
	plan := results[0].Plan
	if plan.CityID != 1 {
		t.Fatalf("期望优先攻打 1 号城, got=%d", plan.CityID)
	}
	if s.ActiveSieges() != 1 || s.State() != StateIdle {
		t.Fatalf("期望承诺后回到 Idle 且在途围城 1, state=%v sieges=%d", s.State(), s.ActiveSieges())
	}
	if empire.Resources().Troops != 10000-plan.TroopAllocation {
		t.Fatalf("期望承诺即扣兵, got=%d", empire.Resources().Troops)
	}
	if empire.Resources().Gold != 100000-plan.Cost.Gold {
		t.Fatalf("期望承诺即扣金, got=%d", empire.Resources().Gold)
	}
	if c, _ := registry.CityByID(1); !c.UnderSiege() {
		t.Fatalf("期望城池被标记围城")
	}
	if !containsEvent(*names, "battleStarted") || !containsEvent(*names, "difficultyScalingApplied") {
		t.Fatalf("期望广播开战与难度事件, got=%v", *names)
	}

	// 围城到期：结算 + 因 nextCheckAt 已过再承诺下一城
	results = s.Tick(t0.Add(plan.SiegeDuration))
	if len(results) == 0 || results[0].Record == nil {
		t.Fatalf("期望到期 tick 先结算, got=%+v", results)
	}
	record := results[0].Record
	if record.Status() != domain.BattleResolved || record.Outcome() == nil {
		t.Fatalf("期望记录已结算")
	}
	if !record.Outcome().Victory {
		t.Fatalf("碾压局期望必胜, got=%+v", record.Outcome())
	}
	if !empire.OwnsCity(1) {
		t.Fatalf("期望胜利后城池归属玩家")
	}
	if c, _ := registry.CityByID(1); c.Owner() != domain.OwnerPlayer {
		t.Fatalf("期望注册表同步易主")
	}
	stats := empire.Statistics()
	if stats.TotalBattles() != 1 || stats.Victories() != 1 || stats.CitiesConquered() != 1 {
		t.Fatalf("期望统计入账一场胜利, got=%+v", stats.Snapshot())
	}
	if s.History().Len() != 1 {
		t.Fatalf("期望历史入档 1 条, got=%d", s.History().Len())
	}
	if !containsEvent(*names, "battleCompleted") || !containsEvent(*names, "cityConquered") {
		t.Fatalf("期望广播结算与征服事件, got=%v", *names)
	}
}

func TestTick_战败只折损不易主(t *testing.T) {
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 2000}, openSettings())
	// 守军 4000：成功率被压到 0.125，种子 1 的首个抽取 0.60 必然战败
	registry := newFakeRegistry(testCity(1, 4000, 0))
	s, _ := testScheduler(empire, registry, 1)

	t0 := time.Unix(1000, 0)
	results := s.Tick(t0)
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("期望承诺成功, got=%+v", results)
	}
	plan := results[0].Plan

	results = s.Tick(t0.Add(plan.SiegeDuration))
	var record *domain.BattleRecord
	for _, r := range results {
		if r.Record != nil {
			record = r.Record
		}
	}
	if record == nil || record.Outcome() == nil || record.Outcome().Victory {
		t.Fatalf("期望战败, got=%+v", record)
	}
	if empire.OwnsCity(1) {
		t.Fatalf("期望战败不易主")
	}
	c, _ := registry.CityByID(1)
	if c.UnderSiege() {
		t.Fatalf("期望战败后解除围城标记")
	}
	if c.Garrison() >= 4000 || c.Garrison() < 4000-int(4000*0.20)-1 {
		t.Fatalf("期望守军折损 10%%-20%%, got=%d", c.Garrison())
	}
	survivors := plan.TroopAllocation - record.Outcome().AttackerCasualties
	if empire.Resources().Troops != 2000-plan.TroopAllocation+survivors {
		t.Fatalf("期望幸存者归建, got=%d", empire.Resources().Troops)
	}
	if st := empire.Statistics(); st.Defeats() != 1 || st.LossStreak() != 1 {
		t.Fatalf("期望统计入账战败, got=%+v", st.Snapshot())
	}
}

func TestTick_并发围城达上限拒绝新周期(t *testing.T) {
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 10), testCity(2, 100, 10))
	s, _ := testScheduler(empire, registry, 1)

	t0 := time.Unix(1000, 0)
	s.Tick(t0)
	// 已过 nextCheckAt、围城未到期：应被并发闸门拦下
	results := s.Tick(t0.Add(10 * time.Second))
	if len(results) != 1 || results[0].Success || results[0].Reason != ReasonSiegeLimit.Code {
		t.Fatalf("期望并发上限拒绝, got=%+v", results)
	}
	if s.ActiveSieges() != 1 {
		t.Fatalf("期望在途围城仍为 1, got=%d", s.ActiveSieges())
	}
}

func TestTick_全图征服宣告胜利并暂停(t *testing.T) {
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 10), testCity(2, 100, 10))
	for _, id := range []domain.CityID{1, 2} {
		if _, err := registry.ExecuteConquest(id); err != nil {
			t.Fatalf("预置征服失败: %v", err)
		}
		empire.AddCity(id)
	}
	s, emitter := testScheduler(empire, registry, 1)
	names := collectEvents(emitter)

	t0 := time.Unix(1000, 0)
	results := s.Tick(t0)
	if len(results) != 1 || !results[0].Victory || results[0].Reason != ReasonAllConquered.Code {
		t.Fatalf("期望宣告胜利, got=%+v", results)
	}
	if s.State() != StatePaused {
		t.Fatalf("期望胜利后转入暂停, got=%v", s.State())
	}
	if !containsEvent(*names, "victoryAchieved") || !containsEvent(*names, "automationPaused") {
		t.Fatalf("期望广播胜利与暂停事件, got=%v", *names)
	}

	// 暂停后不再产生任何周期，胜利事件只发一次
	if again := s.Tick(t0.Add(time.Minute)); len(again) != 0 {
		t.Fatalf("期望暂停后无新周期, got=%+v", again)
	}
}

func TestPause_在途围城仍结算但不开新周期(t *testing.T) {
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 10), testCity(2, 100, 10))
	s, _ := testScheduler(empire, registry, 1)

	t0 := time.Unix(1000, 0)
	results := s.Tick(t0)
	plan := results[0].Plan
	s.Pause("user")

	results = s.Tick(t0.Add(plan.SiegeDuration))
	if len(results) != 1 || results[0].Record == nil {
		t.Fatalf("期望暂停时在途围城照常结算, got=%+v", results)
	}
	if s.ActiveSieges() != 0 || s.State() != StatePaused {
		t.Fatalf("期望结算完仍保持暂停, state=%v sieges=%d", s.State(), s.ActiveSieges())
	}

	// 恢复后下个 tick 立刻可以开新周期
	s.Resume(t0.Add(plan.SiegeDuration))
	results = s.Tick(t0.Add(plan.SiegeDuration))
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("期望恢复后立即承诺新计划, got=%+v", results)
	}
}

func TestManualAttack_共用并发闸门与保底(t *testing.T) {
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 10), testCity(2, 100, 10))
	s, _ := testScheduler(empire, registry, 1)

	t0 := time.Unix(1000, 0)
	res := s.ManualAttack(2, t0)
	if !res.Success || res.Record == nil || !res.Record.Manual() {
		t.Fatalf("期望手动出兵成功并标记 manual, got=%+v", res)
	}
	if res = s.ManualAttack(1, t0); res.Reason != ReasonSiegeLimit.Code {
		t.Fatalf("期望手动出兵同样受并发上限约束, got=%+v", res)
	}
}

func TestManualAttack_已拥有或被围攻的城被拒(t *testing.T) {
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 10), testCity(2, 100, 10))
	empire.AddCity(1)
	c2, _ := registry.CityByID(2)
	c2.BeginSiege()
	s, _ := testScheduler(empire, registry, 1)

	t0 := time.Unix(1000, 0)
	if res := s.ManualAttack(1, t0); res.Reason != ReasonCityOwned.Code {
		t.Fatalf("期望已拥有被拒, got=%+v", res)
	}
	if res := s.ManualAttack(2, t0); res.Reason != ReasonCityUnderSiege.Code {
		t.Fatalf("期望被围攻被拒, got=%+v", res)
	}
	if res := s.ManualAttack(99, t0); res.Err == nil {
		t.Fatalf("期望未知城池上抛硬错误, got=%+v", res)
	}
}

func TestTick_结算前重校验_已归属城池短路(t *testing.T) {
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 10))
	s, _ := testScheduler(empire, registry, 1)

	t0 := time.Unix(1000, 0)
	results := s.Tick(t0)
	plan := results[0].Plan
	troopsAfterCommit := empire.Resources().Troops

	// 围城期间城池经由别的途径归属玩家（离线补偿等）
	if _, err := registry.ExecuteConquest(1); err != nil {
		t.Fatalf("预置征服失败: %v", err)
	}
	empire.AddCity(1)

	results = s.Tick(t0.Add(plan.SiegeDuration))
	var skip *CycleResult
	for i := range results {
		if results[i].Record != nil {
			skip = &results[i]
		}
	}
	if skip == nil || skip.Reason != ReasonCityOwned.Code {
		t.Fatalf("期望结算短路并带跳过原因, got=%+v", results)
	}
	if empire.Resources().Troops != troopsAfterCommit+plan.TroopAllocation {
		t.Fatalf("期望出征部队全额归还, got=%d", empire.Resources().Troops)
	}
	if st := empire.Statistics(); st.TotalBattles() != 0 {
		t.Fatalf("期望短路不入统计, got=%+v", st.Snapshot())
	}
}

func TestTick_间隔几何增长且封顶(t *testing.T) {
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 10))
	s, _ := testScheduler(empire, registry, 1)

	base := s.Interval()
	s.Tick(time.Unix(1000, 0))
	if s.Interval() <= base {
		t.Fatalf("期望完成一轮后间隔增长, base=%v got=%v", base, s.Interval())
	}
	if s.Interval() > 60*time.Second {
		t.Fatalf("期望间隔不超过封顶, got=%v", s.Interval())
	}
}

func TestOfflineCatchUp_同一锚点只补偿一次(t *testing.T) {
	empire := testEmpire(domain.ResourceBag{Gold: 10000, Troops: 5000}, openSettings())
	registry := newFakeRegistry(testCity(1, 100, 0), testCity(2, 100, 0), testCity(3, 100, 0), testCity(4, 100, 0))
	s, emitter := testScheduler(empire, registry, 1)
	names := collectEvents(emitter)

	now := empire.LastActiveAt().Add(10 * time.Hour)
	report, res := s.OfflineCatchUp(now)
	if !res.Success || report == nil || report.BattlesFought != 41 {
		t.Fatalf("期望离线补偿 41 场, report=%+v res=%+v", report, res)
	}
	if !containsEvent(*names, "offlineProgressCalculated") {
		t.Fatalf("期望广播离线补偿事件, got=%v", *names)
	}

	// 锚点已推进：同一时刻再次补偿不产生任何变更
	goldAfter := empire.Resources().Gold
	report, res = s.OfflineCatchUp(now)
	if report != nil || res.Reason != ReasonNoOfflineTime.Code {
		t.Fatalf("期望重复补偿被拒, report=%+v res=%+v", report, res)
	}
	if empire.Resources().Gold != goldAfter {
		t.Fatalf("期望重复补偿不改资源, got=%d", empire.Resources().Gold)
	}
}
