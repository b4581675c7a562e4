package memory

import (
	"context"
	"testing"
	"time"

	"IdleConquest/internal/conquest/domain"
	"IdleConquest/internal/shared/serverconfig"
)

func testSeed() serverconfig.EmpireSeedConfig {
	return serverconfig.EmpireSeedConfig{
		Level: 1, Gold: 1000, Troops: 500, Food: 800,
		Might: 60, Intellect: 55, Leadership: 58, Statecraft: 50, Charisma: 52, Destiny: 45,
	}
}

func TestEmpireRepo_无快照时按种子开局(t *testing.T) {
	repo := NewEmpireRepo(testSeed())
	id := domain.EmpireID(1)

	e, err := repo.LoadEmpire(context.Background(), &id)
	if err != nil {
		t.Fatalf("LoadEmpire err = %v", err)
	}
	if e.Resources().Gold != 1000 || e.Level() != 1 {
		t.Fatalf("seeded empire mismatch: res=%+v level=%d", e.Resources(), e.Level())
	}
}

func TestEmpireRepo_快照后按快照恢复且旧版本不回退(t *testing.T) {
	repo := NewEmpireRepo(testSeed())
	id := domain.EmpireID(1)

	newer := &domain.EmpirePersistSnapshot{
		Version:   5,
		EmpireID:  id,
		Resources: domain.ResourceBag{Gold: 2000, Troops: 600, Food: 900},
		Attrs:     domain.Attributes{Might: 60, Intellect: 55, Leadership: 58, Statecraft: 50, Charisma: 52, Destiny: 45},
		Level:     3,
		Settings:  domain.DefaultAutomationSettings(),
	}
	older := &domain.EmpirePersistSnapshot{
		Version:   2,
		EmpireID:  id,
		Resources: domain.ResourceBag{Gold: 1, Troops: 1, Food: 1},
		Level:     1,
		Settings:  domain.DefaultAutomationSettings(),
	}

	if err := repo.Snapshot(context.Background(), newer); err != nil {
		t.Fatalf("Snapshot err = %v", err)
	}
	if err := repo.Snapshot(context.Background(), older); err != nil {
		t.Fatalf("Snapshot err = %v", err)
	}

	e, err := repo.LoadEmpire(context.Background(), &id)
	if err != nil {
		t.Fatalf("LoadEmpire err = %v", err)
	}
	if e.Resources().Gold != 2000 || e.Level() != 3 {
		t.Fatalf("stale snapshot overwrote newer one: res=%+v level=%d", e.Resources(), e.Level())
	}
}

func archivedRecord(id int64) *domain.BattleRecord {
	return domain.NewBattleRecord(
		id,
		domain.BattlePlan{CityID: 1, CityName: "苍梧村", SiegeDuration: time.Second},
		domain.Combatant{Name: "帝国远征军", Troops: 50, Power: 100, Morale: 1.0},
		domain.Combatant{Name: "苍梧村", Troops: 80, Power: 90, Morale: 1.0},
		false,
		time.Now(),
	)
}

func TestHistoryArchive_Recent按写入倒序返回(t *testing.T) {
	a := NewHistoryArchive()
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		if err := a.Archive(ctx, archivedRecord(i)); err != nil {
			t.Fatalf("Archive err = %v", err)
		}
	}

	got, err := a.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent err = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent len = %d, want 3", len(got))
	}
	for i, want := range []int64{5, 4, 3} {
		if got[i].ID() != want {
			t.Fatalf("Recent[%d] = %d, want %d", i, got[i].ID(), want)
		}
	}
}

func TestHistoryArchive_超量写入只保留环形容量(t *testing.T) {
	a := NewHistoryArchive()
	ctx := context.Background()

	total := defaultArchiveCap + 10
	for i := 1; i <= total; i++ {
		if err := a.Archive(ctx, archivedRecord(int64(i))); err != nil {
			t.Fatalf("Archive err = %v", err)
		}
	}

	got, err := a.Recent(ctx, total)
	if err != nil {
		t.Fatalf("Recent err = %v", err)
	}
	if len(got) != defaultArchiveCap {
		t.Fatalf("Recent len = %d, want %d", len(got), defaultArchiveCap)
	}
	if got[0].ID() != int64(total) {
		t.Fatalf("most recent id = %d, want %d", got[0].ID(), total)
	}
	if got[len(got)-1].ID() != int64(total-defaultArchiveCap+1) {
		t.Fatalf("oldest kept id = %d, want %d", got[len(got)-1].ID(), total-defaultArchiveCap+1)
	}
}
