package mapper

import (
	"testing"
	"time"

	"IdleConquest/internal/conquest/domain"
	"IdleConquest/internal/shared/serverconfig"
)

func testSnapshot() *domain.EmpirePersistSnapshot {
	return &domain.EmpirePersistSnapshot{
		Version:   7,
		EmpireID:  1,
		Resources: domain.ResourceBag{Gold: 1200, Troops: 430, Food: 900},
		Attrs: domain.Attributes{
			Might: 60, Intellect: 55, Leadership: 58,
			Statecraft: 50, Charisma: 52, Destiny: 45,
		},
		Level: 4,
		Settings: domain.AutomationSettings{
			Aggression:          domain.AggressionAggressive,
			ReservePercent:      0.25,
			GoldFloor:           150,
			TroopFloor:          80,
			MaxConcurrentSieges: 2,
			BattlesPerHour:      8,
		},
		OwnedCities:  []int{1, 3, 5},
		LastActiveAt: time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC),
		Stats: domain.StatisticsSnapshot{
			TotalBattles: 40,
			Victories:    30,
			Defeats:      10,
			SpoilsGained: domain.RewardBag{Gold: 9000, Troops: 600, Food: 4000, Experience: 2400, Equipment: 9},
			TroopsLost:   520,
			CitiesConquered: 3,
			WinStreak:       4,
			LossStreak:      0,
		},
	}
}

func TestEmpireSnapshot_模型往返不丢字段(t *testing.T) {
	s := testSnapshot()

	m := EmpireSnapshotToModel(s)
	if m.EmpireID != 1 || m.Level != 4 || m.Gold != 1200 || m.Troops != 430 {
		t.Fatalf("model base fields mismatch: %+v", m)
	}
	if m.Aggression != "aggressive" {
		t.Fatalf("aggression = %q, want aggressive", m.Aggression)
	}

	e, err := EmpireModelToEntity(m)
	if err != nil {
		t.Fatalf("EmpireModelToEntity err = %v", err)
	}
	if e.ID() != s.EmpireID {
		t.Fatalf("empire id = %d, want %d", e.ID(), s.EmpireID)
	}
	if e.Resources() != s.Resources {
		t.Fatalf("resources = %+v, want %+v", e.Resources(), s.Resources)
	}
	if e.Level() != s.Level {
		t.Fatalf("level = %d, want %d", e.Level(), s.Level)
	}
	if e.Settings() != s.Settings {
		t.Fatalf("settings = %+v, want %+v", e.Settings(), s.Settings)
	}
	if e.OwnedCount() != 3 || !e.OwnsCity(3) || e.OwnsCity(2) {
		t.Fatalf("owned cities mismatch: %v", e.OwnedCities())
	}
	if !e.LastActiveAt().Equal(s.LastActiveAt) {
		t.Fatalf("lastActiveAt = %v, want %v", e.LastActiveAt(), s.LastActiveAt)
	}
	if got := e.Statistics().Snapshot(); got != s.Stats {
		t.Fatalf("stats = %+v, want %+v", got, s.Stats)
	}
	if e.Dirty() {
		t.Fatalf("hydrated empire should start clean")
	}
}

func TestEmpireModelToEntity_空JSON列按零值处理(t *testing.T) {
	m := EmpireSnapshotToModel(testSnapshot())
	m.OwnedCities = ""
	m.Stats = ""

	e, err := EmpireModelToEntity(m)
	if err != nil {
		t.Fatalf("EmpireModelToEntity err = %v", err)
	}
	if e.OwnedCount() != 0 {
		t.Fatalf("owned count = %d, want 0", e.OwnedCount())
	}
	if e.Statistics().TotalBattles() != 0 {
		t.Fatalf("total battles = %d, want 0", e.Statistics().TotalBattles())
	}
}

func TestEmpireModelToEntity_损坏的JSON列报错(t *testing.T) {
	m := EmpireSnapshotToModel(testSnapshot())
	m.OwnedCities = "{broken"

	if _, err := EmpireModelToEntity(m); err == nil {
		t.Fatalf("expected error for broken owned_cities column")
	}
}

func TestSeedEmpire_缺省项回退默认自动化参数(t *testing.T) {
	id := domain.EmpireID(1)
	e := SeedEmpire(&id, serverconfig.EmpireSeedConfig{
		Level: 2, Gold: 500, Troops: 300, Food: 400,
		Might: 10, Intellect: 10, Leadership: 10, Statecraft: 10, Charisma: 10, Destiny: 10,
		Aggression: "conservative",
	})

	if e.Level() != 2 {
		t.Fatalf("level = %d, want 2", e.Level())
	}
	settings := e.Settings()
	if settings.Aggression != domain.AggressionConservative {
		t.Fatalf("aggression = %v, want conservative", settings.Aggression)
	}
	def := domain.DefaultAutomationSettings()
	if settings.ReservePercent != def.ReservePercent || settings.BattlesPerHour != def.BattlesPerHour {
		t.Fatalf("unset seed fields should fall back to defaults: %+v", settings)
	}
}
