package mapper

import (
	"encoding/json"

	"IdleConquest/internal/conquest/domain"
	"IdleConquest/internal/conquest/infra/persistence/model"
	"IdleConquest/internal/shared/serverconfig"
)

// 列里的 JSON 形状与领域快照解耦，改表不动实体。
type statsDoc struct {
	TotalBattles    int `json:"total_battles"`
	Victories       int `json:"victories"`
	Defeats         int `json:"defeats"`
	SpoilsGold      int `json:"spoils_gold"`
	SpoilsTroops    int `json:"spoils_troops"`
	SpoilsFood      int `json:"spoils_food"`
	SpoilsExp       int `json:"spoils_exp"`
	SpoilsEquipment int `json:"spoils_equipment"`
	TroopsLost      int `json:"troops_lost"`
	CitiesConquered int `json:"cities_conquered"`
	WinStreak       int `json:"win_streak"`
	LossStreak      int `json:"loss_streak"`
}

func EmpireSnapshotToModel(s *domain.EmpirePersistSnapshot) *model.Empire {
	owned, _ := json.Marshal(s.OwnedCities)
	stats, _ := json.Marshal(statsDoc{
		TotalBattles:    s.Stats.TotalBattles,
		Victories:       s.Stats.Victories,
		Defeats:         s.Stats.Defeats,
		SpoilsGold:      s.Stats.SpoilsGained.Gold,
		SpoilsTroops:    s.Stats.SpoilsGained.Troops,
		SpoilsFood:      s.Stats.SpoilsGained.Food,
		SpoilsExp:       s.Stats.SpoilsGained.Experience,
		SpoilsEquipment: s.Stats.SpoilsGained.Equipment,
		TroopsLost:      s.Stats.TroopsLost,
		CitiesConquered: s.Stats.CitiesConquered,
		WinStreak:       s.Stats.WinStreak,
		LossStreak:      s.Stats.LossStreak,
	})
	return &model.Empire{
		EmpireID:   uint32(s.EmpireID),
		Level:      s.Level,
		Gold:       s.Resources.Gold,
		Troops:     s.Resources.Troops,
		Food:       s.Resources.Food,
		Might:      s.Attrs.Might,
		Intellect:  s.Attrs.Intellect,
		Leadership: s.Attrs.Leadership,
		Statecraft: s.Attrs.Statecraft,
		Charisma:   s.Attrs.Charisma,
		Destiny:    s.Attrs.Destiny,

		Aggression:          s.Settings.Aggression.String(),
		ReservePercent:      s.Settings.ReservePercent,
		GoldFloor:           s.Settings.GoldFloor,
		TroopFloor:          s.Settings.TroopFloor,
		MaxConcurrentSieges: s.Settings.MaxConcurrentSieges,
		BattlesPerHour:      s.Settings.BattlesPerHour,

		OwnedCities:  string(owned),
		Stats:        string(stats),
		LastActiveAt: s.LastActiveAt,
	}
}

func EmpireModelToEntity(m *model.Empire) (*domain.Empire, error) {
	var owned []int
	if m.OwnedCities != "" {
		if err := json.Unmarshal([]byte(m.OwnedCities), &owned); err != nil {
			return nil, err
		}
	}
	var doc statsDoc
	if m.Stats != "" {
		if err := json.Unmarshal([]byte(m.Stats), &doc); err != nil {
			return nil, err
		}
	}
	return domain.HydrateEmpire(&domain.EmpirePersistSnapshot{
		EmpireID:  domain.EmpireID(m.EmpireID),
		Resources: domain.ResourceBag{Gold: m.Gold, Troops: m.Troops, Food: m.Food},
		Attrs: domain.Attributes{
			Might:      m.Might,
			Intellect:  m.Intellect,
			Leadership: m.Leadership,
			Statecraft: m.Statecraft,
			Charisma:   m.Charisma,
			Destiny:    m.Destiny,
		},
		Level: m.Level,
		Settings: domain.AutomationSettings{
			Aggression:          domain.ParseAggression(m.Aggression),
			ReservePercent:      m.ReservePercent,
			GoldFloor:           m.GoldFloor,
			TroopFloor:          m.TroopFloor,
			MaxConcurrentSieges: m.MaxConcurrentSieges,
			BattlesPerHour:      m.BattlesPerHour,
		},
		OwnedCities:  owned,
		LastActiveAt: m.LastActiveAt,
		Stats: domain.StatisticsSnapshot{
			TotalBattles: doc.TotalBattles,
			Victories:    doc.Victories,
			Defeats:      doc.Defeats,
			SpoilsGained: domain.RewardBag{
				Gold:       doc.SpoilsGold,
				Troops:     doc.SpoilsTroops,
				Food:       doc.SpoilsFood,
				Experience: doc.SpoilsExp,
				Equipment:  doc.SpoilsEquipment,
			},
			TroopsLost:      doc.TroopsLost,
			CitiesConquered: doc.CitiesConquered,
			WinStreak:       doc.WinStreak,
			LossStreak:      doc.LossStreak,
		},
	}), nil
}

// SeedEmpire 没有存档时按配置开局。
func SeedEmpire(id *domain.EmpireID, seed serverconfig.EmpireSeedConfig) *domain.Empire {
	settings := domain.DefaultAutomationSettings()
	if seed.Aggression != "" {
		settings.Aggression = domain.ParseAggression(seed.Aggression)
	}
	if seed.ReservePercent > 0 {
		settings.ReservePercent = seed.ReservePercent
	}
	if seed.GoldFloor > 0 {
		settings.GoldFloor = seed.GoldFloor
	}
	if seed.TroopFloor > 0 {
		settings.TroopFloor = seed.TroopFloor
	}
	if seed.MaxConcurrentSieges > 0 {
		settings.MaxConcurrentSieges = seed.MaxConcurrentSieges
	}
	if seed.BattlesPerHour > 0 {
		settings.BattlesPerHour = seed.BattlesPerHour
	}
	return domain.NewEmpire(
		id,
		domain.Attributes{
			Might:      seed.Might,
			Intellect:  seed.Intellect,
			Leadership: seed.Leadership,
			Statecraft: seed.Statecraft,
			Charisma:   seed.Charisma,
			Destiny:    seed.Destiny,
		},
		seed.Level,
		domain.ResourceBag{Gold: seed.Gold, Troops: seed.Troops, Food: seed.Food},
		settings,
	)
}
