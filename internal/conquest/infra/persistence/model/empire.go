package model

import "time"

// model
type Empire struct {
	EmpireID   uint32 `gorm:"column:empire_id;type:int UNSIGNED;comment:帝国Id;primaryKey;not null;" json:"empire_id"` // 帝国Id
	Level      int    `gorm:"column:level;type:int;comment:等级;not null;default:1;" json:"level"`
	Gold       int    `gorm:"column:gold;type:int;comment:金币;not null;default:0;" json:"gold"`
	Troops     int    `gorm:"column:troops;type:int;comment:兵力;not null;default:0;" json:"troops"`
	Food       int    `gorm:"column:food;type:int;comment:粮食;not null;default:0;" json:"food"`
	Might      int    `gorm:"column:might;type:int;not null;default:0;" json:"might"`
	Intellect  int    `gorm:"column:intellect;type:int;not null;default:0;" json:"intellect"`
	Leadership int    `gorm:"column:leadership;type:int;not null;default:0;" json:"leadership"`
	Statecraft int    `gorm:"column:statecraft;type:int;not null;default:0;" json:"statecraft"`
	Charisma   int    `gorm:"column:charisma;type:int;not null;default:0;" json:"charisma"`
	Destiny    int    `gorm:"column:destiny;type:int;not null;default:0;" json:"destiny"`

	Aggression          string  `gorm:"column:aggression;type:varchar(20);comment:攻击倾向;" json:"aggression"`
	ReservePercent      float64 `gorm:"column:reserve_percent;type:double;not null;default:0.2;" json:"reserve_percent"`
	GoldFloor           int     `gorm:"column:gold_floor;type:int;not null;default:0;" json:"gold_floor"`
	TroopFloor          int     `gorm:"column:troop_floor;type:int;not null;default:0;" json:"troop_floor"`
	MaxConcurrentSieges int     `gorm:"column:max_concurrent_sieges;type:int;not null;default:1;" json:"max_concurrent_sieges"`
	BattlesPerHour      int     `gorm:"column:battles_per_hour;type:int;not null;default:6;" json:"battles_per_hour"`

	OwnedCities  string    `gorm:"column:owned_cities;type:text;comment:拥有城池id的JSON数组;" json:"owned_cities"`
	Stats        string    `gorm:"column:stats;type:text;comment:统计快照JSON;" json:"stats"`
	LastActiveAt time.Time `gorm:"column:last_active_at;type:TIMESTAMP;comment:最近活跃;default:NULL;" json:"last_active_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"updated_at"`
}

func (e *Empire) TableName() string {
	return "empire"
}
