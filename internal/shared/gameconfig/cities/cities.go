package cities

import (
	"IdleConquest/internal/shared/config"
	"path/filepath"
	"runtime"
)

type yield struct {
	Gold   int `json:"gold"`
	Troops int `json:"troops"`
	Food   int `json:"food"`
}

type unlock struct {
	Default        bool  `json:"default"`
	MinLevel       int   `json:"minLevel"`
	MinCitiesOwned int   `json:"minCitiesOwned"`
	RequiredCities []int `json:"requiredCities"`
}

type cfg struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Tier        string `json:"tier"`
	Garrison    int    `json:"garrison"`
	BaseDefense int    `json:"baseDefense"`
	Owner       string `json:"owner"` // neutral / enemy
	Yield       yield  `json:"yield"`
	Unlock      unlock `json:"unlock"`
}

type cityConf struct {
	Title  string `json:"title"`
	Cities []cfg  `json:"cities"`
}

var CityConf = cityConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load cities config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "cities.json")
	config.Load(configPath, &CityConf)
}

// Definition 城池静态定义的导出形态，供注册表初始化使用。
type Definition struct {
	ID          int
	Name        string
	Tier        string
	Garrison    int
	BaseDefense int
	Owner       string
	YieldGold   int
	YieldTroops int
	YieldFood   int
	UnlockDefault  bool
	MinLevel       int
	MinCitiesOwned int
	RequiredCities []int
}

func Definitions() []Definition {
	out := make([]Definition, 0, len(CityConf.Cities))
	for _, c := range CityConf.Cities {
		out = append(out, Definition{
			ID:             c.ID,
			Name:           c.Name,
			Tier:           c.Tier,
			Garrison:       c.Garrison,
			BaseDefense:    c.BaseDefense,
			Owner:          c.Owner,
			YieldGold:      c.Yield.Gold,
			YieldTroops:    c.Yield.Troops,
			YieldFood:      c.Yield.Food,
			UnlockDefault:  c.Unlock.Default,
			MinLevel:       c.Unlock.MinLevel,
			MinCitiesOwned: c.Unlock.MinCitiesOwned,
			RequiredCities: c.Unlock.RequiredCities,
		})
	}
	return out
}
