package serverconfig

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Engine     EngineConfig     `yaml:"engine" mapstructure:"engine"`
	Empire     EmpireSeedConfig `yaml:"empire" mapstructure:"empire"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	Enabled         bool   `yaml:"enabled" mapstructure:"enabled"`
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// EngineConfig 推进引擎调参。
type EngineConfig struct {
	EmpireID       int     `yaml:"empire_id" mapstructure:"empire_id"`
	ScalingFactor  float64 `yaml:"scaling_factor" mapstructure:"scaling_factor"`
	TickMS         int     `yaml:"tick_ms" mapstructure:"tick_ms"`
	BaseIntervalMS int     `yaml:"base_interval_ms" mapstructure:"base_interval_ms"`
	IntervalCapMS  int     `yaml:"interval_cap_ms" mapstructure:"interval_cap_ms"`
	HistorySize    int     `yaml:"history_size" mapstructure:"history_size"`
	AskTimeoutMS   int     `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
}

// EmpireSeedConfig 没有存档时的开局帝国。
type EmpireSeedConfig struct {
	Level      int     `yaml:"level" mapstructure:"level"`
	Gold       int     `yaml:"gold" mapstructure:"gold"`
	Troops     int     `yaml:"troops" mapstructure:"troops"`
	Food       int     `yaml:"food" mapstructure:"food"`
	Might      int     `yaml:"might" mapstructure:"might"`
	Intellect  int     `yaml:"intellect" mapstructure:"intellect"`
	Leadership int     `yaml:"leadership" mapstructure:"leadership"`
	Statecraft int     `yaml:"statecraft" mapstructure:"statecraft"`
	Charisma   int     `yaml:"charisma" mapstructure:"charisma"`
	Destiny    int     `yaml:"destiny" mapstructure:"destiny"`

	Aggression          string  `yaml:"aggression" mapstructure:"aggression"`
	ReservePercent      float64 `yaml:"reserve_percent" mapstructure:"reserve_percent"`
	GoldFloor           int     `yaml:"gold_floor" mapstructure:"gold_floor"`
	TroopFloor          int     `yaml:"troop_floor" mapstructure:"troop_floor"`
	MaxConcurrentSieges int     `yaml:"max_concurrent_sieges" mapstructure:"max_concurrent_sieges"`
	BattlesPerHour      int     `yaml:"battles_per_hour" mapstructure:"battles_per_hour"`
}
