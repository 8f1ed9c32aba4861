package config

type Config struct {
	Db_conn        string `mapstructure:"DB_CONN"`
	Session_ttl    int    `mapstructure:"SESSION_TTL"`
	Static_dir     string `mapstructure:"STATIC_DIR"`
	Max_db_conns   int    `mapstructure:"MAX_DB_CONNS"`
	Sweep_interval int    `mapstructure:"SWEEP_INTERVAL"`
	Cookie_secure  bool   `mapstructure:"COOKIE_SECURE"`
	Session_cookie string `mapstructure:"SESSION_COOKIE"`
}
