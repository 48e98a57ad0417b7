package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var CONF *Config = nil

// Config application.toml
type Config struct {
	Navsvr   Navsvr   `toml:"navsvr"`
	Logger   Logger   `toml:"logger"`
	Database Database `toml:"database"`
	Redis    Redis    `toml:"redis"`
	MQ       MQ       `toml:"mq"`
	Http     Http     `toml:"http"`
	NavMesh  NavMesh  `toml:"navmesh"`
}

type Navsvr struct {
	StandaloneModeEnable bool `toml:"standalone_mode_enable"`
}

type Logger struct {
	Level        string `toml:"level"`
	TrackLine    bool   `toml:"track_line"`
	TrackThread  bool   `toml:"track_thread"`
	EnableFile   bool   `toml:"enable_file"`
	DisableColor bool   `toml:"disable_color"`
	EnableJson   bool   `toml:"enable_json"`
}

// Database mongodb:// mysql:// sqlite:// , empty disables the bake store
type Database struct {
	Url string `toml:"url"`
}

// Redis comma separated addr list, more than one addr uses cluster mode, empty disables the path cache
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type MQ struct {
	NatsUrl string `toml:"nats_url"`
}

type Http struct {
	Addr string `toml:"addr"`
}

type NavMesh struct {
	DataDir           string `toml:"data_dir"`
	LevelConfig       string `toml:"level_config"`
	ExpansionCap      int32  `toml:"expansion_cap"`
	SpatialIndex      bool   `toml:"spatial_index"`
	RejectNonManifold bool   `toml:"reject_non_manifold"`
	PathCacheTTL      int32  `toml:"path_cache_ttl"` // seconds
}

func (n NavMesh) PathCacheDuration() time.Duration {
	return time.Duration(n.PathCacheTTL) * time.Second
}

func DefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Level:     "DEBUG",
			TrackLine: true,
		},
		Http: Http{
			Addr: "0.0.0.0:8090",
		},
		NavMesh: NavMesh{
			DataDir:      "./NavMesh",
			LevelConfig:  "./NavMesh/NavMeshConfig.hjson",
			ExpansionCap: 10000,
			SpatialIndex: true,
			PathCacheTTL: 60,
		},
	}
}

// InitConfig 初始化配置
func InitConfig(filePath string) {
	CONF = DefaultConfig()
	data, err := os.ReadFile(filePath)
	if err == nil {
		err = toml.Unmarshal(data, CONF)
	}
	if err != nil {
		info := fmt.Sprintf("config file load error: %v", err)
		panic(info)
	}
	CONF.fillDefault()
}

func (c *Config) fillDefault() {
	def := DefaultConfig()
	if c.NavMesh.ExpansionCap <= 0 {
		c.NavMesh.ExpansionCap = def.NavMesh.ExpansionCap
	}
	if c.NavMesh.DataDir == "" {
		c.NavMesh.DataDir = def.NavMesh.DataDir
	}
	if c.NavMesh.LevelConfig == "" {
		c.NavMesh.LevelConfig = def.NavMesh.LevelConfig
	}
}

func GetConfig() *Config {
	return CONF
}
