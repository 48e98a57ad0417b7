package gdconf

import (
	"fmt"
	"os"
	"path/filepath"

	"navsvr/common/config"
	"navsvr/pkg/logger"
)

// 游戏数据配置表

var CONF *GameDataConfig = nil

type GameDataConfig struct {
	levelConfigPath string
	dataDir         string
	// 配置表数据
	NavMeshConfigMap map[uint32]*NavMeshConfig // 寻路网格关卡配置
}

// InitGameDataConfig 从application.toml指定的路径加载配置表 失败直接panic
func InitGameDataConfig() {
	conf := config.GetConfig()
	gdc, err := LoadGameDataConfig(conf.NavMesh.LevelConfig, conf.NavMesh.DataDir)
	if err != nil {
		info := fmt.Sprintf("load game data config error: %v", err)
		panic(info)
	}
	CONF = gdc
}

func LoadGameDataConfig(levelConfigPath string, dataDir string) (*GameDataConfig, error) {
	g := &GameDataConfig{
		levelConfigPath: levelConfigPath,
		dataDir:         dataDir,
	}
	err := g.loadNavMeshConfig()
	if err != nil {
		return nil, err
	}
	return g, nil
}

// DataPath 配置表中的相对路径基于寻路网格数据目录
func (g *GameDataConfig) DataPath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(g.dataDir, file)
}

func readConfigFile(path string) ([]byte, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(fileData) >= 3 && fileData[0] == 0xEF && fileData[1] == 0xBB && fileData[2] == 0xBF {
		fileData = fileData[3:]
	}
	logger.Debug("read config file ok, path: %v, len: %v", path, len(fileData))
	return fileData, nil
}
