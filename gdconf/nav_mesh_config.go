package gdconf

import (
	"fmt"

	"navsvr/pkg/logger"

	"github.com/hjson/hjson-go/v4"
)

// NavMeshConfig 寻路网格关卡配置
type NavMeshConfig struct {
	SceneId      uint32 `json:"scene_id"`      // 场景id
	Name         string `json:"name"`          // 名称
	File         string `json:"file"`          // 网格文件 相对于数据目录
	ExpansionCap int32  `json:"expansion_cap"` // A*最大扩展次数 0为全局默认值
	ExcludeFlags uint32 `json:"exclude_flags"` // 寻路时排除的三角形标记
	Disable      bool   `json:"disable"`       // 不加载
}

func (g *GameDataConfig) loadNavMeshConfig() error {
	g.NavMeshConfigMap = make(map[uint32]*NavMeshConfig)
	fileData, err := readConfigFile(g.levelConfigPath)
	if err != nil {
		return err
	}
	navMeshConfigList := make([]*NavMeshConfig, 0)
	err = hjson.Unmarshal(fileData, &navMeshConfigList)
	if err != nil {
		logger.Error("parse file error: %v, path: %v", err, g.levelConfigPath)
		return err
	}
	sceneIdSet := make(map[uint32]struct{})
	for _, navMeshConfig := range navMeshConfigList {
		if navMeshConfig.File == "" {
			logger.Error("nav mesh config without file, sceneId: %v", navMeshConfig.SceneId)
			continue
		}
		_, exist := sceneIdSet[navMeshConfig.SceneId]
		if exist {
			return fmt.Errorf("duplicate nav mesh config, sceneId: %v", navMeshConfig.SceneId)
		}
		sceneIdSet[navMeshConfig.SceneId] = struct{}{}
		if navMeshConfig.Disable {
			continue
		}
		g.NavMeshConfigMap[navMeshConfig.SceneId] = navMeshConfig
	}
	logger.Info("NavMeshConfig Count: %v", len(g.NavMeshConfigMap))
	return nil
}

func GetNavMeshConfigBySceneId(sceneId uint32) *NavMeshConfig {
	return CONF.NavMeshConfigMap[sceneId]
}

func GetNavMeshConfigMap() map[uint32]*NavMeshConfig {
	return CONF.NavMeshConfigMap
}

// GetNavMeshFilePath 网格文件的完整路径
func GetNavMeshFilePath(navMeshConfig *NavMeshConfig) string {
	return CONF.DataPath(navMeshConfig.File)
}
