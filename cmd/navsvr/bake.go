package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	cfg "navsvr/common/config"
	"navsvr/gdconf"
	"navsvr/nav/dao"
	"navsvr/nav/handle"
	"navsvr/pkg/logger"
	"navsvr/pkg/navmesh/format"

	"github.com/spf13/cobra"
)

// BakeCmd 预烘焙场景网格 写入烘焙存储并可导出带邻接的资源文件
func BakeCmd() *cobra.Command {
	var configFile string
	var sceneIdList []uint
	var outDir string
	var gob bool
	var force bool
	c := &cobra.Command{
		Use:   "bake",
		Short: "bake navmesh assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InitConfig(configFile)
			logger.InitLogger(&logger.Config{
				AppName:      "bake",
				Level:        logger.ParseLevel(cfg.GetConfig().Logger.Level),
				TrackLine:    cfg.GetConfig().Logger.TrackLine,
				DisableColor: cfg.GetConfig().Logger.DisableColor,
			})
			defer logger.CloseLogger()
			return runBake(sceneIdList, outDir, gob, force)
		},
	}
	c.Flags().StringVar(&configFile, "config", "application.toml", "config file")
	c.Flags().UintSliceVar(&sceneIdList, "scene", nil, "scene id list, empty bakes every configured scene")
	c.Flags().StringVar(&outDir, "out", "", "export baked assets to this dir")
	c.Flags().BoolVar(&gob, "gob", false, "export gob instead of text")
	c.Flags().BoolVar(&force, "force", false, "drop stored bakes before baking")
	return c
}

func runBake(sceneIdList []uint, outDir string, gob bool, force bool) error {
	gdconf.InitGameDataConfig()
	db, err := dao.NewDao()
	if err != nil {
		return err
	}
	defer db.CloseDao()
	if !db.HasBakeStore() && outDir == "" {
		logger.Warn("no bake store and no out dir, bake result will be dropped")
	}

	if len(sceneIdList) == 0 {
		for sceneId := range gdconf.GetNavMeshConfigMap() {
			sceneIdList = append(sceneIdList, uint(sceneId))
		}
		sort.Slice(sceneIdList, func(i, j int) bool { return sceneIdList[i] < sceneIdList[j] })
	}
	if outDir != "" {
		err := os.MkdirAll(outDir, 0o755)
		if err != nil {
			return err
		}
	}

	worldStatic := handle.NewWorldStatic(db)
	var errList []error
	for _, id := range sceneIdList {
		sceneId := uint32(id)
		navMeshConfig := gdconf.GetNavMeshConfigBySceneId(sceneId)
		if navMeshConfig == nil {
			errList = append(errList, fmt.Errorf("scene %v not in level config", sceneId))
			continue
		}
		if force {
			err := db.DeleteNavMeshBake(sceneId)
			if err != nil {
				errList = append(errList, fmt.Errorf("scene %v: %w", sceneId, err))
				continue
			}
		}
		err := worldStatic.LoadScene(navMeshConfig, gdconf.GetNavMeshFilePath(navMeshConfig))
		if err != nil {
			errList = append(errList, fmt.Errorf("scene %v: %w", sceneId, err))
			continue
		}
		if outDir == "" {
			continue
		}
		navMesh, _ := worldStatic.GetNavMesh(sceneId)
		err = exportNavMesh(navMesh.ToFormat(), outDir, sceneId, gob)
		if err != nil {
			errList = append(errList, fmt.Errorf("scene %v: %w", sceneId, err))
		}
	}
	return errors.Join(errList...)
}

func exportNavMesh(navMeshData *format.NavMeshData, outDir string, sceneId uint32, gob bool) error {
	if gob {
		return format.SaveToGobFile(filepath.Join(outDir, fmt.Sprintf("scene%v.gob", sceneId)), navMeshData)
	}
	f, err := os.Create(filepath.Join(outDir, fmt.Sprintf("scene%v.txt", sceneId)))
	if err != nil {
		return err
	}
	err = format.WriteTxt(f, navMeshData)
	if err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
