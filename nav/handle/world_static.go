package handle

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"navsvr/common/config"
	"navsvr/gdconf"
	"navsvr/nav/dao"
	"navsvr/pkg/logger"
	"navsvr/pkg/navmesh"
	"navsvr/pkg/navmesh/format"

	"github.com/go-gl/mathgl/mgl32"
)

// NavMeshScene 一个场景的寻路网格 网格只读 查询对象从池中取用
type NavMeshScene struct {
	SceneId      uint32
	Name         string
	SourceHash   string
	ExpansionCap int32
	ExcludeFlags uint32
	navMesh      *navmesh.NavMesh
	queryPool    sync.Pool
}

func (s *NavMeshScene) NavMesh() *navmesh.NavMesh {
	return s.navMesh
}

func (s *NavMeshScene) getQuery() *navmesh.NavMeshQuery {
	return s.queryPool.Get().(*navmesh.NavMeshQuery)
}

func (s *NavMeshScene) putQuery(query *navmesh.NavMeshQuery) {
	s.queryPool.Put(query)
}

func (s *NavMeshScene) cacheScope() *dao.PathCacheScope {
	return &dao.PathCacheScope{
		SceneId:      s.SceneId,
		MeshHash:     s.SourceHash,
		ExcludeFlags: s.ExcludeFlags,
		ExpansionCap: s.ExpansionCap,
	}
}

type WorldStatic struct {
	dao      *dao.Dao
	settings navmesh.NavMeshBuildSettings
	cacheTTL time.Duration
	lock     sync.RWMutex
	sceneMap map[uint32]*NavMeshScene
	rngLock  sync.Mutex
	rng      *rand.Rand
}

// NewWorldStatic db可以为nil 此时不使用烘焙存储和路径缓存
func NewWorldStatic(db *dao.Dao) (r *WorldStatic) {
	r = new(WorldStatic)
	r.dao = db
	r.settings = navmesh.DefaultBuildSettings()
	if conf := config.GetConfig(); conf != nil {
		r.settings.SpatialIndex = conf.NavMesh.SpatialIndex
		r.settings.RejectNonManifold = conf.NavMesh.RejectNonManifold
		r.cacheTTL = conf.NavMesh.PathCacheDuration()
	}
	r.sceneMap = make(map[uint32]*NavMeshScene)
	r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	return r
}

// InitNavMesh 加载配置表中的全部场景 单个场景失败不影响其它场景
func (w *WorldStatic) InitNavMesh() bool {
	okCount := 0
	for sceneId, navMeshConfig := range gdconf.GetNavMeshConfigMap() {
		err := w.LoadScene(navMeshConfig, gdconf.GetNavMeshFilePath(navMeshConfig))
		if err != nil {
			logger.Error("load navmesh error: %v, sceneId: %v", err, sceneId)
			continue
		}
		okCount++
	}
	logger.Info("init navmesh finish, ok: %v, total: %v", okCount, len(gdconf.GetNavMeshConfigMap()))
	runtime.GC()
	return okCount == len(gdconf.GetNavMeshConfigMap())
}

// LoadScene 源文件哈希与烘焙结果一致时直接使用烘焙结果 否则解析源文件并回写烘焙结果
func (w *WorldStatic) LoadScene(navMeshConfig *gdconf.NavMeshConfig, filePath string) error {
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(fileData)
	sourceHash := hex.EncodeToString(sum[:])

	sceneId := navMeshConfig.SceneId
	navMeshData := w.loadBake(sceneId, sourceHash)
	baked := navMeshData != nil
	if !baked {
		var stats *format.ParseStats
		navMeshData, stats, err = format.ParseTxt(bytes.NewReader(fileData))
		if err != nil {
			return err
		}
		if stats.Skipped != 0 || !stats.SawEnd {
			logger.Warn("navmesh file not clean, skipped: %v, end: %v, file: %v", stats.Skipped, stats.SawEnd, filePath)
		}
		if stats.DeclaredVertices != len(navMeshData.Vertices) || stats.DeclaredTriangles != len(navMeshData.Triangles) {
			logger.Warn("navmesh count mismatch, vertex: %v/%v, triangle: %v/%v, file: %v",
				len(navMeshData.Vertices), stats.DeclaredVertices, len(navMeshData.Triangles), stats.DeclaredTriangles, filePath)
		}
	}

	navMesh, err := navmesh.NewNavMeshFromFormat(navMeshData, w.settings)
	if err != nil {
		return err
	}
	if err := navMesh.CheckAdjacency(); err != nil {
		logger.Warn("navmesh adjacency not symmetric: %v, sceneId: %v", err, sceneId)
	}

	if !baked && w.dao != nil && w.dao.HasBakeStore() {
		bake, err := dao.NewNavMeshBake(sceneId, sourceHash, time.Now().UnixMilli(), navMesh.ToFormat())
		if err == nil {
			err = w.dao.InsertOrUpdateNavMeshBake(bake)
		}
		if err != nil {
			logger.Error("save navmesh bake error: %v, sceneId: %v", err, sceneId)
		}
	}

	name := navMeshConfig.Name
	if name == "" {
		name = navMesh.Name()
	}
	w.AddNavMesh(sceneId, name, sourceHash, navMesh, navMeshConfig.ExpansionCap, navMeshConfig.ExcludeFlags)
	logger.Info("load navmesh ok, sceneId: %v, name: %v, triangle: %v, baked: %v", sceneId, name, navMesh.TriangleCount(), baked)
	return nil
}

func (w *WorldStatic) loadBake(sceneId uint32, sourceHash string) *format.NavMeshData {
	if w.dao == nil || !w.dao.HasBakeStore() {
		return nil
	}
	bake, err := w.dao.QueryNavMeshBake(sceneId)
	if err != nil {
		logger.Error("query navmesh bake error: %v, sceneId: %v", err, sceneId)
		return nil
	}
	if bake == nil || bake.SourceHash != sourceHash {
		return nil
	}
	navMeshData, err := bake.NavMeshData()
	if err != nil {
		logger.Error("decode navmesh bake error: %v, sceneId: %v", err, sceneId)
		return nil
	}
	return navMeshData
}

// AddNavMesh 注册或替换场景网格 expansionCap为0时使用全局配置
func (w *WorldStatic) AddNavMesh(sceneId uint32, name string, sourceHash string, navMesh *navmesh.NavMesh, expansionCap int32, excludeFlags uint32) {
	if expansionCap <= 0 {
		if conf := config.GetConfig(); conf != nil {
			expansionCap = conf.NavMesh.ExpansionCap
		}
	}
	scene := &NavMeshScene{
		SceneId:      sceneId,
		Name:         name,
		SourceHash:   sourceHash,
		ExpansionCap: expansionCap,
		ExcludeFlags: excludeFlags,
		navMesh:      navMesh,
	}
	scene.queryPool.New = func() any {
		query, err := navmesh.NewNavMeshQuery(navMesh, expansionCap)
		if err != nil {
			panic(err)
		}
		filter := navmesh.NewStandardQueryFilter()
		filter.SetExcludeFlags(excludeFlags)
		filter.SetUseTraversalCost(true)
		query.SetFilter(filter)
		return query
	}
	w.lock.Lock()
	w.sceneMap[sceneId] = scene
	w.lock.Unlock()
}

func (w *WorldStatic) GetScene(sceneId uint32) (*NavMeshScene, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()
	scene, exist := w.sceneMap[sceneId]
	return scene, exist
}

func (w *WorldStatic) GetNavMesh(sceneId uint32) (*navmesh.NavMesh, bool) {
	scene, exist := w.GetScene(sceneId)
	if !exist {
		return nil, false
	}
	return scene.navMesh, true
}

func (w *WorldStatic) GetSceneIdList() []uint32 {
	w.lock.RLock()
	defer w.lock.RUnlock()
	ret := make([]uint32, 0, len(w.sceneMap))
	for sceneId := range w.sceneMap {
		ret = append(ret, sceneId)
	}
	return ret
}

func (w *WorldStatic) NavMeshPathfinding(sceneId uint32, startPos mgl32.Vec3, endPos mgl32.Vec3) ([]mgl32.Vec3, bool) {
	scene, exist := w.GetScene(sceneId)
	if !exist {
		logger.Error("navmesh scene not exist, sceneId: %v", sceneId)
		return nil, false
	}
	if w.dao != nil {
		corners, ok := w.dao.GetPathCache(scene.cacheScope(), startPos, endPos)
		if ok {
			return corners, true
		}
	}
	query := scene.getQuery()
	corners, err := query.FindPath(startPos, endPos)
	expansions := query.Expansions()
	scene.putQuery(query)
	if err != nil {
		logger.Debug("navmesh could not find path: %v, sceneId: %v, startPos: %v, endPos: %v, expansions: %v",
			err, sceneId, startPos, endPos, expansions)
		return nil, false
	}
	if w.dao != nil {
		w.dao.SetPathCache(scene.cacheScope(), startPos, endPos, corners, w.cacheTTL)
	}
	return corners, true
}

// SampleTriangle 定位坐标所在三角形 不在网格上时返回最近的三角形
func (w *WorldStatic) SampleTriangle(sceneId uint32, pos mgl32.Vec3) (int32, bool, bool) {
	navMesh, exist := w.GetNavMesh(sceneId)
	if !exist {
		logger.Error("navmesh scene not exist, sceneId: %v", sceneId)
		return navmesh.NoNeighbor, false, false
	}
	return navMesh.Localize(pos)
}

func (w *WorldStatic) RandomCorner(sceneId uint32) (mgl32.Vec3, bool) {
	navMesh, exist := w.GetNavMesh(sceneId)
	if !exist {
		logger.Error("navmesh scene not exist, sceneId: %v", sceneId)
		return mgl32.Vec3{}, false
	}
	w.rngLock.Lock()
	defer w.rngLock.Unlock()
	return navMesh.RandomCorner(w.rng)
}
