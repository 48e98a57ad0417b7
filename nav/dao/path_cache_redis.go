package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"navsvr/pkg/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-redis/redis/v8"
	"github.com/vmihailenco/msgpack/v5"
)

const RedisPathCacheKeyPrefix = "NAVSVR:PATH:"

// PathCacheScope 影响寻路结果的场景参数 任意一项变化后旧缓存自然失效
type PathCacheScope struct {
	SceneId      uint32
	MeshHash     string
	ExcludeFlags uint32
	ExpansionCap int32
}

func GetPathCacheKey(scope *PathCacheScope, start, end mgl32.Vec3) string {
	meshHash := scope.MeshHash
	if len(meshHash) > 16 {
		meshHash = meshHash[:16]
	}
	return fmt.Sprintf("%s%d:%s:%x:%d:%v,%v,%v:%v,%v,%v", RedisPathCacheKeyPrefix,
		scope.SceneId, meshHash, scope.ExcludeFlags, scope.ExpansionCap,
		start[0], start[1], start[2], end[0], end[1], end[2])
}

func (d *Dao) GetPathCache(scope *PathCacheScope, start, end mgl32.Vec3) ([]mgl32.Vec3, bool) {
	if d.redis == nil {
		return nil, false
	}
	data, err := d.redis.Get(context.TODO(), GetPathCacheKey(scope, start, end)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error("get path cache error: %v", err)
		}
		return nil, false
	}
	corners := make([]mgl32.Vec3, 0)
	err = msgpack.Unmarshal(data, &corners)
	if err != nil {
		logger.Error("unmarshal path cache error: %v", err)
		return nil, false
	}
	return corners, true
}

func (d *Dao) SetPathCache(scope *PathCacheScope, start, end mgl32.Vec3, corners []mgl32.Vec3, ttl time.Duration) {
	if d.redis == nil || ttl <= 0 {
		return
	}
	data, err := msgpack.Marshal(corners)
	if err != nil {
		logger.Error("marshal path cache error: %v", err)
		return
	}
	err = d.redis.Set(context.TODO(), GetPathCacheKey(scope, start, end), data, ttl).Err()
	if err != nil {
		logger.Error("set path cache error: %v", err)
	}
}
