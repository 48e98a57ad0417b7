package dao

import (
	"context"
	"errors"

	"navsvr/pkg/navmesh/format"

	"github.com/vmihailenco/msgpack/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NavMeshBake 寻路网格烘焙结果 带邻接关系 源文件哈希不变时跳过解析和邻接计算
type NavMeshBake struct {
	SceneId    uint32 `bson:"scene_id"`
	SourceHash string `bson:"source_hash"` // 源文件sha256
	BakeTime   int64  `bson:"bake_time"`   // 毫秒时间戳
	MeshData   []byte `bson:"mesh_data"`   // msgpack编码的format.NavMeshData
}

func NewNavMeshBake(sceneId uint32, sourceHash string, bakeTime int64, data *format.NavMeshData) (*NavMeshBake, error) {
	meshData, err := msgpack.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &NavMeshBake{
		SceneId:    sceneId,
		SourceHash: sourceHash,
		BakeTime:   bakeTime,
		MeshData:   meshData,
	}, nil
}

func (b *NavMeshBake) NavMeshData() (*format.NavMeshData, error) {
	data := new(format.NavMeshData)
	err := msgpack.Unmarshal(b.MeshData, data)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (d *Dao) InsertOrUpdateNavMeshBake(bake *NavMeshBake) error {
	if d.mongo == nil {
		if d.gormDb == nil {
			return nil
		}
		return d.InsertOrUpdateNavMeshBakeGorm(bake)
	}
	db := d.mongoDb.Collection("nav_mesh_bake")
	_, err := db.ReplaceOne(
		context.TODO(),
		bson.D{{Key: "scene_id", Value: bake.SceneId}},
		bake,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	return nil
}

// QueryNavMeshBake 不存在时返回nil nil
func (d *Dao) QueryNavMeshBake(sceneId uint32) (*NavMeshBake, error) {
	if d.mongo == nil {
		if d.gormDb == nil {
			return nil, nil
		}
		return d.QueryNavMeshBakeGorm(sceneId)
	}
	db := d.mongoDb.Collection("nav_mesh_bake")
	result := db.FindOne(
		context.TODO(),
		bson.D{{Key: "scene_id", Value: sceneId}},
	)
	bake := new(NavMeshBake)
	err := result.Decode(bake)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		} else {
			return nil, err
		}
	}
	return bake, nil
}

func (d *Dao) DeleteNavMeshBake(sceneId uint32) error {
	if d.mongo == nil {
		if d.gormDb == nil {
			return nil
		}
		return d.DeleteNavMeshBakeGorm(sceneId)
	}
	db := d.mongoDb.Collection("nav_mesh_bake")
	_, err := db.DeleteOne(
		context.TODO(),
		bson.D{{Key: "scene_id", Value: sceneId}},
	)
	return err
}
