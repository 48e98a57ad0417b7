package dao

import (
	"errors"

	"github.com/vmihailenco/msgpack/v5"
	"gorm.io/gorm"
)

type NavMeshBakeGorm struct {
	SceneId uint32 `gorm:"column:scene_id;type:bigint(20);primaryKey;autoIncrement:false"`
	Data    []byte `gorm:"column:data;type:longblob"`
}

func (n NavMeshBakeGorm) TableName() string {
	return "nav_mesh_bake"
}

func (d *Dao) InsertOrUpdateNavMeshBakeGorm(bake *NavMeshBake) error {
	data, err := msgpack.Marshal(bake)
	if err != nil {
		return err
	}
	err = d.gormDb.Save(&NavMeshBakeGorm{
		SceneId: bake.SceneId,
		Data:    data,
	}).Error
	if err != nil {
		return err
	}
	return nil
}

func (d *Dao) QueryNavMeshBakeGorm(sceneId uint32) (*NavMeshBake, error) {
	navMeshBakeGorm := new(NavMeshBakeGorm)
	err := d.gormDb.Where("scene_id = ?", sceneId).First(navMeshBakeGorm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	bake := new(NavMeshBake)
	err = msgpack.Unmarshal(navMeshBakeGorm.Data, bake)
	if err != nil {
		return nil, err
	}
	return bake, nil
}

func (d *Dao) DeleteNavMeshBakeGorm(sceneId uint32) error {
	return d.gormDb.Delete(&NavMeshBakeGorm{SceneId: sceneId}).Error
}
