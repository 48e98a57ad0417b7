package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"navsvr/common/config"
	"navsvr/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dao 烘焙存储和路径缓存 数据库和redis都是可选的
type Dao struct {
	mongo   *mongo.Client
	mongoDb *mongo.Database
	gormDb  *gorm.DB
	redis   redis.UniversalClient
}

func NewDao() (*Dao, error) {
	r := new(Dao)

	dbUrl := config.GetConfig().Database.Url
	if dbUrl == "" {
		logger.Warn("database url is empty, nav mesh bake store disabled")
	} else if strings.Contains(dbUrl, "mongodb://") {
		clientOptions := options.Client().ApplyURI(dbUrl)
		clientOptions = clientOptions.SetMinPoolSize(1)
		clientOptions = clientOptions.SetMaxPoolSize(10)
		client, err := mongo.Connect(context.TODO(), clientOptions)
		if err != nil {
			logger.Error("mongo connect error: %v", err)
			return nil, err
		}
		err = client.Ping(context.TODO(), readpref.Primary())
		if err != nil {
			logger.Error("mongo ping error: %v", err)
			return nil, err
		}
		r.mongo = client
		r.mongoDb = client.Database("navsvr")
	} else {
		var dialector gorm.Dialector = nil
		if strings.Contains(dbUrl, "mysql://") {
			dialector = mysql.Open(strings.ReplaceAll(dbUrl, "mysql://", ""))
		} else if strings.Contains(dbUrl, "sqlite://") {
			dialector = sqlite.Open(strings.ReplaceAll(dbUrl, "sqlite://", ""))
		} else {
			err := errors.New(fmt.Sprintf("not support db type, url: %v", dbUrl))
			logger.Error("%v", err)
			return nil, err
		}
		db, err := gorm.Open(dialector, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			logger.Error("gorm open error: %v", err)
			return nil, err
		}
		r.gormDb = db
		sqlDb, err := db.DB()
		if err != nil {
			logger.Error("sql db open error: %v", err)
			return nil, err
		}
		sqlDb.SetMaxIdleConns(1)
		sqlDb.SetMaxOpenConns(10)
		sqlDb.SetConnMaxLifetime(time.Hour)
		tableList := []any{new(NavMeshBakeGorm)}
		for _, table := range tableList {
			err := r.gormDb.AutoMigrate(table)
			if err != nil {
				logger.Error("auto migrate error: %v", err)
				return nil, err
			}
		}
	}

	redisAddr := strings.ReplaceAll(config.GetConfig().Redis.Addr, "redis://", "")
	if redisAddr == "" {
		logger.Warn("redis addr is empty, path cache disabled")
	} else {
		if strings.Contains(redisAddr, ",") {
			redisAddrList := strings.Split(redisAddr, ",")
			r.redis = redis.NewClusterClient(&redis.ClusterOptions{
				Addrs:        redisAddrList,
				Password:     config.GetConfig().Redis.Password,
				PoolSize:     10,
				MinIdleConns: 1,
			})
		} else {
			r.redis = redis.NewClient(&redis.Options{
				Addr:         redisAddr,
				Password:     config.GetConfig().Redis.Password,
				DB:           config.GetConfig().Redis.DB,
				PoolSize:     10,
				MinIdleConns: 1,
			})
		}
		err := r.redis.Ping(context.TODO()).Err()
		if err != nil {
			logger.Error("redis ping error: %v", err)
			return nil, err
		}
	}

	return r, nil
}

func (d *Dao) HasBakeStore() bool {
	return d.mongo != nil || d.gormDb != nil
}

func (d *Dao) HasPathCache() bool {
	return d.redis != nil
}

func (d *Dao) CloseDao() {
	if d.mongo != nil {
		err := d.mongo.Disconnect(context.TODO())
		if err != nil {
			logger.Error("mongo close error: %v", err)
		}
	}
	if d.gormDb != nil {
		sqlDb, err := d.gormDb.DB()
		if err == nil {
			err = sqlDb.Close()
		}
		if err != nil {
			logger.Error("sql db close error: %v", err)
		}
	}
	if d.redis != nil {
		err := d.redis.Close()
		if err != nil {
			logger.Error("redis close error: %v", err)
		}
	}
}
