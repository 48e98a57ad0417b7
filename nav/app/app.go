package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"navsvr/common/config"
	"navsvr/gdconf"
	"navsvr/nav/controller"
	"navsvr/nav/dao"
	"navsvr/nav/handle"
	"navsvr/pkg/logger"

	"github.com/nats-io/nats.go"
)

func Run(ctx context.Context) error {
	if !config.GetConfig().Navsvr.StandaloneModeEnable {
		logger.InitLogger(&logger.Config{
			AppName:      "navsvr",
			Level:        logger.ParseLevel(config.GetConfig().Logger.Level),
			TrackLine:    config.GetConfig().Logger.TrackLine,
			TrackThread:  config.GetConfig().Logger.TrackThread,
			EnableFile:   config.GetConfig().Logger.EnableFile,
			DisableColor: config.GetConfig().Logger.DisableColor,
			EnableJson:   config.GetConfig().Logger.EnableJson,
		})
		defer func() {
			logger.CloseLogger()
		}()
	}
	logger.Warn("navsvr start")
	defer func() {
		logger.Warn("navsvr exit")
	}()

	gdconf.InitGameDataConfig()

	db, err := dao.NewDao()
	if err != nil {
		return err
	}
	defer db.CloseDao()

	worldStatic := handle.NewWorldStatic(db)
	if !worldStatic.InitNavMesh() {
		logger.Error("some navmesh load fail")
	}

	var natsConn *nats.Conn = nil
	if config.GetConfig().MQ.NatsUrl != "" {
		natsConn, err = nats.Connect(config.GetConfig().MQ.NatsUrl)
		if err != nil {
			logger.Error("connect nats error: %v", err)
			return err
		}
		defer natsConn.Close()
	}
	h, err := handle.NewHandle(worldStatic, natsConn)
	if err != nil {
		return err
	}
	defer h.Close()

	http, err := controller.NewController(worldStatic)
	if err != nil {
		return err
	}
	defer http.Close()

	c := make(chan os.Signal, 1)
	if !config.GetConfig().Navsvr.StandaloneModeEnable {
		signal.Notify(c, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-c:
			logger.Warn("get a signal %s", s.String())
			switch s {
			case syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT:
				return nil
			case syscall.SIGHUP:
			default:
				return nil
			}
		}
	}
}
