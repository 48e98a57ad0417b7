package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"navsvr/cmd/nats"
	cfg "navsvr/common/config"
	"navsvr/nav/app"
	"navsvr/pkg/logger"

	"github.com/spf13/cobra"
)

// StandaloneCmd 单进程启动内嵌nats和寻路服务器
func StandaloneCmd() *cobra.Command {
	var configFile string
	c := &cobra.Command{
		Use:   "standalone",
		Short: "nats and navmesh server in one process",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InitConfig(configFile)
			cfg.GetConfig().Navsvr.StandaloneModeEnable = true
			return runStandalone()
		},
	}
	c.Flags().StringVar(&configFile, "config", "application.toml", "config file")
	return c
}

func runStandalone() error {
	logger.InitLogger(&logger.Config{
		AppName:      "standalone",
		Level:        logger.ParseLevel(cfg.GetConfig().Logger.Level),
		TrackLine:    cfg.GetConfig().Logger.TrackLine,
		TrackThread:  cfg.GetConfig().Logger.TrackThread,
		EnableFile:   cfg.GetConfig().Logger.EnableFile,
		DisableColor: cfg.GetConfig().Logger.DisableColor,
		EnableJson:   cfg.GetConfig().Logger.EnableJson,
	})
	logger.Warn("standalone start")
	defer func() {
		logger.Warn("standalone exit")
		logger.CloseLogger()
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(signalChan)
	return runTogether(nats.RunNatsServer, func(ctx context.Context) error {
		// nats需要先启动
		time.Sleep(time.Second)
		return app.Run(ctx)
	}, signalChan)
}

// runTogether 运行nats和寻路服务器 任意一方出错或收到退出信号时两者都停止后返回
func runTogether(runNats func(ctx context.Context) error, runApp func(ctx context.Context) error, signalChan <-chan os.Signal) error {
	errChan := make(chan error, 2)
	stopChan := make(chan struct{}, 1)

	ctxNats, cancelNats := context.WithCancel(context.Background())
	ctxNav, cancelNav := context.WithCancel(context.Background())
	defer cancelNav()
	defer cancelNats()

	go func() {
		err := runNats(ctxNats)
		if err != nil {
			errChan <- err
		}
		stopChan <- struct{}{}
	}()

	go func() {
		err := runApp(ctxNav)
		if err != nil {
			errChan <- err
		}
		cancelNats()
	}()

	for {
		select {
		case err := <-errChan:
			logger.Error("standalone server error: %v", err)
			cancelNav()
			cancelNats()
			<-stopChan
			return err
		case s := <-signalChan:
			logger.Warn("get a signal %s", s.String())
			switch s {
			case syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT:
				cancelNav()
				<-stopChan
				return nil
			case syscall.SIGHUP:
			default:
				return nil
			}
		}
	}
}
