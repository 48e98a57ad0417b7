package nats

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	cfg "navsvr/common/config"
	"navsvr/pkg/logger"

	"github.com/nats-io/nats-server/v2/server"
)

// NewNatsServer 启动内嵌nats服务器 端口为-1时随机分配
func NewNatsServer(natsUrl string) (*server.Server, error) {
	natsAddr := strings.ReplaceAll(natsUrl, "nats://", "")
	if strings.Contains(natsAddr, ",") {
		return nil, errors.New("not support nats cluster")
	}
	split := strings.Split(natsAddr, ":")
	if len(split) != 2 {
		return nil, errors.New("nats addr format error")
	}
	host := split[0]
	port, err := strconv.Atoi(split[1])
	if err != nil {
		return nil, err
	}

	opts := &server.Options{
		Host:                  host,
		Port:                  port,
		NoLog:                 true,
		NoSigs:                true,
		MaxControlLine:        4096,
		DisableShortFirstPing: true,
	}
	natsServer, err := server.NewServer(opts)
	if err != nil {
		return nil, err
	}
	go natsServer.Start()
	ok := natsServer.ReadyForConnections(time.Second * 5)
	if !ok {
		natsServer.Shutdown()
		return nil, errors.New("nats server start error")
	}
	return natsServer, nil
}

func RunNatsServer(ctx context.Context) error {
	natsServer, err := NewNatsServer(cfg.GetConfig().MQ.NatsUrl)
	if err != nil {
		return err
	}
	logger.Warn("nats server start, addr: %v", natsServer.ClientURL())
	defer func() {
		natsServer.Shutdown()
		logger.Warn("nats server exit")
	}()

	c := make(chan os.Signal, 1)
	if !cfg.GetConfig().Navsvr.StandaloneModeEnable {
		signal.Notify(c, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-c:
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
