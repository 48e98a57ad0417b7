package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"navsvr/common/config"
	"navsvr/nav/handle"
	"navsvr/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	worldStatic *handle.WorldStatic
	srv         *http.Server
}

func NewController(worldStatic *handle.WorldStatic) (*Controller, error) {
	c := new(Controller)
	c.worldStatic = worldStatic
	addr := config.GetConfig().Http.Addr
	c.srv = &http.Server{
		Addr:    addr,
		Handler: c.newRouter(),
	}
	go func() {
		logger.Info("http server start, addr: %v", addr)
		err := c.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error: %v", err)
		}
	}()
	return c, nil
}

func (c *Controller) newRouter() *gin.Engine {
	if config.GetConfig() == nil || config.GetConfig().Logger.Level != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	navMeshGroup := engine.Group("/navmesh")
	{
		navMeshGroup.GET("", c.sceneList)
		navMeshGroup.POST("/:scene/path", c.queryPath)
		navMeshGroup.GET("/:scene/locate", c.locate)
		navMeshGroup.GET("/:scene/corner", c.randomCorner)
		navMeshGroup.GET("/:scene/debug/wireframe", c.debugWireframe)
	}
	return engine
}

func (c *Controller) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := c.srv.Shutdown(ctx)
	if err != nil {
		logger.Error("http server shutdown error: %v", err)
	}
}
