package controller

import (
	"math"
	"net/http"
	"sort"
	"strconv"

	"navsvr/pkg/logger"
	"navsvr/pkg/navmesh"

	"github.com/gin-gonic/gin"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	RetSucc        = 0
	RetParamError  = -1
	RetSceneError  = -2
	RetNoPathError = -3
)

type CommonRsp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

type QueryPathReqJson struct {
	Start mgl32.Vec3 `json:"start"`
	End   mgl32.Vec3 `json:"end"`
	Debug bool       `json:"debug"`
}

type QueryPathRspJson struct {
	Corners []mgl32.Vec3          `json:"corners"`
	Lines   []navmesh.LineSegment `json:"lines,omitempty"`
}

type LocateRspJson struct {
	Triangle  int32 `json:"triangle"`
	Contained bool  `json:"contained"`
}

func (c *Controller) getSceneId(ctx *gin.Context) (uint32, bool) {
	sceneId, err := strconv.ParseUint(ctx.Param("scene"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusOK, &CommonRsp{Code: RetParamError, Msg: "scene id error"})
		return 0, false
	}
	return uint32(sceneId), true
}

func (c *Controller) sceneList(ctx *gin.Context) {
	sceneIdList := c.worldStatic.GetSceneIdList()
	sort.Slice(sceneIdList, func(i, j int) bool { return sceneIdList[i] < sceneIdList[j] })
	ctx.JSON(http.StatusOK, &CommonRsp{Code: RetSucc, Data: sceneIdList})
}

func (c *Controller) queryPath(ctx *gin.Context) {
	sceneId, ok := c.getSceneId(ctx)
	if !ok {
		return
	}
	req := new(QueryPathReqJson)
	err := ctx.ShouldBindJSON(req)
	if err != nil {
		logger.Debug("parse query path req error: %v", err)
		ctx.JSON(http.StatusOK, &CommonRsp{Code: RetParamError, Msg: "req body error"})
		return
	}
	if _, exist := c.worldStatic.GetNavMesh(sceneId); !exist {
		ctx.JSON(http.StatusOK, &CommonRsp{Code: RetSceneError, Msg: "scene not exist"})
		return
	}
	corners, ok := c.worldStatic.NavMeshPathfinding(sceneId, req.Start, req.End)
	if !ok {
		ctx.JSON(http.StatusOK, &CommonRsp{Code: RetNoPathError, Msg: "no path"})
		return
	}
	rsp := &QueryPathRspJson{Corners: corners}
	if req.Debug {
		rsp.Lines = navmesh.PathLines(corners)
	}
	ctx.JSON(http.StatusOK, &CommonRsp{Code: RetSucc, Data: rsp})
}

func parseFloatQuery(ctx *gin.Context, key string) (float32, bool) {
	value, err := strconv.ParseFloat(ctx.Query(key), 32)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return float32(value), true
}

func (c *Controller) locate(ctx *gin.Context) {
	sceneId, ok := c.getSceneId(ctx)
	if !ok {
		return
	}
	var pos mgl32.Vec3
	for i, key := range []string{"x", "y", "z"} {
		pos[i], ok = parseFloatQuery(ctx, key)
		if !ok {
			ctx.JSON(http.StatusOK, &CommonRsp{Code: RetParamError, Msg: "pos error"})
			return
		}
	}
	tri, contained, ok := c.worldStatic.SampleTriangle(sceneId, pos)
	if !ok {
		ctx.JSON(http.StatusOK, &CommonRsp{Code: RetSceneError, Msg: "scene not exist"})
		return
	}
	ctx.JSON(http.StatusOK, &CommonRsp{Code: RetSucc, Data: &LocateRspJson{Triangle: tri, Contained: contained}})
}

func (c *Controller) randomCorner(ctx *gin.Context) {
	sceneId, ok := c.getSceneId(ctx)
	if !ok {
		return
	}
	corner, ok := c.worldStatic.RandomCorner(sceneId)
	if !ok {
		ctx.JSON(http.StatusOK, &CommonRsp{Code: RetSceneError, Msg: "scene not exist"})
		return
	}
	ctx.JSON(http.StatusOK, &CommonRsp{Code: RetSucc, Data: corner})
}

func (c *Controller) debugWireframe(ctx *gin.Context) {
	sceneId, ok := c.getSceneId(ctx)
	if !ok {
		return
	}
	navMesh, exist := c.worldStatic.GetNavMesh(sceneId)
	if !exist {
		ctx.JSON(http.StatusOK, &CommonRsp{Code: RetSceneError, Msg: "scene not exist"})
		return
	}
	ctx.JSON(http.StatusOK, &CommonRsp{Code: RetSucc, Data: navMesh.WireframeLines()})
}
