package handle

import (
	"navsvr/nav/api"
	"navsvr/pkg/logger"
)

func (h *Handle) QueryPath(req *api.QueryPathReq) *api.QueryPathRsp {
	logger.Debug("query path req: %v", req)
	for _, destinationPos := range req.DestinationPos {
		corners, ok := h.worldStatic.NavMeshPathfinding(req.SceneId, req.SourcePos, destinationPos)
		if ok {
			return &api.QueryPathRsp{
				QueryId:     req.QueryId,
				QueryStatus: api.QueryPathStatusSucc,
				Corners:     corners,
			}
		}
	}
	return &api.QueryPathRsp{
		QueryId:     req.QueryId,
		QueryStatus: api.QueryPathStatusFail,
	}
}
