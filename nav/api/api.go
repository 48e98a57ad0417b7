package api

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"
)

// nats subject
const (
	QueryPathSubject = "NAVSVR.QUERY_PATH"
	QueryPathQueue   = "navsvr"
)

const (
	QueryPathStatusFail = 0
	QueryPathStatusSucc = 1
)

// QueryPathReq 按顺序尝试目标点 第一个成功的作为结果
type QueryPathReq struct {
	QueryId        int32        `msgpack:"query_id" json:"query_id"`
	SceneId        uint32       `msgpack:"scene_id" json:"scene_id"`
	SourcePos      mgl32.Vec3   `msgpack:"source_pos" json:"source_pos"`
	DestinationPos []mgl32.Vec3 `msgpack:"destination_pos" json:"destination_pos"`
}

type QueryPathRsp struct {
	QueryId     int32        `msgpack:"query_id" json:"query_id"`
	QueryStatus int32        `msgpack:"query_status" json:"query_status"`
	Corners     []mgl32.Vec3 `msgpack:"corners" json:"corners"`
}

// RequestQueryPath 同步请求寻路
func RequestQueryPath(conn *nats.Conn, req *QueryPathReq, timeout time.Duration) (*QueryPathRsp, error) {
	if conn == nil {
		return nil, errors.New("nats conn is nil")
	}
	data, err := msgpack.Marshal(req)
	if err != nil {
		return nil, err
	}
	msg, err := conn.Request(QueryPathSubject, data, timeout)
	if err != nil {
		return nil, err
	}
	rsp := new(QueryPathRsp)
	err = msgpack.Unmarshal(msg.Data, rsp)
	if err != nil {
		return nil, err
	}
	return rsp, nil
}
