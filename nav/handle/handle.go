package handle

import (
	"navsvr/nav/api"
	"navsvr/pkg/logger"

	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"
)

// Handle 寻路请求处理器 通过nats接收请求
type Handle struct {
	worldStatic *WorldStatic
	natsConn    *nats.Conn
	sub         *nats.Subscription
}

func NewHandle(worldStatic *WorldStatic, natsConn *nats.Conn) (*Handle, error) {
	h := new(Handle)
	h.worldStatic = worldStatic
	h.natsConn = natsConn
	if natsConn != nil {
		sub, err := natsConn.QueueSubscribe(api.QueryPathSubject, api.QueryPathQueue, h.onQueryPath)
		if err != nil {
			logger.Error("nats subscribe error: %v", err)
			return nil, err
		}
		h.sub = sub
	}
	return h, nil
}

func (h *Handle) onQueryPath(msg *nats.Msg) {
	req := new(api.QueryPathReq)
	err := msgpack.Unmarshal(msg.Data, req)
	if err != nil {
		logger.Error("parse query path req error: %v", err)
		return
	}
	rsp := h.QueryPath(req)
	data, err := msgpack.Marshal(rsp)
	if err != nil {
		logger.Error("build query path rsp error: %v", err)
		return
	}
	err = msg.Respond(data)
	if err != nil {
		logger.Error("send query path rsp error: %v", err)
	}
}

func (h *Handle) Close() {
	if h.sub != nil {
		err := h.sub.Unsubscribe()
		if err != nil {
			logger.Error("nats unsubscribe error: %v", err)
		}
	}
}
