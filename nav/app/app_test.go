package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	natsserver "navsvr/cmd/nats"
	"navsvr/common/config"
	"navsvr/nav/api"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/nats-io/nats.go"
)

const quadAsset = `NAVMESH quad
VERTICES
0 0 0
1 0 0
1 0 1
0 0 1
TRIANGLES
0 1 2
0 2 3
END
`

func TestRun(t *testing.T) {
	natsServer, err := natsserver.NewNatsServer("nats://127.0.0.1:-1")
	if err != nil {
		t.Fatal(err)
	}
	defer natsServer.Shutdown()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "quad.txt"), []byte(quadAsset), 0644); err != nil {
		t.Fatal(err)
	}
	levelConfig := filepath.Join(dir, "NavMeshConfig.hjson")
	if err := os.WriteFile(levelConfig, []byte(`[{"scene_id": 3, "file": "quad.txt"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	config.CONF = config.DefaultConfig()
	config.CONF.Navsvr.StandaloneModeEnable = true
	config.CONF.Http.Addr = "127.0.0.1:0"
	config.CONF.MQ.NatsUrl = natsServer.ClientURL()
	config.CONF.NavMesh.DataDir = dir
	config.CONF.NavMesh.LevelConfig = levelConfig

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx)
	}()

	conn, err := nats.Connect(natsServer.ClientURL())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	req := &api.QueryPathReq{
		QueryId:        1,
		SceneId:        3,
		SourcePos:      mgl32.Vec3{0.9, 0, 0.1},
		DestinationPos: []mgl32.Vec3{{0.1, 0, 0.9}},
	}
	var rsp *api.QueryPathRsp
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		rsp, err = api.RequestQueryPath(conn, req, 500*time.Millisecond)
		if err == nil {
			break
		}
	}
	if err != nil {
		t.Fatalf("query path: %v", err)
	}
	if rsp.QueryStatus != api.QueryPathStatusSucc || len(rsp.Corners) != 2 {
		t.Errorf("rsp = %+v", rsp)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("app did not stop")
	}
}
