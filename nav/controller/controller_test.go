package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"navsvr/common/config"
	"navsvr/nav/handle"
	"navsvr/pkg/navmesh"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestController(t *testing.T) *Controller {
	config.CONF = config.DefaultConfig()
	w := handle.NewWorldStatic(nil)
	nav, err := navmesh.NewNavMesh(&navmesh.NavMeshCreateParams{
		Name:     "quad",
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
		Indices:  [][3]uint32{{0, 1, 2}, {0, 2, 3}},
		Settings: navmesh.DefaultBuildSettings(),
	})
	if err != nil {
		t.Fatal(err)
	}
	w.AddNavMesh(3, "quad", "", nav, 0, 0)
	return &Controller{worldStatic: w}
}

type rawRsp struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, c *Controller, method string, url string, body string) *rawRsp {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	c.newRouter().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s: status %d", method, url, w.Code)
	}
	rsp := new(rawRsp)
	if err := json.Unmarshal(w.Body.Bytes(), rsp); err != nil {
		t.Fatalf("%s %s: %v, body: %s", method, url, err, w.Body.String())
	}
	return rsp
}

func TestQueryPath(t *testing.T) {
	c := newTestController(t)

	pathTests := []struct {
		msg      string
		url      string
		body     string
		wantCode int
	}{
		{"ok", "/navmesh/3/path", `{"start":[0.9,0,0.1],"end":[0.1,0,0.9],"debug":true}`, RetSucc},
		{"bad scene id", "/navmesh/abc/path", `{"start":[0,0,0],"end":[1,0,1]}`, RetParamError},
		{"bad body", "/navmesh/3/path", `{"start":`, RetParamError},
		{"missing scene", "/navmesh/4/path", `{"start":[0,0,0],"end":[1,0,1]}`, RetSceneError},
	}

	for _, tt := range pathTests {
		rsp := doRequest(t, c, http.MethodPost, tt.url, tt.body)
		if rsp.Code != tt.wantCode {
			t.Errorf("%s: code = %d (%s), want %d", tt.msg, rsp.Code, rsp.Msg, tt.wantCode)
			continue
		}
		if tt.wantCode != RetSucc {
			continue
		}
		data := new(QueryPathRspJson)
		if err := json.Unmarshal(rsp.Data, data); err != nil {
			t.Fatal(err)
		}
		want := []mgl32.Vec3{{0.9, 0, 0.1}, {0.1, 0, 0.9}}
		if len(data.Corners) != 2 || data.Corners[0] != want[0] || data.Corners[1] != want[1] {
			t.Errorf("%s: corners = %v, want %v", tt.msg, data.Corners, want)
		}
		if len(data.Lines) != 1 {
			t.Errorf("%s: debug lines = %v", tt.msg, data.Lines)
		}
	}
}

func TestLocate(t *testing.T) {
	c := newTestController(t)

	locateTests := []struct {
		url           string
		wantCode      int
		wantTriangle  int32
		wantContained bool
	}{
		{"/navmesh/3/locate?x=0.1&y=0&z=0.9", RetSucc, 1, true},
		{"/navmesh/3/locate?x=0.9&y=2&z=0.1", RetSucc, 0, true},
		{"/navmesh/3/locate?x=0&y=0&z=5", RetSucc, 1, false},
		{"/navmesh/3/locate?x=0&y=0", RetParamError, 0, false},
		{"/navmesh/3/locate?x=NaN&y=0&z=0", RetParamError, 0, false},
		{"/navmesh/3/locate?x=0&y=0&z=-Inf", RetParamError, 0, false},
		{"/navmesh/3/locate?x=1e39&y=0&z=0", RetParamError, 0, false},
		{"/navmesh/8/locate?x=0&y=0&z=0", RetSceneError, 0, false},
	}

	for _, tt := range locateTests {
		rsp := doRequest(t, c, http.MethodGet, tt.url, "")
		if rsp.Code != tt.wantCode {
			t.Errorf("%s: code = %d, want %d", tt.url, rsp.Code, tt.wantCode)
			continue
		}
		if tt.wantCode != RetSucc {
			continue
		}
		data := new(LocateRspJson)
		if err := json.Unmarshal(rsp.Data, data); err != nil {
			t.Fatal(err)
		}
		if data.Triangle != tt.wantTriangle || data.Contained != tt.wantContained {
			t.Errorf("%s: got %+v", tt.url, data)
		}
	}
}

func TestCornerAndWireframe(t *testing.T) {
	c := newTestController(t)

	rsp := doRequest(t, c, http.MethodGet, "/navmesh/3/corner", "")
	if rsp.Code != RetSucc {
		t.Fatalf("corner code = %d", rsp.Code)
	}
	var corner mgl32.Vec3
	if err := json.Unmarshal(rsp.Data, &corner); err != nil {
		t.Fatal(err)
	}
	if corner[1] != 0 || (corner[0] != 0 && corner[0] != 1) || (corner[2] != 0 && corner[2] != 1) {
		t.Errorf("corner = %v", corner)
	}

	rsp = doRequest(t, c, http.MethodGet, "/navmesh/3/debug/wireframe", "")
	var lines []navmesh.LineSegment
	if err := json.Unmarshal(rsp.Data, &lines); err != nil {
		t.Fatal(err)
	}
	if rsp.Code != RetSucc || len(lines) != 6 {
		t.Errorf("wireframe code %d, %d lines", rsp.Code, len(lines))
	}

	rsp = doRequest(t, c, http.MethodGet, "/navmesh", "")
	var sceneIdList []uint32
	if err := json.Unmarshal(rsp.Data, &sceneIdList); err != nil {
		t.Fatal(err)
	}
	if len(sceneIdList) != 1 || sceneIdList[0] != 3 {
		t.Errorf("scene list = %v", sceneIdList)
	}
}
