package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	cfg "navsvr/common/config"
	"navsvr/nav/api"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

func QueryCmd() *cobra.Command {
	var configFile string
	var sceneId uint32
	var from string
	var toList []string
	var timeout time.Duration
	c := &cobra.Command{
		Use:   "query",
		Short: "send a path query over nats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InitConfig(configFile)
			sourcePos, err := parseVec3(from)
			if err != nil {
				return err
			}
			req := &api.QueryPathReq{
				QueryId:   1,
				SceneId:   sceneId,
				SourcePos: sourcePos,
			}
			for _, to := range toList {
				destinationPos, err := parseVec3(to)
				if err != nil {
					return err
				}
				req.DestinationPos = append(req.DestinationPos, destinationPos)
			}
			if len(req.DestinationPos) == 0 {
				return errors.New("at least one --to is required")
			}
			conn, err := nats.Connect(cfg.GetConfig().MQ.NatsUrl)
			if err != nil {
				return err
			}
			defer conn.Close()
			rsp, err := api.RequestQueryPath(conn, req, timeout)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(rsp, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	c.Flags().StringVar(&configFile, "config", "application.toml", "config file")
	c.Flags().Uint32Var(&sceneId, "scene", 0, "scene id")
	c.Flags().StringVar(&from, "from", "", "source position x,y,z")
	c.Flags().StringArrayVar(&toList, "to", nil, "destination position x,y,z, repeat for more, tried in order")
	c.Flags().DurationVar(&timeout, "timeout", time.Second*5, "request timeout")
	return c
}

// parseVec3 x,y,z
func parseVec3(s string) (mgl32.Vec3, error) {
	var ret mgl32.Vec3
	split := strings.Split(s, ",")
	if len(split) != 3 {
		return ret, fmt.Errorf("position format error: %q", s)
	}
	for i, field := range split {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return ret, fmt.Errorf("position format error: %q: %w", s, err)
		}
		ret[i] = float32(value)
	}
	return ret, nil
}
