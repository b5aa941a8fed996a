package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"pipeheat/calculator"
	"pipeheat/deque"
	"pipeheat/model"
	"pipeheat/recorder"
	"pipeheat/runner"
	"pipeheat/weather"
)

// Hub 一个 websocket 连接：接收 env / start / stop / history，推送计算结果
type Hub struct {
	s       *Server
	conn    *websocket.Conn
	pipes   []model.PipeConfig
	history *deque.ArrDeque

	calcHub *calculator.CalcHub
	cancel  context.CancelFunc

	// response
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(s *Server, conn *websocket.Conn) *Hub {
	return &Hub{
		s:       s,
		conn:    conn,
		history: deque.NewArrDeque(s.cfg.History),
		reply:   make(chan model.Msg, 10),
		done:    make(chan struct{}),
	}
}

// 所有写操作都在这里完成
func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithError(err).Warn("write message")
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) send(msg model.Msg) {
	select {
	case h.reply <- msg:
	case <-h.done:
	}
}

func (h *Hub) sendError(err error) {
	h.send(model.Msg{Type: "error", Content: err.Error()})
}

func (h *Hub) handleRequest(msg model.Msg) {
	switch msg.Type {
	case "env":
		var pipes []model.PipeConfig
		if err := json.Unmarshal([]byte(msg.Content), &pipes); err != nil {
			h.sendError(fmt.Errorf("parse pipes: %w", err))
			return
		}
		if err := calculator.ValidatePipes(pipes, h.s.solver); err != nil {
			h.sendError(err)
			return
		}
		h.pipes = pipes
		h.send(model.Msg{Type: "envSet", Content: fmt.Sprintf("%d pipes set", len(pipes))})
	case "start":
		if err := h.start(); err != nil {
			h.sendError(err)
		}
	case "stop":
		h.stop()
		h.send(model.Msg{Type: "stopped", Content: "stopped"})
	case "history":
		h.history.Traverse(func(i int, item *model.Snapshot) {
			h.sendSnapshot(*item)
		})
	default:
		log.WithField("type", msg.Type).Warn("no such type")
		h.sendError(fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (h *Hub) start() error {
	if len(h.pipes) == 0 {
		return fmt.Errorf("no pipes set, send env first")
	}
	if h.calcHub != nil && !h.calcHub.Stopped() {
		return fmt.Errorf("calculation already running")
	}
	series, err := weather.Load(h.s.cfg.Weather)
	if err != nil {
		return err
	}
	var sink calculator.Sink = discard{}
	var csv *recorder.CSV
	if h.s.cfg.Output != "" {
		csv = recorder.NewCSV(h.s.cfg.Output)
		sink = csv
	}
	r, err := runner.New(h.s.run, h.s.solver, h.pipes, h.s.props, series, sink)
	if err != nil {
		return err
	}

	calcHub := calculator.NewCalcHub()
	r.SetHub(calcHub)
	ctx, cancel := context.WithCancel(context.Background())
	h.calcHub, h.cancel = calcHub, cancel
	h.send(model.Msg{Type: "started"})

	go func() {
		defer calcHub.Finish()
		if err := r.Run(ctx); err != nil {
			log.WithError(err).Warn("run aborted")
		}
		if csv != nil {
			if err := csv.Close(); err != nil {
				log.WithError(err).Warn("write results")
			}
		}
	}()
	go func() {
		for snapshots := range calcHub.PeriodCalcResult {
			for _, s := range snapshots {
				h.history.AddLast(s)
				h.sendSnapshot(s)
			}
		}
		calcHub.StopSignal()
		h.send(model.Msg{Type: "finished"})
	}()
	return nil
}

func (h *Hub) sendSnapshot(s model.Snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		log.WithError(err).Warn("marshal snapshot")
		return
	}
	h.send(model.Msg{Type: "snapshot", Content: string(data)})
}

func (h *Hub) stop() {
	if h.calcHub != nil {
		h.calcHub.StopSignal()
	}
}

func (h *Hub) close() {
	h.stop()
	if h.cancel != nil {
		h.cancel()
	}
	close(h.done)
	h.conn.Close()
}

type discard struct{}

func (discard) Record(calculator.Report) error { return nil }
