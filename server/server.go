package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"pipeheat/calculator"
	"pipeheat/model"
	"pipeheat/runner"
)

type Config struct {
	Addr    string
	History int    // 保存的推送条数
	Weather string // 边界条件 csv
	Output  string // 结果 csv，为空时不记录
}

// LoadConfig 读取 [server] 段
func LoadConfig(file *ini.File) Config {
	section := file.Section("server")
	return Config{
		Addr:    section.Key("Addr").MustString(":9000"),
		History: section.Key("History").MustInt(144),
		Weather: section.Key("Weather").MustString("conf/weather.csv"),
		Output:  section.Key("Output").MustString(""),
	}
}

type Server struct {
	cfg      Config
	upgrader websocket.Upgrader
	solver   calculator.Config
	run      runner.Config
	props    calculator.FluidProperties
}

func NewServer(cfg Config, upgrader websocket.Upgrader, solver calculator.Config, run runner.Config, props calculator.FluidProperties) *Server {
	return &Server{
		cfg:      cfg,
		upgrader: upgrader,
		solver:   solver,
		run:      run,
		props:    props,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	hub := NewHub(s, conn)
	defer hub.close()
	go hub.handleResponse()

	for {
		var msg model.Msg
		if err = conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("read message")
			}
			return
		}
		hub.handleRequest(msg)
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.cfg.Addr).Info("server listening")
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}
