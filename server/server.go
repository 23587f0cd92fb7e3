package server

import (
	"net/http"
	"platesim/calculator"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	addr     string
	cfg      calculator.Config
	upgrader websocket.Upgrader
}

func NewServer(addr string, cfg calculator.Config, upgrader websocket.Upgrader) *Server {
	return &Server{
		addr:     addr,
		cfg:      cfg,
		upgrader: upgrader,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket 升级失败")
		return
	}
	hub := NewHub(conn, s.cfg)
	hub.run()
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("启动服务")
	return http.ListenAndServe(s.addr, s.Handler())
}
