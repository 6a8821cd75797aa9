package spectate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// Server 观战 HTTP 服务，路径 /ws
type Server struct {
	hub      *Hub
	listener net.Listener
	srv      *http.Server
}

// Listen 在 addr 上启动观战服务（":0" 表示随机端口）
func Listen(addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	s := &Server{
		hub:      hub,
		listener: ln,
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[Spectate] ERROR: server stopped: %v", err)
		}
	}()

	log.Printf("[Spectate] Listening on %s", ln.Addr())
	return s, nil
}

// Addr 实际监听地址
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown 断开观战端并关闭服务
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.srv.Shutdown(ctx)
}
