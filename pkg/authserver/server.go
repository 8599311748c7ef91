package authserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server is a one-shot local HTTP listener that catches the Google
// OAuth redirect and hands the authorization code back to the caller
type Server struct {
	addr   string
	logger *logrus.Logger
}

// New creates a redirect catcher bound to host:port
func New(host string, port int, logger *logrus.Logger) *Server {
	return &Server{
		addr:   fmt.Sprintf("%s:%d", host, port),
		logger: logger,
	}
}

// WaitForCode serves until one redirect carrying a code arrives, the
// context is cancelled, or the consent is denied. The listener is shut
// down before returning.
func (s *Server) WaitForCode(ctx context.Context) (string, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	router.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	router.GET("/", func(c *gin.Context) {
		if reason := c.Query("error"); reason != "" {
			c.String(http.StatusOK, "Authorization was denied. You can close this window.")
			select {
			case errCh <- fmt.Errorf("authorization denied: %s", reason):
			default:
			}
			return
		}

		code := c.Query("code")
		if code == "" {
			c.String(http.StatusBadRequest, "Missing authorization code.")
			return
		}

		c.String(http.StatusOK, "Authentication successful! You can close this window.")
		select {
		case codeCh <- code:
		default:
		}
	})

	srv := &http.Server{Addr: s.addr, Handler: router}

	go func() {
		s.logger.Infof("Starting OAuth redirect listener on http://%s", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errCh <- err:
			default:
			}
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorf("Failed to shut down OAuth listener: %v", err)
		}
	}()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
