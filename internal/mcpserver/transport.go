package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Serve runs the server on stdio or as a streamable HTTP endpoint until ctx
// is cancelled or the client disconnects.
func Serve(ctx context.Context, server *mcp.Server, transport, bind string, port int) error {
	switch transport {
	case TransportStdio, "":
		return server.Run(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return serveHTTP(ctx, server, net.JoinHostPort(bind, strconv.Itoa(port)))
	default:
		return fmt.Errorf("unknown MCP transport %q", transport)
	}
}

// HTTPHandler serves every request from the same server.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}

func serveHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           HTTPHandler(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("MCP server listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
