// Command pursuitgame runs the grid pursuit game.
//
// It supports four commands:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" – plays a level in the terminal, by hand or with the search policy
//  4. "run" – plays one headless episode with the search policy and prints the outcome
//
// Flags control host/port, config directory, debug logging, and optional ngrok
// tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/pursuitgame/api"
	"github.com/wricardo/mcp-training/pursuitgame/game/agent"
	"github.com/wricardo/mcp-training/pursuitgame/game/config"
	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/search"
	"github.com/wricardo/mcp-training/pursuitgame/game/service"
	"github.com/wricardo/mcp-training/pursuitgame/game/session"
	"github.com/wricardo/mcp-training/pursuitgame/transport/mcp"
	"github.com/wricardo/mcp-training/pursuitgame/transport/websocket"
	"github.com/wricardo/mcp-training/pursuitgame/ui/terminal"
)

// Version information
const (
	Version = "3.0.0"
	AppName = "Pursuit Game Server"
)

// Session retention
const (
	sessionCleanupInterval = 1 * time.Hour
	sessionMaxAge          = 24 * time.Hour
)

// serverOptions are the flag values shared by every command
type serverOptions struct {
	Host         string
	Port         int
	ConfigDir    string
	DefaultLevel string
	Ngrok        bool
	NgrokAuth    string
	NgrokDomain  string
}

func (o serverOptions) addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// main loads the environment and hands over to the command line
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		// Only log if it's not a "file not found" error
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newCommand builds the command tree. Running without a subcommand serves HTTP.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "pursuitgame",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing level configurations", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.StringFlag{Name: "default-level", Value: engine.DefaultLevelName, Usage: "Level used when a session names none", Sources: cli.EnvVars("DEFAULT_LEVEL")},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Before: setupLogging,
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  serveAction,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server, starting an internal HTTP server when none is running",
				Action:  mcpAction,
			},
			{
				Name:  "play",
				Usage: "Play a level in the terminal",
				Flags: []cli.Flag{
					levelFlag(),
					algorithmFlag(),
					&cli.BoolFlag{Name: "auto", Usage: "Start with the search policy driving the agent"},
					&cli.StringFlag{Name: "speed", Value: terminal.SpeedMedium, Usage: "Auto play speed: slow, medium or fast"},
				},
				Action: playAction,
			},
			{
				Name:  "run",
				Usage: "Play one headless episode with the search policy",
				Flags: []cli.Flag{
					levelFlag(),
					algorithmFlag(),
					&cli.IntFlag{Name: "max-ticks", Usage: "Stop after this many ticks (0 plays until the episode ends)"},
					&cli.BoolFlag{Name: "render", Usage: "Print the board after every tick"},
					&cli.BoolFlag{Name: "json", Usage: "Print the outcome as JSON"},
				},
				Action: runAction,
			},
		},
	}
}

func levelFlag() cli.Flag {
	return &cli.StringFlag{Name: "level", Aliases: []string{"l"}, Value: engine.DefaultLevelName, Usage: "Level configuration name"}
}

func algorithmFlag() cli.Flag {
	return &cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: string(search.DefaultAlgorithm), Usage: "Search algorithm: bfs, dfs, ucs, astar or greedy"}
}

// setupLogging applies --debug before any command runs
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
	return ctx, nil
}

func optionsFrom(cmd *cli.Command) serverOptions {
	return serverOptions{
		Host:         cmd.String("host"),
		Port:         cmd.Int("port"),
		ConfigDir:    cmd.String("config-dir"),
		DefaultLevel: cmd.String("default-level"),
		Ngrok:        cmd.Bool("ngrok"),
		NgrokAuth:    cmd.String("ngrok-auth"),
		NgrokDomain:  cmd.String("ngrok-domain"),
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	opts := optionsFrom(cmd)
	log.Printf("Starting %s v%s (mode: serve)", AppName, Version)

	gameService, err := initializeServices(opts.ConfigDir, opts.DefaultLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	return runHTTPServer(ctx, gameService, opts)
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	opts := optionsFrom(cmd)
	log.Printf("Starting %s v%s (mode: mcp)", AppName, Version)

	gameService, err := initializeServices(opts.ConfigDir, opts.DefaultLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	return runStdioMCPWithInternalServer(gameService, opts)
}

// loadLevel reads a level through the config manager so files in the config
// directory are playable offline too
func loadLevel(cmd *cli.Command) (*engine.GameEngine, string, error) {
	configs, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create config manager: %w", err)
	}
	level := cmd.String("level")
	cfg, err := configs.LoadConfig(level)
	if err != nil {
		return nil, "", err
	}
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, "", err
	}
	return eng, level, nil
}

func playAction(ctx context.Context, cmd *cli.Command) error {
	alg, err := search.ParseAlgorithm(cmd.String("algorithm"))
	if err != nil {
		return err
	}
	interval, err := terminal.SpeedToInterval(cmd.String("speed"))
	if err != nil {
		return err
	}
	eng, level, err := loadLevel(cmd)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	// Log lines would tear the board
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	game := terminal.NewGame(screen, eng, terminal.Options{
		Level:     level,
		Algorithm: alg,
		Auto:      cmd.Bool("auto"),
		Interval:  interval,
	})
	return game.Run(ctx)
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	alg, err := search.ParseAlgorithm(cmd.String("algorithm"))
	if err != nil {
		return err
	}
	eng, level, err := loadLevel(cmd)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	var observe func(engine.TickResult)
	if cmd.Bool("render") {
		observe = func(r engine.TickResult) {
			fmt.Fprintf(out, "tick %d: %s\n%s\n\n", len(eng.GetMoveHistory()), r.Applied, engine.RenderASCII(eng.Snapshot()))
		}
	}

	episode, err := agent.RunEpisode(eng, alg, cmd.Int("max-ticks"), observe)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(episode)
	}

	fmt.Fprintf(out, "level: %s\n", level)
	fmt.Fprintf(out, "algorithm: %s\n", episode.Algorithm)
	fmt.Fprintf(out, "ticks: %d\n", episode.Ticks)
	fmt.Fprintf(out, "items collected: %d\n", episode.Collected)
	fmt.Fprintf(out, "nodes expanded: %d\n", episode.Expanded)
	fmt.Fprintf(out, "score: %d\n", episode.Score)
	fmt.Fprintf(out, "result: %s\n", eng.Snapshot().Status())
	return nil
}

// mcpHandler answers JSON-RPC messages posted to /mcp with the given MCP server
func mcpHandler(mcpServer *server.MCPServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// newRouter wires the REST API, the WebSocket hub and the /mcp endpoint onto one handler
func newRouter(gameService service.GameService, hub *websocket.Hub, baseURL string) http.Handler {
	apiServer := api.NewServer(gameService, hub)
	mcpClient := mcp.NewClient(baseURL)
	apiServer.Mount("/mcp", mcpHandler(mcpClient.GetMCPServer()))
	return apiServer
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, gameService service.GameService, opts serverOptions) error {
	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	addr := opts.addr()
	router := newRouter(gameService, hub, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	var wg sync.WaitGroup

	// Start regular HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	// Start ngrok tunnel if enabled
	if opts.Ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, router, opts)
		}()
	}

	// Wait for shutdown signal or a listener failure
	var result error
	select {
	case sig := <-stop:
		log.Printf("Received signal: %v. Shutting down...", sig)
	case <-ctx.Done():
		log.Println("Context cancelled. Shutting down...")
	case err := <-serveErr:
		result = err
	}
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Wait for all goroutines to finish
	wg.Wait()
	log.Println("Server stopped")
	return result
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx is done
func runNgrokTunnel(ctx context.Context, handler http.Handler, opts serverOptions) {
	if opts.NgrokAuth == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	// Configure ngrok endpoint
	var tunnel ngrokConfig.Tunnel
	if opts.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.NgrokDomain))
		log.Printf("Using custom ngrok domain: %s", opts.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(opts.NgrokAuth),
	)
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := serveUntilDone(ctx, tun, handler); err != nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// serveUntilDone serves handler on ln until ctx is done, then closes ln
func serveUntilDone(ctx context.Context, ln net.Listener, handler http.Handler) error {
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			if err := ln.Close(); err != nil {
				log.Printf("Failed to close listener: %v", err)
			}
		case <-stopped:
		}
	}()

	err := http.Serve(ln, handler)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// initializeServices wires session/config managers and the game service.
// It also starts a background cleanup routine to prune stale sessions.
func initializeServices(configDir, defaultLevel string) (service.GameService, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if defaultLevel != "" && defaultLevel != engine.DefaultLevelName {
		if err := configManager.SetDefault(defaultLevel); err != nil {
			return nil, fmt.Errorf("failed to set default level: %w", err)
		}
		log.Printf("Default level: %s", defaultLevel)
	}

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, configManager)

	go sessionCleanupRoutine(sessionManager)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(sessionMaxAge)
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at the configured host and port; if unavailable,
// it starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(gameService service.GameService, opts serverOptions) error {
	externalURL := fmt.Sprintf("http://%s", opts.addr())
	log.Printf("Checking for external API server at %s...", externalURL)

	baseURL := externalURL
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
	} else {
		if resp != nil {
			resp.Body.Close()
		}
		log.Printf("No external API server found, starting internal HTTP server")

		// Start internal HTTP server on a random available port
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{
			Handler: api.NewServer(gameService, hub),
		}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	if baseURL == externalURL {
		log.Println("MCP stdio server ready (using external HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
