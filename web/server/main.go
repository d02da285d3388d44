package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/sirll0i/Vor-Indicator/vor"
)

type WebServer struct {
	simulator  *vor.Simulator
	lastConfig vor.Config
	upgrader   websocket.Upgrader
	clients    map[*websocket.Conn]bool
	broadcast  chan vor.Report
}

func NewWebServer() *WebServer {
	return &WebServer{
		lastConfig: vor.DefaultConfig(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan vor.Report),
	}
}

func (ws *WebServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Register client
	ws.clients[conn] = true
	log.Printf("Client connected. Total clients: %d", len(ws.clients))

	// Send current status immediately
	if ws.simulator != nil {
		status := ws.simulator.GetStatus()
		if err := conn.WriteJSON(map[string]interface{}{
			"type": "status",
			"data": status,
		}); err != nil {
			log.Printf("Error sending status: %v", err)
		}
	}

	// Listen for messages from client
	for {
		var msg map[string]interface{}
		err := conn.ReadJSON(&msg)
		if err != nil {
			log.Printf("WebSocket read error: %v", err)
			break
		}

		// Handle client messages (could be used for command input)
		log.Printf("Received message: %v", msg)
	}

	// Unregister client
	delete(ws.clients, conn)
	log.Printf("Client disconnected. Total clients: %d", len(ws.clients))
}

func (ws *WebServer) broadcastToClients() {
	for {
		report := <-ws.broadcast

		message := map[string]interface{}{
			"type": "report",
			"data": report,
		}

		// Send to all connected clients
		for client := range ws.clients {
			err := client.WriteJSON(message)
			if err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(ws.clients, client)
			}
		}
	}
}

func (ws *WebServer) handleStartSimulator(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse JSON config from request
	var jsonConfig map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&jsonConfig); err != nil {
		log.Printf("JSON decode error: %v", err)
		// Use stored config if no valid config provided
		jsonConfig = make(map[string]interface{})
	}

	// Convert JSON config to vor.Config with proper types
	config := ws.parseConfig(jsonConfig)

	// If no specific config was provided, use the last stored config
	if len(jsonConfig) == 0 {
		config = ws.lastConfig
	}

	// Store this config as the last used config
	ws.lastConfig = config

	log.Printf("Starting simulator with config: %+v", config)

	// Stop existing simulator if running
	if ws.simulator != nil {
		if ws.simulator.IsRunning() {
			log.Printf("Stopping existing simulator before starting new one")
			ws.simulator.Stop()
		}
		ws.simulator = nil
	}

	// Create new simulator
	simulator, err := vor.NewSimulator(config)
	if err != nil {
		log.Printf("Failed to create simulator: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create simulator: %v", err), http.StatusBadRequest)
		return
	}

	// Add callback to broadcast per-tick reports
	simulator.AddCallback(func(report vor.Report) {
		select {
		case ws.broadcast <- report:
		default:
			// Channel full, skip this update
		}
	})

	// Start simulator
	if err := simulator.Start(); err != nil {
		log.Printf("Failed to start simulator: %v", err)
		http.Error(w, fmt.Sprintf("Failed to start simulator: %v", err), http.StatusInternalServerError)
		return
	}

	ws.simulator = simulator
	log.Printf("Simulator started successfully")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "started", "session_id": simulator.SessionID()})
}

func (ws *WebServer) handleStopSimulator(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("Stop request received")

	if ws.simulator != nil {
		if ws.simulator.IsRunning() {
			log.Printf("Stopping running simulator")
			if err := ws.simulator.Stop(); err != nil {
				log.Printf("Failed to stop simulator: %v", err)
				http.Error(w, fmt.Sprintf("Failed to stop simulator: %v", err), http.StatusInternalServerError)
				return
			}
		}
		// Clear the simulator reference to allow fresh start
		ws.simulator = nil
		log.Printf("Simulator stopped and cleared")
	} else {
		log.Printf("No simulator to stop")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "stopped"})
}

func (ws *WebServer) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var status interface{}
	if ws.simulator != nil {
		status = ws.simulator.GetStatus()
	} else {
		status = map[string]interface{}{
			"running": false,
			"message": "No simulator instance",
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// handleRotateOBS rotates the OBS setting by the posted delta in degrees.
func (ws *WebServer) handleRotateOBS(w http.ResponseWriter, r *http.Request) {
	if ws.simulator == nil {
		http.Error(w, "No simulator instance", http.StatusConflict)
		return
	}

	var body struct {
		Delta float64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	ws.simulator.RotateOBS(body.Delta)
	log.Printf("OBS rotated by %.1f degrees", body.Delta)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"obs":    ws.simulator.GetStatus().Snapshot.OBS,
	})
}

// handleSelectStation switches the active station by posted index. An
// out-of-range index is rejected and the selection is unchanged.
func (ws *WebServer) handleSelectStation(w http.ResponseWriter, r *http.Request) {
	if ws.simulator == nil {
		http.Error(w, "No simulator instance", http.StatusConflict)
		return
	}

	var body struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	if err := ws.simulator.SelectStation(body.Index); err != nil {
		log.Printf("Station select failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("Active station switched to index %d", body.Index)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"station": ws.simulator.GetStatus().Snapshot.ActiveStation,
	})
}

// handleReset returns the aircraft and OBS to the session defaults.
func (ws *WebServer) handleReset(w http.ResponseWriter, r *http.Request) {
	if ws.simulator == nil {
		http.Error(w, "No simulator instance", http.StatusConflict)
		return
	}

	ws.simulator.ResetNav()
	log.Printf("Navigation state reset")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "reset"})
}

func (ws *WebServer) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse JSON config from request
	var jsonConfig map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&jsonConfig); err != nil {
		log.Printf("JSON decode error: %v", err)
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	// Convert JSON config to vor.Config with proper types
	config := ws.parseConfig(jsonConfig)

	log.Printf("Updating config: %+v", config)

	// Store the configuration for future use
	ws.lastConfig = config

	// If simulator is running, update its configuration
	if ws.simulator != nil && ws.simulator.IsRunning() {
		if err := ws.simulator.UpdateConfig(config); err != nil {
			log.Printf("Failed to update config: %v", err)
			http.Error(w, fmt.Sprintf("Failed to update config: %v", err), http.StatusBadRequest)
			return
		}
		log.Printf("Configuration updated for running simulator")
	} else {
		// If no simulator is running, just store the config for next start
		log.Printf("Configuration stored - will be used when simulator starts")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "updated"})
}

// parseConfig converts JSON map to vor.Config with proper type conversion
func (ws *WebServer) parseConfig(jsonConfig map[string]interface{}) vor.Config {
	config := vor.DefaultConfig()

	// Helper function to safely convert interface{} to float64
	getFloat := func(key string, defaultValue float64) float64 {
		if val, ok := jsonConfig[key]; ok {
			if f, ok := val.(float64); ok {
				return f
			}
		}
		return defaultValue
	}

	// Helper function to safely convert interface{} to bool
	getBool := func(key string, defaultValue bool) bool {
		if val, ok := jsonConfig[key]; ok {
			if b, ok := val.(bool); ok {
				return b
			}
		}
		return defaultValue
	}

	// Helper function to safely convert interface{} to time.Duration
	getDuration := func(key string, defaultValue time.Duration) time.Duration {
		if val, ok := jsonConfig[key]; ok {
			if s, ok := val.(string); ok {
				if d, err := time.ParseDuration(s); err == nil {
					return d
				}
			}
		}
		return defaultValue
	}

	// Parse all config fields
	config.StartX = getFloat("start_x", config.StartX)
	config.StartY = getFloat("start_y", config.StartY)
	config.OBS = getFloat("obs", config.OBS)
	config.Speed = getFloat("speed", config.Speed)
	config.Course = getFloat("course", config.Course)
	config.Turbulence = getFloat("turbulence", config.Turbulence)
	config.TickRate = getDuration("tick_rate", config.TickRate)
	config.Quiet = getBool("quiet", config.Quiet)
	config.TrackEnabled = getBool("track_enabled", config.TrackEnabled)
	config.Duration = getDuration("duration", config.Duration)
	config.ReplaySpeed = getFloat("replay_speed", config.ReplaySpeed)
	config.ReplayLoop = getBool("replay_loop", config.ReplayLoop)
	config.Stations = ws.parseStations(jsonConfig, config.Stations)

	return config
}

// parseStations converts a JSON stations list ([{id, x, y}, ...]) to the
// station registry, falling back to the default when absent or malformed.
func (ws *WebServer) parseStations(jsonConfig map[string]interface{}, defaultValue []vor.Station) []vor.Station {
	raw, ok := jsonConfig["stations"].([]interface{})
	if !ok || len(raw) == 0 {
		return defaultValue
	}

	var stations []vor.Station
	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return defaultValue
		}
		id, ok := entry["id"].(string)
		if !ok {
			return defaultValue
		}
		x, ok := entry["x"].(float64)
		if !ok {
			return defaultValue
		}
		y, ok := entry["y"].(float64)
		if !ok {
			return defaultValue
		}
		stations = append(stations, vor.Station{ID: id, Position: vor.Point{X: x, Y: y}})
	}
	return stations
}

func main() {
	webServer := NewWebServer()

	// Start the broadcast goroutine
	go webServer.broadcastToClients()

	// Create router
	r := mux.NewRouter()

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/start", webServer.handleStartSimulator).Methods("POST")
	api.HandleFunc("/stop", webServer.handleStopSimulator).Methods("POST")
	api.HandleFunc("/status", webServer.handleGetStatus).Methods("GET")
	api.HandleFunc("/config", webServer.handleUpdateConfig).Methods("POST")
	api.HandleFunc("/obs", webServer.handleRotateOBS).Methods("POST")
	api.HandleFunc("/station", webServer.handleSelectStation).Methods("POST")
	api.HandleFunc("/reset", webServer.handleReset).Methods("POST")
	api.HandleFunc("/ws", webServer.handleWebSocket)

	// Handle favicon.ico requests
	r.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	port := 8080
	if env := os.Getenv("VOR_WEB_PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil {
			port = p
		}
	}

	log.Printf("Starting VOR Simulator Web Server on port %d", port)
	log.Printf("Open http://localhost:%d in your browser", port)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Fatal(server.ListenAndServe())
}
