package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"coldreach/internal/auth"
	"coldreach/internal/config"
	"coldreach/internal/db"
	"coldreach/internal/email"
	"coldreach/internal/history"
	"coldreach/internal/llm"
	"coldreach/internal/prompt"
	"coldreach/internal/research"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocket connection wrapper with mutex for thread-safe writes
type safeWSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *safeWSConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *safeWSConn) ReadMessage() (int, []byte, error) {
	return s.conn.ReadMessage()
}

func (s *safeWSConn) Close() error {
	return s.conn.Close()
}

// WSGenerateHandler runs one generation per connection and streams stage
// events so a UI can show progress: research, generating, done.
func WSGenerateHandler(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	researcher := research.NewResearcher(cfg, research.NewCache(rdb))
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing JWT"})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")
		if _, err := auth.ParseJWT(cfg.Server.JWTSecret, token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid JWT"})
			return
		}

		rawConn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		conn := &safeWSConn{conn: rawConn}
		defer conn.Close()

		_, msg, err := conn.ReadMessage()
		if err != nil {
			conn.WriteJSON(map[string]string{"error": "invalid initial payload"})
			return
		}
		var req GenerateRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			conn.WriteJSON(map[string]string{"error": "invalid JSON"})
			return
		}
		if err := req.Prospect.Validate(); err != nil {
			conn.WriteJSON(map[string]string{"error": err.Error()})
			return
		}
		req.Sender.Normalize()
		if err := req.Sender.Validate(); err != nil {
			conn.WriteJSON(map[string]string{"error": err.Error()})
			return
		}
		req.Style.Normalize()
		if err := req.Style.Validate(); err != nil {
			conn.WriteJSON(map[string]string{"error": err.Error()})
			return
		}

		provider, err := llm.Select(cfg, req.Provider)
		if err != nil {
			conn.WriteJSON(map[string]string{"error": err.Error()})
			return
		}

		var res *research.Result
		if req.Prospect.Website != "" && !req.NoResearch {
			conn.WriteJSON(gin.H{"stage": "research", "url": req.Prospect.Website})
			r, err := ResearchProspect(c.Request.Context(), researcher, req.Prospect.Website)
			if err != nil {
				conn.WriteJSON(gin.H{"stage": "research_error", "error": err.Error()})
			} else {
				res = r
				research.Enrich(&req.Prospect, res)
				conn.WriteJSON(gin.H{"stage": "research_done", "research": res})
			}
		}

		promptText, err := prompt.Build(&req.Prospect, &req.Sender, &req.Style)
		if err != nil {
			conn.WriteJSON(map[string]string{"error": err.Error()})
			return
		}

		conn.WriteJSON(gin.H{"stage": "generating", "provider": provider.Name()})
		raw, err := CompletePrompt(c.Request.Context(), provider, promptText)
		if err != nil {
			conn.WriteJSON(map[string]string{"error": err.Error()})
			return
		}
		parsed, err := email.Parse(raw)
		if err != nil {
			conn.WriteJSON(map[string]string{"error": err.Error()})
			return
		}

		done := gin.H{
			"stage":    "done",
			"prospect": req.Prospect,
			"email":    parsed,
			"provider": provider.Name(),
		}
		if req.Save {
			if db.DB == nil {
				done["save_error"] = "history is not configured"
			} else if rec, err := history.NewStore(db.DB).Save(&req.Prospect, parsed, provider.Name(), res); err != nil {
				done["save_error"] = err.Error()
			} else {
				done["saved_id"] = rec.ID
			}
		}
		conn.WriteJSON(done)
	}
}
