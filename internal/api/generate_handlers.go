package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"coldreach/internal/config"
	"coldreach/internal/db"
	"coldreach/internal/deliver"
	"coldreach/internal/email"
	"coldreach/internal/history"
	"coldreach/internal/llm"
	"coldreach/internal/prompt"
	"coldreach/internal/prospect"
	"coldreach/internal/research"
)

type GenerateRequest struct {
	Prospect   prospect.Prospect `json:"prospect"`
	Sender     email.Sender      `json:"sender"`
	Style      email.Style       `json:"style"`
	Provider   string            `json:"provider"`
	NoResearch bool              `json:"no_research"`
	Save       bool              `json:"save"`
	Send       bool              `json:"send"`
}

// ResearchProspect is exported for testing
var ResearchProspect = func(ctx context.Context, r *research.Researcher, url string) (*research.Result, error) {
	return r.Research(ctx, url)
}

// CompletePrompt is exported for testing
var CompletePrompt = func(ctx context.Context, p llm.Provider, promptText string) (string, error) {
	return p.Complete(ctx, promptText)
}

func GenerateHandler(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	researcher := research.NewResearcher(cfg, research.NewCache(rdb))
	return func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if err := req.Prospect.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
			return
		}
		req.Sender.Normalize()
		if err := req.Sender.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
			return
		}
		req.Style.Normalize()
		if err := req.Style.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
			return
		}

		provider, err := llm.Select(cfg, req.Provider)
		if err != nil {
			if errors.Is(err, llm.ErrNoProvider) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": err.Error()}})
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
			}
			return
		}

		// Research is best-effort: a dead website still gets an email
		var res *research.Result
		var researchErr string
		if req.Prospect.Website != "" && !req.NoResearch {
			r, err := ResearchProspect(c.Request.Context(), researcher, req.Prospect.Website)
			if err != nil {
				researchErr = err.Error()
			} else {
				res = r
				research.Enrich(&req.Prospect, res)
			}
		}

		promptText, err := prompt.Build(&req.Prospect, &req.Sender, &req.Style)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": err.Error()}})
			return
		}

		raw, err := CompletePrompt(c.Request.Context(), provider, promptText)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": gin.H{"message": err.Error()}})
			return
		}
		parsed, err := email.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": gin.H{"message": err.Error()}})
			return
		}

		resp := gin.H{
			"prospect": req.Prospect,
			"email":    parsed,
			"provider": provider.Name(),
		}
		if res != nil {
			resp["research"] = res
		}
		if researchErr != "" {
			resp["research_error"] = researchErr
		}

		// Side effects after generation report their own failures instead
		// of discarding a perfectly good email
		if req.Save {
			if db.DB == nil {
				resp["save_error"] = "history is not configured"
			} else if rec, err := history.NewStore(db.DB).Save(&req.Prospect, parsed, provider.Name(), res); err != nil {
				resp["save_error"] = err.Error()
			} else {
				resp["saved_id"] = rec.ID
			}
		}
		if req.Send {
			mailer, err := deliver.NewMailer(cfg)
			if err != nil {
				resp["send_error"] = err.Error()
			} else if err := mailer.Send(&req.Prospect, parsed); err != nil {
				resp["send_error"] = err.Error()
			} else {
				resp["sent"] = true
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}
