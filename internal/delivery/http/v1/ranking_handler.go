package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-talent-sift-backend/internal/delivery/http/response"
	"go-talent-sift-backend/internal/domain"
)

type RankingHandler struct {
	rankingUC     domain.RankingUsecase
	experienceMax float64
}

func NewRankingHandler(rg *gin.RouterGroup, rankingUC domain.RankingUsecase, experienceMax float64) {
	handler := &RankingHandler{
		rankingUC:     rankingUC,
		experienceMax: experienceMax,
	}

	rankings := rg.Group("/rankings")
	{
		rankings.GET("", handler.List)
		rankings.GET("/case/:org_id", handler.FetchCase)
	}
}

// List godoc
// @Summary      Filtered view of the cached candidate rankings
// @Description  Recomputes the projection for the given filter state; output preserves ranking order
// @Tags         rankings
// @Produce      json
// @Param        q          query     string  false  "Free-text search (name, email, justification)"
// @Param        skill      query     string  false  "Skill substring filter"
// @Param        score_min  query     number  false  "Score range low (default 1)"
// @Param        score_max  query     number  false  "Score range high (default 10)"
// @Param        exp_min    query     number  false  "Experience range low (default 0)"
// @Param        exp_max    query     number  false  "Experience range high (default configured max)"
// @Param        has_email  query     bool    false  "Require a real email"
// @Param        has_phone  query     bool    false  "Require a real phone"
// @Success      200  {object}  response.Response
// @Router       /rankings [get]
func (h *RankingHandler) List(c *gin.Context) {
	filter := domain.FilterState{
		SearchQuery:   c.Query("q"),
		SkillQuery:    c.Query("skill"),
		ScoreMin:      queryFloat(c, "score_min", 1),
		ScoreMax:      queryFloat(c, "score_max", 10),
		ExperienceMin: queryFloat(c, "exp_min", 0),
		ExperienceMax: queryFloat(c, "exp_max", h.experienceMax),
		FilterEmail:   queryBool(c, "has_email"),
		FilterPhone:   queryBool(c, "has_phone"),
	}

	view, err := h.rankingUC.Project(c, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Ranking list", view)
}

// FetchCase godoc
// @Summary      Retrieve rankings of an existing case by its id
// @Tags         rankings
// @Produce      json
// @Param        org_id  path      string  true  "Case ID assigned by the ranking service"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      502     {object}  response.Response
// @Router       /rankings/case/{org_id} [get]
func (h *RankingHandler) FetchCase(c *gin.Context) {
	view, err := h.rankingUC.FetchCase(c, c.Param("org_id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Case rankings", view)
}

func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	if raw := c.Query(key); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			return value
		}
	}
	return fallback
}

func queryBool(c *gin.Context, key string) bool {
	value, _ := strconv.ParseBool(c.Query(key))
	return value
}
