package solve

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/gridpath/internal/catalog"
	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/layout"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/storage"
)

// Request bounds. Generated layouts default to DefaultWidth x DefaultHeight;
// no side of any layout may exceed MaxSide.
const (
	DefaultWidth  = 32
	DefaultHeight = 16
	MaxSide       = 1000

	// MaxBodyBytes fits a MaxSide x MaxSide layout as JSON rows.
	MaxBodyBytes = 4 << 20
)

var errBadRequest = errors.New("bad request")

// Controller runs searches and lists recorded runs.
type Controller struct {
	catalog *catalog.Catalog
	logger  *log.Logger
}

// NewController creates a controller. Runs are recorded when the catalog
// has a store.
func NewController(cat *catalog.Catalog, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{catalog: cat, logger: logger}
}

// Register registers the solve and run routes.
func (c *Controller) Register(route *gin.RouterGroup) {
	route.POST("/solve", c.solve)
	route.GET("/runs", c.runs)
}

// solve handles a search request.
func (c *Controller) solve(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, MaxBodyBytes)

	var request Request
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, layoutID, err := c.grid(request)
	switch {
	case errors.Is(err, catalog.ErrUnknownLayout):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spawn, hasSpawn := g.Spawn()
	target, hasTarget := g.Target()
	if !hasSpawn || !hasTarget {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("%v: layout needs both S and T", pathfind.ErrInvalidEndpoints),
		})
		return
	}

	search, err := pathfind.NewSearch(g, spawn, target)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	res, err := search.Run(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	response := NewResponse(res)
	response.LayoutID = layoutID
	response.Rows = layout.Encode(g)

	if store := c.catalog.Store; store != nil {
		run := storage.NewRun(layoutID, g.Width(), g.Height(), spawn, target, res)
		id, err := store.SaveRun(run)
		if err != nil {
			c.logger.Warn("could not record run", "error", err)
		} else {
			response.RunID = id
		}
	}

	c.logger.Debug("solved",
		"layout", layoutID,
		"outcome", res.Outcome,
		"expanded", res.Expanded,
		"cost", res.Cost,
	)
	ctx.JSON(http.StatusOK, response)
}

// grid builds the grid a request refers to.
func (c *Controller) grid(request Request) (*pathfind.Grid, string, error) {
	hasRows := len(request.Rows) > 0
	hasID := request.LayoutID != ""

	switch {
	case hasRows && hasID:
		return nil, "", fmt.Errorf("%w: set either rows or layout_id, not both", errBadRequest)
	case hasRows:
		if err := checkRows(request.Rows); err != nil {
			return nil, "", err
		}
		g, err := layout.Decode(request.Rows)
		return g, "", err
	case hasID:
		size, err := requestSize(request)
		if err != nil {
			return nil, "", err
		}
		seed := request.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		cfg := core.DefaultConfig()
		cfg.Seed = seed
		g, err := c.catalog.Grid(request.LayoutID, cfg, size)
		return g, request.LayoutID, err
	default:
		return nil, "", fmt.Errorf("%w: rows or layout_id is required", errBadRequest)
	}
}

// checkRows applies the generated-layout size cap to inline rows before
// any grid is allocated.
func checkRows(rows []string) error {
	if len(rows) > MaxSide {
		return fmt.Errorf("%w: %d rows, at most %d allowed", errBadRequest, len(rows), MaxSide)
	}
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n > MaxSide {
			return fmt.Errorf("%w: row %d has %d cells, at most %d allowed", errBadRequest, y, n, MaxSide)
		}
	}
	return nil
}

func requestSize(request Request) (core.Size, error) {
	size := core.Size{W: DefaultWidth, H: DefaultHeight}
	if request.Width != 0 {
		size.W = request.Width
	}
	if request.Height != 0 {
		size.H = request.Height
	}
	if size.W < 1 || size.H < 1 || size.W > MaxSide || size.H > MaxSide {
		return size, fmt.Errorf("%w: size %dx%d outside 1..%d", errBadRequest, size.W, size.H, MaxSide)
	}
	return size, nil
}

// runs lists recorded runs, newest first.
func (c *Controller) runs(ctx *gin.Context) {
	limit := 20
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid limit %q", raw)})
			return
		}
		limit = n
	}

	response := []RunResponse{}
	if store := c.catalog.Store; store != nil {
		runs, err := store.RecentRuns(ctx.Query("layout"), limit)
		if err != nil {
			_ = ctx.Error(err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, r := range runs {
			response = append(response, NewRunResponse(r))
		}
	}
	ctx.JSON(http.StatusOK, response)
}
