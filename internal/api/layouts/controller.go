// Package layouts provides the HTTP endpoints that list and describe layouts.
package layouts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/gridpath/internal/catalog"
	"github.com/vovakirdan/gridpath/internal/registry"
	"github.com/vovakirdan/gridpath/internal/storage"
)

// Entry is a layout summary on the wire.
type Entry struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// Detail describes one layout. Generated layouts have no fixed rows.
type Detail struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Generated   bool              `json:"generated"`
	Width       int               `json:"width,omitempty"`
	Height      int               `json:"height,omitempty"`
	Rows        []string          `json:"rows,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	BestCost    *float64          `json:"best_cost,omitempty"`
}

// Controller serves layout listings.
type Controller struct {
	catalog *catalog.Catalog
}

// NewController creates a controller.
func NewController(cat *catalog.Catalog) *Controller {
	return &Controller{catalog: cat}
}

// Register registers the layout routes.
func (c *Controller) Register(route *gin.RouterGroup) {
	layouts := route.Group("/layouts")
	{
		layouts.GET("", c.list)
		layouts.GET("/:id", c.detail)
	}
}

func (c *Controller) list(ctx *gin.Context) {
	entries := c.catalog.List()
	response := make([]Entry, 0, len(entries))
	for _, e := range entries {
		response = append(response, Entry{ID: e.ID, Title: e.Title, Source: string(e.Source)})
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *Controller) detail(ctx *gin.Context) {
	id := ctx.Param("id")

	lay, err := c.catalog.Layout(id)
	switch {
	case errors.Is(err, catalog.ErrUnknownLayout) && registry.Exists(id):
		info, _ := registry.Get(id)
		ctx.JSON(http.StatusOK, Detail{ID: id, Name: info.Title(), Generated: true})
		return
	case errors.Is(err, catalog.ErrUnknownLayout):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	w, h := lay.Size()
	detail := Detail{
		ID:          lay.ID,
		Name:        lay.Title(),
		Description: lay.Description,
		Width:       w,
		Height:      h,
		Rows:        lay.Rows,
		Metadata:    lay.Metadata,
	}
	if c.catalog.Store != nil {
		if best, err := c.catalog.Store.BestRun(id); err == nil {
			detail.BestCost = &best.Cost
		} else if !errors.Is(err, storage.ErrNotFound) {
			_ = ctx.Error(err)
		}
	}
	ctx.JSON(http.StatusOK, detail)
}
