package controllers

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/amaumene/mediacatalog/internal/catalog"
	"github.com/amaumene/mediacatalog/internal/models"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const suggestionLimit = 3

// CatalogController validates user input, performs mutations and answers list queries
type CatalogController struct {
	db     *models.Database
	cache  *cache.Cache
	logger *logrus.Logger
}

// NewCatalogController creates a new catalog controller.
// List results are cached for cacheTTL; zero disables caching.
func NewCatalogController(db *models.Database, cacheTTL time.Duration, logger *logrus.Logger) *CatalogController {
	var c *cache.Cache
	if cacheTTL > 0 {
		c = cache.New(cacheTTL, 2*cacheTTL)
	}
	return &CatalogController{
		db:     db,
		cache:  c,
		logger: logger,
	}
}

// Create validates fields and stores a new item
func (c *CatalogController) Create(fields models.MediaFields) (*models.MediaItem, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	c.warnOnSimilarTitle(fields.Title)

	item, err := c.db.CreateMedia(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create media: %w", err)
	}
	c.invalidate()

	c.logger.WithFields(logrus.Fields{
		"media_id": item.ID,
		"title":    item.Title,
		"category": item.Category,
	}).Info("Media added")
	return item, nil
}

// Update validates fields and replaces the writable fields of item id
func (c *CatalogController) Update(id int64, fields models.MediaFields) (*models.MediaItem, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	item, err := c.db.UpdateMedia(id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update media %d: %w", id, err)
	}
	c.invalidate()

	c.logger.WithFields(logrus.Fields{
		"media_id": item.ID,
		"title":    item.Title,
	}).Info("Media updated")
	return item, nil
}

// Delete permanently removes item id
func (c *CatalogController) Delete(id int64) error {
	if err := c.db.DeleteMedia(id); err != nil {
		return fmt.Errorf("failed to delete media %d: %w", id, err)
	}
	c.invalidate()

	c.logger.WithField("media_id", id).Info("Media deleted")
	return nil
}

// ToggleFinished marks an unfinished item as finished, and a finished one as planned
func (c *CatalogController) ToggleFinished(id int64) (*models.MediaItem, error) {
	item, err := c.db.GetMediaByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get media %d: %w", id, err)
	}

	fields := item.Fields()
	if item.IsFinished() {
		fields.Status = models.StatusPlanned
	} else {
		fields.Status = models.StatusFinished
	}
	return c.Update(id, fields)
}

// SetRating changes only the rating of item id; nil clears it.
// Setting the current rating again leaves the item untouched.
func (c *CatalogController) SetRating(id int64, rating *int) (*models.MediaItem, error) {
	item, err := c.db.GetMediaByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get media %d: %w", id, err)
	}

	if models.SameRating(item.Rating, rating) {
		return item, nil
	}

	fields := item.Fields()
	fields.Rating = rating
	return c.Update(id, fields)
}

// Get returns a single item
func (c *CatalogController) Get(id int64) (*models.MediaItem, error) {
	item, err := c.db.GetMediaByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get media %d: %w", id, err)
	}
	return item, nil
}

// List returns the items matching q together with statistics over them
func (c *CatalogController) List(q catalog.Query) (*catalog.Result, error) {
	key := q.Key()
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			c.logger.WithField("query", key).Debug("List served from cache")
			return cloneResult(cached.(*catalog.Result)), nil
		}
	}

	items, err := c.db.GetAllMedias()
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}

	result := catalog.Run(items, q)
	if c.cache != nil {
		c.cache.SetDefault(key, cloneResult(result))
	}

	c.logger.WithFields(logrus.Fields{
		"query":   key,
		"total":   len(items),
		"matched": len(result.Items),
	}).Debug("List computed")
	return result, nil
}

// Suggest returns titles close to text, for "did you mean" hints
func (c *CatalogController) Suggest(text string) ([]catalog.Suggestion, error) {
	items, err := c.db.GetAllMedias()
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return catalog.Suggest(items, text, suggestionLimit), nil
}

// warnOnSimilarTitle logs possible duplicates; it never blocks the insert
func (c *CatalogController) warnOnSimilarTitle(title string) {
	similar, err := c.Suggest(title)
	if err != nil {
		c.logger.WithError(err).Debug("Duplicate check skipped")
		return
	}
	for _, s := range similar {
		c.logger.WithFields(logrus.Fields{
			"title":    title,
			"existing": s.Title,
			"media_id": s.ID,
			"distance": s.Distance,
		}).Warn("Possible duplicate title")
	}
}

// cloneResult copies the item slice and category map so callers cannot alter cached entries
func cloneResult(r *catalog.Result) *catalog.Result {
	out := *r
	out.Items = slices.Clone(r.Items)
	out.Stats.ByCategory = maps.Clone(r.Stats.ByCategory)
	return &out
}

func (c *CatalogController) invalidate() {
	if c.cache != nil {
		c.cache.Flush()
	}
}
