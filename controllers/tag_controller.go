package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/models"
	"github.com/askloop/askloop/utils"
)

// TagController serves the tag directory: the curated catalog merged with
// tags observed on questions, each carrying its usage count.
type TagController struct {
	db *gorm.DB
}

// NewTagController creates a new TagController instance.
func NewTagController(db *gorm.DB) *TagController {
	return &TagController{db: db}
}

// ListTags returns tags matching the optional search term, catalog entries
// first enriched with counts, then derived tags the catalog does not know.
func (t *TagController) ListTags(ctx *gin.Context) {
	search := strings.TrimSpace(ctx.Query("search"))
	limit := 50
	if raw := ctx.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}

	counts, err := t.usageCounts()
	if err != nil {
		utils.Internal(ctx, "failed to scan question tags", err)
		return
	}

	query := t.db.Order("name ASC")
	if search != "" {
		query = query.Where("name LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var catalog []models.Tag
	if err := query.Find(&catalog).Error; err != nil {
		utils.Internal(ctx, "failed to list tags", err)
		return
	}

	items := make([]gin.H, 0, len(catalog))
	seen := make(map[string]bool, len(catalog))
	for _, tag := range catalog {
		seen[tag.Name] = true
		items = append(items, gin.H{
			"id":          tag.ID,
			"name":        tag.Name,
			"description": tag.Description,
			"count":       counts[tag.Name],
		})
	}

	// Tags used on questions but never curated still show up
	derived := make([]string, 0)
	for name := range counts {
		if seen[name] {
			continue
		}
		if search != "" && !strings.Contains(name, strings.ToLower(search)) {
			continue
		}
		derived = append(derived, name)
	}
	sort.Strings(derived)
	for _, name := range derived {
		items = append(items, gin.H{
			"id":          name,
			"name":        name,
			"description": "",
			"count":       counts[name],
		})
	}

	if len(items) > limit {
		items = items[:limit]
	}
	ctx.JSON(http.StatusOK, gin.H{"tags": items})
}

// usageCounts tallies tag occurrences across all questions.
func (t *TagController) usageCounts() (map[string]int, error) {
	var questions []models.Question
	if err := t.db.Select("id", "tag_names").Find(&questions).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, question := range questions {
		for _, name := range question.Tags() {
			counts[name]++
		}
	}
	return counts, nil
}
