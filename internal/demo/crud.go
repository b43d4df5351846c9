package demo

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rotierp/pkg/pagination"
	"rotierp/pkg/response"
)

// listOptions configures the shared list handler for one resource
type listOptions struct {
	search  []string // columns matched with LIKE against ?search
	status  string   // column compared for equality against ?status
	dated   string   // column bounded by ?from and ?to
	preload []string
	order   string // defaults to created_at DESC

	// pathColumn, when set, is matched against the :pathParam route parameter
	// (nested resources such as a hotel's bookings)
	pathColumn string
	pathParam  string
}

// listHandler serves a filtered, paginated collection in the flat
// {data, pagination} shape. Every list endpoint goes through here so the
// query-parameter contract stays uniform.
func listHandler[T any](db *gorm.DB, opts listOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := pagination.Parse(c)
		tx := db.WithContext(c.Request.Context()).Model(new(T))

		if opts.pathColumn != "" {
			tx = tx.Where(opts.pathColumn+" = ?", c.Param(opts.pathParam))
		}
		if s := c.Query("search"); s != "" && len(opts.search) > 0 {
			like := "%" + s + "%"
			clauses := make([]string, len(opts.search))
			args := make([]interface{}, len(opts.search))
			for i, col := range opts.search {
				clauses[i] = col + " LIKE ?"
				args[i] = like
			}
			tx = tx.Where(strings.Join(clauses, " OR "), args...)
		}
		if st := c.Query("status"); st != "" && opts.status != "" {
			tx = tx.Where(opts.status+" = ?", st)
		}
		if opts.dated != "" {
			if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
				tx = tx.Where(opts.dated+" >= ?", from)
			}
			if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
				tx = tx.Where(opts.dated+" < ?", to)
			}
		}

		var total int64
		if err := tx.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to count records"))
			return
		}

		for _, pre := range opts.preload {
			tx = tx.Preload(pre)
		}
		order := opts.order
		if order == "" {
			order = "created_at DESC"
		}

		items := []T{}
		if err := tx.Order(order).Limit(p.Limit).Offset(p.Offset).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list records"))
			return
		}

		c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
			"data":       items,
			"pagination": pagination.NewPagination(p, total),
		}))
	}
}

// getHandler serves one record by its id path parameter
func getHandler[T any](db *gorm.DB, preload ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx := db.WithContext(c.Request.Context())
		for _, pre := range preload {
			tx = tx.Preload(pre)
		}
		var item T
		if err := tx.First(&item, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Record not found"))
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
	}
}

// deleteHandler removes one record by id
func deleteHandler[T any](db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item T
		if err := db.WithContext(c.Request.Context()).First(&item, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Record not found"))
			return
		}
		if err := db.WithContext(c.Request.Context()).Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to delete record"))
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
	}
}
