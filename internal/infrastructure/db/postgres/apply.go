package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"tours-api/internal/application/query"
)

// ApplyOptions translates a parsed query specification onto a gorm query.
// Column names inside Options come from the allow-lists below, so they are
// safe to interpolate.
func ApplyOptions(tx *gorm.DB, opts query.Options) *gorm.DB {
	for _, f := range opts.Filters {
		tx = tx.Where(fmt.Sprintf("%s %s ?", f.Column, f.Op), f.Value)
	}
	for _, s := range opts.Sort {
		direction := "ASC"
		if s.Desc {
			direction = "DESC"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", s.Column, direction))
	}
	if len(opts.Fields) > 0 {
		tx = tx.Select(opts.Fields)
	}
	if opts.Limit > 0 {
		tx = tx.Offset(opts.Offset()).Limit(opts.Limit)
	}
	return tx
}

var tourColumns = map[string]string{
	"name":            "name",
	"duration":        "duration",
	"maxGroupSize":    "max_group_size",
	"difficulty":      "difficulty",
	"ratingsAverage":  "ratings_average",
	"ratingsQuantity": "ratings_quantity",
	"price":           "price",
	"priceDiscount":   "price_discount",
	"summary":         "summary",
	"createdAt":       "created_at",
}

// TourQuerySchema is the tour collection's external-name-to-column
// allow-list; parameters outside it never reach the query.
var TourQuerySchema = query.Allowed{
	Filter: tourColumns,
	Sort:   tourColumns,
	Fields: tourColumns,
}

var userColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
}

var UserQuerySchema = query.Allowed{
	Filter: userColumns,
	Sort:   userColumns,
	Fields: userColumns,
}

var reviewColumns = map[string]string{
	"rating":    "rating",
	"createdAt": "created_at",
}

var ReviewQuerySchema = query.Allowed{
	Filter: reviewColumns,
	Sort:   reviewColumns,
	Fields: map[string]string{
		"review":    "review",
		"rating":    "rating",
		"createdAt": "created_at",
	},
}
