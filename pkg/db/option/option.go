package option

import "gorm.io/gorm"

// QueryOption customizes a gorm statement before execution.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type orderBy struct {
	clause string
}

func (o orderBy) Apply(db *gorm.DB) *gorm.DB { return db.Order(o.clause) }

// WithOrder appends an ORDER BY clause, e.g. "created_at DESC".
func WithOrder(clause string) QueryOption { return orderBy{clause: clause} }

type limit struct {
	n int
}

func (l limit) Apply(db *gorm.DB) *gorm.DB { return db.Limit(l.n) }

// WithLimit caps the number of returned rows.
func WithLimit(n int) QueryOption { return limit{n: n} }
