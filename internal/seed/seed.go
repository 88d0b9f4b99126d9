package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/shinglesoft/roofline/internal/catalog/domain"
	"gorm.io/gorm"
)

// EnsureDefaultCatalog installs the stock rule catalog on an empty database.
// A catalog the tenant has already touched is left alone.
func EnsureDefaultCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.PricingRule{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		rules := catalogdomain.DefaultRules()
		for i := range rules {
			rules[i].ID = node.Generate()
			rules[i].CreatedAt = now
			rules[i].UpdatedAt = now
		}
		return tx.Create(&rules).Error
	})
}
