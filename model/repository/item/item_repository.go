package item

import (
	"gorm.io/gorm"

	entity "libas.GO/model/entity"
)

// ItemRepository owns the items cache table. All access to the cached
// snapshot goes through ReplaceAll / UpsertImage / All; nothing else writes
// the table.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const insertBatchSize = 200

// ReplaceAll atomically swaps the cache contents for items. The new rows are
// written to a staging table first and promoted with a drop/rename inside one
// transaction, so concurrent readers see either the old table or the new one
// and a failed write leaves the old contents untouched.
//
// Replace policy: column-scoped for image_url. Enrichment URLs attached to
// codes that the source still returns are carried over into the new table;
// codes the extraction no longer returns lose their enrichment.
func (r *ItemRepository) ReplaceAll(items []entity.Item) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var prior []entity.Item
		if err := tx.Select("item_code", "image_url").
			Where("item_code <> '' AND image_url <> ''").
			Find(&prior).Error; err != nil {
			return err
		}
		if len(prior) > 0 {
			urls := make(map[string]string, len(prior))
			for _, p := range prior {
				urls[p.ItemCode] = p.ImageURL
			}
			for i := range items {
				if items[i].ImageURL == "" && items[i].ItemCode != "" {
					items[i].ImageURL = urls[items[i].ItemCode]
				}
			}
		}

		if err := tx.Exec(`DROP TABLE IF EXISTS items_staging`).Error; err != nil {
			return err
		}
		if err := tx.Exec(`CREATE TABLE items_staging AS SELECT * FROM items WHERE 0`).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Table("items_staging").CreateInBatches(items, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec(`DROP TABLE items`).Error; err != nil {
			return err
		}
		if err := tx.Exec(`ALTER TABLE items_staging RENAME TO items`).Error; err != nil {
			return err
		}
		return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_items_code ON items (item_code)`).Error
	})
}

// UpsertImage sets the image URL for code, inserting a stub row when the code
// is not cached yet. item_code is the uniqueness key; the update-then-insert
// runs in one transaction so a code never ends up duplicated.
func (r *ItemRepository) UpsertImage(code, url string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Item{}).
			Where("item_code = ?", code).
			Update("image_url", url)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Create(&entity.Item{ItemCode: code, ImageURL: url}).Error
		}
		return nil
	})
}

// All returns the full cache in storage order. An empty cache yields an empty
// slice, not an error.
func (r *ItemRepository) All() ([]entity.Item, error) {
	items := make([]entity.Item, 0)
	err := r.db.Find(&items).Error
	return items, err
}

// Count returns the number of cached items.
func (r *ItemRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.Item{}).Count(&n).Error
	return n, err
}
