package entity

// Item is one row of the local item cache. JSON field names keep the wire
// format the Busy extraction produces (and the PWA front end consumes).
type Item struct {
	ItemCode     string  `gorm:"column:item_code" json:"ItemCode" mapstructure:"ItemCode"`
	ItemName     string  `gorm:"column:item_name" json:"ItemName" mapstructure:"ItemName"`
	ItemAlias    string  `gorm:"column:item_alias" json:"ItemAlias" mapstructure:"ItemAlias"`
	GroupName    string  `gorm:"column:group_name" json:"GroupName" mapstructure:"GroupName"`
	MRP          float64 `gorm:"column:mrp" json:"Item_MRP" mapstructure:"Item_MRP"`
	SalePrice    float64 `gorm:"column:sale_price" json:"Item_Sale_Price" mapstructure:"Item_Sale_Price"`
	SelfValPrice float64 `gorm:"column:self_val_price" json:"Item_SelfVal_Price" mapstructure:"Item_SelfVal_Price"`
	Stock        float64 `gorm:"column:stock" json:"Stock" mapstructure:"Stock"`
	ImageURL     string  `gorm:"column:image_url" json:"ImageURL,omitempty" mapstructure:"ImageURL"`
}

func (Item) TableName() string {
	return "items"
}
