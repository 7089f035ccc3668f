package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// GORM v2 + 连接池配置;debug模式打印SQL;启动时AutoMigrate
// (生产环境应换用版本化迁移脚本)。
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("数据库连接成功")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&ProductModel{},
		&VariantModel{},
		&CartModel{},
		&CartItemModel{},
		&DiscountCodeModel{},
		&ShippingMethodModel{},
		&AddressModel{},
		&OrderModel{},
		&OrderItemModel{},
		&DisputeModel{},
	)
}

// UserModel GORM用户模型
// infrastructure层的数据模型带GORM tag,domain实体不带,
// Repository负责两者转换。
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null"`
	Password  string         `gorm:"size:255;not null;comment:bcrypt哈希"`
	Firstname string         `gorm:"size:50;not null"`
	Lastname  string         `gorm:"size:50;not null"`
	Phone     string         `gorm:"size:30"`
	Role      string         `gorm:"size:20;not null;default:customer"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}

// ProductModel GORM商品模型
// 价格为kobo(最小货币单位);有变体时stock是派生镜像,
// 只有库存账本在事务内同步更新它。
type ProductModel struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"index:idx_search;size:200;not null"`
	Brand       string `gorm:"index:idx_search;size:100"`
	Description string `gorm:"type:text"`
	Price       int64  `gorm:"not null;comment:基准价(kobo)"`
	Currency    string `gorm:"size:3;not null;default:NGN"`
	Stock       int    `gorm:"default:0"`
	HasVariants bool   `gorm:"default:false"`
	SalesCount  int    `gorm:"default:0"`
	CategoryID  uint   `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (ProductModel) TableName() string {
	return "products"
}

// VariantModel GORM变体模型
// (product_id, size, color)唯一;stock为该组合的权威库存。
type VariantModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"uniqueIndex:idx_variant;not null"`
	Size      string `gorm:"uniqueIndex:idx_variant;size:20;not null"`
	Color     string `gorm:"uniqueIndex:idx_variant;size:30;not null"`
	ColorCode string `gorm:"size:10"`
	Price     int64  `gorm:"default:0;comment:覆盖价,0沿用基准价"`
	Stock     int    `gorm:"default:0"`
	SKU       string `gorm:"uniqueIndex;size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (VariantModel) TableName() string {
	return "product_variants"
}

// CartModel GORM购物车模型,user_id唯一保证每用户一车
type CartModel struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel GORM购物车行项模型
// (cart_id, product_id, variant_id)唯一:重复加购走合并而不是新行。
type CartItemModel struct {
	ID        uint   `gorm:"primaryKey"`
	CartID    uint   `gorm:"uniqueIndex:idx_cart_line;not null"`
	ProductID uint   `gorm:"uniqueIndex:idx_cart_line;not null"`
	VariantID uint   `gorm:"uniqueIndex:idx_cart_line;default:0"`
	Size      string `gorm:"size:20"`
	Color     string `gorm:"size:30"`
	Quantity  int    `gorm:"not null"`
	Price     int64  `gorm:"not null;comment:加购时单价(kobo)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// DiscountCodeModel GORM折扣码模型,允许清单以JSON列存储
type DiscountCodeModel struct {
	ID            uint     `gorm:"primaryKey"`
	Code          string   `gorm:"uniqueIndex;size:50;not null;comment:统一大写"`
	Description   string   `gorm:"size:255"`
	Type          string   `gorm:"size:20;not null;comment:percentage|fixed"`
	Value         int64    `gorm:"not null"`
	MinOrderValue int64    `gorm:"default:0"`
	MaxDiscount   int64    `gorm:"default:0;comment:0不封顶"`
	ValidFrom     time.Time
	ValidUntil    time.Time
	IsActive      bool     `gorm:"index;default:true"`
	UsageLimit    int      `gorm:"default:0;comment:0不限"`
	UsageCount    int      `gorm:"default:0"`
	UserLimit     int      `gorm:"default:0"`
	CategoryIDs   []uint   `gorm:"serializer:json"`
	ProductIDs    []uint   `gorm:"serializer:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DiscountCodeModel) TableName() string {
	return "discount_codes"
}

// ShippingMethodModel GORM配送方式模型
type ShippingMethodModel struct {
	ID               uint     `gorm:"primaryKey"`
	Name             string   `gorm:"uniqueIndex;size:100;not null"`
	Description      string   `gorm:"size:255"`
	DeliveryTime     string   `gorm:"size:50"`
	DeliveryTimeDays int      `gorm:"default:0"`
	BaseCost         int64    `gorm:"not null"`
	CostPerKg        int64    `gorm:"default:0"`
	MinOrderValue    int64    `gorm:"default:0;comment:免运费门槛"`
	MaxWeight        float64  `gorm:"default:0;comment:kg,0不限"`
	IsActive         bool     `gorm:"index;default:true"`
	Countries        []string `gorm:"serializer:json"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ShippingMethodModel) TableName() string {
	return "shipping_methods"
}

// AddressModel GORM地址模型
type AddressModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index;not null"`
	Title      string `gorm:"size:50"`
	Firstname  string `gorm:"size:50;not null"`
	Lastname   string `gorm:"size:50;not null"`
	Email      string `gorm:"size:100"`
	Phone      string `gorm:"size:30"`
	Country    string `gorm:"size:50"`
	Region     string `gorm:"size:50"`
	City       string `gorm:"size:50"`
	Street     string `gorm:"size:200"`
	PostalCode string `gorm:"size:20"`
	IsDefault  bool   `gorm:"default:false"`
	Type       string `gorm:"size:20"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (AddressModel) TableName() string {
	return "addresses"
}

// OrderModel GORM订单模型
// order_number唯一索引是换号重试的依据;金额字段创建后不再变化。
type OrderModel struct {
	ID                 uint             `gorm:"primaryKey"`
	OrderNumber        string           `gorm:"uniqueIndex;size:32;not null"`
	UserID             uint             `gorm:"index;not null"`
	AddressID          uint             `gorm:"not null"`
	ContactEmail       string           `gorm:"size:100;comment:下单时快照"`
	ContactPhone       string           `gorm:"size:30"`
	ShippingMethodID   uint             `gorm:"default:0"`
	ShippingMethodName string           `gorm:"size:100"`
	ShippingCost       int64            `gorm:"default:0"`
	Subtotal           int64            `gorm:"not null"`
	DiscountCode       string           `gorm:"size:50"`
	DiscountAmount     int64            `gorm:"default:0"`
	Tax                int64            `gorm:"default:0"`
	Total              int64            `gorm:"not null"`
	Currency           string           `gorm:"size:3;not null;default:NGN"`
	Status             string           `gorm:"index;size:20;not null;default:pending"`
	PaymentStatus      string           `gorm:"index;size:20;not null;default:pending"`
	PaymentMethod      string           `gorm:"size:30"`
	PaymentReference   string           `gorm:"size:100"`
	Notes              string           `gorm:"size:500"`
	EstimatedDelivery  *time.Time
	DisputeID          uint             `gorm:"default:0"`
	PickupReady        bool             `gorm:"default:false"`
	PickupReadyAt      *time.Time
	Items              []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt          time.Time        `gorm:"index"`
	UpdatedAt          time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型,下单时刻的不可变快照
type OrderItemModel struct {
	ID           uint   `gorm:"primaryKey"`
	OrderID      uint   `gorm:"index;not null"`
	ProductID    uint   `gorm:"index;not null"`
	VariantID    uint   `gorm:"default:0"`
	ProductTitle string `gorm:"size:200;not null"`
	ProductBrand string `gorm:"size:100"`
	Size         string `gorm:"size:20"`
	Color        string `gorm:"size:30"`
	Quantity     int    `gorm:"not null"`
	Price        int64  `gorm:"not null;comment:下单时单价(kobo)"`
	Subtotal     int64  `gorm:"not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// DisputeModel GORM纠纷模型
type DisputeModel struct {
	ID            uint     `gorm:"primaryKey"`
	OrderID       uint     `gorm:"index;not null"`
	OrderItemID   uint     `gorm:"default:0;comment:0针对整单"`
	UserID        uint     `gorm:"index;not null"`
	Reasons       []string `gorm:"serializer:json"`
	Explanation   string   `gorm:"type:text"`
	Status        string   `gorm:"index;size:20;not null;default:pending"`
	AdminResponse string   `gorm:"type:text"`
	RefundAmount  int64    `gorm:"default:0"`
	ResolvedAt    *time.Time
	ResolvedBy    uint     `gorm:"default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DisputeModel) TableName() string {
	return "disputes"
}
