package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/catalog"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// productRepository 商品仓储实现(MySQL)
// 只做读取;Stock/SalesCount的写入统一走stockLedger。
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) catalog.Repository {
	return &productRepository{db: db}
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	var model ProductModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query product")
	}
	return toProductEntity(&model), nil
}

// FindVariantByID 根据ID查找变体
func (r *productRepository) FindVariantByID(ctx context.Context, variantID uint) (*catalog.Variant, error) {
	var model VariantModel
	err := getDB(ctx, r.db).First(&model, variantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrVariantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query variant")
	}
	return toVariantEntity(&model), nil
}

// FindVariant 按(商品,尺寸,颜色)查找变体
func (r *productRepository) FindVariant(ctx context.Context, productID uint, size, color string) (*catalog.Variant, error) {
	var model VariantModel
	err := getDB(ctx, r.db).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrVariantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query variant")
	}
	return toVariantEntity(&model), nil
}

// ListVariants 列出商品的全部变体
func (r *productRepository) ListVariants(ctx context.Context, productID uint) ([]*catalog.Variant, error) {
	var models []VariantModel
	err := getDB(ctx, r.db).Where("product_id = ?", productID).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query variants")
	}

	variants := make([]*catalog.Variant, len(models))
	for i := range models {
		variants[i] = toVariantEntity(&models[i])
	}
	return variants, nil
}

func toProductEntity(model *ProductModel) *catalog.Product {
	return &catalog.Product{
		ID:          model.ID,
		Title:       model.Title,
		Brand:       model.Brand,
		Description: model.Description,
		Price:       model.Price,
		Currency:    model.Currency,
		Stock:       model.Stock,
		HasVariants: model.HasVariants,
		SalesCount:  model.SalesCount,
		CategoryID:  model.CategoryID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toVariantEntity(model *VariantModel) *catalog.Variant {
	return &catalog.Variant{
		ID:        model.ID,
		ProductID: model.ProductID,
		Size:      model.Size,
		Color:     model.Color,
		ColorCode: model.ColorCode,
		Price:     model.Price,
		Stock:     model.Stock,
		SKU:       model.SKU,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
