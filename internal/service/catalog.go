package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library

	"gameaccount_store/internal/domain"
	"gameaccount_store/internal/errs"
	"gameaccount_store/internal/utils"
)

// Catalog cache keys. Everything lives under one prefix so a single
// invalidation call covers all entries.
const (
	catalogCachePrefix = "catalog:"
	catalogCacheTTL    = 60 * time.Second
)

// CatalogService is CRUD over categories and game-account listings. Reads are
// public and cached; writes are admin-gated at the route level.
type CatalogService struct {
	db  *gorm.DB
	rdb *redis.Client // Optional read cache
}

// NewCatalogService creates a catalog service. rdb may be nil.
func NewCatalogService(db *gorm.DB, rdb *redis.Client) *CatalogService {
	return &CatalogService{db: db, rdb: rdb}
}

// GameAccountView is a listing joined with its category name and image URLs.
type GameAccountView struct {
	ID             uint       `json:"id"`                       // Listing ID
	CategoryID     uint       `json:"categoryId"`               // Owning category
	CategoryName   string     `json:"categoryName"`             // Category name
	Title          string     `json:"title"`                    // Listing title
	Description    string     `json:"description"`              // Free-form description
	GameType       string     `json:"gameType"`                 // Game the account belongs to
	Price          float64    `json:"price"`                    // Current asking price
	Status         string     `json:"status"`                   // Available or Sold
	Rank           string     `json:"rank,omitempty"`           // Optional in-game rank
	NumberOfSkins  *int       `json:"numberOfSkins,omitempty"`  // Optional skin count
	NumberOfChamps *int       `json:"numberOfChamps,omitempty"` // Optional champion count
	CreatedAt      time.Time  `json:"createdAt"`                // Timestamp of creation
	UpdatedAt      *time.Time `json:"updatedAt"`                // Timestamp of last update
	ImageURLs      []string   `json:"imageUrls"`                // Attached image URLs
}

// CreateGameAccountInput carries the admin-facing listing fields.
type CreateGameAccountInput struct {
	CategoryID     uint     // Owning category, must exist
	Title          string   // Listing title
	Description    string   // Free-form description
	GameType       string   // Game the account belongs to
	Price          float64  // Asking price
	Rank           string   // Optional in-game rank
	NumberOfSkins  *int     // Optional skin count
	NumberOfChamps *int     // Optional champion count
	ImageURLs      []string // Image URLs to attach
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cacheKey := catalogCachePrefix + "categories"
	if s.rdb != nil {
		var cached []domain.Category
		if found, err := utils.GetCache(ctx, s.rdb, cacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}
	var categories []domain.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, errs.Internal(err)
	}
	if s.rdb != nil {
		_ = utils.SetCache(ctx, s.rdb, cacheKey, categories, catalogCacheTTL)
	}
	return categories, nil
}

// GetCategory returns one category by ID.
func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Category not found.")
		}
		return nil, errs.Internal(err)
	}
	return &category, nil
}

// CreateCategory adds a category. Admin only.
func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	category := domain.Category{Name: name, Description: description}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, errs.Internal(err)
	}
	s.invalidate(ctx)
	return &category, nil
}

// UpdateCategory updates a category's metadata. Admin only.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, name, description string) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	category.Name = name
	category.Description = description
	category.UpdatedAt = &now
	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, errs.Internal(err)
	}
	s.invalidate(ctx)
	return category, nil
}

// DeleteCategory removes a category. Categories that still own listings are
// protected.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	var listings int64
	err = s.db.WithContext(ctx).Model(&domain.GameAccount{}).
		Where("category_id = ?", category.ID).
		Count(&listings).Error
	if err != nil {
		return errs.Internal(err)
	}
	if listings > 0 {
		return errs.InvalidState("Category has game accounts and cannot be deleted.")
	}
	if err := s.db.WithContext(ctx).Delete(&domain.Category{}, category.ID).Error; err != nil {
		return errs.Internal(err)
	}
	s.invalidate(ctx)
	return nil
}

// ListGameAccounts returns all listings with category and images joined.
func (s *CatalogService) ListGameAccounts(ctx context.Context) ([]GameAccountView, error) {
	return s.listGameAccounts(ctx, catalogCachePrefix+"gameaccounts", nil)
}

// ListGameAccountsByCategory returns the listings of one category.
func (s *CatalogService) ListGameAccountsByCategory(ctx context.Context, categoryID uint) ([]GameAccountView, error) {
	cacheKey := catalogCachePrefix + "gameaccounts:category:" + strconv.Itoa(int(categoryID))
	return s.listGameAccounts(ctx, cacheKey, func(q *gorm.DB) *gorm.DB {
		return q.Where("category_id = ?", categoryID)
	})
}

// GetGameAccount returns one listing by ID.
func (s *CatalogService) GetGameAccount(ctx context.Context, id uint) (*GameAccountView, error) {
	cacheKey := catalogCachePrefix + "gameaccount:" + strconv.Itoa(int(id))
	if s.rdb != nil {
		var cached GameAccountView
		if found, err := utils.GetCache(ctx, s.rdb, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}
	var ga domain.GameAccount
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		First(&ga, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Game account not found.")
		}
		return nil, errs.Internal(err)
	}
	view := projectGameAccount(&ga)
	if s.rdb != nil {
		_ = utils.SetCache(ctx, s.rdb, cacheKey, view, catalogCacheTTL)
	}
	return view, nil
}

// CreateGameAccount adds a listing in Available state. Admin only.
func (s *CatalogService) CreateGameAccount(ctx context.Context, in CreateGameAccountInput) (*GameAccountView, error) {
	// A listing must reference an existing category
	var category domain.Category
	if err := s.db.WithContext(ctx).First(&category, in.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.InvalidState("Category not found.")
		}
		return nil, errs.Internal(err)
	}
	ga := domain.GameAccount{
		CategoryID:     in.CategoryID,
		Title:          in.Title,
		Description:    in.Description,
		GameType:       in.GameType,
		Price:          in.Price,
		Status:         domain.StatusAvailable,
		Rank:           in.Rank,
		NumberOfSkins:  in.NumberOfSkins,
		NumberOfChamps: in.NumberOfChamps,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ga).Error; err != nil {
			return err // Return error to rollback
		}
		for i, url := range in.ImageURLs {
			img := domain.GameAccountImage{
				GameAccountID: ga.ID,
				ImageURL:      url,
				IsMainImage:   i == 0, // First image is the cover
			}
			if err := tx.Create(&img).Error; err != nil {
				return err // Return error to rollback
			}
		}
		return nil
	})
	if err != nil {
		return nil, errs.Internal(err)
	}
	s.invalidate(ctx)
	return s.GetGameAccount(ctx, ga.ID)
}

// UpdateGameAccount updates a listing's metadata and price. Status is not
// writable here; listings leave the market only through checkout.
func (s *CatalogService) UpdateGameAccount(ctx context.Context, id uint, in CreateGameAccountInput) (*GameAccountView, error) {
	var ga domain.GameAccount
	if err := s.db.WithContext(ctx).First(&ga, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Game account not found.")
		}
		return nil, errs.Internal(err)
	}
	var category domain.Category
	if err := s.db.WithContext(ctx).First(&category, in.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.InvalidState("Category not found.")
		}
		return nil, errs.Internal(err)
	}
	now := time.Now()
	ga.CategoryID = in.CategoryID
	ga.Title = in.Title
	ga.Description = in.Description
	ga.GameType = in.GameType
	ga.Price = in.Price
	ga.Rank = in.Rank
	ga.NumberOfSkins = in.NumberOfSkins
	ga.NumberOfChamps = in.NumberOfChamps
	ga.UpdatedAt = &now
	if err := s.db.WithContext(ctx).Save(&ga).Error; err != nil {
		return nil, errs.Internal(err)
	}
	s.invalidate(ctx)
	return s.GetGameAccount(ctx, ga.ID)
}

// DeleteGameAccount removes a listing and its images. Listings with purchase
// history are immutable receipt targets and cannot be deleted.
func (s *CatalogService) DeleteGameAccount(ctx context.Context, id uint) error {
	var ga domain.GameAccount
	if err := s.db.WithContext(ctx).First(&ga, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("Game account not found.")
		}
		return errs.Internal(err)
	}
	var receipts int64
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("game_account_id = ?", ga.ID).
		Count(&receipts).Error
	if err != nil {
		return errs.Internal(err)
	}
	if receipts > 0 {
		return errs.InvalidState("Game account has transactions and cannot be deleted.")
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_account_id = ?", ga.ID).Delete(&domain.GameAccountImage{}).Error; err != nil {
			return err // Return error to rollback
		}
		if err := tx.Where("game_account_id = ?", ga.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return err // Drop stale cart references too
		}
		return tx.Delete(&domain.GameAccount{}, ga.ID).Error
	})
	if err != nil {
		return errs.Internal(err)
	}
	s.invalidate(ctx)
	return nil
}

// listGameAccounts runs a cached listing query with an optional filter
func (s *CatalogService) listGameAccounts(ctx context.Context, cacheKey string, filter func(*gorm.DB) *gorm.DB) ([]GameAccountView, error) {
	if s.rdb != nil {
		var cached []GameAccountView
		if found, err := utils.GetCache(ctx, s.rdb, cacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}
	q := s.db.WithContext(ctx).Preload("Category").Preload("Images").Order("id")
	if filter != nil {
		q = filter(q)
	}
	var list []domain.GameAccount
	if err := q.Find(&list).Error; err != nil {
		return nil, errs.Internal(err)
	}
	views := make([]GameAccountView, 0, len(list))
	for i := range list {
		views = append(views, *projectGameAccount(&list[i]))
	}
	if s.rdb != nil {
		_ = utils.SetCache(ctx, s.rdb, cacheKey, views, catalogCacheTTL)
	}
	return views, nil
}

// projectGameAccount maps a listing row to the response view
func projectGameAccount(ga *domain.GameAccount) *GameAccountView {
	urls := make([]string, 0, len(ga.Images))
	for _, img := range ga.Images {
		urls = append(urls, img.ImageURL)
	}
	return &GameAccountView{
		ID:             ga.ID,
		CategoryID:     ga.CategoryID,
		CategoryName:   ga.Category.Name,
		Title:          ga.Title,
		Description:    ga.Description,
		GameType:       ga.GameType,
		Price:          ga.Price,
		Status:         ga.Status,
		Rank:           ga.Rank,
		NumberOfSkins:  ga.NumberOfSkins,
		NumberOfChamps: ga.NumberOfChamps,
		CreatedAt:      ga.CreatedAt,
		UpdatedAt:      ga.UpdatedAt,
		ImageURLs:      urls,
	}
}

// invalidate drops every catalog cache entry after a write
func (s *CatalogService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	_ = utils.DeleteCacheByPrefix(ctx, s.rdb, catalogCachePrefix)
}
