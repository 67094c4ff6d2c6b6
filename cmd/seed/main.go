// Command seed loads the sample catalog and site content used by development
// and staging environments. Rows are matched by their natural keys so the
// command is safe to run repeatedly.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smartlaundry/backend/pkg/config"
	"github.com/smartlaundry/backend/pkg/db"
	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/logger"
)

type optionSeed struct {
	name  string
	emoji string
	price string
}

type serviceSeed struct {
	category         string
	name             string
	emoji            string
	description      string
	price            string
	estimatedMinutes int
	options          []optionSeed
}

var categorySeeds = []models.ServiceCategory{
	{Name: "Steam Pressing", Emoji: "🧺", Description: "Professional steam pressing services for wrinkle-free clothes", IsActive: true},
	{Name: "Dry Cleaning", Emoji: "👔", Description: "Expert dry cleaning for delicate and formal wear", IsActive: true},
	{Name: "Wash & Fold", Emoji: "🛏️", Description: "Convenient wash and fold services for everyday clothes", IsActive: true},
	{Name: "Ironing", Emoji: "👕", Description: "Professional ironing services for crisp, clean clothes", IsActive: true},
}

var serviceSeeds = []serviceSeed{
	{
		category: "Steam Pressing", name: "Steam Pressing", emoji: "🧺",
		description: "Professional steam pressing for wrinkle-free, confidence-ready clothes",
		price:       "15.00", estimatedMinutes: 120,
		options: []optionSeed{
			{"Shirt", "👔", "15.00"},
			{"T-Shirt", "👕", "12.00"},
			{"Kurta", "🧕", "18.00"},
			{"Jeans", "👖", "20.00"},
		},
	},
	{
		category: "Dry Cleaning", name: "Dry Cleaning", emoji: "👔",
		description: "Expert dry cleaning for delicate and formal wear",
		price:       "120.00", estimatedMinutes: 1440,
		options: []optionSeed{
			{"Saree", "🧣", "120.00"},
			{"Suit / Blazer", "🤵", "150.00"},
			{"Dress / Gown", "👗", "140.00"},
			{"Sherwani", "👘", "160.00"},
		},
	},
	{
		category: "Wash & Fold", name: "Wash & Fold", emoji: "🛏️",
		description: "Convenient wash and fold services for everyday clothes",
		price:       "8.00", estimatedMinutes: 360,
		options: []optionSeed{
			{"T-Shirt", "👕", "8.00"},
			{"Shirt", "👔", "10.00"},
			{"Jeans", "👖", "12.00"},
			{"Trousers", "👖", "10.00"},
		},
	},
	{
		category: "Ironing", name: "Ironing", emoji: "👕",
		description: "Professional ironing services for crisp, clean clothes",
		price:       "5.00", estimatedMinutes: 60,
		options: []optionSeed{
			{"Shirt", "👔", "5.00"},
			{"T-Shirt", "👕", "4.00"},
			{"Kurta", "🧕", "6.00"},
			{"Trousers", "👖", "5.00"},
		},
	},
}

var faqSeeds = []models.FAQ{
	{Question: "How long does it take to process my order?", Answer: "Most orders are processed within 24-48 hours. Express services are available for same-day processing.", Category: "General", DisplayOrder: 1, IsActive: true},
	{Question: "What payment methods do you accept?", Answer: "We accept cash on delivery, online payments via Razorpay, and digital wallets.", Category: "Payment", DisplayOrder: 2, IsActive: true},
	{Question: "Do you provide pickup and delivery services?", Answer: "Yes, we provide free pickup and delivery services within our service areas.", Category: "Delivery", DisplayOrder: 3, IsActive: true},
	{Question: "What if I'm not satisfied with the service?", Answer: "We offer a 100% satisfaction guarantee. If you're not happy, we'll redo the service for free.", Category: "Quality", DisplayOrder: 4, IsActive: true},
	{Question: "How do I track my order?", Answer: "You can track your order through our website or mobile app using your order number.", Category: "Tracking", DisplayOrder: 5, IsActive: true},
	{Question: "What are your operating hours?", Answer: "We operate 7 days a week from 8 AM to 8 PM. Emergency services are available 24/7.", Category: "General", DisplayOrder: 6, IsActive: true},
}

var configSeeds = []models.SiteConfiguration{
	{Key: "site_name", Value: "Smart Laundry", Description: "Name of the website", IsActive: true},
	{Key: "contact_email", Value: "info@smartlaundry.com", Description: "Contact email address", IsActive: true},
	{Key: "contact_phone", Value: "+91 9876543210", Description: "Contact phone number", IsActive: true},
	{Key: "delivery_charge", Value: "50", Description: "Standard delivery charge in rupees", IsActive: true},
	{Key: "tax_rate", Value: "18", Description: "GST rate in percentage", IsActive: true},
	{Key: "min_order_amount", Value: "100", Description: "Minimum order amount in rupees", IsActive: true},
}

var bannerSeeds = []models.Banner{
	{Title: "Professional Laundry Services", Subtitle: "Get your clothes cleaned, pressed, and delivered to your doorstep", LinkURL: "/services", DisplayOrder: 1, IsActive: true},
	{Title: "Same Day Service Available", Subtitle: "Express cleaning and pressing services for urgent needs", LinkURL: "/services", DisplayOrder: 2, IsActive: true},
	{Title: "Free Pickup & Delivery", Subtitle: "Convenient pickup and delivery services at no extra cost", LinkURL: "/contact", DisplayOrder: 3, IsActive: true},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return seedAll(tx)
	}); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seed data loaded")
}

func seedAll(tx *gorm.DB) error {
	categoryIDs := map[string]int64{}
	for _, category := range categorySeeds {
		row := category
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", category.Name, err)
		}
		if row.ID == 0 {
			if err := tx.First(&row, "name = ?", category.Name).Error; err != nil {
				return fmt.Errorf("load category %q: %w", category.Name, err)
			}
		}
		categoryIDs[category.Name] = row.ID
	}

	for _, seed := range serviceSeeds {
		categoryID, ok := categoryIDs[seed.category]
		if !ok {
			return fmt.Errorf("unknown category %q", seed.category)
		}
		service := models.Service{
			CategoryID:       categoryID,
			Name:             seed.name,
			Emoji:            seed.emoji,
			Description:      seed.description,
			Price:            decimal.RequireFromString(seed.price),
			EstimatedMinutes: seed.estimatedMinutes,
			IsActive:         true,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category_id"}, {Name: "name"}},
			DoNothing: true,
		}).Create(&service).Error; err != nil {
			return fmt.Errorf("seed service %q: %w", seed.name, err)
		}
		if service.ID == 0 {
			if err := tx.First(&service, "category_id = ? AND name = ?", categoryID, seed.name).Error; err != nil {
				return fmt.Errorf("load service %q: %w", seed.name, err)
			}
		}

		for _, option := range seed.options {
			row := models.ServiceOption{
				ServiceID: service.ID,
				Name:      option.name,
				Emoji:     option.emoji,
				Price:     decimal.RequireFromString(option.price),
				IsActive:  true,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "service_id"}, {Name: "name"}},
				DoNothing: true,
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("seed option %q/%q: %w", seed.name, option.name, err)
			}
		}
	}

	for _, faq := range faqSeeds {
		row := faq
		var existing models.FAQ
		err := tx.First(&existing, "question = ?", faq.Question).Error
		if err == gorm.ErrRecordNotFound {
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("seed faq %q: %w", faq.Question, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("load faq %q: %w", faq.Question, err)
		}
	}

	for _, config := range configSeeds {
		row := config
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("seed config %q: %w", config.Key, err)
		}
	}

	for _, banner := range bannerSeeds {
		row := banner
		var existing models.Banner
		err := tx.First(&existing, "title = ?", banner.Title).Error
		if err == gorm.ErrRecordNotFound {
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("seed banner %q: %w", banner.Title, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("load banner %q: %w", banner.Title, err)
		}
	}

	return nil
}
