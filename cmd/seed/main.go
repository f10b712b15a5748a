package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brijnamkeen/store_api/internal/config"
	"github.com/brijnamkeen/store_api/internal/database"
	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/repository"
)

var sampleCategories = []models.Category{
	{Name: "Namkeen", Description: "Authentic Indian savory snacks", Icon: "🌶️", DisplayOrder: 1, ShowOnHome: true, SlotType: models.SlotCategory, IsActive: true},
	{Name: "Sweets", Description: "Traditional Indian sweets and desserts", Icon: "🍬", DisplayOrder: 2, ShowOnHome: true, SlotType: models.SlotCategory, IsActive: true},
	{Name: "Chips & Crackers", Description: "Crispy and crunchy snack varieties", Icon: "🍪", DisplayOrder: 3, ShowOnHome: true, SlotType: models.SlotCategory, IsActive: true},
	{Name: "Dry Fruits & Nuts", Description: "Premium quality dry fruits and nuts", Icon: "🥜", DisplayOrder: 4, ShowOnHome: true, SlotType: models.SlotCategory, IsActive: true},
	{Name: "Combo Packs", Description: "Value packs and gift hampers", Icon: "🎁", DisplayOrder: 5, ShowOnHome: true, SlotType: models.SlotCategory, IsActive: true},
}

var sampleProducts = []models.Product{
	{Name: "Classic Bhujia", Description: "Authentic Rajasthani bhujia made with premium besan and secret spices. Crispy, crunchy, and absolutely addictive. Perfect for tea-time snacking or as a party appetizer.", Price: 120, Category: "Namkeen", Image: "https://images.unsplash.com/photo-1599490659213-e2b9527bd087?w=400", Weight: "400g", Stock: 100, IsActive: true},
	{Name: "Aloo Bhujia", Description: "Delicious potato-based bhujia with a perfect blend of spices. Light, crispy texture that melts in your mouth. A household favorite for generations.", Price: 140, Category: "Namkeen", Image: "https://images.unsplash.com/photo-1601050690597-df0568f70950?w=400", Weight: "400g", Stock: 80, IsActive: true},
	{Name: "Moong Dal", Description: "Crispy fried moong dal seasoned with rock salt and mild spices. A healthy snacking option that is both nutritious and delicious.", Price: 100, Category: "Namkeen", Image: "https://images.unsplash.com/photo-1606491956689-2ea866880c84?w=400", Weight: "250g", Stock: 120, IsActive: true},
	{Name: "Sev Mamra", Description: "Traditional sev mamra mix with puffed rice, sev, peanuts, and curry leaves. A light and flavorful snack perfect for any occasion.", Price: 90, Category: "Namkeen", Image: "https://images.unsplash.com/photo-1567337710282-00832b415979?w=400", Weight: "300g", Stock: 90, IsActive: true},

	{Name: "Besan Ladoo", Description: "Traditional besan ladoos made with pure ghee and garnished with almonds. Melt-in-mouth texture with authentic homemade taste.", Price: 350, Category: "Sweets", Image: "https://images.unsplash.com/photo-1666190094745-9eb6a79a8e6a?w=400", Weight: "500g", Stock: 50, IsActive: true},
	{Name: "Dry Fruit Chikki", Description: "Premium dry fruit chikki loaded with almonds, cashews, and pistachios. Made with organic jaggery for natural sweetness.", Price: 280, Category: "Sweets", Image: "https://images.unsplash.com/photo-1605197161470-06b0e12c8904?w=400", Weight: "400g", Stock: 60, IsActive: true},
	{Name: "Gajak", Description: "Winter special til gajak made with white sesame seeds and pure desi ghee. A nutritious and delicious traditional sweet.", Price: 220, Category: "Sweets", Image: "https://images.unsplash.com/photo-1548943487-a2e4e43b4853?w=400", Weight: "500g", Stock: 40, IsActive: true},

	{Name: "Masala Mathri", Description: "Flaky, crispy mathris with aromatic spices. Perfect accompaniment to tea or as a standalone snack. Made fresh with premium ingredients.", Price: 110, Category: "Chips & Crackers", Image: "https://images.unsplash.com/photo-1599490659213-e2b9527bd087?w=400", Weight: "300g", Stock: 70, IsActive: true},
	{Name: "Khasta Kachori", Description: "Stuffed crispy kachoris with spiced moong dal filling. A classic North Indian snack that is loved by all ages.", Price: 180, Category: "Chips & Crackers", Image: "https://images.unsplash.com/photo-1601050690117-94f5f7fa23c4?w=400", Weight: "400g", Stock: 45, IsActive: true},
	{Name: "Chakli", Description: "Spiral-shaped crispy snack made with rice flour and aromatic spices. Crunchy texture with a hint of cumin flavor.", Price: 130, Category: "Chips & Crackers", Image: "https://images.unsplash.com/photo-1606491956689-2ea866880c84?w=400", Weight: "350g", Stock: 85, IsActive: true},

	{Name: "Masala Cashews", Description: "Premium cashews roasted to perfection with a special blend of Indian spices. Crunchy, flavorful, and utterly irresistible.", Price: 450, Category: "Dry Fruits & Nuts", Image: "https://images.unsplash.com/photo-1563292552-63f07e6b21ae?w=400", Weight: "250g", Stock: 35, IsActive: true},
	{Name: "Spiced Almonds", Description: "California almonds with a tangy masala coating. A healthy snack option that does not compromise on taste.", Price: 420, Category: "Dry Fruits & Nuts", Image: "https://images.unsplash.com/photo-1574570068495-5a8d9a72e5c9?w=400", Weight: "250g", Stock: 40, IsActive: true},

	{Name: "Festival Special Combo", Description: "Curated festive collection with assorted namkeens and sweets. Perfect gift pack for Diwali, Holi, and other celebrations.", Price: 899, Category: "Combo Packs", Image: "https://images.unsplash.com/photo-1601050690117-94f5f7fa23c4?w=400", Weight: "1.5kg", Stock: 25, IsActive: true},
	{Name: "Party Pack", Description: "Variety pack with 5 different namkeens perfect for parties and gatherings. Includes bhujia, sev, mixture, and more.", Price: 599, Category: "Combo Packs", Image: "https://images.unsplash.com/photo-1567337710282-00832b415979?w=400", Weight: "1kg", Stock: 30, IsActive: true},
	{Name: "Family Pack", Description: "Value pack for the whole family with our bestselling namkeens. Great savings on bulk purchase.", Price: 449, Category: "Combo Packs", Image: "https://images.unsplash.com/photo-1599490659213-e2b9527bd087?w=400", Weight: "800g", Stock: 50, IsActive: true},
}

// main seeds the database with sample categories and products. Existing
// categories and products are removed first.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if _, err := db.Exec(`DELETE FROM products`); err != nil {
		log.Fatal().Err(err).Msg("failed to clear products")
	}
	if _, err := db.Exec(`DELETE FROM categories`); err != nil {
		log.Fatal().Err(err).Msg("failed to clear categories")
	}
	log.Info().Msg("cleared existing products and categories")

	categoryRepo := repository.NewCategoryRepository(db)
	for i := range sampleCategories {
		if err := categoryRepo.Create(&sampleCategories[i]); err != nil {
			log.Fatal().Err(err).Str("category", sampleCategories[i].Name).Msg("failed to insert category")
		}
	}
	log.Info().Int("count", len(sampleCategories)).Msg("inserted categories")

	productRepo := repository.NewProductRepository(db)
	for i := range sampleProducts {
		if err := productRepo.Create(&sampleProducts[i]); err != nil {
			log.Fatal().Err(err).Str("product", sampleProducts[i].Name).Msg("failed to insert product")
		}
	}
	log.Info().Int("count", len(sampleProducts)).Msg("inserted products")

	log.Info().Msg("database seeded successfully")
}
