package catalog

import "atelier-store/internal/domain"

// SeedProducts is the catalog loaded at startup.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:       "men-1",
			Title:    "Classic Oxford Shirt",
			Price:    59.99,
			Image:    "https://images.unsplash.com/photo-1602810318383-e386cc2a3ccf",
			Category: domain.CategoryMen,
		},
		{
			ID:       "men-2",
			Title:    "Slim Fit Chinos",
			Price:    79.99,
			Image:    "https://images.unsplash.com/photo-1552783858-1e57c3e6fabb",
			Category: domain.CategoryMen,
		},
		{
			ID:       "men-3",
			Title:    "Casual Blazer",
			Price:    129.99,
			Image:    "https://images.unsplash.com/photo-1593030761757-71fae45fa0e7",
			Category: domain.CategoryMen,
		},
		{
			ID:       "men-4",
			Title:    "Leather Loafers",
			Price:    149.99,
			Image:    "https://images.unsplash.com/photo-1531310197839-ccf54634509e",
			Category: domain.CategoryMen,
		},
		{
			ID:       "women-1",
			Title:    "Silk Blouse",
			Price:    89.99,
			Image:    "https://images.unsplash.com/photo-1515886657613-9f3515b0c78f",
			Category: domain.CategoryWomen,
		},
		{
			ID:       "women-2",
			Title:    "High-Waisted Trousers",
			Price:    99.99,
			Image:    "https://images.unsplash.com/photo-1548549557-dbe9946621da",
			Category: domain.CategoryWomen,
		},
		{
			ID:       "women-3",
			Title:    "Cashmere Sweater",
			Price:    149.99,
			Image:    "https://images.unsplash.com/photo-1608234807905-4466023792f5",
			Category: domain.CategoryWomen,
		},
		{
			ID:       "women-4",
			Title:    "Designer Dress",
			Price:    199.99,
			Image:    "https://images.unsplash.com/photo-1496747611176-843222e1e57c",
			Category: domain.CategoryWomen,
		},
		{
			ID:       "collectibles-1",
			Title:    "Limited Edition Watch",
			Price:    899.99,
			Image:    "https://images.unsplash.com/photo-1523170335258-f5ed11844a49",
			Category: domain.CategoryCollectibles,
		},
		{
			ID:       "collectibles-2",
			Title:    "Vintage Leather Bag",
			Price:    499.99,
			Image:    "https://images.unsplash.com/photo-1548036328-c9fa89d128fa",
			Category: domain.CategoryCollectibles,
		},
		{
			ID:       "collectibles-3",
			Title:    "Handcrafted Sunglasses",
			Price:    349.99,
			Image:    "https://images.unsplash.com/photo-1572635196237-14b3f281503f",
			Category: domain.CategoryCollectibles,
		},
		{
			ID:       "collectibles-4",
			Title:    "Artisan Jewelry",
			Price:    299.99,
			Image:    "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908",
			Category: domain.CategoryCollectibles,
		},
	}
}
