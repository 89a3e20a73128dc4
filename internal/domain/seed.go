package domain

import "github.com/shopspring/decimal"

// SeedProducts returns the built-in catalog used when no stored catalog exists
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Oversized Wool Blend Coat",
			Category:    CategoryOuterwear,
			Price:       decimal.NewFromInt(350),
			Description: "A timeless silhouette crafted from a heavy wool blend. Features structured shoulders and deep patch pockets.",
			Image:       "https://images.unsplash.com/photo-1539533377285-a92cc867182f?q=80&w=800&auto=format&fit=crop",
			Inventory:   12,
			Featured:    true,
		},
		{
			ID:          "2",
			Name:        "Relaxed Silk Shirt",
			Category:    CategoryTops,
			Price:       decimal.NewFromInt(180),
			Description: "100% mulberry silk with a sandwashed finish for a matte, fluid drape.",
			Image:       "https://images.unsplash.com/photo-1598033129183-c4f50c7176c8?q=80&w=800&auto=format&fit=crop",
			Inventory:   45,
		},
		{
			ID:          "3",
			Name:        "Straight Leg Raw Denim",
			Category:    CategoryTrousers,
			Price:       decimal.NewFromInt(145),
			Description: "Premium Japanese selvedge denim. Designed to age beautifully with a classic mid-rise fit.",
			Image:       "https://images.unsplash.com/photo-1542272604-787c3835535d?q=80&w=800&auto=format&fit=crop",
			Inventory:   20,
		},
		{
			ID:          "4",
			Name:        "Cashmere Mock Neck Sweater",
			Category:    CategoryKnitwear,
			Price:       decimal.NewFromInt(220),
			Description: "Luxuriously soft Grade-A Mongolian cashmere in a refined mock neck silhouette.",
			Image:       "https://images.unsplash.com/photo-1620799140408-edc6dcb6d633?q=80&w=800&auto=format&fit=crop",
			Inventory:   8,
			Featured:    true,
		},
		{
			ID:          "5",
			Name:        "Minimalist Leather Tote",
			Category:    CategoryAccessories,
			Price:       decimal.NewFromInt(295),
			Description: "Full-grain Italian leather with invisible stitching. Spacious enough for all daily essentials.",
			Image:       "https://images.unsplash.com/photo-1584917865442-de89df76afd3?q=80&w=800&auto=format&fit=crop",
			Inventory:   15,
		},
		{
			ID:          "6",
			Name:        "Chunky Chelsea Boots",
			Category:    CategoryFootwear,
			Price:       decimal.NewFromInt(260),
			Description: "Rugged yet refined. Featuring a recycled rubber lug sole and elastic side panels.",
			Image:       "https://images.unsplash.com/photo-1638247025967-b4e38f787b76?q=80&w=800&auto=format&fit=crop",
			Inventory:   10,
		},
	}
}
