package database

import (
	"fmt"
	"log"

	"qube-server/models"

	"github.com/lib/pq"
)

// DefaultCatalog returns the demo healthcare catalog. Most products carry the
// standard 20/10 purchase policy; a few override it to exercise per-product
// policies end to end.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{
			Name:             "21st Century Biotine",
			Description:      "High-potency biotin supplement for healthy hair, skin, and nails",
			Price:            800,
			ImageURL:         "/images/21stcentury-biotin.png",
			Category:         "vitamins",
			InStock:          true,
			Featured:         true,
			MinOrderQuantity: 20,
			OrderIncrement:   10,
			Tags:             []string{"hair-health", "skin-care", "nail-strength"},
			Benefits: []string{
				"Promotes healthy hair growth and reduces breakage",
				"Strengthens nails and prevents brittleness",
				"Supports skin health and hydration",
			},
			Ingredients:    []string{"Biotin (as d-Biotin)", "Calcium Carbonate", "Microcrystalline Cellulose"},
			Certifications: []string{"WHO-GMP", "ISO 9001"},
		},
		{
			Name:             "Boldfit Omega 3 Fish Oil",
			Description:      "High-purity fish oil with EPA and DHA for heart and brain health",
			Price:            600,
			ImageURL:         "/images/boldfit-omega3.png",
			Category:         "supplements",
			InStock:          true,
			Featured:         true,
			MinOrderQuantity: 20,
			OrderIncrement:   10,
			Tags:             []string{"heart-health", "brain-function", "joint-support"},
			Benefits: []string{
				"Supports cardiovascular health and circulation",
				"Promotes brain function and cognitive performance",
				"Helps maintain healthy joints and flexibility",
			},
			Ingredients:    []string{"Fish Oil", "Gelatin", "Glycerin", "Purified Water"},
			Certifications: []string{"WHO-GMP", "ISO 9001"},
		},
		{
			Name:             "St D'vence Tea Tree Face Wash",
			Description:      "Purifying face wash with tea tree oil for clear, refreshed skin",
			Price:            499,
			ImageURL:         "/images/teatree-facewash.png",
			Category:         "skincare",
			InStock:          true,
			Featured:         true,
			MinOrderQuantity: 20,
			OrderIncrement:   10,
			Tags:             []string{"oil-control", "acne-prone", "deep-cleansing"},
			Benefits: []string{
				"Deep cleanses and removes excess oil",
				"Helps prevent breakouts and blemishes",
				"Soothes irritated skin with natural tea tree oil",
			},
			Ingredients:    []string{"Aqua", "Tea Tree Oil", "Glycerin", "Aloe Vera", "Vitamin E"},
			Certifications: []string{"Dermatologist Tested", "Paraben Free"},
		},
		{
			Name:             "Kapiva Aloe Vera Gel",
			Description:      "Pure and natural aloe vera gel for soothing and hydrating skin",
			Price:            299,
			ImageURL:         "/images/kapiva-aleovera-gel.png",
			Category:         "skincare",
			InStock:          true,
			Featured:         true,
			MinOrderQuantity: 20,
			OrderIncrement:   10,
			Tags:             []string{"hydration", "soothing", "after-sun"},
			Benefits: []string{
				"Deeply hydrates and soothes dry skin",
				"Cools and calms sunburns and irritation",
				"Non-greasy formula absorbs quickly",
			},
			Ingredients:    []string{"Aloe Barbadensis Leaf Extract", "Glycerin", "Carbomer", "Phenoxyethanol"},
			Certifications: []string{"100% Pure Aloe", "No Artificial Colors"},
		},
		{
			Name:             "HK Vitals Vitamin C Serum",
			Description:      "Brightening serum with 20% vitamin C for radiant and even-toned skin",
			Price:            1299,
			ImageURL:         "/images/hkvitals-vitamin-c.jpg",
			Category:         "skincare",
			InStock:          true,
			MinOrderQuantity: 30,
			OrderIncrement:   10,
			Tags:             []string{"brightening", "antioxidant", "dark-spots"},
			Benefits: []string{
				"Reduces dark spots and hyperpigmentation",
				"Brightens and evens out skin tone",
				"Powerful antioxidant protection",
			},
			Ingredients:    []string{"Ascorbic Acid", "Vitamin E", "Ferulic Acid", "Hyaluronic Acid"},
			Certifications: []string{"Dermatologist Tested"},
		},
		{
			Name:             "HK Vitals Multivitamin with Zinc & Vitamin C",
			Description:      "Complete daily multivitamin for immunity and energy",
			Price:            1599,
			ImageURL:         "/images/hkvitals-multivitamin.jpg",
			Category:         "vitamins",
			InStock:          true,
			Featured:         true,
			MinOrderQuantity: 20,
			OrderIncrement:   10,
			Tags:             []string{"immunity", "energy", "daily-health"},
			Benefits: []string{
				"Supports immune system function",
				"Boosts daily energy levels",
				"Fills common nutritional gaps",
			},
			Ingredients:    []string{"Vitamin C", "Zinc", "Vitamin D3", "B-Complex"},
			Certifications: []string{"WHO-GMP"},
		},
		{
			Name:             "Cetaphil Gentle Skin Cleanser",
			Description:      "Mild, soap-free cleanser for sensitive and dry skin",
			Price:            499,
			ImageURL:         "/images/cetaphil-cleanser.jpg",
			Category:         "personal-care",
			InStock:          true,
			MinOrderQuantity: 50,
			OrderIncrement:   25,
			Tags:             []string{"sensitive-skin", "gentle", "daily-use"},
			Benefits: []string{
				"Cleanses without stripping natural oils",
				"Suitable for sensitive skin",
				"Maintains the skin's moisture barrier",
			},
			Ingredients:    []string{"Aqua", "Cetyl Alcohol", "Propylene Glycol", "Stearyl Alcohol"},
			Certifications: []string{"Dermatologist Recommended"},
		},
		{
			Name:             "HK Vitals Vitamin D3 + K2",
			Description:      "Bone and immunity support with vitamin D3 and K2",
			Price:            1099,
			ImageURL:         "/images/hkvitals-d3k2.jpg",
			Category:         "supplements",
			InStock:          true,
			MinOrderQuantity: 20,
			OrderIncrement:   10,
			Tags:             []string{"bone-health", "immunity"},
			Benefits: []string{
				"Supports calcium absorption and bone strength",
				"Promotes healthy immune response",
			},
			Ingredients:    []string{"Vitamin D3", "Vitamin K2 (MK-7)", "MCT Oil"},
			Certifications: []string{"WHO-GMP"},
		},
	}
}

// SeedProducts inserts the demo catalog when the products table is empty.
func (db *DB) SeedProducts() error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO products (
			name, description, price, image_url, category, in_stock, featured,
			min_order_quantity, order_increment, tags, benefits, ingredients, certifications
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	for _, p := range DefaultCatalog() {
		_, err := db.Exec(query,
			p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.InStock, p.Featured,
			p.MinOrderQuantity, p.OrderIncrement,
			pq.Array(p.Tags), pq.Array(p.Benefits), pq.Array(p.Ingredients), pq.Array(p.Certifications),
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}

	log.Printf("Seeded %d demo products", len(DefaultCatalog()))
	return nil
}
