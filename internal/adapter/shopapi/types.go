package shopapi

import "github.com/techcart/storefront/internal/core/domain"

type (
	Product struct {
		ID       int     `json:"id"`
		Name     string  `json:"name"`
		Brand    string  `json:"brand"`
		Category string  `json:"category"`
		Price    float64 `json:"price"`
		Image    string  `json:"image"`
	}

	Category struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	}

	CartItem struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}

	RegisterForm struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginResponse struct {
		AccessToken string `json:"access_token"`
	}

	errorResponse struct {
		Detail string `json:"detail"`
	}
)

func toDomainProducts(ps []Product) []domain.Product {
	ds := make([]domain.Product, len(ps))
	for i, p := range ps {
		ds[i] = domain.Product{
			ID:       p.ID,
			Name:     p.Name,
			Brand:    p.Brand,
			Category: p.Category,
			Price:    p.Price,
			Image:    p.Image,
		}
	}
	return ds
}

func toDomainCategories(cs []Category) []domain.Category {
	ds := make([]domain.Category, len(cs))
	for i, c := range cs {
		ds[i] = domain.Category{Slug: c.Slug, Name: c.Name}
	}
	return ds
}
