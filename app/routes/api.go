// Package routes declares the full HTTP surface of the API.
package routes

import (
	"github.com/shashiranjanraj/repwear/app/controllers"
	"github.com/shashiranjanraj/repwear/pkg/metrics"
	"github.com/shashiranjanraj/repwear/pkg/middleware"
	"github.com/shashiranjanraj/repwear/pkg/router"
)

// Controllers bundles every controller the routes need.
type Controllers struct {
	Health    *controllers.HealthController
	Auth      *controllers.AuthController
	Product   *controllers.ProductController
	Cart      *controllers.CartController
	Wishlist  *controllers.WishlistController
	Order     *controllers.OrderController
	Payment   *controllers.PaymentController
	Dashboard *controllers.DashboardController
	Blog      *controllers.BlogController
	Content   *controllers.ContentController
	Upload    *controllers.UploadController
}

// Register mounts all routes. Three tiers:
//   - public:      no auth
//   - /api:        bearer token required
//   - /api/admin:  bearer token + admin role
func Register(r *router.Router, c Controllers) {
	r.Get("/health", "health", c.Health.Health)
	r.HandleFunc("/metrics", metrics.Handler())

	// Public storefront.
	r.Post("/api/auth/register", "auth.register", c.Auth.Register)
	r.Post("/api/auth/login", "auth.login", c.Auth.Login)
	r.Post("/api/auth/refresh", "auth.refresh", c.Auth.Refresh)

	r.Get("/api/products", "products.index", c.Product.List)
	r.Get("/api/products/{slug}", "products.show", c.Product.GetBySlug)

	r.Get("/api/blogs", "blogs.index", c.Blog.List)
	r.Get("/api/blogs/{slug}", "blogs.show", c.Blog.GetBySlug)
	r.Get("/api/blog-categories", "blog-categories.index", c.Blog.ListCategories)
	r.Get("/api/authors", "authors.index", c.Blog.ListAuthors)

	r.Get("/api/trainers", "trainers.index", c.Content.ListTrainers)
	r.Get("/api/trainers/{slug}", "trainers.show", c.Content.GetTrainer)
	r.Get("/api/classes", "classes.index", c.Content.ListGymClasses)
	r.Get("/api/classes/{slug}", "classes.show", c.Content.GetGymClass)
	r.Get("/api/theme", "theme.active", c.Content.ActiveTheme)
	r.Get("/api/hero-slides", "hero-slides.index", c.Content.ListHeroSlides)
	r.Get("/api/settings", "settings.show", c.Content.GetSettings)
	r.Post("/api/newsletter/subscribe", "newsletter.subscribe", c.Content.Subscribe)
	r.Post("/api/contact", "contact.store", c.Content.CreateContact)

	// Provider callback: raw body, signature-verified in the handler.
	r.Post("/api/payment/webhook", "payment.webhook", c.Payment.Webhook)

	// Authenticated shopper surface.
	api := r.Group("/api", middleware.Auth)
	api.Get("/auth/me", "auth.me", c.Auth.Me)

	api.Get("/cart", "cart.show", c.Cart.Get)
	api.Post("/cart", "cart.add", c.Cart.Add)
	api.Patch("/cart", "cart.update", c.Cart.UpdateItem)
	api.Post("/cart/remove", "cart.remove", c.Cart.Remove)
	api.Delete("/cart", "cart.clear", c.Cart.Clear)

	api.Get("/wishlist", "wishlist.show", c.Wishlist.List)
	api.Post("/wishlist", "wishlist.add", c.Wishlist.Add)
	api.Delete("/wishlist/{productId}", "wishlist.remove", c.Wishlist.Remove)

	api.Post("/payment/checkout", "payment.checkout", c.Payment.CreateCheckoutSession)

	api.Get("/orders", "orders.index", c.Order.ListMine)
	api.Get("/orders/{id}", "orders.show", c.Order.Get)

	// Admin surface.
	admin := api.Group("/admin", middleware.RequireRole("admin"))

	admin.Get("/dashboard", "admin.dashboard", c.Dashboard.Stats)
	admin.Post("/dashboard/refresh", "admin.dashboard.refresh", c.Dashboard.Refresh)

	admin.Post("/products", "admin.products.store", c.Product.Create)
	admin.Put("/products/{id}", "admin.products.update", c.Product.Update)
	admin.Patch("/products/{id}/status", "admin.products.status", c.Product.SetStatus)
	admin.Delete("/products/{id}", "admin.products.destroy", c.Product.Delete)

	admin.Get("/orders", "admin.orders.index", c.Order.List)
	admin.Get("/orders/number/{number}", "admin.orders.by-number", c.Order.GetByNumber)
	admin.Patch("/orders/{id}/status", "admin.orders.status", c.Order.Transition)

	admin.Post("/blogs", "admin.blogs.store", c.Blog.Create)
	admin.Put("/blogs/{id}", "admin.blogs.update", c.Blog.Update)
	admin.Delete("/blogs/{id}", "admin.blogs.destroy", c.Blog.Delete)
	admin.Post("/blog-categories", "admin.blog-categories.store", c.Blog.CreateCategory)
	admin.Put("/blog-categories/{id}", "admin.blog-categories.update", c.Blog.UpdateCategory)
	admin.Delete("/blog-categories/{id}", "admin.blog-categories.destroy", c.Blog.DeleteCategory)
	admin.Post("/authors", "admin.authors.store", c.Blog.CreateAuthor)
	admin.Put("/authors/{id}", "admin.authors.update", c.Blog.UpdateAuthor)
	admin.Delete("/authors/{id}", "admin.authors.destroy", c.Blog.DeleteAuthor)

	admin.Post("/trainers", "admin.trainers.store", c.Content.CreateTrainer)
	admin.Put("/trainers/{id}", "admin.trainers.update", c.Content.UpdateTrainer)
	admin.Delete("/trainers/{id}", "admin.trainers.destroy", c.Content.DeleteTrainer)
	admin.Post("/classes", "admin.classes.store", c.Content.CreateGymClass)
	admin.Put("/classes/{id}", "admin.classes.update", c.Content.UpdateGymClass)
	admin.Delete("/classes/{id}", "admin.classes.destroy", c.Content.DeleteGymClass)

	admin.Get("/themes", "admin.themes.index", c.Content.ListThemes)
	admin.Post("/themes", "admin.themes.store", c.Content.CreateTheme)
	admin.Put("/themes/{id}", "admin.themes.update", c.Content.UpdateTheme)
	admin.Delete("/themes/{id}", "admin.themes.destroy", c.Content.DeleteTheme)
	admin.Post("/themes/{id}/activate", "admin.themes.activate", c.Content.ActivateTheme)

	admin.Post("/hero-slides", "admin.hero-slides.store", c.Content.CreateHeroSlide)
	admin.Put("/hero-slides/{id}", "admin.hero-slides.update", c.Content.UpdateHeroSlide)
	admin.Delete("/hero-slides/{id}", "admin.hero-slides.destroy", c.Content.DeleteHeroSlide)

	admin.Put("/settings", "admin.settings.update", c.Content.UpdateSettings)
	admin.Get("/newsletter", "admin.newsletter.index", c.Content.ListSubscribers)
	admin.Get("/contacts", "admin.contacts.index", c.Content.ListContacts)

	admin.Post("/uploads/image", "admin.uploads.image", c.Upload.Image)
	admin.Post("/uploads/banners", "admin.uploads.banners", c.Upload.Banners)
}
