package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Learnspoint11/moryastationery/internal/config"
	"github.com/Learnspoint11/moryastationery/internal/database"
	"github.com/Learnspoint11/moryastationery/internal/models"
	"github.com/Learnspoint11/moryastationery/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	sugar := zl.Sugar()

	db, client, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDatabase, sugar)
	if err != nil {
		sugar.Fatalf("mongo connect failed: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	products := repository.NewMongoProductRepo(db, "products")

	ctx := context.Background()
	existing, err := products.FindAll(ctx)
	if err != nil {
		sugar.Fatalf("failed to read products: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("catalog already has %d products, nothing to do\n", len(existing))
		return
	}

	catalog := []models.Product{
		{Name: "Classic Ballpoint Pen", Description: "Smooth-writing blue ballpoint, pack of 10", Price: 120, Image: "/images/ballpoint.jpg"},
		{Name: "A4 Ruled Notebook", Description: "200 pages, single ruled", Price: 85, Image: "/images/notebook.jpg"},
		{Name: "Geometry Box", Description: "Compass, divider, set squares and protractor", Price: 250, Image: "/images/geometry.jpg"},
		{Name: "Sketch Pen Set", Description: "12 assorted colours", Price: 95, Image: "/images/sketchpens.jpg"},
		{Name: "Stapler", Description: "Desk stapler with 1000 staples", Price: 180, Image: "/images/stapler.jpg"},
	}

	for i := range catalog {
		if err := products.Create(ctx, &catalog[i]); err != nil {
			sugar.Fatalf("failed to seed product %q: %v", catalog[i].Name, err)
		}
		fmt.Printf("seeded product: id=%s name=%s price=%.0f\n", catalog[i].ID.Hex(), catalog[i].Name, catalog[i].Price)
	}
}
