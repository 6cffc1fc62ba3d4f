package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-api/internal/models"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection("products")}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	product.ID = primitive.NewObjectID()
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.TotalStock = product.AvailableStock()
	return nil
}

// FindByID fetches a product by its hex ID.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var product models.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	product.TotalStock = product.AvailableStock()
	return &product, nil
}

// FindAll lists every product.
func (r *ProductRepository) FindAll(ctx context.Context) ([]*models.Product, error) {
	return r.find(ctx, bson.M{})
}

// FindFeatured lists products flagged for promotional display.
func (r *ProductRepository) FindFeatured(ctx context.Context) ([]*models.Product, error) {
	return r.find(ctx, bson.M{"isFeatured": true})
}

// FindByCategory matches the category label case-insensitively.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	filter := bson.M{"category": bson.M{"$regex": fmt.Sprintf("^%s$", category), "$options": "i"}}
	return r.find(ctx, filter)
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]*models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	for _, p := range products {
		p.TotalStock = p.AvailableStock()
	}
	return products, nil
}

// FindRandomInStock samples products at random and keeps up to limit of
// them that still have stock, for the "recommended" rail.
func (r *ProductRepository) FindRandomInStock(ctx context.Context, limit int) ([]*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// Oversample so the in-stock filter usually still fills the limit.
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": limit * 4}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sampled []*models.Product
	if err = cursor.All(ctx, &sampled); err != nil {
		return nil, err
	}

	products := make([]*models.Product, 0, limit)
	for _, p := range sampled {
		p.TotalStock = p.AvailableStock()
		if p.TotalStock > 0 {
			products = append(products, p)
			if len(products) == limit {
				break
			}
		}
	}
	return products, nil
}

// SetStock persists a stock mutation produced by Product.AdjustStock.
func (r *ProductRepository) SetStock(ctx context.Context, id primitive.ObjectID, variants []models.ColorVariant, stock int64) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"colorVariants": variants,
		"stock":         stock,
		"updatedAt":     time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetFeatured flips the promotional flag.
func (r *ProductRepository) SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"isFeatured": featured, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product. Past orders keep their dangling reference.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()
	return r.collection.CountDocuments(ctx, bson.M{})
}
