package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-api/internal/models"
)

type CouponRepository struct {
	collection *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) *CouponRepository {
	return &CouponRepository{collection: db.Collection("coupons")}
}

// Create inserts a new coupon. The code is stored upper-cased.
func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	coupon.ID = primitive.NewObjectID()
	coupon.Code = strings.ToUpper(coupon.Code)
	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, coupon)
	return err
}

// FindByCode fetches a coupon by code regardless of active state.
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return r.findOne(ctx, bson.M{"code": strings.ToUpper(code)})
}

// FindActiveByCode fetches an active coupon by code.
func (r *CouponRepository) FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return r.findOne(ctx, bson.M{"code": strings.ToUpper(code), "isActive": true})
}

// FindByID fetches a coupon by its hex ID.
func (r *CouponRepository) FindByID(ctx context.Context, id string) (*models.Coupon, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

func (r *CouponRepository) findOne(ctx context.Context, filter bson.M) (*models.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var coupon models.Coupon
	err := r.collection.FindOne(ctx, filter).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// FindAll lists every coupon, newest first.
func (r *CouponRepository) FindAll(ctx context.Context) ([]*models.Coupon, error) {
	return r.find(ctx, bson.M{})
}

// FindActive lists coupons whose active flag is still set.
func (r *CouponRepository) FindActive(ctx context.Context) ([]*models.Coupon, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

func (r *CouponRepository) find(ctx context.Context, filter bson.M) ([]*models.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	coupons := make([]*models.Coupon, 0)
	if err = cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// SetActive flips the active flag.
func (r *CouponRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return r.update(ctx, id, bson.M{"isActive": active})
}

// SetUsage persists a redemption: the new usage counter plus the active
// flag, which drops when the counter reaches the cap.
func (r *CouponRepository) SetUsage(ctx context.Context, id primitive.ObjectID, currentUses int64, active bool) error {
	return r.update(ctx, id, bson.M{"currentUses": currentUses, "isActive": active})
}

func (r *CouponRepository) update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	fields["updatedAt"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a coupon. Orders only ever kept the denormalized code, so
// nothing references it afterwards.
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
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
