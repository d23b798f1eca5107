package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/feastly/order-svc/internal/dal/mongodb"
	"github.com/feastly/order-svc/internal/service/models/currency"
	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/feastly/order-svc/internal/service/models/orderitem"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "orders"

// OrderItemDoc is the document projection of an order item.
type OrderItemDoc struct {
	ProductId    string `bson:"productId"`
	ProductTitle string `bson:"productTitle"`
	Quantity     int    `bson:"quantity"`
	PriceCents   int64  `bson:"priceCents"`
	Category     string `bson:"category"`
}

// CustomerDoc is the embedded customer snapshot.
type CustomerDoc struct {
	Name    string `bson:"name"`
	Email   string `bson:"email"`
	Phone   string `bson:"phone"`
	Address string `bson:"address"`
}

// PaymentDoc is the embedded payment snapshot.
type PaymentDoc struct {
	Method    string `bson:"method"`
	CardLast4 string `bson:"cardLast4"`
}

// MirrorDoc records the relational mirror outcome on the order document.
type MirrorDoc struct {
	State     string    `bson:"state"`
	Error     string    `bson:"error,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// OrderDoc is the primary order record as stored in the document store.
type OrderDoc struct {
	Id            primitive.ObjectID `bson:"_id,omitempty"`
	SQLOrderId    int64              `bson:"sqlOrderId,omitempty"`
	UserId        string             `bson:"userId,omitempty"`
	Customer      CustomerDoc        `bson:"customer"`
	Items         []OrderItemDoc     `bson:"items"`
	SubtotalCents int64              `bson:"subtotalCents"`
	DiscountCents int64              `bson:"discountCents"`
	TotalCents    int64              `bson:"totalCents"`
	Currency      string             `bson:"currency"`
	Status        string             `bson:"status"`
	PaymentStatus string             `bson:"paymentStatus"`
	Payment       PaymentDoc         `bson:"payment"`
	Mirror        MirrorDoc          `bson:"mirror"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

// ToModel converts OrderDoc to service layer Order model.
func (d *OrderDoc) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(d.Currency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(d.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]orderitem.OrderItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = orderitem.OrderItem{
			ProductID:    item.ProductId,
			ProductTitle: item.ProductTitle,
			Quantity:     item.Quantity,
			PriceCents:   item.PriceCents,
			Category:     item.Category,
		}
	}

	return &order.Order{
		ID:         d.Id.Hex(),
		SQLOrderID: d.SQLOrderId,
		UserID:     d.UserId,
		Customer: order.CustomerSnapshot{
			Name:    d.Customer.Name,
			Email:   d.Customer.Email,
			Phone:   d.Customer.Phone,
			Address: d.Customer.Address,
		},
		OrderItems:    items,
		SubtotalCents: d.SubtotalCents,
		DiscountCents: d.DiscountCents,
		TotalCents:    d.TotalCents,
		Currency:      cur,
		Status:        status,
		PaymentStatus: paymentStatus,
		Payment: order.PaymentSnapshot{
			Method:    d.Payment.Method,
			CardLast4: d.Payment.CardLast4,
		},
		Mirror: order.Mirror{
			State:     order.MirrorState(d.Mirror.State),
			Error:     d.Mirror.Error,
			UpdatedAt: d.Mirror.UpdatedAt,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// OrderDocFromModel converts service layer Order model to OrderDoc.
func OrderDocFromModel(o *order.Order) *OrderDoc {
	items := make([]OrderItemDoc, len(o.OrderItems))
	for i, item := range o.OrderItems {
		items[i] = OrderItemDoc{
			ProductId:    item.ProductID,
			ProductTitle: item.ProductTitle,
			Quantity:     item.Quantity,
			PriceCents:   item.PriceCents,
			Category:     item.Category,
		}
	}

	return &OrderDoc{
		SQLOrderId: o.SQLOrderID,
		UserId:     o.UserID,
		Customer: CustomerDoc{
			Name:    o.Customer.Name,
			Email:   o.Customer.Email,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
		},
		Items:         items,
		SubtotalCents: o.SubtotalCents,
		DiscountCents: o.DiscountCents,
		TotalCents:    o.TotalCents,
		Currency:      o.Currency.String(),
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		Payment: PaymentDoc{
			Method:    o.Payment.Method,
			CardLast4: o.Payment.CardLast4,
		},
		Mirror: MirrorDoc{
			State:     string(o.Mirror.State),
			Error:     o.Mirror.Error,
			UpdatedAt: o.Mirror.UpdatedAt,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// MongoOrderDocRepository stores primary order records in MongoDB.
type MongoOrderDocRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderDocRepository creates a new MongoDB order record repository.
func NewMongoOrderDocRepository(client *mongodb.Client) *MongoOrderDocRepository {
	return &MongoOrderDocRepository{
		collection: client.Database().Collection(collectionName),
	}
}

// Insert writes the primary order record and returns the generated id.
func (r *MongoOrderDocRepository) Insert(ctx context.Context, o *order.Order) (string, error) {
	doc := OrderDocFromModel(o)

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert order record: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	return id.Hex(), nil
}

// FindByID returns the order with the given id, or order.ErrNotFound.
func (r *MongoOrderDocRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", order.ErrNotFound, id)
	}

	var doc OrderDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order record: %w", err)
	}

	return doc.ToModel()
}

// FindByMirrorState returns orders whose relational mirror is in the
// given state and was last touched before the cutoff.
func (r *MongoOrderDocRepository) FindByMirrorState(
	ctx context.Context,
	state order.MirrorState,
	before time.Time,
	limit int,
) ([]order.Order, error) {
	filter := bson.M{
		"mirror.state":     string(state),
		"mirror.updatedAt": bson.M{"$lte": before},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "mirror.updatedAt", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query order records: %w", err)
	}
	defer cursor.Close(ctx)

	var result []order.Order
	for cursor.Next(ctx) {
		var doc OrderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order record: %w", err)
		}
		model, err := doc.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order record to model: %w", err)
		}
		result = append(result, *model)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration error: %w", err)
	}

	return result, nil
}

// AttachSQLOrderID records the relational order id on the primary record
// and marks the mirror synced. A plain $set, safe to retry.
func (r *MongoOrderDocRepository) AttachSQLOrderID(ctx context.Context, id string, sqlOrderID int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", order.ErrNotFound, id)
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"sqlOrderId":       sqlOrderID,
		"mirror.state":     string(order.MirrorStateSynced),
		"mirror.error":     "",
		"mirror.updatedAt": now,
		"updatedAt":        now,
	}}

	res, err := r.collection.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("failed to attach relational order id: %w", err)
	}
	if res.MatchedCount == 0 {
		return order.ErrNotFound
	}

	return nil
}

// SetMirrorState records the mirror outcome on the primary record.
func (r *MongoOrderDocRepository) SetMirrorState(ctx context.Context, id string, state order.MirrorState, errMsg string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", order.ErrNotFound, id)
	}

	update := bson.M{"$set": bson.M{
		"mirror.state":     string(state),
		"mirror.error":     errMsg,
		"mirror.updatedAt": time.Now(),
	}}

	res, err := r.collection.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("failed to set mirror state: %w", err)
	}
	if res.MatchedCount == 0 {
		return order.ErrNotFound
	}

	return nil
}

// UpdateStatus sets the order status and returns the updated record.
func (r *MongoOrderDocRepository) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	return r.updateOne(ctx, id, bson.M{"status": status.String()})
}

// UpdatePaymentStatus sets the payment status and returns the updated record.
func (r *MongoOrderDocRepository) UpdatePaymentStatus(ctx context.Context, id string, status order.PaymentStatus) (*order.Order, error) {
	return r.updateOne(ctx, id, bson.M{"paymentStatus": status.String()})
}

func (r *MongoOrderDocRepository) updateOne(ctx context.Context, id string, fields bson.M) (*order.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", order.ErrNotFound, id)
	}

	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc OrderDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order record: %w", err)
	}

	return doc.ToModel()
}
