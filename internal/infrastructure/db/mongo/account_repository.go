package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

const collectionAccounts = "accounts"

// AccountRepository stores NGOs, NGO admins and super admins in one collection.
type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionAccounts)}
}

type mongoAddress struct {
	Street     string `bson:"street"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	PostalCode string `bson:"postal_code"`
	Country    string `bson:"country"`
}

type mongoAccount struct {
	ID                 string           `bson:"_id"`
	Name               string           `bson:"name"`
	Email              string           `bson:"email"`
	PasswordHash       string           `bson:"password_hash"`
	ContactPhone       string           `bson:"contact_phone,omitempty"`
	Description        string           `bson:"description,omitempty"`
	Role               string           `bson:"role"`
	Status             string           `bson:"status"`
	RescueCategories   []string         `bson:"rescue_categories,omitempty"`
	RescueDistance     int              `bson:"rescue_distance,omitempty"`
	ServiceHours       string           `bson:"service_hours,omitempty"`
	RegistrationNumber string           `bson:"registration_number,omitempty"`
	Address            *mongoAddress    `bson:"address,omitempty"`
	Location           *domain.GeoPoint `bson:"location,omitempty"`
	NgoID              string           `bson:"ngo_id,omitempty"`
	Permissions        []string         `bson:"permissions,omitempty"`
	Token              string           `bson:"token,omitempty"`
	CreatedAt          int64            `bson:"created_at"`
	UpdatedAt          int64            `bson:"updated_at"`
}

func toAccountDoc(a *domain.Account) mongoAccount {
	doc := mongoAccount{
		ID:                 a.ID,
		Name:               a.Name,
		Email:              a.Email,
		PasswordHash:       a.PasswordHash,
		ContactPhone:       a.ContactPhone,
		Description:        a.Description,
		Role:               string(a.Role),
		Status:             string(a.Status),
		RescueCategories:   a.RescueCategories,
		RescueDistance:     a.RescueDistance,
		ServiceHours:       a.ServiceHours,
		RegistrationNumber: a.RegistrationNumber,
		NgoID:              a.NgoID,
		Token:              a.Token,
		CreatedAt:          a.CreatedAt.Unix(),
		UpdatedAt:          a.UpdatedAt.Unix(),
	}
	if a.Address != nil {
		doc.Address = &mongoAddress{
			Street:     a.Address.Street,
			City:       a.Address.City,
			State:      a.Address.State,
			PostalCode: a.Address.PostalCode,
			Country:    a.Address.Country,
		}
	}
	if a.Location != nil {
		p := a.Location.GeoPoint()
		doc.Location = &p
	}
	for _, p := range a.Permissions {
		doc.Permissions = append(doc.Permissions, string(p))
	}
	return doc
}

func (d mongoAccount) toDomain() *domain.Account {
	a := &domain.Account{
		ID:                 d.ID,
		Name:               d.Name,
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		ContactPhone:       d.ContactPhone,
		Description:        d.Description,
		Role:               domain.Role(d.Role),
		Status:             domain.AccountStatus(d.Status),
		RescueCategories:   d.RescueCategories,
		RescueDistance:     d.RescueDistance,
		ServiceHours:       d.ServiceHours,
		RegistrationNumber: d.RegistrationNumber,
		NgoID:              d.NgoID,
		Token:              d.Token,
		CreatedAt:          unixToTime(d.CreatedAt),
		UpdatedAt:          unixToTime(d.UpdatedAt),
	}
	if d.Address != nil {
		a.Address = &domain.Address{
			Street:     d.Address.Street,
			City:       d.Address.City,
			State:      d.Address.State,
			PostalCode: d.Address.PostalCode,
			Country:    d.Address.Country,
		}
	}
	if d.Location != nil {
		if loc, ok := d.Location.Location(); ok {
			a.Location = &loc
		}
	}
	for _, p := range d.Permissions {
		a.Permissions = append(a.Permissions, domain.Permission(p))
	}
	return a
}

func accountFilter(f ports.AccountFilter) bson.M {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = string(f.Role)
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	return filter
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toAccountDoc(a)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAccount
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByToken(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"token": token})
}

// SetToken stores the current session token. An empty token unsets the field
// so the sparse unique index keeps ignoring logged-out accounts.
func (r *AccountRepository) SetToken(ctx context.Context, id, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"token": token, "updated_at": time.Now().Unix()},
	}
	if token == "" {
		update = bson.M{
			"$unset": bson.M{"token": ""},
			"$set":   bson.M{"updated_at": time.Now().Unix()},
		}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// UpdateStatus applies a status change only while the account is still in from.
func (r *AccountRepository) UpdateStatus(ctx context.Context, id string, from, to domain.AccountStatus) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "updated_at": time.Now().Unix()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoAccount
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update account status: %w", err)
	}

	n, cerr := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if cerr != nil {
		return nil, fmt.Errorf("update account status: %w", cerr)
	}
	if n == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return nil, domain.ErrInvalidTransition
}

func (r *AccountRepository) List(ctx context.Context, f ports.AccountFilter) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, accountFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	var docs []mongoAccount
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	out := make([]*domain.Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *AccountRepository) Count(ctx context.Context, f ports.AccountFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, accountFilter(f))
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the unique login and session indexes plus the geo index.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
