// Package store - MongoDB backend
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

// Collection names.
const (
	collCarriers     = "carriers"
	collRateCards    = "rate_cards"
	collRules        = "eligibility_rules"
	collZoneConfigs  = "zone_configs"
	collAccessorials = "accessorials"
)

// Mongo is a MongoDB-backed configuration store.
type Mongo struct {
	db *mongo.Database
}

// NewMongo connects to MongoDB and returns a configuration store over
// the given database.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Internal("mongo connect failed", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Internal("mongo ping failed", err)
	}
	return &Mongo{db: client.Database(database)}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}

// CarrierIDs returns the ids of every enabled carrier, for shopping.
func (m *Mongo) CarrierIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := m.db.Collection(collCarriers).Find(ctx, bson.M{"enabled": true}, opts)
	if err != nil {
		return nil, errors.Internal("carrier list query failed", err)
	}

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("carrier list decode failed", err)
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// GetCarrier implements engine.CarrierRegistry.
func (m *Mongo) GetCarrier(ctx context.Context, carrierID string) (*types.Carrier, error) {
	var c types.Carrier
	err := m.db.Collection(collCarriers).FindOne(ctx, bson.M{"_id": carrierID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFound("carrier", carrierID)
	}
	if err != nil {
		return nil, errors.Internal("carrier lookup failed", err)
	}
	return &c, nil
}

// GetRateCards implements engine.RateCardSource.
func (m *Mongo) GetRateCards(ctx context.Context, carrierID string, enabledOnly bool) ([]types.RateCard, error) {
	filter := bson.M{"carrier_id": carrierID}
	if enabledOnly {
		filter["enabled"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.db.Collection(collRateCards).Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Internal("rate card query failed", err)
	}

	var docs []rateCardDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("rate card decode failed", err)
	}

	cards := make([]types.RateCard, 0, len(docs))
	for _, d := range docs {
		cards = append(cards, d.toDomain())
	}
	return cards, nil
}

// GetEligibilityRules implements engine.RuleSource.
func (m *Mongo) GetEligibilityRules(ctx context.Context, carrierID string, kind types.RuleKind) ([]types.EligibilityRule, error) {
	filter := bson.M{
		"carrier_id":  carrierID,
		"restriction": bson.M{"$in": restrictionsForKind(kind)},
	}

	cursor, err := m.db.Collection(collRules).Find(ctx, filter)
	if err != nil {
		return nil, errors.Internal("eligibility rule query failed", err)
	}

	var rules []types.EligibilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, errors.Internal("eligibility rule decode failed", err)
	}
	return rules, nil
}

// GetZoneConfig implements engine.ZoneConfigSource.
func (m *Mongo) GetZoneConfig(ctx context.Context, carrierID string) (*types.ZoneConfig, error) {
	var cfg types.ZoneConfig
	err := m.db.Collection(collZoneConfigs).FindOne(ctx, bson.M{"_id": carrierID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Internal("zone config lookup failed", err)
	}
	return &cfg, nil
}

// GetAccessorials implements engine.AccessorialSource.
func (m *Mongo) GetAccessorials(ctx context.Context, carrierID string) ([]types.AccessorialDef, error) {
	cursor, err := m.db.Collection(collAccessorials).Find(ctx, bson.M{"carrier_id": carrierID})
	if err != nil {
		return nil, errors.Internal("accessorial query failed", err)
	}

	var docs []accessorialDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("accessorial decode failed", err)
	}

	defs := make([]types.AccessorialDef, 0, len(docs))
	for _, d := range docs {
		defs = append(defs, d.toDomain())
	}
	return defs, nil
}

func restrictionsForKind(kind types.RuleKind) []types.RestrictionType {
	if kind == types.RuleKindWeight {
		return []types.RestrictionType{types.RestrictMinWeight, types.RestrictMaxWeight}
	}
	return []types.RestrictionType{
		types.RestrictMinLength, types.RestrictMaxLength,
		types.RestrictMinWidth, types.RestrictMaxWidth,
		types.RestrictMinHeight, types.RestrictMaxHeight,
	}
}

// Money is stored as plain numbers in the documents and converted to
// decimal at the boundary, so the rest of the system never does float
// arithmetic on charges.

type rateCardDoc struct {
	ID              string           `bson:"_id"`
	CarrierID       string           `bson:"carrier_id"`
	Name            string           `bson:"name"`
	RateType        string           `bson:"rate_type"`
	Currency        string           `bson:"currency"`
	Enabled         bool             `bson:"enabled"`
	CreatedAt       time.Time        `bson:"created_at"`
	CostMarginRatio *float64         `bson:"cost_margin_ratio,omitempty"`
	SkidRates       []skidRateDoc    `bson:"skid_rates,omitempty"`
	WeightBreaks    []weightBreakDoc `bson:"weight_breaks,omitempty"`
	Zones           []zoneRateDoc    `bson:"zones,omitempty"`
	FlatRate        float64          `bson:"flat_rate,omitempty"`
}

type skidRateDoc struct {
	SkidCount int      `bson:"skid_count"`
	Charge    float64  `bson:"charge"`
	Cost      *float64 `bson:"cost,omitempty"`
	AltName   string   `bson:"alternate_carrier,omitempty"`
	AltCost   float64  `bson:"alternate_cost,omitempty"`
}

type weightBreakDoc struct {
	MinWeight     float64 `bson:"min_weight"`
	MaxWeight     float64 `bson:"max_weight"`
	PerUnitRate   float64 `bson:"per_unit_rate"`
	MinimumCharge float64 `bson:"minimum_charge"`
}

type zoneRateDoc struct {
	FromZone      string  `bson:"from_zone"`
	ToZone        string  `bson:"to_zone"`
	BaseRate      float64 `bson:"base_rate"`
	PerWeightRate float64 `bson:"per_weight_rate"`
	MinimumCharge float64 `bson:"minimum_charge"`
}

type accessorialDoc struct {
	Code      string  `bson:"code"`
	Label     string  `bson:"label"`
	Kind      string  `bson:"kind"`
	Amount    float64 `bson:"amount"`
	CarrierID string  `bson:"carrier_id"`
}

func (d rateCardDoc) toDomain() types.RateCard {
	card := types.RateCard{
		ID:        d.ID,
		CarrierID: d.CarrierID,
		Name:      d.Name,
		RateType:  types.RateType(d.RateType),
		Currency:  types.Currency(d.Currency),
		Enabled:   d.Enabled,
		CreatedAt: d.CreatedAt,
		FlatRate:  decimal.NewFromFloat(d.FlatRate),
	}
	if d.CostMarginRatio != nil {
		ratio := decimal.NewFromFloat(*d.CostMarginRatio)
		card.CostMarginRatio = &ratio
	}
	for _, s := range d.SkidRates {
		row := types.SkidRate{
			SkidCount: s.SkidCount,
			Charge:    decimal.NewFromFloat(s.Charge),
		}
		if s.Cost != nil {
			cost := decimal.NewFromFloat(*s.Cost)
			row.Cost = &cost
		}
		if s.AltName != "" {
			row.Alternate = &types.AlternateRate{
				Carrier: s.AltName,
				Cost:    decimal.NewFromFloat(s.AltCost),
			}
		}
		card.SkidRates = append(card.SkidRates, row)
	}
	for _, b := range d.WeightBreaks {
		card.WeightBreaks = append(card.WeightBreaks, types.WeightBreak{
			MinWeight:     b.MinWeight,
			MaxWeight:     b.MaxWeight,
			PerUnitRate:   decimal.NewFromFloat(b.PerUnitRate),
			MinimumCharge: decimal.NewFromFloat(b.MinimumCharge),
		})
	}
	for _, z := range d.Zones {
		card.Zones = append(card.Zones, types.ZoneRate{
			FromZone:      z.FromZone,
			ToZone:        z.ToZone,
			BaseRate:      decimal.NewFromFloat(z.BaseRate),
			PerWeightRate: decimal.NewFromFloat(z.PerWeightRate),
			MinimumCharge: decimal.NewFromFloat(z.MinimumCharge),
		})
	}
	return card
}

func (d accessorialDoc) toDomain() types.AccessorialDef {
	return types.AccessorialDef{
		Code:      d.Code,
		Label:     d.Label,
		Kind:      types.AccessorialKind(d.Kind),
		Amount:    decimal.NewFromFloat(d.Amount),
		CarrierID: d.CarrierID,
	}
}
