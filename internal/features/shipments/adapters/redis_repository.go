package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cargoconnect/internal/features/shipments/domain"

	"github.com/redis/go-redis/v9"
)

const (
	// docKeyPrefix prefixes the JSON document of each shipment, keyed by id.
	docKeyPrefix = "shipments:doc:"
	// codeIndexKey is the hash mapping tracking_code -> id. HSETNX on this
	// hash is the unique constraint for tracking codes.
	codeIndexKey = "shipments:code"
	// recentKey is the sorted set of ids scored by last_update (unix milli),
	// used for recency-ordered listing.
	recentKey = "shipments:recent"
)

// updateScript applies a status/location update in one atomic server-side
// step: decode the stored document, append the timeline entry, replace the
// location, refresh last_update and reindex. Running inside Redis makes the
// timeline append safe under concurrent updates to the same tracking code.
//
// KEYS: code index, recency zset.
// ARGV: code, doc key prefix, status (may be empty), timeline entry JSON,
// location JSON (may be empty), last_update, recency score.
var updateScript = redis.NewScript(`
local id = redis.call('HGET', KEYS[1], ARGV[1])
if not id then
  return false
end
local dockey = ARGV[2] .. id
local raw = redis.call('GET', dockey)
if not raw then
  return false
end
local doc = cjson.decode(raw)
if ARGV[3] ~= '' then
  doc['status'] = ARGV[3]
  table.insert(doc['timeline'], cjson.decode(ARGV[4]))
end
if ARGV[5] ~= '' then
  doc['location'] = cjson.decode(ARGV[5])
end
doc['last_update'] = ARGV[6]
raw = cjson.encode(doc)
redis.call('SET', dockey, raw)
redis.call('ZADD', KEYS[2], ARGV[7], id)
return raw
`)

// proofScript sets the proof-of-delivery reference atomically with respect
// to concurrent status updates.
//
// KEYS: code index, recency zset.
// ARGV: code, doc key prefix, proof URL, last_update, recency score.
var proofScript = redis.NewScript(`
local id = redis.call('HGET', KEYS[1], ARGV[1])
if not id then
  return false
end
local dockey = ARGV[2] .. id
local raw = redis.call('GET', dockey)
if not raw then
  return false
end
local doc = cjson.decode(raw)
doc['proof_of_delivery_url'] = ARGV[3]
doc['last_update'] = ARGV[4]
redis.call('SET', dockey, cjson.encode(doc))
redis.call('ZADD', KEYS[2], ARGV[5], id)
return 1
`)

// RedisShipmentRepository implements ports.ShipmentRepository on Redis.
// Each shipment is one JSON document keyed by its server-generated id, with
// a unique secondary index on tracking_code.
type RedisShipmentRepository struct {
	client *redis.Client
}

// NewRedisShipmentRepository creates a new RedisShipmentRepository.
func NewRedisShipmentRepository(client *redis.Client) *RedisShipmentRepository {
	return &RedisShipmentRepository{
		client: client,
	}
}

// Insert persists a new shipment. The tracking code is claimed first via
// HSETNX so a concurrent insert with the same code loses cleanly with
// domain.ErrTrackingCodeTaken.
func (r *RedisShipmentRepository) Insert(ctx context.Context, s *domain.Shipment) error {
	claimed, err := r.client.HSetNX(ctx, codeIndexKey, s.TrackingCode, s.ID).Result()
	if err != nil {
		return fmt.Errorf("failed to claim tracking code %s: %w", s.TrackingCode, err)
	}
	if !claimed {
		return domain.ErrTrackingCodeTaken
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}

	if err := r.client.Set(ctx, docKeyPrefix+s.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store shipment %s: %w", s.ID, err)
	}

	if err := r.client.ZAdd(ctx, recentKey, redis.Z{
		Score:  float64(s.LastUpdate.UnixMilli()),
		Member: s.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to index shipment %s: %w", s.ID, err)
	}

	return nil
}

// FindByCode returns the shipment carrying the tracking code.
func (r *RedisShipmentRepository) FindByCode(ctx context.Context, code string) (*domain.Shipment, error) {
	id, err := r.client.HGet(ctx, codeIndexKey, code).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tracking code %s: %w", code, err)
	}

	raw, err := r.client.Get(ctx, docKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment %s: %w", id, err)
	}

	var s domain.Shipment
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipment %s: %w", id, err)
	}

	return &s, nil
}

// List returns up to limit shipments ordered by last_update descending.
func (r *RedisShipmentRepository) List(ctx context.Context, limit int) ([]domain.Shipment, error) {
	ids, err := r.client.ZRevRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Shipment{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = docKeyPrefix + id
	}

	raws, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load shipments: %w", err)
	}

	shipments := make([]domain.Shipment, 0, len(raws))
	for _, raw := range raws {
		text, ok := raw.(string)
		if !ok {
			continue
		}
		var s domain.Shipment
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shipment: %w", err)
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

// Update applies an optional status (appending one timeline entry) and an
// optional wholesale location replacement, always refreshing last_update.
func (r *RedisShipmentRepository) Update(ctx context.Context, code string, status *domain.Status, location *domain.Location, at time.Time) (*domain.Shipment, error) {
	statusArg := ""
	entryArg := "{}"
	if status != nil {
		statusArg = string(*status)
		entry, err := json.Marshal(domain.TimelineEntry{Status: *status, Timestamp: at})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal timeline entry: %w", err)
		}
		entryArg = string(entry)
	}

	locationArg := ""
	if location != nil {
		loc, err := json.Marshal(location)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal location: %w", err)
		}
		locationArg = string(loc)
	}

	raw, err := updateScript.Run(ctx, r.client,
		[]string{codeIndexKey, recentKey},
		code, docKeyPrefix, statusArg, entryArg, locationArg,
		at.UTC().Format(time.RFC3339Nano),
		strconv.FormatInt(at.UnixMilli(), 10),
	).Text()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update shipment %s: %w", code, err)
	}

	var s domain.Shipment
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated shipment: %w", err)
	}

	return &s, nil
}

// SetProofURL sets the proof-of-delivery reference on the shipment.
func (r *RedisShipmentRepository) SetProofURL(ctx context.Context, code, url string, at time.Time) error {
	err := proofScript.Run(ctx, r.client,
		[]string{codeIndexKey, recentKey},
		code, docKeyPrefix, url,
		at.UTC().Format(time.RFC3339Nano),
		strconv.FormatInt(at.UnixMilli(), 10),
	).Err()
	if errors.Is(err, redis.Nil) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to set proof url for %s: %w", code, err)
	}
	return nil
}
