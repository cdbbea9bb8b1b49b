package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"afterhourshvac/internal/config"
	"afterhourshvac/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix         = "hvac"
	pendingBookingKey = "pendingBooking"

	PendingBookingTTL = 2 * time.Hour
	ListTTL           = 10 * time.Minute
	StatsTTL          = 15 * time.Minute
)

// Cached resource names. They double as the X-Invalidate header values.
const (
	ResourceBookings     = "bookings"
	ResourceUsers        = "users"
	ResourceApplications = "job-applications"
	ResourceBlogPosts    = "blog-posts"
	ResourceTeam         = "team"
	ResourceQuotes       = "quotes"
)

type CacheService interface {
	// Session management
	SetSession(ctx context.Context, sessionID string, user models.SessionUser, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*models.SessionUser, error)
	DeleteSession(ctx context.Context, sessionID string) error
	RevokeUserSessions(ctx context.Context, userID uuid.UUID) error

	// Visitor storage for the booking modal
	StashPendingBooking(ctx context.Context, visitorID string, pending *models.PendingBooking) error
	LoadPendingBooking(ctx context.Context, visitorID string) (*models.PendingBooking, error)
	ClearPendingBooking(ctx context.Context, visitorID string) error

	// List caching. Readers take the generation before querying the
	// database and pass it to GetList and SetList.
	ListGeneration(ctx context.Context, resource string) (int64, error)
	GetList(ctx context.Context, resource, variant string, gen int64, dest any) (bool, error)
	SetList(ctx context.Context, resource, variant string, gen int64, value any) error
	Invalidate(ctx context.Context, resource string) error

	// Dashboard caching
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	SetDashboardStats(ctx context.Context, stats *models.DashboardStats) error

	Ping(ctx context.Context) error
}

var errStaleGeneration = errors.New("list generation changed")

type redisCacheService struct {
	client *redis.Client
}

// NewRedisClient builds the client from config. It does not dial.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisCacheService(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, sessionID)
}

func userSessionsKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:user-sessions:%s", keyPrefix, userID)
}

func pendingKey(visitorID string) string {
	return fmt.Sprintf("%s:pending:%s:%s", keyPrefix, visitorID, pendingBookingKey)
}

func listKey(resource, variant string, gen int64) string {
	return fmt.Sprintf("%s:list:%s:%d:%s", keyPrefix, resource, gen, variant)
}

func generationKey(resource string) string {
	return fmt.Sprintf("%s:gen:%s", keyPrefix, resource)
}

func listIndexKey(resource string) string {
	return fmt.Sprintf("%s:list:%s", keyPrefix, resource)
}

func statsKey() string {
	return keyPrefix + ":stats:dashboard"
}

func (r *redisCacheService) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// SetSession stores the session and records it under its user so every
// session of that user can be revoked at once.
func (r *redisCacheService) SetSession(ctx context.Context, sessionID string, user models.SessionUser, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	index := userSessionsKey(user.ID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(sessionID), data, ttl)
		pipe.SAdd(ctx, index, sessionID)
		if ttl > 0 {
			pipe.Expire(ctx, index, ttl)
		}
		return nil
	})
	return err
}

// GetSession returns nil, nil when the session is unknown or revoked.
func (r *redisCacheService) GetSession(ctx context.Context, sessionID string) (*models.SessionUser, error) {
	var user models.SessionUser
	found, err := r.getJSON(ctx, sessionKey(sessionID), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *redisCacheService) DeleteSession(ctx context.Context, sessionID string) error {
	user, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(sessionID))
		pipe.SRem(ctx, userSessionsKey(user.ID), sessionID)
		return nil
	})
	return err
}

// RevokeUserSessions deletes every live session of userID.
func (r *redisCacheService) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	index := userSessionsKey(userID)
	ids, err := r.client.SMembers(ctx, index).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, index)
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisCacheService) StashPendingBooking(ctx context.Context, visitorID string, pending *models.PendingBooking) error {
	return r.setJSON(ctx, pendingKey(visitorID), pending, PendingBookingTTL)
}

// LoadPendingBooking returns nil, nil when nothing is stashed.
func (r *redisCacheService) LoadPendingBooking(ctx context.Context, visitorID string) (*models.PendingBooking, error) {
	var pending models.PendingBooking
	found, err := r.getJSON(ctx, pendingKey(visitorID), &pending)
	if err != nil || !found {
		return nil, err
	}
	return &pending, nil
}

func (r *redisCacheService) ClearPendingBooking(ctx context.Context, visitorID string) error {
	return r.client.Del(ctx, pendingKey(visitorID)).Err()
}

// ListGeneration returns the resource's invalidation counter, 0 before the
// first Invalidate.
func (r *redisCacheService) ListGeneration(ctx context.Context, resource string) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey(resource)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetList decodes a cached listing into dest and reports whether it was there.
func (r *redisCacheService) GetList(ctx context.Context, resource, variant string, gen int64, dest any) (bool, error) {
	return r.getJSON(ctx, listKey(resource, variant, gen), dest)
}

// SetList caches a listing read at generation gen. The write is dropped when
// an Invalidate has run since, so a slow reader cannot put deleted rows back.
// The key is also recorded in the resource index so Invalidate can drop every
// variant without a KEYS scan.
func (r *redisCacheService) SetList(ctx context.Context, resource, variant string, gen int64, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	key := listKey(resource, variant, gen)
	index := listIndexKey(resource)
	genKey := generationKey(resource)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ListTTL)
			pipe.SAdd(ctx, index, key)
			pipe.Expire(ctx, index, ListTTL)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate bumps the generation and drops every cached variant of resource.
func (r *redisCacheService) Invalidate(ctx context.Context, resource string) error {
	if err := r.client.Incr(ctx, generationKey(resource)).Err(); err != nil {
		return err
	}
	index := listIndexKey(resource)
	keys, err := r.client.SMembers(ctx, index).Result()
	if err != nil {
		return err
	}
	keys = append(keys, index)
	if resource == ResourceBookings || resource == ResourceApplications || resource == ResourceQuotes ||
		resource == ResourceBlogPosts || resource == ResourceTeam {
		keys = append(keys, statsKey())
	}
	return r.client.Del(ctx, keys...).Err()
}

// GetDashboardStats returns nil, nil on a miss.
func (r *redisCacheService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	found, err := r.getJSON(ctx, statsKey(), &stats)
	if err != nil || !found {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetDashboardStats(ctx context.Context, stats *models.DashboardStats) error {
	return r.setJSON(ctx, statsKey(), stats, StatsTTL)
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
