package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"hrforge-backend/shared/config"
)

type CacheManager struct {
	client *redis.Client
	ctx    context.Context
}

// MembershipCacheData is the cached result of a tenant-membership lookup
// made by the tenant resolver.
type MembershipCacheData struct {
	IsMember     bool      `json:"is_member"`
	EmploymentID string    `json:"employment_id,omitempty"`
	RoleID       string    `json:"role_id,omitempty"`
	Status       string    `json:"status,omitempty"`
	CachedAt     time.Time `json:"cached_at"`
}

var globalCacheManager *CacheManager

// InitCacheManager initializes the global cache manager
func InitCacheManager() error {
	cfg := config.GetConfig()

	redisDB, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		log.Printf("❌ Invalid Redis DB number: %s, using default 0", cfg.RedisDB)
		redisDB = 0
	}

	// Create Redis client
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       redisDB,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	globalCacheManager = &CacheManager{
		client: client,
		ctx:    ctx,
	}

	log.Println("✅ Redis cache manager initialized")
	return nil
}

// GetCacheManager returns the global cache manager, nil when redis is not
// configured. Callers must treat a nil manager as a cache miss.
func GetCacheManager() *CacheManager {
	return globalCacheManager
}

func membershipKey(userID, organizationID string) string {
	return fmt.Sprintf("membership:%s:%s", organizationID, userID)
}

// GetMembership returns the cached membership lookup, ok=false on miss.
func (cm *CacheManager) GetMembership(userID, organizationID string) (*MembershipCacheData, bool) {
	raw, err := cm.client.Get(cm.ctx, membershipKey(userID, organizationID)).Result()
	if err != nil {
		return nil, false
	}

	var data MembershipCacheData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, false
	}
	return &data, true
}

// SetMembership caches a membership lookup with the configured TTL.
func (cm *CacheManager) SetMembership(userID, organizationID string, data MembershipCacheData) {
	data.CachedAt = time.Now().UTC()
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}

	ttl := time.Duration(config.GetConfig().GetMembershipCacheTTLSeconds()) * time.Second
	if err := cm.client.Set(cm.ctx, membershipKey(userID, organizationID), raw, ttl).Err(); err != nil {
		log.Printf("⚠️ Failed to cache membership for user %s: %v", userID, err)
	}
}

// InvalidateMembership drops the cached lookup for one (user, org) pair.
// Called on every employment mutation so the resolver never trusts a stale
// membership.
func (cm *CacheManager) InvalidateMembership(userID, organizationID string) {
	if err := cm.client.Del(cm.ctx, membershipKey(userID, organizationID)).Err(); err != nil {
		log.Printf("⚠️ Failed to invalidate membership cache for user %s: %v", userID, err)
	}
}

// InvalidateOrganization drops every cached membership of one tenant, used
// after bulk changes (provisioning, role deletions).
func (cm *CacheManager) InvalidateOrganization(organizationID string) {
	pattern := fmt.Sprintf("membership:%s:*", organizationID)
	iter := cm.client.Scan(cm.ctx, 0, pattern, 0).Iterator()
	for iter.Next(cm.ctx) {
		cm.client.Del(cm.ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("⚠️ Failed to invalidate organization cache %s: %v", organizationID, err)
	}
}

// Close closes the redis connection
func (cm *CacheManager) Close() error {
	return cm.client.Close()
}
