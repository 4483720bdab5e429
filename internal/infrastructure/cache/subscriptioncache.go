package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"gavel/internal/application/billing/usecases"
	"gavel/internal/domain/billing"
	vo "gavel/internal/domain/billing/valueobjects"
	"gavel/internal/shared/logger"
)

const (
	activeSubKeyPrefix = "billing:active_sub:"
	baseActiveSubTTL   = 10 * time.Minute
	activeSubTTLJitter = 5 * time.Minute // TTL range: 10-15 min (anti-stampede)
)

// cachedActiveSubscription is the wire form of an active subscription plus
// its plan. Domain entities are reconstructed on read.
type cachedActiveSubscription struct {
	SubscriptionID uint      `json:"subscription_id"`
	UserID         uint      `json:"user_id"`
	PlanID         uint      `json:"plan_id"`
	Status         string    `json:"status"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	PaymentID      string    `json:"payment_id"`
	Amount         int64     `json:"amount"`
	SubCreatedAt   time.Time `json:"sub_created_at"`
	SubUpdatedAt   time.Time `json:"sub_updated_at"`

	PlanName         string    `json:"plan_name"`
	PlanDescription  string    `json:"plan_description"`
	PlanPrice        int64     `json:"plan_price"`
	PlanInterval     string    `json:"plan_interval"`
	PlanCreditAmount int       `json:"plan_credit_amount"`
	PlanFeatures     []string  `json:"plan_features"`
	PlanStatus       string    `json:"plan_status"`
	PlanCreatedAt    time.Time `json:"plan_created_at"`
	PlanUpdatedAt    time.Time `json:"plan_updated_at"`
}

// RedisSubscriptionCache caches each user's active subscription with its plan.
type RedisSubscriptionCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisSubscriptionCache(client *redis.Client, logger logger.Interface) *RedisSubscriptionCache {
	return &RedisSubscriptionCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisSubscriptionCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", activeSubKeyPrefix, userID)
}

// GetActive returns the cached active subscription. The second return value
// reports a cache hit; a miss is not an error.
func (c *RedisSubscriptionCache) GetActive(ctx context.Context, userID uint) (*usecases.ActiveSubscription, bool, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read subscription cache: %w", err)
	}

	var cached cachedActiveSubscription
	if err := json.Unmarshal(data, &cached); err != nil {
		// A corrupt entry is dropped and treated as a miss.
		c.logger.Warnw("dropping corrupt subscription cache entry", "user_id", userID, "error", err)
		c.client.Del(ctx, c.key(userID))
		return nil, false, nil
	}

	result, err := c.toActiveSubscription(&cached)
	if err != nil {
		c.logger.Warnw("dropping unreadable subscription cache entry", "user_id", userID, "error", err)
		c.client.Del(ctx, c.key(userID))
		return nil, false, nil
	}

	return result, true, nil
}

func (c *RedisSubscriptionCache) SetActive(ctx context.Context, userID uint, sub *usecases.ActiveSubscription) error {
	if sub == nil || sub.Subscription == nil {
		return nil
	}

	cached := c.fromActiveSubscription(sub)
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription cache entry: %w", err)
	}

	ttl := baseActiveSubTTL + rand.N(activeSubTTLJitter)
	if err := c.client.Set(ctx, c.key(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write subscription cache: %w", err)
	}

	return nil
}

func (c *RedisSubscriptionCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate subscription cache: %w", err)
	}
	return nil
}

func (c *RedisSubscriptionCache) fromActiveSubscription(sub *usecases.ActiveSubscription) *cachedActiveSubscription {
	cached := &cachedActiveSubscription{
		SubscriptionID: sub.Subscription.ID(),
		UserID:         sub.Subscription.UserID(),
		PlanID:         sub.Subscription.PlanID(),
		Status:         sub.Subscription.Status().String(),
		StartDate:      sub.Subscription.StartDate(),
		EndDate:        sub.Subscription.EndDate(),
		PaymentID:      sub.Subscription.PaymentID(),
		Amount:         sub.Subscription.Amount(),
		SubCreatedAt:   sub.Subscription.CreatedAt(),
		SubUpdatedAt:   sub.Subscription.UpdatedAt(),
	}

	if sub.Plan != nil {
		cached.PlanName = sub.Plan.Name()
		cached.PlanDescription = sub.Plan.Description()
		cached.PlanPrice = sub.Plan.Price()
		cached.PlanInterval = sub.Plan.Interval().String()
		cached.PlanCreditAmount = sub.Plan.CreditAmount()
		cached.PlanFeatures = sub.Plan.Features()
		cached.PlanStatus = string(sub.Plan.Status())
		cached.PlanCreatedAt = sub.Plan.CreatedAt()
		cached.PlanUpdatedAt = sub.Plan.UpdatedAt()
	}

	return cached
}

func (c *RedisSubscriptionCache) toActiveSubscription(cached *cachedActiveSubscription) (*usecases.ActiveSubscription, error) {
	sub, err := billing.ReconstructSubscription(
		cached.SubscriptionID,
		cached.UserID,
		cached.PlanID,
		vo.SubscriptionStatus(cached.Status),
		cached.StartDate,
		cached.EndDate,
		cached.PaymentID,
		cached.Amount,
		cached.SubCreatedAt,
		cached.SubUpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct cached subscription: %w", err)
	}

	result := &usecases.ActiveSubscription{Subscription: sub}

	if cached.PlanName != "" {
		interval, err := vo.ParseInterval(cached.PlanInterval)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cached plan interval: %w", err)
		}
		plan, err := billing.ReconstructPlan(
			cached.PlanID,
			cached.PlanName,
			cached.PlanDescription,
			cached.PlanPrice,
			interval,
			cached.PlanCreditAmount,
			cached.PlanFeatures,
			cached.PlanStatus,
			cached.PlanCreatedAt,
			cached.PlanUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct cached plan: %w", err)
		}
		result.Plan = plan
	}

	return result, nil
}
