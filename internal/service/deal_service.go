package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dagmal/deal-service/internal/cache"
	"github.com/dagmal/deal-service/internal/domain"
	"github.com/dagmal/deal-service/internal/metrics"
	"github.com/dagmal/deal-service/internal/models"
	"github.com/dagmal/deal-service/internal/repository"
)

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrDealNotFound       = errors.New("deal_not_found")
	ErrRestaurantNotFound = errors.New("restaurant_not_found")
	ErrDealNotClaimable   = errors.New("deal_not_claimable")
	ErrDealSoldOut        = errors.New("deal_sold_out")
	ErrAlreadyClaimed     = errors.New("deal_already_claimed_today")
)

// Repos required by service (interfaces so tests can mock them)
type DealRepo interface {
	ListDeals(ctx context.Context, f repository.DealFilter) ([]domain.Deal, error)
	GetDeal(ctx context.Context, id uuid.UUID) (*domain.Deal, error)
	CreateDeal(ctx context.Context, d *domain.Deal) error
	GetAndLockDeal(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Deal, error)
	IncrementClaimed(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
}

type ClaimRepo interface {
	CountUserClaimsSince(ctx context.Context, tx *sql.Tx, dealID uuid.UUID, userID string, since time.Time) (int, error)
	CreateClaim(ctx context.Context, tx *sql.Tx, c *models.Claim) error
}

type RestaurantRepo interface {
	CreateRestaurant(ctx context.Context, r *models.Restaurant) error
	GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
}

type Options struct {
	Weights      domain.Weights
	PopularCount int
	// Location is where deal windows are evaluated; nil means time.Local.
	Location *time.Location
}

type DealService struct {
	db          *sql.DB // used for claim transactions
	deals       DealRepo
	claims      ClaimRepo
	restaurants RestaurantRepo
	popular     *cache.PopularCache

	weights      domain.Weights
	popularCount int
	loc          *time.Location
}

func NewDealService(db *sql.DB, deals DealRepo, claims ClaimRepo, restaurants RestaurantRepo, popular *cache.PopularCache, opts Options) *DealService {
	if opts.Weights == (domain.Weights{}) {
		opts.Weights = domain.DefaultWeights
	}
	if opts.PopularCount <= 0 {
		opts.PopularCount = domain.DefaultPopularCount
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &DealService{
		db:           db,
		deals:        deals,
		claims:       claims,
		restaurants:  restaurants,
		popular:      popular,
		weights:      opts.Weights,
		popularCount: opts.PopularCount,
		loc:          opts.Location,
	}
}

// moment resolves at (zero = now) in the service location.
func (s *DealService) moment(at time.Time) time.Time {
	return domain.ResolveMoment(at).In(s.loc)
}

func (s *DealService) views(deals []domain.Deal, at time.Time) []models.DealView {
	out := make([]models.DealView, 0, len(deals))
	for _, d := range deals {
		out = append(out, models.NewDealView(d, s.weights, at))
	}
	return out
}

func invalid(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, models.ValidationMessage(err))
}

// ListDeals returns deals in the canonical list order: live deals first, then
// by descending discount.
func (s *DealService) ListDeals(ctx context.Context, req models.ListDealsRequest) ([]models.DealView, error) {
	at := s.moment(req.At)
	deals, err := s.deals.ListDeals(ctx, repository.DealFilter{
		RestaurantID: req.RestaurantID,
		MinDiscount:  req.MinDiscount,
	})
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}

	switch req.Availability {
	case models.AvailabilityAvailable:
		deals = domain.FilterAvailable(deals, at)
	case models.AvailabilityUnavailable:
		deals = domain.FilterUnavailable(deals, at)
	case models.AvailabilityAll, "":
	default:
		return nil, fmt.Errorf("%w: availability %q", ErrInvalidRequest, req.Availability)
	}

	return s.views(domain.SortByAvailabilityThenDiscount(deals, at), at), nil
}

// PopularDeals returns the count most popular active deals; count 0 means the
// configured default. Requests for the current moment rank the cached active
// deals while the snapshot is fresh, so scores always match the request time.
func (s *DealService) PopularDeals(ctx context.Context, count int, at time.Time) ([]models.DealView, error) {
	if count == 0 {
		count = s.popularCount
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative", ErrInvalidRequest)
	}
	now := s.moment(at)

	if at.IsZero() && s.popular != nil {
		if active, ok := s.popular.Get(now); ok {
			return s.views(s.weights.TopPopular(active, count, now), now), nil
		}
	}

	deals, err := s.deals.ListDeals(ctx, repository.DealFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	return s.views(s.weights.TopPopular(deals, count, now), now), nil
}

// RefreshPopular reloads the cached snapshot of active deals.
func (s *DealService) RefreshPopular(ctx context.Context) error {
	timer := prometheus.NewTimer(metrics.PopularRefreshDuration)
	defer timer.ObserveDuration()

	deals, err := s.deals.ListDeals(ctx, repository.DealFilter{ActiveOnly: true})
	if err != nil {
		return fmt.Errorf("list deals: %w", err)
	}
	now := s.moment(time.Time{})
	s.popular.Set(deals, now)
	metrics.DealsAvailable.Set(float64(domain.CountAvailable(deals, now)))
	return nil
}

func (s *DealService) Stats(ctx context.Context, at time.Time) (models.DealStats, error) {
	now := s.moment(at)
	deals, err := s.deals.ListDeals(ctx, repository.DealFilter{})
	if err != nil {
		return models.DealStats{}, fmt.Errorf("list deals: %w", err)
	}
	return models.DealStats{
		Total:       len(deals),
		Available:   domain.CountAvailable(deals, now),
		Unavailable: len(domain.FilterUnavailable(deals, now)),
	}, nil
}

func (s *DealService) GetDeal(ctx context.Context, id uuid.UUID, at time.Time) (models.DealView, error) {
	d, err := s.deals.GetDeal(ctx, id)
	if err != nil {
		return models.DealView{}, fmt.Errorf("get deal: %w", err)
	}
	if d == nil {
		return models.DealView{}, ErrDealNotFound
	}
	return models.NewDealView(*d, s.weights, s.moment(at)), nil
}

// CheckClaim decides whether a user may claim d at at, given how many times
// they already claimed it today.
func CheckClaim(d domain.Deal, userClaimsToday int, at time.Time) error {
	if !domain.IsClaimableToday(d, at) {
		return ErrDealNotClaimable
	}
	if n, limited := d.Remaining(); limited && n == 0 {
		return ErrDealSoldOut
	}
	if userClaimsToday > 0 {
		return ErrAlreadyClaimed
	}
	return nil
}

func claimOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDealNotFound):
		return "not_found"
	case errors.Is(err, ErrDealNotClaimable):
		return "not_claimable"
	case errors.Is(err, ErrDealSoldOut):
		return "sold_out"
	case errors.Is(err, ErrAlreadyClaimed):
		return "already_claimed"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid"
	}
	return "error"
}

// ClaimDeal reserves a deal for a user. Claims made before the window opens
// are planned pickups. The deal row stays locked for the whole transaction so
// TotalLimit cannot be exceeded by concurrent claims.
func (s *DealService) ClaimDeal(ctx context.Context, req models.ClaimRequest) (res models.ClaimResult, err error) {
	defer func() {
		metrics.Claims.WithLabelValues(claimOutcome(err)).Inc()
	}()

	if err := models.Validate(req); err != nil {
		return models.ClaimResult{}, invalid(err)
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	// Claims are judged at the server clock only. The day boundary for the
	// one-claim-per-day rule comes from the same moment.
	at := s.moment(time.Time{})

	// short request-scoped deadline to avoid long-running ops
	ctx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return models.ClaimResult{}, fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	d, err := s.deals.GetAndLockDeal(ctx, tx, req.DealID)
	if err != nil {
		return models.ClaimResult{}, fmt.Errorf("lock deal: %w", err)
	}
	if d == nil {
		return models.ClaimResult{}, ErrDealNotFound
	}

	startOfDay := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	n, err := s.claims.CountUserClaimsSince(ctx, tx, d.ID, req.UserID, startOfDay)
	if err != nil {
		return models.ClaimResult{}, fmt.Errorf("count claims: %w", err)
	}
	if err := CheckClaim(*d, n, at); err != nil {
		return models.ClaimResult{}, err
	}

	claim := models.Claim{
		ID:        uuid.New(),
		DealID:    d.ID,
		UserID:    req.UserID,
		Quantity:  qty,
		Savings:   domain.Savings(d.OriginalPrice, d.FinalPrice, qty),
		ClaimedAt: at,
	}
	if err := s.claims.CreateClaim(ctx, tx, &claim); err != nil {
		return models.ClaimResult{}, fmt.Errorf("create claim: %w", err)
	}
	if err := s.deals.IncrementClaimed(ctx, tx, d.ID); err != nil {
		return models.ClaimResult{}, fmt.Errorf("increment claimed: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.ClaimResult{}, fmt.Errorf("tx commit: %w", err)
	}
	committed = true
	d.ClaimedCount++
	if s.popular != nil {
		s.popular.Invalidate()
	}

	res = models.ClaimResult{
		Claim:              claim,
		PlannedPickup:      !domain.IsCurrentlyAvailable(*d, at),
		SavingsFormatted:   domain.FormatPrice(claim.Savings),
		RedeemableFromTime: domain.ShortClock(d.StartTime),
	}
	if left, ok := d.Remaining(); ok {
		res.Remaining = &left
	}
	log.Printf("deal %s claimed by %s (qty %d, planned=%v)", d.ID, req.UserID, qty, res.PlannedPickup)
	return res, nil
}

// Quote prices an arbitrary original price and discount.
func (s *DealService) Quote(req models.QuoteRequest) (models.QuoteResult, error) {
	if err := models.Validate(req); err != nil {
		return models.QuoteResult{}, invalid(err)
	}
	mode, err := domain.ParseDiscountMode(req.Mode)
	if err != nil {
		return models.QuoteResult{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	res := models.QuoteResult{OriginalPrice: req.OriginalPrice, Quantity: qty}
	if final, ok := domain.FinalPrice(req.OriginalPrice, req.Discount, mode); ok {
		res.FinalPrice = &final
		res.FinalPriceFormatted = domain.FormatPrice(final)
	}
	if req.OriginalPrice != nil {
		res.OriginalPriceFormatted = domain.FormatPrice(*req.OriginalPrice)
	}
	res.Savings = domain.Savings(res.OriginalPrice, res.FinalPrice, qty)
	res.SavingsFormatted = domain.FormatPrice(res.Savings)
	return res, nil
}
