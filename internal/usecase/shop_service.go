package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grocerylist/backend/internal/domain"
	"go.uber.org/zap"
)

// ShopServiceConfig holds configuration for the shop service
type ShopServiceConfig struct {
	Currency string
}

// ShopView is everything the presentation layer needs to render one page
type ShopView struct {
	Criteria   domain.FilterCriteria `json:"criteria"`
	Rows       []domain.DisplayRow   `json:"rows"`
	Categories []string              `json:"categories"`
	MatchCount int                   `json:"matchCount"`
	Cart       domain.Cart           `json:"cart"`
	TotalItems int                   `json:"totalItems"`
	TotalPrice int64                 `json:"totalPrice"`
	Total      string                `json:"total"`
}

// ShopService runs the filter engine and cart ledger against per-session state
type ShopService struct {
	catalog  domain.CatalogRepository
	sessions domain.SessionStore
	currency string
	logger   *zap.Logger
}

// NewShopService creates a new shop service with dependencies
func NewShopService(
	catalog domain.CatalogRepository,
	sessions domain.SessionStore,
	config ShopServiceConfig,
	logger *zap.Logger,
) *ShopService {
	currency := config.Currency
	if currency == "" {
		currency = "₹"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ShopService{
		catalog:  catalog,
		sessions: sessions,
		currency: currency,
		logger:   logger,
	}
}

// Currency returns the symbol used when formatting totals
func (s *ShopService) Currency() string {
	return s.currency
}

// View renders the current state of a session
func (s *ShopService) View(ctx context.Context, sessionID string) (*ShopView, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidRequest
	}

	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return s.render(ctx, state)
}

// ApplyFilter stores new filter criteria for the session
func (s *ShopService) ApplyFilter(ctx context.Context, sessionID string, criteria domain.FilterCriteria) (*ShopView, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidRequest
	}

	criteria = criteria.Normalize()

	state, err := s.sessions.Update(ctx, sessionID, func(st *domain.SessionState) error {
		st.Criteria = criteria
		st.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.render(ctx, state)
}

// AddToCart adds one unit of the named catalog product to the session cart
func (s *ShopService) AddToCart(ctx context.Context, sessionID, name string) (*ShopView, error) {
	if sessionID == "" || name == "" {
		return nil, domain.ErrInvalidRequest
	}

	product, err := s.catalog.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	state, err := s.sessions.Update(ctx, sessionID, func(st *domain.SessionState) error {
		st.Cart = Add(st.Cart, product)
		st.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("cart add",
		zap.String("session", sessionID),
		zap.String("product", name),
		zap.Int("quantity", state.Cart.Quantity(name)))

	return s.render(ctx, state)
}

// RemoveFromCart takes one unit of the named product out of the session cart
func (s *ShopService) RemoveFromCart(ctx context.Context, sessionID, name string) (*ShopView, error) {
	if sessionID == "" || name == "" {
		return nil, domain.ErrInvalidRequest
	}

	state, err := s.sessions.Update(ctx, sessionID, func(st *domain.SessionState) error {
		next, err := Remove(st.Cart, name)
		if err != nil {
			return err
		}
		st.Cart = next
		st.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			s.logger.Warn("remove for item not in cart",
				zap.String("session", sessionID),
				zap.String("product", name))
		}
		return nil, err
	}

	s.logger.Debug("cart remove",
		zap.String("session", sessionID),
		zap.String("product", name),
		zap.Int("quantity", state.Cart.Quantity(name)))

	return s.render(ctx, state)
}

// ResetSession drops all state for the session; the next read starts fresh
func (s *ShopService) ResetSession(ctx context.Context, sessionID string) (*ShopView, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidRequest
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	s.logger.Debug("session reset", zap.String("session", sessionID))

	return s.render(ctx, domain.NewSessionState())
}

// ClearCart empties the session cart, keeping the filter criteria
func (s *ShopService) ClearCart(ctx context.Context, sessionID string) (*ShopView, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidRequest
	}

	state, err := s.sessions.Update(ctx, sessionID, func(st *domain.SessionState) error {
		st.Cart = domain.Cart{}
		st.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.render(ctx, state)
}

func (s *ShopService) render(ctx context.Context, state domain.SessionState) (*ShopView, error) {
	products, err := s.catalog.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	view, err := BuildView(products, state, s.currency)
	if err != nil {
		s.logger.Error("failed to compute cart total", zap.Error(err))
		return nil, err
	}

	return view, nil
}

// BuildView computes a ShopView from a catalog and a session state
func BuildView(catalog []domain.Product, state domain.SessionState, currency string) (*ShopView, error) {
	criteria := state.Criteria.Normalize()

	total, err := TotalPrice(state.Cart)
	if err != nil {
		return nil, err
	}

	cart := state.Cart
	if cart == nil {
		cart = domain.Cart{}
	}

	rows := ComputeRows(catalog, criteria)
	matched := 0
	for _, row := range rows {
		if !row.IsHeader() {
			matched++
		}
	}

	return &ShopView{
		Criteria:   criteria,
		Rows:       rows,
		Categories: Categories(catalog),
		MatchCount: matched,
		Cart:       cart,
		TotalItems: TotalItems(cart),
		TotalPrice: total,
		Total:      FormatPrice(currency, total),
	}, nil
}
