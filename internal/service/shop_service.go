package service

import (
	"errors"
	"log"

	"shop_ledger/internal/models"
	"shop_ledger/internal/store"
)

var (
	ErrEmailTaken       = errors.New("email is already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidUser      = errors.New("user_id does not reference a registered user")
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrInvalidPurchase  = errors.New("purchase_id does not reference a registered purchase")
	ErrAlreadyPaid      = errors.New("purchase has already been paid")
	ErrPaymentNotFound  = errors.New("payment not found")
)

// ShopService fronts the three stores. Reads on behalf of a caller are
// filtered to records the caller owns; a record owned by someone else is
// reported as missing. Admin reads skip the identity check.
type ShopService struct {
	users     *store.Users
	purchases *store.Purchases
	payments  *store.Payments
	logger    *log.Logger
}

func NewShopService(logger *log.Logger, users *store.Users, purchases *store.Purchases, payments *store.Payments) *ShopService {
	return &ShopService{
		users:     users,
		purchases: purchases,
		payments:  payments,
		logger:    logger,
	}
}

func (s *ShopService) RegisterUser(email, password string) (int64, error) {
	id, err := s.users.Register(email, password)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

func (s *ShopService) GetUser(id int64) (models.User, error) {
	user, err := s.users.Get(id)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *ShopService) RegisterPurchase(userID int64, itemName string, price float64) (int64, error) {
	id, err := s.purchases.Register(userID, itemName, price)
	if err != nil {
		if errors.Is(err, store.ErrInvalidUser) {
			return 0, ErrInvalidUser
		}
		return 0, err
	}
	return id, nil
}

func (s *ShopService) RegisterPayment(userID, purchaseID int64) (int64, error) {
	id, err := s.payments.Register(userID, purchaseID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidPurchase):
			return 0, ErrInvalidPurchase
		case errors.Is(err, store.ErrAlreadyPaid):
			return 0, ErrAlreadyPaid
		}
		return 0, err
	}
	return id, nil
}

func (s *ShopService) GetOwnedPurchase(callerID, purchaseID int64) (models.Purchase, error) {
	if !s.users.Exists(callerID) {
		return models.Purchase{}, ErrUserNotFound
	}

	purchase, err := s.purchases.Get(purchaseID)
	if err != nil || purchase.UserID != callerID {
		// Someone else's purchase is indistinguishable from a missing one.
		return models.Purchase{}, ErrPurchaseNotFound
	}
	return purchase, nil
}

// ListOwnedPurchases reports an empty result as not found. Kept for
// compatibility with the original API even though an empty set would
// arguably be a valid answer.
func (s *ShopService) ListOwnedPurchases(callerID int64) (map[int64]models.Purchase, error) {
	if !s.users.Exists(callerID) {
		return nil, ErrUserNotFound
	}

	purchases := s.purchases.ListByUser(callerID)
	if len(purchases) == 0 {
		return nil, ErrPurchaseNotFound
	}
	return purchases, nil
}

func (s *ShopService) GetOwnedPayment(callerID, paymentID int64) (models.Payment, error) {
	if !s.users.Exists(callerID) {
		return models.Payment{}, ErrUserNotFound
	}

	payment, err := s.payments.Get(paymentID)
	if err != nil || payment.UserID != callerID {
		return models.Payment{}, ErrPaymentNotFound
	}
	return payment, nil
}

// ListOwnedPayments follows the same empty-result-as-not-found convention
// as ListOwnedPurchases.
func (s *ShopService) ListOwnedPayments(callerID int64) (map[int64]models.Payment, error) {
	if !s.users.Exists(callerID) {
		return nil, ErrUserNotFound
	}

	payments := s.payments.ListByUser(callerID)
	if len(payments) == 0 {
		return nil, ErrPaymentNotFound
	}
	return payments, nil
}

func (s *ShopService) AdminListUsers() map[int64]models.User {
	return s.users.List()
}

func (s *ShopService) AdminCountPaidPurchases() int {
	return s.purchases.CountPaid()
}

// Counts returns the record totals for the periodic stats log.
func (s *ShopService) Counts() (users, purchases, payments int) {
	return s.users.Count(), s.purchases.Count(), s.payments.Count()
}
