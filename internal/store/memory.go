// Package store holds the in-memory record stores for users, purchases
// and payments. Each store guards its state with its own mutex; payment
// registration is the only operation that spans two stores.
package store

import (
	"errors"
	"sync"

	"shop_ledger/internal/models"
)

var (
	ErrEmailTaken       = errors.New("store: email already registered")
	ErrUserNotFound     = errors.New("store: user not found")
	ErrInvalidUser      = errors.New("store: user does not exist")
	ErrPurchaseNotFound = errors.New("store: purchase not found")
	ErrInvalidPurchase  = errors.New("store: purchase does not exist")
	ErrAlreadyPaid      = errors.New("store: purchase already has a payment")
	ErrPaymentNotFound  = errors.New("store: payment not found")
)

type Users struct {
	mu      sync.Mutex
	records map[int64]models.User
	emails  map[string]int64
	nextID  int64
}

func NewUsers() *Users {
	return &Users{
		records: make(map[int64]models.User),
		emails:  make(map[string]int64),
	}
}

func (s *Users) Register(email, password string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[email]; taken {
		return 0, ErrEmailTaken
	}

	s.nextID++
	user := models.User{ID: s.nextID, Email: email, Password: password}
	s.records[user.ID] = user
	s.emails[email] = user.ID

	return user.ID, nil
}

func (s *Users) Get(id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.records[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *Users) Exists(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[id]
	return ok
}

func (s *Users) List() map[int64]models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make(map[int64]models.User, len(s.records))
	for id, user := range s.records {
		users[id] = user
	}
	return users
}

func (s *Users) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

type Purchases struct {
	mu      sync.Mutex
	records map[int64]models.Purchase
	nextID  int64
	users   *Users
}

func NewPurchases(users *Users) *Purchases {
	return &Purchases{
		records: make(map[int64]models.Purchase),
		users:   users,
	}
}

func (s *Purchases) Register(userID int64, itemName string, price float64) (int64, error) {
	// Users are never deleted, so the existence check does not need to
	// stay under the purchase lock.
	if !s.users.Exists(userID) {
		return 0, ErrInvalidUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	purchase := models.Purchase{
		ID:       s.nextID,
		UserID:   userID,
		ItemName: itemName,
		Price:    price,
		Paid:     false,
	}
	s.records[purchase.ID] = purchase

	return purchase.ID, nil
}

func (s *Purchases) Get(id int64) (models.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchase, ok := s.records[id]
	if !ok {
		return models.Purchase{}, ErrPurchaseNotFound
	}
	return purchase, nil
}

func (s *Purchases) ListByUser(userID int64) map[int64]models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchases := make(map[int64]models.Purchase)
	for id, purchase := range s.records {
		if purchase.UserID == userID {
			purchases[id] = purchase
		}
	}
	return purchases
}

func (s *Purchases) CountPaid() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, purchase := range s.records {
		if purchase.Paid {
			count++
		}
	}
	return count
}

func (s *Purchases) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// markPaidLocked flips the paid flag. The caller must hold s.mu.
func (s *Purchases) markPaidLocked(id int64) {
	purchase := s.records[id]
	purchase.Paid = true
	s.records[id] = purchase
}

type Payments struct {
	mu        sync.Mutex
	records   map[int64]models.Payment
	nextID    int64
	purchases *Purchases
}

func NewPayments(purchases *Purchases) *Payments {
	return &Payments{
		records:   make(map[int64]models.Payment),
		purchases: purchases,
	}
}

// Register records a payment for a purchase and marks the purchase paid
// as a single transaction. The supplied userID is stored as given; it is
// not checked against the purchase's owner. Lock order is purchases
// before payments, everywhere both are held.
func (s *Payments) Register(userID, purchaseID int64) (int64, error) {
	s.purchases.mu.Lock()
	defer s.purchases.mu.Unlock()

	if _, ok := s.purchases.records[purchaseID]; !ok {
		return 0, ErrInvalidPurchase
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Scan existing payments rather than trusting the paid flag.
	for _, existing := range s.records {
		if existing.PurchaseID == purchaseID {
			return 0, ErrAlreadyPaid
		}
	}

	s.nextID++
	payment := models.Payment{ID: s.nextID, UserID: userID, PurchaseID: purchaseID}
	s.records[payment.ID] = payment

	s.purchases.markPaidLocked(purchaseID)

	return payment.ID, nil
}

func (s *Payments) Get(id int64) (models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.records[id]
	if !ok {
		return models.Payment{}, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *Payments) ListByUser(userID int64) map[int64]models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	payments := make(map[int64]models.Payment)
	for id, payment := range s.records {
		if payment.UserID == userID {
			payments[id] = payment
		}
	}
	return payments
}

func (s *Payments) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}
