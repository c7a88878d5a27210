package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores() (*Users, *Purchases, *Payments) {
	users := NewUsers()
	purchases := NewPurchases(users)
	payments := NewPayments(purchases)
	return users, purchases, payments
}

func TestUsers_Register_SequentialIDs(t *testing.T) {
	users := NewUsers()

	for i := 1; i <= 5; i++ {
		id, err := users.Register(fmt.Sprintf("user%d@example.com", i), "secret")
		require.NoError(t, err)
		assert.Equal(t, int64(i), id)
	}
}

func TestUsers_Register_DuplicateEmail(t *testing.T) {
	users := NewUsers()

	_, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)

	_, err = users.Register("alice@example.com", "other")
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, users.Count(), "failed registration must not store a user")
}

func TestUsers_Register_EmailMatchIsCaseSensitive(t *testing.T) {
	users := NewUsers()

	_, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)

	id, err := users.Register("Alice@example.com", "secret")
	require.NoError(t, err, "different casing is a different email")
	assert.Equal(t, int64(2), id)
}

func TestUsers_Get_NotFound(t *testing.T) {
	users := NewUsers()

	_, err := users.Get(42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPurchases_Register_UnknownUser(t *testing.T) {
	_, purchases, _ := newStores()

	_, err := purchases.Register(99, "Book", 20.0)
	require.ErrorIs(t, err, ErrInvalidUser)
	assert.Equal(t, 0, purchases.Count(), "failed registration must not store a purchase")
}

func TestPurchases_Register_FailedAttemptsDoNotConsumeIDs(t *testing.T) {
	users, purchases, _ := newStores()

	userID, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)

	_, err = purchases.Register(99, "Book", 20.0)
	require.ErrorIs(t, err, ErrInvalidUser)

	id, err := purchases.Register(userID, "Book", 20.0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "first successful registration gets id 1")
}

func TestPurchases_Register_StartsUnpaid(t *testing.T) {
	users, purchases, _ := newStores()

	userID, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)

	id, err := purchases.Register(userID, "Book", 20.0)
	require.NoError(t, err)

	purchase, err := purchases.Get(id)
	require.NoError(t, err)
	assert.False(t, purchase.Paid)
	assert.Equal(t, userID, purchase.UserID)
	assert.Equal(t, "Book", purchase.ItemName)
	assert.Equal(t, 20.0, purchase.Price)
}

func TestPayments_Register_FlipsPaid(t *testing.T) {
	users, purchases, payments := newStores()

	userID, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)
	purchaseID, err := purchases.Register(userID, "Book", 20.0)
	require.NoError(t, err)

	paymentID, err := payments.Register(userID, purchaseID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), paymentID)

	purchase, err := purchases.Get(purchaseID)
	require.NoError(t, err)
	assert.True(t, purchase.Paid)
}

func TestPayments_Register_SecondPaymentRejected(t *testing.T) {
	users, purchases, payments := newStores()

	userID, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)
	purchaseID, err := purchases.Register(userID, "Book", 20.0)
	require.NoError(t, err)

	_, err = payments.Register(userID, purchaseID)
	require.NoError(t, err)

	_, err = payments.Register(userID, purchaseID)
	require.ErrorIs(t, err, ErrAlreadyPaid)

	purchase, err := purchases.Get(purchaseID)
	require.NoError(t, err)
	assert.True(t, purchase.Paid, "paid flag must survive a rejected second payment")
	assert.Equal(t, 1, payments.Count())
}

func TestPayments_Register_UnknownPurchase(t *testing.T) {
	users, purchases, payments := newStores()

	userID, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)

	_, err = payments.Register(userID, 99)
	require.ErrorIs(t, err, ErrInvalidPurchase)
	assert.Equal(t, 0, payments.Count())

	// The failed attempt must not have consumed an id.
	purchaseID, err := purchases.Register(userID, "Book", 20.0)
	require.NoError(t, err)
	paymentID, err := payments.Register(userID, purchaseID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), paymentID)
}

func TestPayments_Register_KeepsCallerSuppliedUserID(t *testing.T) {
	users, purchases, payments := newStores()

	ownerID, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)
	otherID, err := users.Register("bob@example.com", "secret")
	require.NoError(t, err)
	purchaseID, err := purchases.Register(ownerID, "Book", 20.0)
	require.NoError(t, err)

	// Payments on someone else's purchase are accepted as-is.
	paymentID, err := payments.Register(otherID, purchaseID)
	require.NoError(t, err)

	payment, err := payments.Get(paymentID)
	require.NoError(t, err)
	assert.Equal(t, otherID, payment.UserID)
}

func TestPurchases_CountPaid(t *testing.T) {
	users, purchases, payments := newStores()

	userID, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)

	var purchaseIDs []int64
	for i := 0; i < 4; i++ {
		id, err := purchases.Register(userID, fmt.Sprintf("Item %d", i), 10.0)
		require.NoError(t, err)
		purchaseIDs = append(purchaseIDs, id)
	}
	assert.Equal(t, 0, purchases.CountPaid())

	_, err = payments.Register(userID, purchaseIDs[0])
	require.NoError(t, err)
	_, err = payments.Register(userID, purchaseIDs[2])
	require.NoError(t, err)

	assert.Equal(t, 2, purchases.CountPaid())
}

func TestPurchases_ListByUser(t *testing.T) {
	users, purchases, _ := newStores()

	aliceID, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)
	bobID, err := users.Register("bob@example.com", "secret")
	require.NoError(t, err)

	_, err = purchases.Register(aliceID, "Book", 20.0)
	require.NoError(t, err)
	_, err = purchases.Register(bobID, "Pen", 2.0)
	require.NoError(t, err)
	_, err = purchases.Register(aliceID, "Lamp", 35.0)
	require.NoError(t, err)

	owned := purchases.ListByUser(aliceID)
	require.Len(t, owned, 2)
	for _, purchase := range owned {
		assert.Equal(t, aliceID, purchase.UserID)
	}

	assert.Empty(t, purchases.ListByUser(99))
}

func TestUsers_Register_ConcurrentIDsAreUnique(t *testing.T) {
	users := NewUsers()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := users.Register(fmt.Sprintf("user%d@example.com", i), "secret")
			if err == nil {
				ids <- id
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, users.Count())
}

func TestPayments_Register_ConcurrentSinglePayer(t *testing.T) {
	users, purchases, payments := newStores()

	userID, err := users.Register("alice@example.com", "secret")
	require.NoError(t, err)
	purchaseID, err := purchases.Register(userID, "Book", 20.0)
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := payments.Register(userID, purchaseID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyPaid)
		}
	}
	assert.Equal(t, 1, successes, "exactly one racing payment may win")
	assert.Equal(t, 1, payments.Count())
	assert.Equal(t, 1, purchases.CountPaid())
}
