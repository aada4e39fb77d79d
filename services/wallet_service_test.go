package services

import (
	"testing"

	"github.com/Gupta-Developer/earnbyapps/config"
	apiError "github.com/Gupta-Developer/earnbyapps/errors"
	"github.com/Gupta-Developer/earnbyapps/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newWalletFixture() (*fakeStore, WalletService) {
	store := newFakeStore()
	svc := NewWalletService(store, store, store, &config.Config{})
	return store, svc
}

func TestTotalEarnings(t *testing.T) {
	txns := []models.Transaction{
		{TaskName: "Install App A", Amount: mustDecimal("20"), Status: models.StatusApproved},
		{TaskName: "Install App B", Amount: mustDecimal("50"), Status: models.StatusPaid},
		{TaskName: "Install App C", Amount: mustDecimal("15"), Status: models.StatusRejected},
	}

	total := TotalEarnings(txns)
	assert.True(t, total.Equal(mustDecimal("70")), "got %s", total)

	// neither rejected nor pending submissions move the total
	txns = append(txns,
		models.Transaction{Amount: mustDecimal("99"), Status: models.StatusUnderVerification},
		models.Transaction{Amount: mustDecimal("42"), Status: models.StatusRejected},
	)
	assert.True(t, TotalEarnings(txns).Equal(mustDecimal("70")))
}

func TestTotalEarningsEmpty(t *testing.T) {
	assert.True(t, TotalEarnings(nil).IsZero())
	assert.True(t, TotalEarnings([]models.Transaction{
		{Amount: mustDecimal("10"), Status: models.StatusUnderVerification},
	}).IsZero())
}

func TestTotalEarningsExactDecimals(t *testing.T) {
	// many small rewards must not drift the way floats would
	var txns []models.Transaction
	for i := 0; i < 1000; i++ {
		txns = append(txns, models.Transaction{Amount: mustDecimal("0.10"), Status: models.StatusApproved})
	}
	assert.True(t, TotalEarnings(txns).Equal(mustDecimal("100")))
}

func TestUpdateTransactionStatusNonAdmin(t *testing.T) {
	store, svc := newWalletFixture()
	user := store.addUser("Asha Verma", "asha@example.com", "9876500001", "asha@upi", models.RoleUser)
	task := store.addTask("Install App A", "20")
	txn := store.addTransaction(user.ID, task.ID, task.Name, "20", models.StatusUnderVerification)

	ack, err := svc.UpdateTransactionStatus(user, txn.ID, models.StatusApproved)
	require.Error(t, err)
	assert.Equal(t, apiError.ErrUnauthorized, err)
	assert.Nil(t, ack)
	assert.Equal(t, models.StatusUnderVerification, store.txns[txn.ID].Status, "status must be unchanged")

	// a nil requester is just as unauthorized
	_, err = svc.UpdateTransactionStatus(nil, txn.ID, models.StatusApproved)
	assert.Equal(t, apiError.ErrUnauthorized, err)
}

func TestUpdateTransactionStatusNotFound(t *testing.T) {
	store, svc := newWalletFixture()
	admin := store.addUser("Admin", "admin@example.com", "", "", models.RoleAdmin)

	_, err := svc.UpdateTransactionStatus(admin, 404, models.StatusApproved)
	require.Error(t, err)
	apiErr, ok := err.(*apiError.Error)
	require.True(t, ok)
	assert.Equal(t, apiError.ErrNotFound.Status, apiErr.Status)
}

func TestUpdateTransactionStatusOverwrites(t *testing.T) {
	store, svc := newWalletFixture()
	admin := store.addUser("Admin", "admin@example.com", "", "", models.RoleAdmin)
	user := store.addUser("Asha Verma", "asha@example.com", "9876500001", "asha@upi", models.RoleUser)
	task := store.addTask("Install App A", "20")
	txn := store.addTransaction(user.ID, task.ID, task.Name, "20", models.StatusPaid)

	// no ordering constraint: Paid may move backward to Rejected
	ack, err := svc.UpdateTransactionStatus(admin, txn.ID, models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, ack.PreviousStatus)
	assert.Equal(t, models.StatusRejected, ack.Status)
	assert.Equal(t, txn.ID, ack.TransactionID)
	assert.NotEmpty(t, ack.Message)
	assert.Equal(t, models.StatusRejected, store.txns[txn.ID].Status)
}

func TestUpdateTransactionStatusRejectsUnknownStatus(t *testing.T) {
	store, svc := newWalletFixture()
	admin := store.addUser("Admin", "admin@example.com", "", "", models.RoleAdmin)
	user := store.addUser("Asha Verma", "asha@example.com", "", "", models.RoleUser)
	task := store.addTask("Install App A", "20")
	txn := store.addTransaction(user.ID, task.ID, task.Name, "20", models.StatusUnderVerification)

	_, err := svc.UpdateTransactionStatus(admin, txn.ID, models.TransactionStatus("Refunded"))
	require.Error(t, err)
	assert.Equal(t, models.StatusUnderVerification, store.txns[txn.ID].Status)
}

func TestApprovalRaisesWalletTotal(t *testing.T) {
	store, svc := newWalletFixture()
	admin := store.addUser("Admin", "admin@example.com", "", "", models.RoleAdmin)
	user := store.addUser("Asha Verma", "asha@example.com", "9876500001", "asha@upi", models.RoleUser)
	task := store.addTask("Install App A", "25.50")
	txn := store.addTransaction(user.ID, task.ID, task.Name, "25.50", models.StatusUnderVerification)

	before, err := svc.UserWallet(user.ID)
	require.NoError(t, err)

	_, err = svc.UpdateTransactionStatus(admin, txn.ID, models.StatusApproved)
	require.NoError(t, err)

	after, err := svc.UserWallet(user.ID)
	require.NoError(t, err)
	assert.True(t, after.Total.Sub(before.Total).Equal(mustDecimal("25.50")))
	assert.Equal(t, "₹25.50", after.Display)
}

func TestStartTaskSnapshotsTask(t *testing.T) {
	store, svc := newWalletFixture()
	user := store.addUser("Asha Verma", "asha@example.com", "", "", models.RoleUser)
	task := store.addTask("Install App A", "20")

	txn, err := svc.StartTask(user.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Name, txn.TaskName)
	assert.True(t, txn.Amount.Equal(task.Amount))
	assert.Equal(t, models.StatusUnderVerification, txn.Status)

	// later task edits must not rewrite the snapshot
	task.Name = "renamed"
	task.Amount = mustDecimal("999")
	stored := store.txns[txn.ID]
	assert.Equal(t, "Install App A", stored.TaskName)
	assert.True(t, stored.Amount.Equal(mustDecimal("20")))
}

func TestStartTaskUnknownTask(t *testing.T) {
	store, svc := newWalletFixture()
	user := store.addUser("Asha Verma", "asha@example.com", "", "", models.RoleUser)

	_, err := svc.StartTask(user.ID, 404)
	require.Error(t, err)
	apiErr, ok := err.(*apiError.Error)
	require.True(t, ok)
	assert.Equal(t, apiError.ErrNotFound.Status, apiErr.Status)
}

func TestUserTransactionsFiltersDangling(t *testing.T) {
	store, svc := newWalletFixture()
	user := store.addUser("Asha Verma", "asha@example.com", "", "", models.RoleUser)
	live := store.addTask("Install App A", "20")
	store.addTransaction(user.ID, live.ID, live.Name, "20", models.StatusApproved)
	// transaction whose task was deleted out of band
	store.addTransaction(user.ID, 4040, "Ghost Task", "99", models.StatusApproved)

	txns, err := svc.UserTransactions(user.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, live.ID, txns[0].TaskID)

	// the dangling amount never reaches the wallet either
	wallet, err := svc.UserWallet(user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Total.Equal(mustDecimal("20")))
}

func TestAllTransactionsFiltersDangling(t *testing.T) {
	store, svc := newWalletFixture()
	asha := store.addUser("Asha Verma", "asha@example.com", "", "", models.RoleUser)
	ravi := store.addUser("Ravi Kumar", "ravi@example.com", "", "", models.RoleUser)
	live := store.addTask("Install App A", "20")
	store.addTransaction(asha.ID, live.ID, live.Name, "20", models.StatusApproved)
	store.addTransaction(ravi.ID, live.ID, live.Name, "20", models.StatusUnderVerification)
	store.addTransaction(ravi.ID, 4040, "Ghost Task", "99", models.StatusPaid)

	txns, err := svc.AllTransactions()
	require.NoError(t, err)
	assert.Len(t, txns, 2)
	for _, txn := range txns {
		assert.Equal(t, live.ID, txn.TaskID)
	}
}

func TestSearchUsersEmptyQueryReturnsAll(t *testing.T) {
	store, svc := newWalletFixture()
	store.addUser("Asha Verma", "asha@example.com", "9876500001", "asha@upi", models.RoleUser)
	store.addUser("Ravi Kumar", "ravi@example.com", "9876500002", "ravi@upi", models.RoleUser)

	results, err := svc.SearchUsers("")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchUsersNoMatch(t *testing.T) {
	store, svc := newWalletFixture()
	store.addUser("Asha Verma", "asha@example.com", "9876500001", "asha@upi", models.RoleUser)

	results, err := svc.SearchUsers("zzz-no-such-thing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchUsersMatchesFields(t *testing.T) {
	store, svc := newWalletFixture()
	asha := store.addUser("Asha Verma", "asha@example.com", "9876500001", "asha@paytm", models.RoleUser)
	ravi := store.addUser("Ravi Kumar", "ravi@example.com", "9876500002", "ravi@upi", models.RoleUser)
	task := store.addTask("Install SuperCash", "30")
	store.addTransaction(ravi.ID, task.ID, task.Name, "30", models.StatusPaid)

	// user with zero transactions still matches on their own fields
	results, err := svc.SearchUsers("PAYTM")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, asha.ID, results[0].User.ID)

	// transaction title matches its owner
	results, err = svc.SearchUsers("supercash")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ravi.ID, results[0].User.ID)
	assert.Equal(t, "30.00", results[0].Total)

	// phone substring
	results, err = svc.SearchUsers("500002")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ravi.ID, results[0].User.ID)
}

func TestSearchUsersUpstreamUnavailable(t *testing.T) {
	store, svc := newWalletFixture()
	store.addUser("Asha Verma", "asha@example.com", "", "", models.RoleUser)
	store.failReads = true

	_, err := svc.SearchUsers("")
	require.Error(t, err)
	assert.Equal(t, apiError.ErrUpstreamUnavailable, err)
}
