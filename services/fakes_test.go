package services

import (
	"sort"

	"github.com/Gupta-Developer/earnbyapps/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// fakeStore is an in-memory stand-in for the GORM repositories, implementing
// AuthRepository, TaskRepository and TransactionRepository over plain maps.
type fakeStore struct {
	users  map[uint]*models.User
	tasks  map[uint]*models.Task
	txns   map[uint]*models.Transaction
	nextID uint

	failDeleteCascade bool
	failReads         bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[uint]*models.User),
		tasks: make(map[uint]*models.Task),
		txns:  make(map[uint]*models.Transaction),
	}
}

var errFakeDown = errors.New("fake store down")

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addUser(fullname, email, phone, upi, role string) *models.User {
	u := &models.User{
		Fullname:  fullname,
		Email:     email,
		Telephone: phone,
		UpiID:     upi,
		Role:      models.Role{ID: uuid.New(), Name: role},
	}
	u.ID = f.id()
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addTask(name, amount string) *models.Task {
	t := &models.Task{Name: name, Amount: mustDecimal(amount)}
	t.ID = f.id()
	f.tasks[t.ID] = t
	return t
}

func (f *fakeStore) addTransaction(userID, taskID uint, title, amount string, status models.TransactionStatus) *models.Transaction {
	txn := &models.Transaction{
		UserID:   userID,
		TaskID:   taskID,
		TaskName: title,
		Amount:   mustDecimal(amount),
		Status:   status,
	}
	txn.ID = f.id()
	f.txns[txn.ID] = txn
	return txn
}

// AuthRepository

func (f *fakeStore) CreateUser(user *models.User) (*models.User, error) {
	user.ID = f.id()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) IsEmailExist(email string) error {
	for _, u := range f.users {
		if u.Email == email {
			return errors.New("email already in use")
		}
	}
	return nil
}

func (f *fakeStore) IsPhoneExist(telephone string) error { return nil }

func (f *fakeStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindUserByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeStore) UpdateUser(user *models.User) error { return nil }

func (f *fakeStore) EditUserProfile(userID uint, details *models.EditProfileRequest) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Fullname = details.Fullname
	u.Telephone = details.Telephone
	u.UpiID = details.UpiID
	return nil
}

func (f *fakeStore) UpdatePassword(userID uint, hashedPassword string) error { return nil }

func (f *fakeStore) GetAllUsers() ([]models.User, error) {
	if f.failReads {
		return nil, errFakeDown
	}
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) AddToBlackList(blacklist *models.Blacklist) error { return nil }
func (f *fakeStore) IsTokenInBlacklist(token string) bool             { return false }

func (f *fakeStore) FindRoleByName(name string) (*models.Role, error) {
	return &models.Role{ID: uuid.New(), Name: name}, nil
}

func (f *fakeStore) GetUserRoleByUserID(userID uint) (*models.Role, error) {
	u, err := f.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return &u.Role, nil
}

// TaskRepository

func (f *fakeStore) CreateTask(task *models.Task) (uint, error) {
	task.ID = f.id()
	f.tasks[task.ID] = task
	return task.ID, nil
}

func (f *fakeStore) GetTaskByID(id uint) (*models.Task, error) {
	if f.failReads {
		return nil, errFakeDown
	}
	t, ok := f.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeStore) GetAllTasks() ([]models.Task, error) {
	out := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetTaskIDs() (map[uint]bool, error) {
	if f.failReads {
		return nil, errFakeDown
	}
	set := make(map[uint]bool, len(f.tasks))
	for id := range f.tasks {
		set[id] = true
	}
	return set, nil
}

func (f *fakeStore) DeleteTaskWithTransactions(taskID uint) error {
	if _, ok := f.tasks[taskID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if f.failDeleteCascade {
		return errFakeDown
	}
	delete(f.tasks, taskID)
	for id, txn := range f.txns {
		if txn.TaskID == taskID {
			delete(f.txns, id)
		}
	}
	return nil
}

// TransactionRepository

func (f *fakeStore) CreateTransaction(txn *models.Transaction) (*models.Transaction, error) {
	txn.ID = f.id()
	f.txns[txn.ID] = txn
	return txn, nil
}

func (f *fakeStore) GetTransactionByID(id uint) (*models.Transaction, error) {
	txn, ok := f.txns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return txn, nil
}

func (f *fakeStore) GetTransactionsByUserID(userID uint) ([]models.Transaction, error) {
	if f.failReads {
		return nil, errFakeDown
	}
	out := make([]models.Transaction, 0)
	for _, txn := range f.txns {
		if txn.UserID == userID {
			out = append(out, *txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetAllTransactions() ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, len(f.txns))
	for _, txn := range f.txns {
		out = append(out, *txn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpdateTransactionStatus(id uint, status models.TransactionStatus) error {
	txn, ok := f.txns[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	txn.Status = status
	return nil
}
