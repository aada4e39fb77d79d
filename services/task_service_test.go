package services

import (
	"testing"

	"github.com/Gupta-Developer/earnbyapps/config"
	apiError "github.com/Gupta-Developer/earnbyapps/errors"
	"github.com/Gupta-Developer/earnbyapps/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskFixture() (*fakeStore, TaskService) {
	store := newFakeStore()
	svc := NewTaskService(store, nil, &config.Config{})
	return store, svc
}

func validCreateRequest() *models.CreateTaskRequest {
	return &models.CreateTaskRequest{
		Name:   "Install App A",
		Amount: "20",
		Steps:  []string{"Install the app", "Open it and register"},
	}
}

func TestCreateTaskBuildsStepsAndFAQs(t *testing.T) {
	store, svc := newTaskFixture()

	req := validCreateRequest()
	req.TotalAmount = "35"
	req.IsHighPaying = true
	req.FAQs = []models.TaskFAQInput{{Question: "When do I get paid?", Answer: "After approval."}}

	task, err := svc.CreateTask(req, nil, nil)
	require.NoError(t, err)
	require.Len(t, task.Steps, 2)
	assert.Equal(t, 1, task.Steps[0].Position)
	assert.Equal(t, "Install the app", task.Steps[0].Instruction)
	assert.Equal(t, 2, task.Steps[1].Position)
	require.Len(t, task.FAQs, 1)
	assert.True(t, task.Amount.Equal(mustDecimal("20")))
	assert.True(t, task.TotalAmount.Equal(mustDecimal("35")))
	assert.True(t, task.IsHighPaying)
	assert.Contains(t, store.tasks, task.ID)
}

func TestCreateTaskValidation(t *testing.T) {
	_, svc := newTaskFixture()

	cases := []struct {
		name   string
		mutate func(*models.CreateTaskRequest)
	}{
		{"missing name", func(r *models.CreateTaskRequest) { r.Name = "" }},
		{"no steps", func(r *models.CreateTaskRequest) { r.Steps = nil }},
		{"blank step", func(r *models.CreateTaskRequest) { r.Steps = []string{""} }},
		{"malformed amount", func(r *models.CreateTaskRequest) { r.Amount = "twenty" }},
		{"zero amount", func(r *models.CreateTaskRequest) { r.Amount = "0" }},
		{"negative amount", func(r *models.CreateTaskRequest) { r.Amount = "-5" }},
		{"negative total amount", func(r *models.CreateTaskRequest) { r.TotalAmount = "-1" }},
		{"bad external link", func(r *models.CreateTaskRequest) { r.ExternalLink = "not-a-url" }},
		{"bad video link", func(r *models.CreateTaskRequest) { r.VideoLink = "also not a url" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(req)
			_, err := svc.CreateTask(req, nil, nil)
			require.Error(t, err)
			apiErr, ok := err.(*apiError.Error)
			require.True(t, ok)
			assert.Equal(t, apiError.ErrBadRequest.Status, apiErr.Status)
		})
	}
}

func TestDeleteTaskCascades(t *testing.T) {
	store, svc := newTaskFixture()
	user := store.addUser("Asha Verma", "asha@example.com", "", "", models.RoleUser)
	doomed := store.addTask("Install App A", "20")
	kept := store.addTask("Install App B", "50")
	store.addTransaction(user.ID, doomed.ID, doomed.Name, "20", models.StatusApproved)
	store.addTransaction(user.ID, doomed.ID, doomed.Name, "20", models.StatusUnderVerification)
	survivor := store.addTransaction(user.ID, kept.ID, kept.Name, "50", models.StatusPaid)

	require.NoError(t, svc.DeleteTask(doomed.ID))

	assert.NotContains(t, store.tasks, doomed.ID)
	for _, txn := range store.txns {
		assert.NotEqual(t, doomed.ID, txn.TaskID, "no transaction may still reference the deleted task")
	}
	assert.Contains(t, store.txns, survivor.ID, "transactions of other tasks stay untouched")
	assert.Contains(t, store.tasks, kept.ID)
}

func TestDeleteTaskNotFound(t *testing.T) {
	_, svc := newTaskFixture()

	err := svc.DeleteTask(404)
	require.Error(t, err)
	apiErr, ok := err.(*apiError.Error)
	require.True(t, ok)
	assert.Equal(t, apiError.ErrNotFound.Status, apiErr.Status)
}

func TestDeleteTaskIntegrityError(t *testing.T) {
	store, svc := newTaskFixture()
	task := store.addTask("Install App A", "20")
	store.failDeleteCascade = true

	err := svc.DeleteTask(task.ID)
	require.Error(t, err)
	assert.Equal(t, apiError.ErrIntegrity, err)
}

func TestGetTaskNotFound(t *testing.T) {
	_, svc := newTaskFixture()

	_, err := svc.GetTask(404)
	require.Error(t, err)
	apiErr, ok := err.(*apiError.Error)
	require.True(t, ok)
	assert.Equal(t, apiError.ErrNotFound.Status, apiErr.Status)
}
