package db

import (
	"github.com/Gupta-Developer/earnbyapps/models"
	"gorm.io/gorm"
)

type TaskRepository interface {
	CreateTask(task *models.Task) (uint, error)
	GetTaskByID(id uint) (*models.Task, error)
	GetAllTasks() ([]models.Task, error)
	GetTaskIDs() (map[uint]bool, error)
	DeleteTaskWithTransactions(taskID uint) error
}

type taskRepo struct {
	DB *gorm.DB
}

func NewTaskRepo(db *GormDB) TaskRepository {
	return &taskRepo{db.DB}
}

func (r *taskRepo) CreateTask(task *models.Task) (uint, error) {
	if err := r.DB.Create(task).Error; err != nil {
		return 0, err
	}
	return task.ID, nil
}

func (r *taskRepo) GetTaskByID(id uint) (*models.Task, error) {
	var task models.Task
	err := r.DB.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("task_steps.position ASC")
	}).Preload("FAQs").First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) GetAllTasks() ([]models.Task, error) {
	var tasks []models.Task
	err := r.DB.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("task_steps.position ASC")
	}).Preload("FAQs").Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTaskIDs returns the set of live task ids, used to filter transactions
// whose task was deleted out of band.
func (r *taskRepo) GetTaskIDs() (map[uint]bool, error) {
	var ids []uint
	if err := r.DB.Model(&models.Task{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// DeleteTaskWithTransactions removes a task together with every transaction,
// step and FAQ referencing it. The whole cascade runs in one database
// transaction so a subsequent read can never observe a dangling reference.
func (r *taskRepo) DeleteTaskWithTransactions(taskID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskStep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskFAQ{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
}
