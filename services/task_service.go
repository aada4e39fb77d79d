package services

import (
	"fmt"
	"log"
	"mime/multipart"

	"github.com/Gupta-Developer/earnbyapps/config"
	"github.com/Gupta-Developer/earnbyapps/db"
	apiError "github.com/Gupta-Developer/earnbyapps/errors"
	"github.com/Gupta-Developer/earnbyapps/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaskService owns task authoring and removal. Tasks are created and deleted
// by admins only; the handlers gate on role before calling in.
type TaskService interface {
	CreateTask(req *models.CreateTaskRequest, icon *multipart.FileHeader, banner *multipart.FileHeader) (*models.Task, error)
	GetTask(id uint) (*models.Task, error)
	ListTasks() ([]models.Task, error)
	DeleteTask(id uint) error
}

type taskService struct {
	Config       *config.Config
	taskRepo     db.TaskRepository
	mediaService MediaService
}

func NewTaskService(taskRepo db.TaskRepository, mediaService MediaService, conf *config.Config) TaskService {
	return &taskService{
		Config:       conf,
		taskRepo:     taskRepo,
		mediaService: mediaService,
	}
}

func (s *taskService) CreateTask(req *models.CreateTaskRequest, icon *multipart.FileHeader, banner *multipart.FileHeader) (*models.Task, error) {
	if errs := models.ValidateStruct(req); len(errs) > 0 {
		return nil, apiError.New(fmt.Sprintf("invalid task: %v", errs), apiError.ErrBadRequest.Status)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, apiError.New("reward amount must be a positive number", apiError.ErrBadRequest.Status)
	}

	totalAmount := decimal.Zero
	if req.TotalAmount != "" {
		totalAmount, err = decimal.NewFromString(req.TotalAmount)
		if err != nil || totalAmount.IsNegative() {
			return nil, apiError.New("total amount must be a non-negative number", apiError.ErrBadRequest.Status)
		}
	}

	task := &models.Task{
		Name:         req.Name,
		Amount:       amount,
		TotalAmount:  totalAmount,
		Description:  req.Description,
		IsInstant:    req.IsInstant,
		IsHighPaying: req.IsHighPaying,
		ExternalLink: req.ExternalLink,
		VideoLink:    req.VideoLink,
	}
	for i, instruction := range req.Steps {
		task.Steps = append(task.Steps, models.TaskStep{Position: i + 1, Instruction: instruction})
	}
	for _, faq := range req.FAQs {
		task.FAQs = append(task.FAQs, models.TaskFAQ{Question: faq.Question, Answer: faq.Answer})
	}

	if icon != nil {
		iconURL, err := s.mediaService.UploadTaskImage(icon, "icons")
		if err != nil {
			log.Printf("CreateTask: icon upload: %v", err)
			return nil, apiError.ErrUpstreamUnavailable
		}
		task.IconURL = iconURL
	}
	if banner != nil {
		bannerURL, err := s.mediaService.UploadTaskImage(banner, "banners")
		if err != nil {
			log.Printf("CreateTask: banner upload: %v", err)
			return nil, apiError.ErrUpstreamUnavailable
		}
		task.BannerURL = bannerURL
	}

	if _, err := s.taskRepo.CreateTask(task); err != nil {
		log.Printf("CreateTask: persisting task: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}
	return task, nil
}

func (s *taskService) GetTask(id uint) (*models.Task, error) {
	task, err := s.taskRepo.GetTaskByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("task not found", apiError.ErrNotFound.Status)
		}
		log.Printf("GetTask: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}
	return task, nil
}

func (s *taskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.GetAllTasks()
	if err != nil {
		log.Printf("ListTasks: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}
	return tasks, nil
}

// DeleteTask removes the task and every transaction referencing it in one
// sequenced operation. A cascade that cannot complete is surfaced as an
// integrity error, never swallowed.
func (s *taskService) DeleteTask(id uint) error {
	if err := s.taskRepo.DeleteTaskWithTransactions(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("task not found", apiError.ErrNotFound.Status)
		}
		log.Printf("DeleteTask: cascade for task %d: %v", id, err)
		return apiError.ErrIntegrity
	}
	return nil
}
