package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gupta-Developer/earnbyapps/models"
	"github.com/Gupta-Developer/earnbyapps/server/response"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.JSON(c, "invalid id", http.StatusBadRequest, nil, err)
		return 0, false
	}
	return uint(id), true
}

func (s *Server) handleListTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := s.TaskService.ListTasks()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		out := make([]models.TaskResponse, 0, len(tasks))
		for i := range tasks {
			out = append(out, tasks[i].ToResponse())
		}
		response.JSON(c, "", http.StatusOK, out, nil)
	}
}

func (s *Server) handleGetTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		task, err := s.TaskService.GetTask(id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, task.ToResponse(), nil)
	}
}

// handleCreateTask accepts a multipart form: scalar fields, repeated "steps"
// values, an optional JSON-encoded "faqs" field and optional "icon"/"banner"
// image files.
func (s *Server) handleCreateTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		req := models.CreateTaskRequest{
			Name:         c.PostForm("name"),
			Amount:       c.PostForm("amount"),
			TotalAmount:  c.PostForm("total_amount"),
			Description:  c.PostForm("description"),
			Steps:        c.PostFormArray("steps"),
			IsInstant:    c.PostForm("is_instant") == "true",
			IsHighPaying: c.PostForm("is_high_paying") == "true",
			ExternalLink: c.PostForm("external_link"),
			VideoLink:    c.PostForm("video_link"),
		}
		if faqsJSON := c.PostForm("faqs"); faqsJSON != "" {
			if err := json.Unmarshal([]byte(faqsJSON), &req.FAQs); err != nil {
				response.JSON(c, "invalid faqs payload", http.StatusBadRequest, nil, err)
				return
			}
		}

		// both images are optional
		icon, _ := c.FormFile("icon")
		banner, _ := c.FormFile("banner")

		task, err := s.TaskService.CreateTask(&req, icon, banner)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "task created", http.StatusCreated, task, nil)
	}
}

func (s *Server) handleDeleteTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		if err := s.TaskService.DeleteTask(id); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "task and referencing transactions deleted", http.StatusOK, nil, nil)
	}
}
