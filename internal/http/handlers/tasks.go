package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tasktracker/internal/domain"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/service"
	"tasktracker/internal/session"

	"github.com/gin-gonic/gin"
)

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsDone      *bool   `json:"is_done"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Tags        *string `json:"tags"`
}

func (r taskRequest) input() service.TaskInput {
	return service.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		IsDone:      r.IsDone,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		Tags:        r.Tags,
	}
}

// bindTask reads the fields present in a JSON or form body.
func bindTask(c *gin.Context) (service.TaskInput, error) {
	var req taskRequest
	if !isForm(c) {
		if c.Request.ContentLength == 0 {
			return req.input(), nil
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			return req.input(), err
		}
		return req.input(), nil
	}

	field := func(key string) *string {
		if v, ok := c.GetPostForm(key); ok {
			return &v
		}
		return nil
	}
	req.Title = field("title")
	req.Description = field("description")
	req.Status = field("status")
	req.Priority = field("priority")
	req.DueDate = field("due_date")
	req.Tags = field("tags")
	if v, ok := c.GetPostForm("is_done"); ok {
		done := formBool(v)
		req.IsDone = &done
	}
	return req.input(), nil
}

// formBool treats checkbox values ("on") and the usual truthy spellings as true.
func formBool(v string) bool {
	if strings.EqualFold(v, "on") {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// taskFail answers an API error, or flashes it and returns to the dashboard
// for form posts.
func taskFail(c *gin.Context, err error) {
	if isForm(c) {
		flashErr(c, err)
		redirect(c, "/")
		return
	}
	failErr(c, err)
}

// taskDone answers a successful mutation.
func taskDone(c *gin.Context, status int, msg string, task *domain.Task) {
	if isForm(c) {
		flash(c, session.FlashSuccess, msg)
		redirect(c, "/")
		return
	}
	extra := gin.H{}
	if task != nil {
		extra["task"] = task
	}
	succeed(c, status, msg, extra)
}

func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		failErr(c, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) CreateTask(c *gin.Context) {
	in, err := bindTask(c)
	if err != nil {
		fail(c, http.StatusBadRequest, msgBadBody)
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		taskFail(c, err)
		return
	}
	taskDone(c, http.StatusCreated, "Task created successfully!", task)
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		failErr(c, domain.ErrTaskNotFound)
		return
	}

	task, err := h.Tasks.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	succeed(c, http.StatusOK, "", gin.H{"task": task})
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		taskFail(c, domain.ErrTaskNotFound)
		return
	}
	in, err := bindTask(c)
	if err != nil {
		fail(c, http.StatusBadRequest, msgBadBody)
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		taskFail(c, err)
		return
	}
	taskDone(c, http.StatusOK, "Task updated successfully!", task)
}

func (h *Handler) ToggleTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		taskFail(c, domain.ErrTaskNotFound)
		return
	}

	task, err := h.Tasks.Toggle(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		taskFail(c, err)
		return
	}
	taskDone(c, http.StatusOK, "Task status updated!", task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		taskFail(c, domain.ErrTaskNotFound)
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		taskFail(c, err)
		return
	}
	taskDone(c, http.StatusOK, "Task deleted.", nil)
}

// QuickTasksPage is the plain list at /tasks/.
func (h *Handler) QuickTasksPage(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		failErr(c, err)
		return
	}
	render(c, http.StatusOK, "tasks.html", gin.H{"Title": "Quick tasks", "Tasks": tasks})
}

// QuickTaskCreate adds a task from the /tasks/ form. A blank title is
// silently ignored.
func (h *Handler) QuickTaskCreate(c *gin.Context) {
	title := c.PostForm("title")
	if strings.TrimSpace(title) != "" {
		if _, err := h.Tasks.Create(c.Request.Context(), middleware.CurrentUser(c), service.TaskInput{Title: &title}); err != nil {
			flashErr(c, err)
		}
	}
	redirect(c, "/tasks/")
}
